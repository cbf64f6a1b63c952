package productcontroller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mihinr/Gowin-Sports/models"
)

func strPtr(s string) *string { return &s }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.Variant{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testDB(t)
	r := gin.New()
	r.GET("/api/products", GetProducts(db))
	r.GET("/api/products/:id", GetProductByID(db))
	r.GET("/api/products/slug/:slug", GetProductBySlug(db))
	r.GET("/api/products/category/:category", GetProductsByCategory(db))
	r.GET("/api/collections/:category", GetCollections(db))
	r.GET("/api/types/:category", GetTypes(db))
	r.POST("/api/admin/products", CreateProduct(db))
	r.PUT("/api/admin/products/:id", UpdateProduct(db))
	r.DELETE("/api/admin/products/:id", DeleteProduct(db))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestCreateAndFetchProduct(t *testing.T) {
	r, db := testRouter(t)

	payload := map[string]interface{}{
		"name":        "Yonex Astrox 88D Pro",
		"category":    "rackets",
		"collection":  "Astrox",
		"price":       32000,
		"description": "Head-heavy doubles racket",
		"specs":       map[string]string{"weight": "4U"},
		"product_images": []map[string]interface{}{
			{"image_url": "/static/images/88d_main.jpg", "is_main": true},
			{"image_url": "/static/images/88d_side.jpg"},
		},
		"variants": []map[string]interface{}{
			{"color": "Black/Red", "stock": 4, "grip_size": "G5"},
		},
	}

	w := doJSON(t, r, http.MethodPost, "/api/admin/products", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	t.Run("fetch by slug with main image", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/products/slug/yonex-astrox-88d-pro", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("slug fetch status = %d", w.Code)
		}
		var got struct {
			Name         string           `json:"name"`
			MainImageURL string           `json:"main_image_url"`
			Images       []map[string]any `json:"product_images"`
			Variants     []map[string]any `json:"variants"`
		}
		decodeBody(t, w, &got)
		if got.Name != "Yonex Astrox 88D Pro" {
			t.Errorf("name = %q", got.Name)
		}
		if got.MainImageURL != "/static/images/88d_main.jpg" {
			t.Errorf("main_image_url = %q", got.MainImageURL)
		}
		if len(got.Images) != 2 || len(got.Variants) != 1 {
			t.Errorf("images/variants = %d/%d", len(got.Images), len(got.Variants))
		}
	})

	t.Run("duplicate name gets suffixed slug", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/admin/products", payload)
		if w.Code != http.StatusCreated {
			t.Fatalf("second create status = %d", w.Code)
		}
		var p models.Product
		if err := db.Where("slug = ?", "yonex-astrox-88d-pro-1").First(&p).Error; err != nil {
			t.Errorf("expected suffixed slug: %v", err)
		}
	})

	t.Run("listing resolves image_url", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/products", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("list status = %d", w.Code)
		}
		var items []struct {
			ImageURL *string `json:"image_url"`
		}
		decodeBody(t, w, &items)
		if len(items) == 0 {
			t.Fatal("no products listed")
		}
		if items[0].ImageURL == nil || *items[0].ImageURL != "/static/images/88d_main.jpg" {
			t.Errorf("image_url = %v", items[0].ImageURL)
		}
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/admin/products", map[string]interface{}{"category": "rackets"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestGetProductNotFound(t *testing.T) {
	r, _ := testRouter(t)

	if w := doJSON(t, r, http.MethodGet, "/api/products/9999", nil); w.Code != http.StatusNotFound {
		t.Errorf("by-id status = %d, want 404", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/products/slug/no-such-product", nil); w.Code != http.StatusNotFound {
		t.Errorf("by-slug status = %d, want 404", w.Code)
	}
}

func TestVariantImageFallback(t *testing.T) {
	r, db := testRouter(t)
	p := models.Product{Name: "No Images", Slug: "no-images", Category: "rackets"}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	v := models.Variant{ProductID: p.ID, ImageURL: strPtr("/static/images/variant.jpg"), Stock: 1}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/products/slug/no-images", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got struct {
		MainImageURL string `json:"main_image_url"`
	}
	decodeBody(t, w, &got)
	if got.MainImageURL != "/static/images/variant.jpg" {
		t.Errorf("main_image_url = %q, want variant fallback", got.MainImageURL)
	}
}

func TestCategoryFilters(t *testing.T) {
	r, db := testRouter(t)
	seed := []models.Product{
		{Name: "A", Slug: "a", Category: "rackets", Collection: strPtr("Astrox"), Type: strPtr("attack")},
		{Name: "B", Slug: "b", Category: "rackets", Collection: strPtr("Nanoflare"), Type: strPtr("speed")},
		{Name: "C", Slug: "c", Category: "shoes"},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	count := func(path string) int {
		w := doJSON(t, r, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status for %s = %d", path, w.Code)
		}
		var items []map[string]any
		decodeBody(t, w, &items)
		return len(items)
	}

	if n := count("/api/products/category/rackets"); n != 2 {
		t.Errorf("rackets = %d, want 2", n)
	}
	if n := count("/api/products/category/rackets?collection=Astrox"); n != 1 {
		t.Errorf("rackets/Astrox = %d, want 1", n)
	}
	if n := count("/api/products/category/rackets?collection=all&type=all"); n != 2 {
		t.Errorf("rackets with all filters = %d, want 2", n)
	}
	if n := count("/api/products/category/rackets?type=speed"); n != 1 {
		t.Errorf("rackets/speed = %d, want 1", n)
	}

	t.Run("distinct collections", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/collections/rackets", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var collections []string
		decodeBody(t, w, &collections)
		if len(collections) != 2 {
			t.Errorf("collections = %v, want 2 entries", collections)
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	r, db := testRouter(t)
	p := models.Product{Name: "Old Name", Slug: "old-name", Category: "rackets", Price: 100}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&models.Variant{ProductID: p.ID, Stock: 1}).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}

	t.Run("rename regenerates slug", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/admin/products/1", map[string]interface{}{
			"name":     "New Name",
			"category": "rackets",
			"price":    999,
			"variants": []map[string]interface{}{
				{"stock": 10, "color": "White"},
				{"stock": 0},
			},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
		}

		var updated models.Product
		if err := db.Preload("Variants").First(&updated, p.ID).Error; err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if updated.Slug != "new-name" || updated.Price != 999 {
			t.Errorf("updated = %q/%v", updated.Slug, updated.Price)
		}
		if len(updated.Variants) != 2 {
			t.Errorf("variants should be replaced wholesale, got %d", len(updated.Variants))
		}
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/admin/products/9999", map[string]interface{}{"price": 1})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	r, db := testRouter(t)
	p := models.Product{Name: "Doomed", Slug: "doomed", Category: "rackets"}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	db.Create(&models.ProductImage{ProductID: p.ID, ImageURL: "x.jpg", IsMain: true})
	db.Create(&models.Variant{ProductID: p.ID, Stock: 2})

	w := doJSON(t, r, http.MethodDelete, "/api/admin/products/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	var products, images, variants int64
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.ProductImage{}).Count(&images)
	db.Model(&models.Variant{}).Count(&variants)
	if products != 0 || images != 0 || variants != 0 {
		t.Errorf("counts after delete = %d/%d/%d, want 0/0/0", products, images, variants)
	}

	if w := doJSON(t, r, http.MethodDelete, "/api/admin/products/1", nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}
