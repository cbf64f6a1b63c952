package adminController

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mihinr/Gowin-Sports/middleware"
	"github.com/Mihinr/Gowin-Sports/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := models.AdminUser{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func authRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("session", store))
	r.POST("/api/login", Login(db))
	r.POST("/api/logout", Logout)
	r.GET("/api/check-auth", CheckAuth)
	r.GET("/api/admin/ping", middleware.AdminRequired, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func postLogin(t *testing.T, r *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(gin.H{"username": username, "password": password})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getWithCookies(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	seedAdmin(t, db, "admin", "shuttlecock")
	r := authRouter(t, db)

	t.Run("missing fields", func(t *testing.T) {
		if w := postLogin(t, r, "admin", ""); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if w := postLogin(t, r, "nobody", "whatever"); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if w := postLogin(t, r, "admin", "racket"); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid credentials", func(t *testing.T) {
		w := postLogin(t, r, "admin", "shuttlecock")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a session token in the response")
		}
		if len(w.Result().Cookies()) == 0 {
			t.Error("expected a session cookie to be set")
		}

		var user models.AdminUser
		if err := db.Where("username = ?", "admin").First(&user).Error; err != nil {
			t.Fatalf("reload admin: %v", err)
		}
		if user.LastLogin == nil {
			t.Error("last_login should be stamped after a successful login")
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	db := testDB(t)
	seedAdmin(t, db, "admin", "shuttlecock")
	r := authRouter(t, db)

	t.Run("anonymous requests", func(t *testing.T) {
		w := getWithCookies(r, "/api/check-auth", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("check-auth status = %d", w.Code)
		}
		var resp struct {
			Authenticated bool `json:"authenticated"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Authenticated {
			t.Error("anonymous session reported as authenticated")
		}

		if w := getWithCookies(r, "/api/admin/ping", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("protected route status = %d, want 401", w.Code)
		}
	})

	login := postLogin(t, r, "admin", "shuttlecock")
	if login.Code != http.StatusOK {
		t.Fatalf("login status = %d", login.Code)
	}
	cookies := login.Result().Cookies()

	t.Run("authenticated requests", func(t *testing.T) {
		w := getWithCookies(r, "/api/check-auth", cookies)
		var resp struct {
			Authenticated bool `json:"authenticated"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Authenticated {
			t.Error("logged-in session reported as unauthenticated")
		}

		if w := getWithCookies(r, "/api/admin/ping", cookies); w.Code != http.StatusOK {
			t.Errorf("protected route status = %d, want 200", w.Code)
		}
	})

	t.Run("logout clears the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("logout status = %d", w.Code)
		}

		// The expired cookie replaces the old one on the client.
		after := w.Result().Cookies()
		if len(after) == 0 {
			t.Fatal("logout should rewrite the session cookie")
		}
		if w := getWithCookies(r, "/api/admin/ping", after); w.Code != http.StatusUnauthorized {
			t.Errorf("protected route after logout = %d, want 401", w.Code)
		}
	})
}
