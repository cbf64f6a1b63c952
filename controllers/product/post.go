package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/Mihinr/Gowin-Sports/models"
	"github.com/Mihinr/Gowin-Sports/utils"
)

type imagePayload struct {
	ImageURL string `json:"image_url"`
	IsMain   bool   `json:"is_main"`
}

type variantPayload struct {
	Color              *string `json:"color"`
	ImageURL           *string `json:"image_url"`
	Stock              int     `json:"stock"`
	Size               *string `json:"size"`
	GripSize           *string `json:"grip_size"`
	DiscountPercentage float64 `json:"discount_percentage"`
	FrameRacket        *string `json:"frame_racket"`
	RacketPiece        *string `json:"racket_piece"`
}

type productPayload struct {
	Name               string            `json:"name" binding:"required"`
	Description        string            `json:"description"`
	LongDescription    string            `json:"long_description"`
	Category           string            `json:"category" binding:"required"`
	Collection         *string           `json:"collection"`
	Type               *string           `json:"type"`
	Price              float64           `json:"price"`
	DiscountPercentage float64           `json:"discount_percentage"`
	OutOfStock         bool              `json:"out_of_stock"`
	InstallmentMonths  int               `json:"installment_months"`
	EnableMintpay      bool              `json:"enable_mintpay"`
	EnableKoko         bool              `json:"enable_koko"`
	Specs              map[string]string `json:"specs"`
	ProductImages      []imagePayload    `json:"product_images"`
	Variants           []variantPayload  `json:"variants"`
}

// CreateProduct creates a product with its images and variants in one
// transaction.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload productPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and category are required"})
			return
		}

		slug, err := utils.EnsureUniqueSlug(db, utils.GenerateSlug(payload.Name), 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
			return
		}

		specs := payload.Specs
		if specs == nil {
			specs = map[string]string{}
		}
		specsJSON, err := json.Marshal(specs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid specs"})
			return
		}

		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}

		product := models.Product{
			Name:               payload.Name,
			Slug:               slug,
			Description:        payload.Description,
			LongDescription:    payload.LongDescription,
			Category:           payload.Category,
			Collection:         normalizeOptional(payload.Collection),
			Type:               normalizeOptional(payload.Type),
			Price:              payload.Price,
			DiscountPercentage: payload.DiscountPercentage,
			OutOfStock:         payload.OutOfStock,
			InstallmentMonths:  payload.InstallmentMonths,
			EnableMintpay:      payload.EnableMintpay,
			EnableKoko:         payload.EnableKoko,
			Specs:              string(specsJSON),
		}
		if err := tx.Create(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create product"})
			return
		}

		if err := insertImages(tx, product.ID, payload.ProductImages); err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to save product images"})
			return
		}
		if err := insertVariants(tx, product.ID, payload.Variants); err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to save variants"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product_id": product.ID})
	}
}

func insertImages(tx *gorm.DB, productID uint, images []imagePayload) error {
	for _, img := range images {
		record := models.ProductImage{
			ProductID: productID,
			ImageURL:  img.ImageURL,
			IsMain:    img.IsMain,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertVariants(tx *gorm.DB, productID uint, variants []variantPayload) error {
	for _, v := range variants {
		record := models.Variant{
			ProductID:          productID,
			Color:              normalizeOptional(v.Color),
			ImageURL:           normalizeOptional(v.ImageURL),
			Stock:              v.Stock,
			Size:               normalizeOptional(v.Size),
			GripSize:           normalizeOptional(v.GripSize),
			DiscountPercentage: v.DiscountPercentage,
			FrameRacket:        normalizeOptional(v.FrameRacket),
			RacketPiece:        normalizeOptional(v.RacketPiece),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

// normalizeOptional maps empty strings and the legacy "None" sentinel
// (still sent by older admin clients) to absent.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || v == "None" {
		return nil
	}
	return &v
}
