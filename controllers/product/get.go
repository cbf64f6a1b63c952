package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mihinr/Gowin-Sports/models"
)

type productDetail struct {
	models.Product
	MainImageURL *string `json:"main_image_url,omitempty"`
}

// GetProductByID returns a single product with its images and variants.
// URL param: /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		respondProductDetail(c, db.Where("id = ?", id))
	}
}

// GetProductBySlug is the SEO-friendly lookup.
// URL param: /api/products/slug/:slug
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondProductDetail(c, db.Where("slug = ?", c.Param("slug")))
	}
}

func respondProductDetail(c *gin.Context, query *gorm.DB) {
	var product models.Product
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_main DESC, id ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return
	}

	detail := productDetail{Product: product}
	for _, img := range product.Images {
		if img.IsMain {
			url := img.ImageURL
			detail.MainImageURL = &url
			break
		}
	}
	if detail.MainImageURL == nil && len(product.Variants) > 0 {
		detail.MainImageURL = product.Variants[0].ImageURL
	}

	c.JSON(http.StatusOK, detail)
}
