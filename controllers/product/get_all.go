package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mihinr/Gowin-Sports/models"
)

// productListItem is a product row plus its resolved listing image.
type productListItem struct {
	models.Product
	ImageURL *string `json:"image_url"`
}

// GetProducts returns every product with its main image resolved.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		items := make([]productListItem, 0, len(products))
		for _, p := range products {
			items = append(items, productListItem{
				Product:  p,
				ImageURL: mainProductImage(db, p.ID),
			})
		}
		c.JSON(http.StatusOK, items)
	}
}

// mainProductImage resolves the image shown in listings: the flagged main
// product image, else the first variant image, else nothing.
func mainProductImage(db *gorm.DB, productID uint) *string {
	var img models.ProductImage
	err := db.Where("product_id = ? AND is_main = ?", productID, true).
		Order("id ASC").First(&img).Error
	if err == nil {
		return &img.ImageURL
	}

	var variant models.Variant
	err = db.Where("product_id = ?", productID).Order("id ASC").First(&variant).Error
	if err == nil {
		return variant.ImageURL
	}
	return nil
}
