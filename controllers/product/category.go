package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mihinr/Gowin-Sports/models"
)

// GetProductsByCategory lists a category, optionally filtered by the
// collection/type query params ("all" disables a filter).
func GetProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Param("category")
		collection := c.Query("collection")
		productType := c.Query("type")

		query := db.Where("category = ?", category)
		if collection != "" && !strings.EqualFold(collection, "all") {
			query = query.Where("collection = ?", collection)
		}
		if productType != "" && !strings.EqualFold(productType, "all") {
			query = query.Where("type = ?", productType)
		}

		var products []models.Product
		err := query.
			Preload("Variants", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			}).
			Find(&products).Error
		if err != nil {
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

// GetCollections returns the distinct collections within a category.
func GetCollections(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var collections []string
		err := db.Model(&models.Product{}).
			Distinct("collection").
			Where("category = ? AND collection IS NOT NULL", c.Param("category")).
			Pluck("collection", &collections).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
			return
		}
		c.JSON(http.StatusOK, collections)
	}
}

// GetTypes returns the distinct types within a category.
func GetTypes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var types []string
		err := db.Model(&models.Product{}).
			Distinct("type").
			Where("category = ? AND type IS NOT NULL", c.Param("category")).
			Pluck("type", &types).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch types"})
			return
		}
		c.JSON(http.StatusOK, types)
	}
}
