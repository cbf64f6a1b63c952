package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/Mihinr/Gowin-Sports/models"
	"github.com/Mihinr/Gowin-Sports/utils"
)

// updatePayload mirrors productPayload but nothing is required: the slug
// is only regenerated when a name is supplied, and images/variants are
// replaced only when their arrays are present.
type updatePayload struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	LongDescription    string            `json:"long_description"`
	Category           string            `json:"category"`
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

func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			}
			return
		}

		var payload updatePayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
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

		updates := map[string]interface{}{
			"description":         payload.Description,
			"long_description":    payload.LongDescription,
			"category":            payload.Category,
			"collection":          normalizeOptional(payload.Collection),
			"type":                normalizeOptional(payload.Type),
			"price":               payload.Price,
			"discount_percentage": payload.DiscountPercentage,
			"out_of_stock":        payload.OutOfStock,
			"installment_months":  payload.InstallmentMonths,
			"enable_mintpay":      payload.EnableMintpay,
			"enable_koko":         payload.EnableKoko,
			"specs":               string(specsJSON),
		}

		if payload.Name != "" {
			slug, err := utils.EnsureUniqueSlug(db, utils.GenerateSlug(payload.Name), product.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
				return
			}
			updates["name"] = payload.Name
			updates["slug"] = slug
		}

		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}

		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update product"})
			return
		}

		// Wholesale replacement, matching the create shape.
		if payload.ProductImages != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product images"})
				return
			}
			if err := insertImages(tx, product.ID, payload.ProductImages); err != nil {
				tx.Rollback()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update product images"})
				return
			}
		}
		if payload.Variants != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.Variant{}).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update variants"})
				return
			}
			if err := insertVariants(tx, product.ID, payload.Variants); err != nil {
				tx.Rollback()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update variants"})
				return
			}
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
	}
}
