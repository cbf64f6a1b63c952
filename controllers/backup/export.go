package backupcontroller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mihinr/Gowin-Sports/models"
)

// GenerateBackup exports the whole catalog as a timestamped Excel download.
// Read-only: any failure leaves the store untouched.
func GenerateBackup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Shared with restore's write lock so an export never observes a
		// half-wiped catalog from a concurrent restore.
		catalogGate.RLock()
		defer catalogGate.RUnlock()

		var products []models.Product
		err := db.Order("id ASC").
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("is_main DESC, id ASC")
			}).
			Preload("Variants", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			}).
			Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file, err := EncodeBackup(products)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		filename := fmt.Sprintf("products_backup_%s.xlsx",
			time.Now().UTC().Format("2006-01-02T15-04-05"))

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Header("Content-Transfer-Encoding", "binary")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
