package backupcontroller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/Mihinr/Gowin-Sports/models"
	"github.com/Mihinr/Gowin-Sports/utils"
)

const maxUploadSize = 10 << 20 // 10 MiB

// Some browsers mislabel .xlsx uploads, so octet-stream and zip are allowed
// and the extension check covers the rest.
var allowedUploadMimeTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel":        true,
	"application/octet-stream":        true,
	"application/x-zip-compressed":    true,
}

// catalogGate serializes restore (write side) against exports (read side)
// within this process, so an export never reads between a restore's
// truncate and commit.
var catalogGate sync.RWMutex

// RestoreBackup replaces the entire catalog from an uploaded workbook.
// The wipe and every reinsertion run in one transaction: a failure at any
// row leaves the catalog exactly as it was.
func RestoreBackup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		if fileHeader.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB."})
			return
		}
		if !acceptedUpload(fileHeader) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only Excel files (.xlsx, .xls) are allowed"})
			return
		}

		src, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer src.Close()

		buf, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		// Decode fully before touching the store; a bad file must abort
		// with zero mutation.
		rows, err := DecodeBackup(bytes.NewReader(buf), int64(len(buf)))
		if err != nil {
			var formatErr *FormatError
			if errors.As(err, &formatErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": formatErr.Reason})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error parsing Excel file data"})
			return
		}

		log.Printf("📦 Restoring %d products from backup...", len(rows))

		catalogGate.Lock()
		defer catalogGate.Unlock()

		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}

		if err := runRestore(tx, rows); err != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				// The original error still wins; the failed rollback is
				// only logged.
				log.Printf("❌ Rollback failed after restore error: %v", rbErr)
			}
			log.Printf("❌ Error restoring backup: %v", err)
			body := gin.H{"error": err.Error()}
			if gin.IsDebugging() {
				body["details"] = fmt.Sprintf("%+v", err)
			}
			c.JSON(http.StatusInternalServerError, body)
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit restore"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":           "Backup restored successfully",
			"products_restored": len(rows),
		})
	}
}

func runRestore(tx *gorm.DB, rows []BackupRow) error {
	if err := wipeCatalog(tx); err != nil {
		return err
	}
	return restoreRows(tx, rows)
}

// wipeCatalog empties the product tables. Constraint checks are disabled
// for the duration, so the child-first order is defensive rather than
// required.
func wipeCatalog(tx *gorm.DB) error {
	stmts := []string{
		"SET FOREIGN_KEY_CHECKS = 0",
		"TRUNCATE TABLE variants",
		"TRUNCATE TABLE product_images",
		"TRUNCATE TABLE products",
		"SET FOREIGN_KEY_CHECKS = 1",
	}
	for _, stmt := range stmts {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// restoreRows inserts every decoded row in file order. The first failing
// row aborts the loop with its row number attached.
func restoreRows(tx *gorm.DB, rows []BackupRow) error {
	for _, row := range rows {
		if err := restoreRow(tx, row); err != nil {
			var validationErr *ValidationError
			if errors.As(err, &validationErr) {
				return err
			}
			return fmt.Errorf("error processing product at row %d: %w", row.Line, err)
		}
	}
	return nil
}

func restoreRow(tx *gorm.DB, row BackupRow) error {
	specs := ParseSpecs(row.Specs)

	// Resolve the slug before validation; duplicate names within one
	// import are disambiguated deterministically by row order.
	slug := strings.TrimSpace(row.Slug)
	if slug == "" {
		slug = utils.GenerateSlug(row.Name)
	}
	if slug == "" {
		slug = utils.GenerateSlug(fmt.Sprintf("product-%d", row.Line))
	}
	slug, err := utils.EnsureUniqueSlugTx(tx, slug)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(row.Name)
	if name == "" {
		return &ValidationError{Line: row.Line, Reason: "product name is required"}
	}

	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return err
	}

	product := models.Product{
		Name:               name,
		Slug:               slug,
		Description:        strings.TrimSpace(row.Description),
		LongDescription:    strings.TrimSpace(row.LongDescription),
		Category:           strings.TrimSpace(row.Category),
		Collection:         optional(row.Collection),
		Type:               optional(row.Type),
		Price:              parseFloatOrZero(row.Price),
		DiscountPercentage: parseFloatOrZero(row.DiscountPercentage),
		OutOfStock:         parseYesNo(row.OutOfStock),
		InstallmentMonths:  parseIntOrZero(row.InstallmentMonths),
		EnableMintpay:      parseYesNo(row.EnableMintpay),
		EnableKoko:         parseYesNo(row.EnableKoko),
		Specs:              string(specsJSON),
	}
	if err := tx.Create(&product).Error; err != nil {
		return err
	}

	for i, url := range splitImageURLs(row.ProductImages) {
		img := models.ProductImage{
			ProductID: product.ID,
			ImageURL:  url,
			IsMain:    i == 0, // first surviving URL is the main image
		}
		if err := tx.Create(&img).Error; err != nil {
			return err
		}
	}

	for _, cell := range parseVariants(row.Variants, row.Line) {
		variant := cell.toModel(product.ID)
		if err := tx.Create(&variant).Error; err != nil {
			return err
		}
	}

	return nil
}

func acceptedUpload(fh *multipart.FileHeader) bool {
	name := strings.ToLower(fh.Filename)
	if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") {
		return true
	}
	return allowedUploadMimeTypes[fh.Header.Get("Content-Type")]
}
