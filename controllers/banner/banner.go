package bannercontroller

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	uploadcontroller "github.com/Mihinr/Gowin-Sports/controllers/upload"
	"github.com/Mihinr/Gowin-Sports/models"
)

// GetBanners lists banners in display order.
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.BannerImage
		if err := db.Order("display_order ASC, id ASC").Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
			return
		}
		c.JSON(http.StatusOK, banners)
	}
}

type bannerPayload struct {
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

// CreateBanner stores a new banner image record.
func CreateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload bannerPayload
		if err := c.ShouldBindJSON(&payload); err != nil || payload.ImageURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image_url is required"})
			return
		}

		banner := models.BannerImage{
			ImageURL:     payload.ImageURL,
			DisplayOrder: payload.DisplayOrder,
		}
		if err := db.Create(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add banner"})
			return
		}
		c.JSON(http.StatusCreated, banner)
	}
}

// DeleteBanner removes the record and, when the image lives in the local
// static folder, the file as well. File errors never fail the request.
func DeleteBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner models.BannerImage
		if err := db.First(&banner, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			}
			return
		}

		if err := db.Delete(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
			return
		}

		if strings.HasPrefix(banner.ImageURL, "/static/images/") {
			filename := strings.TrimPrefix(banner.ImageURL, "/static/images/")
			path := filepath.Join(uploadcontroller.UploadFolder(), filename)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Printf("⚠️ Failed to delete banner image %s: %v", path, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
	}
}

type orderPayload struct {
	DisplayOrder *int `json:"display_order"`
}

// UpdateBannerOrder changes a banner's position in the carousel.
func UpdateBannerOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner ID"})
			return
		}

		var payload orderPayload
		if err := c.ShouldBindJSON(&payload); err != nil || payload.DisplayOrder == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_order is required"})
			return
		}

		result := db.Model(&models.BannerImage{}).Where("id = ?", id).
			Update("display_order", *payload.DisplayOrder)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update display order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Display order updated successfully"})
	}
}
