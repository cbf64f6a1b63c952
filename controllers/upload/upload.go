package uploadcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20 // 10 MiB

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// UploadFolder is where product and banner images land on disk; it is
// served under /static/images.
func UploadFolder() string {
	if dir := os.Getenv("UPLOAD_FOLDER"); dir != "" {
		return dir
	}
	return "static/images"
}

// UploadImage saves an admin-uploaded image and returns its public URL.
func UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		if fileHeader.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB."})
			return
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedImageExts[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed. Only PNG, JPG, JPEG, and GIF are allowed."})
			return
		}

		dir := UploadFolder()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		productName := c.PostForm("product_name")
		if productName == "" {
			productName = "product"
		}
		filename := uniqueImageName(productName, ext)

		if err := c.SaveUploadedFile(fileHeader, filepath.Join(dir, filename)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"image_url": "/static/images/" + filename})
	}
}

// uniqueImageName builds "<safe-product-name>_<timestamp><ext>" so repeat
// uploads for the same product never collide.
func uniqueImageName(productName, ext string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(productName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	safe := strings.Trim(b.String(), "_")
	if safe == "" {
		safe = "product"
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return fmt.Sprintf("%s_%s%s", safe, timestamp, ext)
}
