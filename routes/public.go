package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bannercontroller "github.com/Mihinr/Gowin-Sports/controllers/banner"
	productcontroller "github.com/Mihinr/Gowin-Sports/controllers/product"
)

// SetupPublicRoutes registers every unauthenticated storefront endpoint.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
	})

	// ─────────── Product Catalog ───────────
	r.GET("/api/products", productcontroller.GetProducts(db))
	r.GET("/api/products/:id", productcontroller.GetProductByID(db))
	r.GET("/api/products/slug/:slug", productcontroller.GetProductBySlug(db))
	r.GET("/api/products/category/:category", productcontroller.GetProductsByCategory(db))
	r.GET("/api/collections/:category", productcontroller.GetCollections(db))
	r.GET("/api/types/:category", productcontroller.GetTypes(db))

	// ─────────── Banners ───────────
	r.GET("/api/banners", bannercontroller.GetBanners(db))
}
