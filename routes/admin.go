package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/Mihinr/Gowin-Sports/controllers/admin"
	backupcontroller "github.com/Mihinr/Gowin-Sports/controllers/backup"
	bannercontroller "github.com/Mihinr/Gowin-Sports/controllers/banner"
	productcontroller "github.com/Mihinr/Gowin-Sports/controllers/product"
	uploadcontroller "github.com/Mihinr/Gowin-Sports/controllers/upload"
	"github.com/Mihinr/Gowin-Sports/middleware"
)

// SetupAdminRoutes registers all admin endpoints. Everything except the
// session endpoints themselves sits behind the session gate.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	// ─────────── Session ───────────
	r.POST("/api/admin/login", adminController.Login(db))
	r.POST("/api/admin/logout", adminController.Logout)
	r.GET("/api/admin/check-auth", adminController.CheckAuth)

	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AdminRequired)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
		}

		// ─────────── Backup / Restore ───────────
		backupAdmin := adminGroup.Group("/backup")
		{
			backupAdmin.GET("/generate", backupcontroller.GenerateBackup(db))
			backupAdmin.POST("/restore", backupcontroller.RestoreBackup(db))
		}

		// ─────────── Image Upload ───────────
		adminGroup.POST("/upload-image", uploadcontroller.UploadImage())
	}

	// Banner management shares the public /api/banners prefix.
	r.POST("/api/banners", middleware.AdminRequired, bannercontroller.CreateBanner(db))
	r.DELETE("/api/banners/:id", middleware.AdminRequired, bannercontroller.DeleteBanner(db))
	r.PUT("/api/banners/:id/order", middleware.AdminRequired, bannercontroller.UpdateBannerOrder(db))
}
