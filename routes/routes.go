package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public store
// API and the admin API.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// 1️⃣ Public storefront routes (no middleware)
	SetupPublicRoutes(r, db)

	// 2️⃣ Admin routes (session-protected)
	SetupAdminRoutes(r, db)
}
