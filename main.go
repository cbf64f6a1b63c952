package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	uploadcontroller "github.com/Mihinr/Gowin-Sports/controllers/upload"
	"github.com/Mihinr/Gowin-Sports/models"
	"github.com/Mihinr/Gowin-Sports/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Variant{},
		&models.BannerImage{},
		&models.AdminUser{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// Uploads are capped at 10 MB (images and backup spreadsheets)
	r.MaxMultipartMemory = 10 << 20

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Cookie sessions for admin auth
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "dev-session-secret-change-me"
		log.Println("⚠️ SESSION_SECRET not set, using insecure default")
	}
	isHTTPS := strings.HasPrefix(frontendURL, "https")
	store := cookie.NewStore([]byte(secret))
	sameSite := http.SameSiteLaxMode
	if isHTTPS {
		// Cross-site cookies need SameSite=None over HTTPS
		sameSite = http.SameSiteNoneMode
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60, // 24 hours
		HttpOnly: true,
		Secure:   isHTTPS,
		SameSite: sameSite,
	})
	r.Use(sessions.Sessions("session", store))

	// Serve uploaded images
	uploadDir := uploadcontroller.UploadFolder()
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("❌ Failed to create upload folder: %v", err)
	}
	r.Static("/static/images", uploadDir)

	// Setup routes
	routes.SetupRoutes(r, db)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "3306")
		user := envOr("DB_USER", "root")
		password := os.Getenv("DB_PASSWORD")
		dbname := envOr("DB_NAME", "badminton_store")

		dsn = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			user, password, host, port, dbname,
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
