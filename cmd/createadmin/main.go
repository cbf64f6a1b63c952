// Command createadmin bootstraps an admin user.
//
// Usage: createadmin <username> <password> <email>
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Mihinr/Gowin-Sports/models"
)

func main() {
	_ = godotenv.Load()

	args := os.Args[1:]
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: createadmin <username> <password> <email>")
		os.Exit(1)
	}
	username, password, email := args[0], args[1], args[2]

	if len(password) < 6 {
		log.Fatal("❌ Password must be at least 6 characters long")
	}
	if !strings.Contains(email, "@") {
		log.Fatal("❌ Invalid email address")
	}

	db := initDatabase()
	if err := db.AutoMigrate(&models.AdminUser{}); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	var count int64
	err := db.Model(&models.AdminUser{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		log.Fatalf("❌ Database error: %v", err)
	}
	if count > 0 {
		log.Fatal("❌ Username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	admin := models.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to create admin user: %v", err)
	}

	log.Printf("✅ Admin user %q created", username)
}

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
