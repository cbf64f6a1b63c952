package adminController

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mihinr/Gowin-Sports/middleware"
	"github.com/Mihinr/Gowin-Sports/models"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials against admin_users and stores a fresh token
// in the cookie session.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload loginPayload
		if err := c.ShouldBindJSON(&payload); err != nil || payload.Username == "" || payload.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}

		var user models.AdminUser
		if err := db.Where("username = ?", payload.Username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			}
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token := uuid.NewString()
		session := sessions.Default(c)
		session.Set(middleware.SessionAdminToken, token)
		session.Set(middleware.SessionAdminUserID, user.ID)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		now := time.Now()
		if err := db.Model(&user).Update("last_login", now).Error; err != nil {
			// Login already succeeded; a failed timestamp update is not fatal.
			log.Printf("⚠️ Failed to update last_login for %s: %v", user.Username, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
	}
}

// Logout destroys the admin session.
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error logging out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// CheckAuth reports whether the current session is authenticated.
func CheckAuth(c *gin.Context) {
	session := sessions.Default(c)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": session.Get(middleware.SessionAdminToken) != nil,
	})
}
