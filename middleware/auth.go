package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys shared with the admin auth controller.
const (
	SessionAdminToken  = "admin_token"
	SessionAdminUserID = "admin_user_id"
)

// AdminRequired rejects requests whose cookie session carries no admin token.
func AdminRequired(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(SessionAdminToken) == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return
	}
	c.Next()
}
