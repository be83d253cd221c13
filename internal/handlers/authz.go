package handlers

import (
	"crypto/subtle"
	"net/http"

	"speakroots/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminUserKey is the gin context key holding the authenticated admin name
const AdminUserKey = "admin_user"

// RequireAdmin guards routes with HTTP basic auth checked against the configured
// admin username and bcrypt password hash. Without a hash, admin routes are disabled.
func RequireAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Server.AdminPasswordHash == "" {
			StandardizeHTTPError(c, http.StatusForbidden, "Admin access disabled", "server.admin_password_hash is not set")
			c.Abort()
			return
		}

		user, password, ok := c.Request.BasicAuth()
		if !ok || !adminCredentialsMatch(cfg, user, password) {
			c.Header("WWW-Authenticate", `Basic realm="speakroots admin"`)
			StandardizeHTTPError(c, http.StatusUnauthorized, "Authentication required", "")
			c.Abort()
			return
		}

		c.Set(AdminUserKey, user)
		c.Next()
	}
}

func adminCredentialsMatch(cfg *config.Config, user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Server.AdminUsername)) == 1
	// bcrypt runs for every attempt regardless of the username
	passOK := bcrypt.CompareHashAndPassword([]byte(cfg.Server.AdminPasswordHash), []byte(password)) == nil
	return userOK && passOK
}
