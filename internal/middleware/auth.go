package middleware

import (
	"net/http"
	"strings"

	"github.com/dw4085/live-polling-app/internal/models"
	"github.com/dw4085/live-polling-app/internal/services"

	"github.com/gin-gonic/gin"
)

func JWTAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, role, ok := parseBearer(c, authService)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("admin_id", adminID)
		c.Set("admin_role", role)
		c.Next()
	}
}

// SuperadminOnly must run after JWTAuth.
func SuperadminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("admin_role") != models.RoleSuperadmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "superadmin access required"})
			return
		}
		c.Next()
	}
}

// OptionalAuth admits everyone but records admin identity when a valid
// token is present, so shared endpoints (results, crosstab) can skip the
// participant reveal gating for admins.
func OptionalAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminID, role, ok := parseBearer(c, authService); ok {
			c.Set("admin_id", adminID)
			c.Set("admin_role", role)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, authService *services.AuthService) (uint, string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return 0, "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, "", false
	}

	adminID, role, err := authService.ValidateToken(parts[1])
	if err != nil {
		return 0, "", false
	}
	return adminID, role, true
}
