package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ntvhs/portal-backend/internal/platform/apierr"
	"github.com/ntvhs/portal-backend/internal/services"
)

// RequireAdmin gates a route group behind a valid admin token. Rejections
// carry no detail about which check failed.
func RequireAdmin(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apierr.CodeUnauthorized})
			return
		}
		if err := auth.Validate(c.Request.Context(), token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apierr.CodeUnauthorized})
			return
		}
		c.Set("access_token", token)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
