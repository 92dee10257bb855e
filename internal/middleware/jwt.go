package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pawhaven/shelter-api/internal/service"
	appErrors "github.com/pawhaven/shelter-api/pkg/errors"
	"github.com/pawhaven/shelter-api/pkg/response"
)

// ContextUserKey is the gin context key storing admin claims.
const ContextUserKey = "currentAdmin"

// JWT protects routes by requiring a valid access token.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
