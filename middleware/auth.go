package middleware

import (
	"strings"

	"hotel/models"
	"hotel/response"
	"hotel/services"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// IdentityKey holds the verified *models.Identity in the gin context.
const IdentityKey = "identity"

// AuthMiddleware resolves the caller from the bearer token. Requests without
// a token go through anonymously; a bad token ends the request with 401.
func AuthMiddleware(tokens services.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		identity, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)))
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Request = c.Request.WithContext(services.WithCaller(c.Request.Context(), identity))
		c.Next()
	}
}

// RoleMiddleware lets only callers holding role through.
func RoleMiddleware(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := services.RequireRole(c.Request.Context(), role); err != nil {
			response.AppError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
