package middlewares

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arcadia-social/socialfeed-backend/server/auth"
)

// IdentityKey is the gin context key holding the verified *auth.Claims.
const IdentityKey = "identity"

var (
	// tokenService verifies bearer tokens for every protected route. Before
	// any middleware is used, make sure it's initialized via Setup.
	tokenService *auth.TokenService
)

// Setup initializes all package scoped variables that are needed to perform
// middleware functionalities. This function must be called before any
// middleware is used.
func Setup(ts *auth.TokenService) {
	if ts == nil {
		// Abort directly if the token service isn't available, which is
		// crucial for server side authorization.
		log.Fatal("middlewares.Setup called with nil token service")
	}
	tokenService = ts
}

// JWT reads the "Authorization: Bearer <token>" header, verifies the access
// token and attaches the decoded identity to the gin context. A missing
// header is rejected as unauthorized; a failed signature check surfaces the
// generic failure envelope.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusForbidden, "You are not authorized")
			c.Abort()
			return
		}
		// "Authorization: Bearer <token>"; a header without the scheme
		// segment fails verification like any other malformed token.
		parts := strings.Split(authHeader, " ")
		if len(parts) < 2 {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "failure",
				"message": auth.ErrInvalidToken.Error(),
			})
			c.Abort()
			return
		}
		claims, err := tokenService.VerifyAccess(parts[1])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "failure",
				"message": err.Error(),
			})
			c.Abort()
			return
		}
		c.Set(IdentityKey, claims)
		c.Next()
	}
}

// GetIdentity retrieves the claims attached by JWT. The second return is
// false when the route was not behind the middleware.
func GetIdentity(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
