package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework

	"github.com/Zagreus0809/School-Digital-Wallet/internal/utils" // JWT utility functions
)

// JWTAuthMiddleware resolves the caller's identity for every core
// operation: it validates the bearer token and stores the authenticated
// user id in the request context.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("userID", claims.UserID) // Store authenticated userID in context
		c.Next()                       // Proceed to the next handler
	}
}

// UserID extracts the authenticated user id set by JWTAuthMiddleware.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID") // Get userID from context
	if !exists {
		return 0, false
	}
	id, ok := v.(uint) // Assert stored type
	return id, ok
}
