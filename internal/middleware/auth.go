package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swiftline/payments-portal/internal/token"
)

// Auth extracts the bearer token from the Authorization header and verifies
// it against the injected issuer. An absent or malformed header is a 401; a
// token that fails verification (bad signature, expired, garbage) is a 403.
func Auth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Missing token",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Missing token",
			})
			c.Abort()
			return
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Invalid token",
			})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole rejects any request whose session role is not exactly the
// required one. No hierarchy: an admin token does not pass an employee gate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := GetRole(c)
		if !ok || got != role {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Forbidden: insufficient role",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		return "", false
	}
	return userID.(string), true
}

func GetRole(c *gin.Context) (string, bool) {
	role, exists := c.Get("role")
	if !exists {
		return "", false
	}
	return role.(string), true
}
