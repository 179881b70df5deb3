package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Header carries the shared key for the protected alert endpoints.
const Header = "X-API-Key"

// RequireAPIKey gates a route group behind a shared API key. Requests
// without the header are rejected with 401, requests with a wrong key
// with 403. An empty configured key turns the check off, which is how
// local development runs.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		got := c.GetHeader(Header)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing API key",
			})
			return
		}
		if !keysEqual(got, key) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "invalid API key",
			})
			return
		}

		c.Next()
	}
}

// keysEqual compares in constant time so the check leaks nothing about
// how much of the key matched.
func keysEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
