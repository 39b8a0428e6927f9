package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetIsAdmin reports whether role-resolving middleware marked the
// authenticated user as an admin. Defaults to false when unset.
func GetIsAdmin(c *gin.Context) bool {
	if v, ok := c.Get("isAdmin"); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
