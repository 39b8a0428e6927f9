package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playcourt/booking-backend/internal/auth"
	"github.com/playcourt/booking-backend/internal/user"
)

// ResolveRole loads the authenticated user's role into the context so
// handlers can distinguish owners from admins. It MUST be used after
// auth.AuthRequired middleware.
func ResolveRole(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("isAdmin", u.IsAdmin())
		c.Next()
	}
}

// RequireAdmin ensures the authenticated user is an admin.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
