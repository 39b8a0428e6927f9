package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/courts")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.POST("/:id/image", h.UploadImage)
	}
}
