package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the booking endpoints. The free-slot and price
// endpoints are public; everything else is owner-or-admin scoped inside the
// service.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, roleMiddleware gin.HandlerFunc) {
	g.GET("/bookings/price", h.Price)
	g.GET("/courts/:id/slots", h.Slots)

	group := g.Group("/bookings")
	group.Use(authMiddleware, roleMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/:id/cancel", h.Cancel)
		group.DELETE("/:id", h.Delete)
	}
}
