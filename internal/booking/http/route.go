package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bevisngo/booksan-sub000/internal/auth"
)

// RegisterRoutes mounts the facility-scoped booking routes. Every route requires a
// token issued for the facility in the path.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	facility := g.Group("/facilities/:facilityId")
	facility.Use(authMiddleware, auth.RequireFacility("facilityId"))
	{
		facility.POST("/bookings", h.Create)
		facility.GET("/bookings", h.List)
		facility.GET("/bookings/stats", h.Stats)
		facility.GET("/bookings/:id", h.Get)
		facility.GET("/courts/:courtId/bookings", h.ListByCourt)
		facility.PATCH("/slots/:slotId/cancel", h.CancelSlot)
	}
}
