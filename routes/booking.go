package routes

import (
	"github.com/gin-gonic/gin"

	"coachly/handlers"
)

// RegisterBookingRoutes registers the public booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api")
	{
		api.GET("/availability", h.GetAvailability) // slot grid for one date + plan
		api.POST("/bookings", h.CreateBooking)      // commit a chosen slot
	}
}
