package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coachly/handlers"
	"coachly/middleware"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, adminHandler *handlers.AdminHandler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterBookingRoutes(r, bookingHandler)

	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.GET("/windows", adminHandler.ListWindows)
		admin.PUT("/windows", adminHandler.UpsertWindow)
		admin.DELETE("/windows/:id", adminHandler.DeleteWindow)

		admin.GET("/blocks", adminHandler.ListBlocks)
		admin.POST("/blocks", adminHandler.CreateBlock)
		admin.DELETE("/blocks/:id", adminHandler.DeleteBlock)

		admin.GET("/scheduling-config", adminHandler.GetSchedulingConfig)
		admin.PUT("/scheduling-config", adminHandler.SaveSchedulingConfig)

		admin.GET("/reservations", adminHandler.ListReservations)
	}
}
