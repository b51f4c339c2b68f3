package bookings

import (
	"villabook/internal/shared/config"
	"villabook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures guest-facing booking and availability routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", controller.CreateBooking)            // POST /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id?token=...
		bookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel?token=...
	}

	availability := rg.Group("/availability")
	{
		availability.GET("", controller.CheckAvailability)   // GET /api/v1/availability
		availability.GET("/booked", controller.BookedRanges) // GET /api/v1/availability/booked
	}
}

// SetupAdminBookingRoutes configures admin booking management routes
func SetupAdminBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	admin := rg.Group("/admin/bookings")
	admin.Use(middleware.AdminAuth(cfg))
	{
		admin.GET("", controller.ListBookings)              // GET /api/v1/admin/bookings
		admin.POST("/block", controller.BlockDates)         // POST /api/v1/admin/bookings/block
		admin.GET("/:id", controller.GetBooking)            // GET /api/v1/admin/bookings/:id
		admin.PATCH("/:id", controller.UpdateBooking)       // PATCH /api/v1/admin/bookings/:id
		admin.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/admin/bookings/:id/cancel
		admin.POST("/:id/refund", controller.RetryRefund)   // POST /api/v1/admin/bookings/:id/refund
		admin.DELETE("/:id", controller.DeleteBooking)      // DELETE /api/v1/admin/bookings/:id
	}
}
