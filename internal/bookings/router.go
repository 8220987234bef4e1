package bookings

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// Quote is public so carts can be priced before sign-in.
	router.POST("/bookings/quote", controller.Quote) // POST /api/v1/bookings/quote

	userBookings := router.Group("/bookings")
	userBookings.Use(middleware.JWTAuth())
	{
		userBookings.POST("/confirm", controller.ConfirmBooking)          // POST /api/v1/bookings/confirm
		userBookings.GET("", controller.GetUserBookings)                  // GET /api/v1/bookings
		userBookings.GET("/:bookingId", controller.GetBooking)            // GET /api/v1/bookings/:bookingId
		userBookings.POST("/:bookingId/cancel", controller.CancelBooking) // POST /api/v1/bookings/:bookingId/cancel
	}
}
