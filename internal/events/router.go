package events

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse events and view seat maps
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.ListEvents)                  // GET /api/v1/events
		publicEvents.GET("/:eventId", controller.GetEvent)           // GET /api/v1/events/:eventId
		publicEvents.GET("/:eventId/seatmap", controller.GetSeatMap) // GET /api/v1/events/:eventId/seatmap
	}

	// Admin routes - event and tier management
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)                   // POST /api/v1/admin/events
		adminEvents.PUT("/:eventId", controller.UpdateEvent)           // PUT /api/v1/admin/events/:eventId
		adminEvents.POST("/:eventId/publish", controller.PublishEvent) // POST /api/v1/admin/events/:eventId/publish
		adminEvents.POST("/:eventId/cancel", controller.CancelEvent)   // POST /api/v1/admin/events/:eventId/cancel
		adminEvents.DELETE("/:eventId", controller.DeleteEvent)        // DELETE /api/v1/admin/events/:eventId

		adminEvents.POST("/:eventId/tiers", controller.CreateTier)  // POST /api/v1/admin/events/:eventId/tiers
		adminEvents.PUT("/tiers/:tierId", controller.UpdateTier)    // PUT /api/v1/admin/events/tiers/:tierId
		adminEvents.DELETE("/tiers/:tierId", controller.DeleteTier) // DELETE /api/v1/admin/events/tiers/:tierId
	}
}
