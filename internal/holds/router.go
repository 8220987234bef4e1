package holds

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupHoldRoutes(router *gin.RouterGroup, controller Controller) {
	userHolds := router.Group("/holds")
	userHolds.Use(middleware.JWTAuth())
	{
		userHolds.POST("", controller.CreateHold)            // POST /api/v1/holds
		userHolds.GET("/:holdId", controller.GetHold)        // GET /api/v1/holds/:holdId
		userHolds.DELETE("/:holdId", controller.ReleaseHold) // DELETE /api/v1/holds/:holdId
	}
}
