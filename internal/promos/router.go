package promos

import (
	"ticketly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPromoRoutes(router *gin.RouterGroup, controller Controller) {
	// Public route - preview a discount against a subtotal
	router.POST("/promos/validate", controller.ValidatePromo) // POST /api/v1/promos/validate

	// Admin routes - promo lifecycle management
	adminPromos := router.Group("/admin/promos")
	adminPromos.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminPromos.POST("", controller.CreatePromo)            // POST /api/v1/admin/promos
		adminPromos.GET("", controller.ListPromos)              // GET /api/v1/admin/promos
		adminPromos.GET("/:promoId", controller.GetPromo)       // GET /api/v1/admin/promos/:promoId
		adminPromos.PUT("/:promoId", controller.UpdatePromo)    // PUT /api/v1/admin/promos/:promoId
		adminPromos.DELETE("/:promoId", controller.DeletePromo) // DELETE /api/v1/admin/promos/:promoId
	}
}
