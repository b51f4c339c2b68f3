package pricing

import (
	"villabook/internal/shared/config"
	"villabook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPricingRoutes configures the public quote route
func SetupPricingRoutes(rg *gin.RouterGroup, controller *Controller) {
	pricing := rg.Group("/pricing")
	{
		pricing.GET("/quote", controller.Quote) // GET /api/v1/pricing/quote
	}
}

// SetupAdminPricingRoutes configures admin rule management routes
func SetupAdminPricingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	rules := rg.Group("/admin/pricing/rules")
	rules.Use(middleware.AdminAuth(cfg))
	{
		rules.GET("", controller.ListRules)         // GET /api/v1/admin/pricing/rules
		rules.POST("", controller.CreateRule)       // POST /api/v1/admin/pricing/rules
		rules.GET("/:id", controller.GetRule)       // GET /api/v1/admin/pricing/rules/:id
		rules.PUT("/:id", controller.UpdateRule)    // PUT /api/v1/admin/pricing/rules/:id
		rules.DELETE("/:id", controller.DeleteRule) // DELETE /api/v1/admin/pricing/rules/:id
	}
}
