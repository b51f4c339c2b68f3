package admin

import "github.com/gin-gonic/gin"

// SetupAdminRoutes configures the admin session routes
func SetupAdminRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/admin")
	{
		admin.POST("/login", controller.Login)   // POST /api/v1/admin/login
		admin.POST("/logout", controller.Logout) // POST /api/v1/admin/logout
	}
}
