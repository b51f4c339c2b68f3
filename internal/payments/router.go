package payments

import "github.com/gin-gonic/gin"

// SetupPaymentRoutes configures the gateway webhook route. No auth
// middleware here; the HMAC signature is the authentication.
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payments := rg.Group("/payments")
	{
		payments.POST("/webhook", controller.HandleWebhook) // POST /api/v1/payments/webhook
	}
}
