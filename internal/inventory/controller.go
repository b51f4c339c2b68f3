package inventory

import (
	"net/http"

	"villabook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	villa       Villa
	guestLimits map[string]GuestLimit
}

func NewController(villa Villa, guestLimits map[string]GuestLimit) *Controller {
	return &Controller{villa: villa, guestLimits: guestLimits}
}

// GetLayout handles GET /api/v1/inventory. The layout is fixed at startup,
// so this is a static response the booking UI renders its pickers from.
func (c *Controller) GetLayout(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Inventory retrieved", gin.H{
		"villa":        c.villa,
		"guest_limits": c.guestLimits,
	}, nil)
}

// SetupInventoryRoutes configures the public inventory route
func SetupInventoryRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/inventory", controller.GetLayout) // GET /api/v1/inventory
}
