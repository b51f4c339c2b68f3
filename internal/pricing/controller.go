package pricing

import (
	"errors"
	"net/http"
	"time"

	"villabook/internal/inventory"
	"villabook/internal/shared/constants"
	"villabook/internal/shared/utils/response"
	"villabook/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const quoteCacheTTL = 5 * time.Minute

type Controller struct {
	service   Service
	cache     cache.Service
	validator *validator.Validate
}

func NewController(service Service, cacheService cache.Service) *Controller {
	return &Controller{
		service:   service,
		cache:     cacheService,
		validator: validator.New(),
	}
}

// Quote handles GET /api/v1/pricing/quote
func (c *Controller) Quote(ctx *gin.Context) {
	var req QuoteRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	target := inventory.Target{
		Type:    inventory.TargetType(req.TargetType),
		FloorID: req.FloorID,
		RoomID:  req.RoomID,
	}
	checkIn, err := time.ParseInLocation("2006-01-02", req.CheckIn, time.Local)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid check-in date", nil, nil)
		return
	}
	checkOut, err := time.ParseInLocation("2006-01-02", req.CheckOut, time.Local)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid check-out date", nil, nil)
		return
	}
	if !checkIn.Before(checkOut) {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Check-in must be before check-out", nil, nil)
		return
	}

	var quote Quote
	key := constants.QuoteCacheKey(req.TargetType, target.ID(), req.CheckIn, req.CheckOut)
	err = c.cache.GetOrSet(ctx.Request.Context(), key, quoteCacheTTL, func() (interface{}, error) {
		return c.service.PriceStay(ctx.Request.Context(), target, checkIn, checkOut, nil)
	}, &quote)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Quote computed", quote, nil)
}

// CreateRule handles POST /api/v1/admin/pricing/rules
func (c *Controller) CreateRule(ctx *gin.Context) {
	rule, ok := c.bindRule(ctx)
	if !ok {
		return
	}

	if err := c.service.CreateRule(ctx.Request.Context(), rule); err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Pricing rule created", rule, nil)
}

// GetRule handles GET /api/v1/admin/pricing/rules/:id
func (c *Controller) GetRule(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid rule ID", nil, nil)
		return
	}

	rule, err := c.service.GetRule(ctx.Request.Context(), id)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Pricing rule retrieved", rule, nil)
}

// UpdateRule handles PUT /api/v1/admin/pricing/rules/:id
func (c *Controller) UpdateRule(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid rule ID", nil, nil)
		return
	}

	rule, ok := c.bindRule(ctx)
	if !ok {
		return
	}
	rule.ID = id

	if err := c.service.UpdateRule(ctx.Request.Context(), rule); err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Pricing rule updated", rule, nil)
}

// DeleteRule handles DELETE /api/v1/admin/pricing/rules/:id
func (c *Controller) DeleteRule(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid rule ID", nil, nil)
		return
	}

	if err := c.service.DeleteRule(ctx.Request.Context(), id); err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Pricing rule deleted", nil, nil)
}

// ListRules handles GET /api/v1/admin/pricing/rules
func (c *Controller) ListRules(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"
	rules, err := c.service.ListRules(ctx.Request.Context(), activeOnly)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Pricing rules retrieved", rules, nil)
}

func (c *Controller) bindRule(ctx *gin.Context) (*PricingRule, bool) {
	var req RuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return nil, false
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return nil, false
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid start date", nil, nil)
		return nil, false
	}
	endDate, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid end date", nil, nil)
		return nil, false
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &PricingRule{
		Name:          req.Name,
		Description:   req.Description,
		AppliesTo:     req.AppliesTo,
		TargetID:      req.TargetID,
		StartDate:     startDate,
		EndDate:       endDate,
		DaysOfWeek:    req.DaysOfWeek,
		ModifierType:  req.ModifierType,
		ModifierValue: req.ModifierValue,
		Priority:      req.Priority,
		IsActive:      isActive,
	}, true
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Pricing rule not found", nil, nil)
	case errors.Is(err, ErrNoSuchTarget):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unknown pricing target", nil, nil)
	case errors.Is(err, ErrValidation):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}
