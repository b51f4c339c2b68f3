package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"villabook/internal/inventory"
	"villabook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	target, ok := parseTarget(ctx, req.TargetType, req.FloorID, req.RoomID)
	if !ok {
		return
	}
	dateRange, err := ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date range", nil, err.Error())
		return
	}

	booking, order, err := c.service.CreateBooking(ctx.Request.Context(), CreateParams{
		Target:     target,
		Range:      dateRange,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		Adults:     req.Adults,
		Children:   req.Children,
	})
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	resp := CreateBookingResponse{
		Booking:        ToResponse(booking),
		OrderID:        order.OrderID,
		PaymentSession: order.PaymentSession,
		AccessToken:    booking.AccessToken,
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created", resp, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), id)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	// Guests prove ownership with the access token handed out at creation;
	// admin requests carry a verified JWT instead.
	if _, isAdmin := ctx.Get("admin_username"); !isAdmin {
		if ctx.Query("token") != booking.AccessToken {
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Access denied", nil, nil)
			return
		}
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved", ToResponse(booking), nil)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	if _, isAdmin := ctx.Get("admin_username"); !isAdmin {
		booking, getErr := c.service.GetBooking(ctx.Request.Context(), id)
		if getErr != nil {
			respondBookingError(ctx, getErr)
			return
		}
		if ctx.Query("token") != booking.AccessToken {
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Access denied", nil, nil)
			return
		}
	}

	booking, err := c.service.Cancel(ctx.Request.Context(), id)
	if err != nil && !errors.Is(err, ErrGateway) {
		respondBookingError(ctx, err)
		return
	}

	message := "Booking cancelled"
	if booking.Status == StatusRefunded {
		message = "Booking cancelled and refunded"
	} else if booking.RefundPending {
		message = "Booking cancelled; refund is being processed"
	}
	response.RespondJSON(ctx, "success", http.StatusOK, message, ToResponse(booking), nil)
}

// CheckAvailability handles GET /api/v1/availability
func (c *Controller) CheckAvailability(ctx *gin.Context) {
	var req AvailabilityRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	target, ok := parseTarget(ctx, req.TargetType, req.FloorID, req.RoomID)
	if !ok {
		return
	}
	dateRange, err := ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date range", nil, err.Error())
		return
	}

	available, err := c.service.CheckAvailability(ctx.Request.Context(), target, dateRange)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability checked", AvailabilityResponse{
		Available: available,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
	}, nil)
}

// BookedRanges handles GET /api/v1/availability/booked
func (c *Controller) BookedRanges(ctx *gin.Context) {
	var req BookedRangesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	target, ok := parseTarget(ctx, req.TargetType, req.FloorID, req.RoomID)
	if !ok {
		return
	}

	ranges, err := c.service.BookedRanges(ctx.Request.Context(), target)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	out := make([]DateRangeResponse, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, DateRangeResponse{
			CheckIn:  r.CheckIn.Format(DateLayout),
			CheckOut: r.CheckOut.Format(DateLayout),
		})
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Booked ranges retrieved", out, nil)
}

// BlockDates handles POST /api/v1/admin/bookings/block
func (c *Controller) BlockDates(ctx *gin.Context) {
	var req BlockDatesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	target, ok := parseTarget(ctx, req.TargetType, req.FloorID, req.RoomID)
	if !ok {
		return
	}
	dateRange, err := ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date range", nil, err.Error())
		return
	}

	block, err := c.service.BlockDates(ctx.Request.Context(), target, dateRange, req.Reason)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Dates blocked", ToResponse(block), nil)
}

// UpdateBooking handles PATCH /api/v1/admin/bookings/:id
func (c *Controller) UpdateBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req AdminUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	var patch UpdatePatch
	if req.TargetType != "" {
		target, ok := parseTarget(ctx, req.TargetType, req.FloorID, req.RoomID)
		if !ok {
			return
		}
		patch.Target = &target
	}
	if req.CheckIn != "" || req.CheckOut != "" {
		dateRange, err := ParseDateRange(req.CheckIn, req.CheckOut)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date range", nil, err.Error())
			return
		}
		patch.Range = &dateRange
	}
	if req.Status != "" {
		status := Status(req.Status)
		patch.Status = &status
	}

	booking, err := c.service.AdminUpdate(ctx.Request.Context(), id, patch)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking updated", ToResponse(booking), nil)
}

// RetryRefund handles POST /api/v1/admin/bookings/:id/refund
func (c *Controller) RetryRefund(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.RetryRefund(ctx.Request.Context(), id)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Refund issued", ToResponse(booking), nil)
}

// ListBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	query := ListQuery{
		Status:     ctx.Query("status"),
		TargetType: ctx.Query("target_type"),
		DateFrom:   ctx.Query("date_from"),
		DateTo:     ctx.Query("date_to"),
	}
	query.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	query.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	bookings, total, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	resp := BookingListResponse{
		Bookings:   make([]BookingResponse, 0, len(bookings)),
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}
	for i := range bookings {
		resp.Bookings = append(resp.Bookings, ToResponse(&bookings[i]))
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved", resp, nil)
}

// DeleteBooking handles DELETE /api/v1/admin/bookings/:id
func (c *Controller) DeleteBooking(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	if err := c.service.DeletePermanently(ctx.Request.Context(), id); err != nil {
		respondBookingError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking deleted", nil, nil)
}

func parseTarget(ctx *gin.Context, targetType, floorID, roomID string) (inventory.Target, bool) {
	target := inventory.Target{
		Type:    inventory.TargetType(targetType),
		FloorID: floorID,
		RoomID:  roomID,
	}
	switch target.Type {
	case inventory.TargetFloor:
		if target.FloorID == "" {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "floor_id is required for floor bookings", nil, nil)
			return inventory.Target{}, false
		}
	case inventory.TargetRoom:
		if target.RoomID == "" {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "room_id is required for room bookings", nil, nil)
			return inventory.Target{}, false
		}
	}
	return target, true
}

func respondBookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotAvailable):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Target not available for the selected dates", nil, nil)
	case errors.Is(err, ErrNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
	case errors.Is(err, inventory.ErrInvalidTarget):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unknown booking target", nil, nil)
	case errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrPastDate), errors.Is(err, ErrInvalidGuestInfo):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, ErrAlreadyTerminal), errors.Is(err, ErrInvalidStatusTransition):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, ErrGateway):
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Payment gateway error", nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}
