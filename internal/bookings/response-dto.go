package bookings

import "time"

type BookingResponse struct {
	ID                 string            `json:"id"`
	TargetType         string            `json:"target_type"`
	FloorID            string            `json:"floor_id,omitempty"`
	RoomID             string            `json:"room_id,omitempty"`
	CheckIn            string            `json:"check_in"`
	CheckOut           string            `json:"check_out"`
	Nights             int               `json:"nights"`
	Status             string            `json:"status"`
	GuestName          string            `json:"guest_name,omitempty"`
	GuestEmail         string            `json:"guest_email,omitempty"`
	Adults             int               `json:"adults"`
	Children           int               `json:"children"`
	BasePrice          float64           `json:"base_price"`
	FinalPricePerNight float64           `json:"final_price_per_night"`
	TotalPrice         float64           `json:"total_price"`
	DepositAmount      float64           `json:"deposit_amount"`
	PaidAmount         float64           `json:"paid_amount"`
	RemainingAmount    float64           `json:"remaining_amount"`
	RefundAmount       float64           `json:"refund_amount,omitempty"`
	RefundPending      bool              `json:"refund_pending,omitempty"`
	AppliedRules       []AppliedRuleInfo `json:"applied_rules,omitempty"`
	BlockReason        string            `json:"block_reason,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
}

type AppliedRuleInfo struct {
	RuleName      string  `json:"rule_name"`
	ModifierType  string  `json:"modifier_type"`
	ModifierValue float64 `json:"modifier_value"`
	Priority      int     `json:"priority"`
	Nights        int     `json:"nights"`
}

type CreateBookingResponse struct {
	Booking        BookingResponse `json:"booking"`
	OrderID        string          `json:"order_id"`
	PaymentSession string          `json:"payment_session,omitempty"`
	AccessToken    string          `json:"access_token"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
}

type DateRangeResponse struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// ToResponse maps a booking to its public shape
func ToResponse(b *Booking) BookingResponse {
	resp := BookingResponse{
		ID:                 b.ID.String(),
		TargetType:         b.TargetType,
		FloorID:            b.FloorID,
		RoomID:             b.RoomID,
		CheckIn:            b.CheckIn.Format(DateLayout),
		CheckOut:           b.CheckOut.Format(DateLayout),
		Nights:             b.Range().Nights(),
		Status:             b.Status.String(),
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		Adults:             b.Adults,
		Children:           b.Children,
		BasePrice:          b.BasePrice,
		FinalPricePerNight: b.FinalPricePerNight,
		TotalPrice:         b.TotalPrice,
		DepositAmount:      b.DepositAmount,
		PaidAmount:         b.PaidAmount,
		RemainingAmount:    b.RemainingAmount(),
		RefundAmount:       b.RefundAmount,
		RefundPending:      b.RefundPending,
		BlockReason:        b.BlockReason,
		CreatedAt:          b.CreatedAt,
		CancelledAt:        b.CancelledAt,
	}
	for _, rule := range b.AppliedRules {
		resp.AppliedRules = append(resp.AppliedRules, AppliedRuleInfo{
			RuleName:      rule.RuleName,
			ModifierType:  rule.ModifierType,
			ModifierValue: rule.ModifierValue,
			Priority:      rule.Priority,
			Nights:        rule.Nights,
		})
	}
	return resp
}
