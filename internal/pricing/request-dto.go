package pricing

type QuoteRequest struct {
	TargetType string `form:"target_type" validate:"required,oneof=villa floor room"`
	FloorID    string `form:"floor_id"`
	RoomID     string `form:"room_id"`
	CheckIn    string `form:"check_in" validate:"required"`
	CheckOut   string `form:"check_out" validate:"required"`
}

type RuleRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	AppliesTo     string  `json:"applies_to" validate:"required,oneof=all villa floor room"`
	TargetID      string  `json:"target_id"`
	StartDate     string  `json:"start_date" validate:"required"`
	EndDate       string  `json:"end_date" validate:"required"`
	DaysOfWeek    []int   `json:"days_of_week"`
	ModifierType  string  `json:"modifier_type" validate:"required,oneof=percentage fixed"`
	ModifierValue float64 `json:"modifier_value" validate:"required"`
	Priority      int     `json:"priority"`
	IsActive      *bool   `json:"is_active"`
}
