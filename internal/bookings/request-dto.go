package bookings

type CreateBookingRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=villa floor room"`
	FloorID    string `json:"floor_id"`
	RoomID     string `json:"room_id"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	GuestName  string `json:"guest_name" validate:"required"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
	GuestPhone string `json:"guest_phone" validate:"required"`
	Adults     int    `json:"adults" validate:"required,min=1"`
	Children   int    `json:"children" validate:"min=0"`
}

type AvailabilityRequest struct {
	TargetType string `form:"target_type" validate:"required,oneof=villa floor room"`
	FloorID    string `form:"floor_id"`
	RoomID     string `form:"room_id"`
	CheckIn    string `form:"check_in" validate:"required"`
	CheckOut   string `form:"check_out" validate:"required"`
}

type BookedRangesRequest struct {
	TargetType string `form:"target_type" validate:"required,oneof=villa floor room"`
	FloorID    string `form:"floor_id"`
	RoomID     string `form:"room_id"`
}

type BlockDatesRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=villa floor room"`
	FloorID    string `json:"floor_id"`
	RoomID     string `json:"room_id"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	Reason     string `json:"reason"`
}

type AdminUpdateRequest struct {
	TargetType string `json:"target_type" validate:"omitempty,oneof=villa floor room"`
	FloorID    string `json:"floor_id"`
	RoomID     string `json:"room_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status" validate:"omitempty,oneof=pending paid cancelled blocked refunded"`
}
