package bookings

import (
	"time"

	"villabook/internal/inventory"

	"github.com/google/uuid"
)

// Booking defines the main booking structure. Admin blocks live in the same
// table as guest bookings with status "blocked"; the guest and payment
// columns stay empty for them.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	TargetType string `gorm:"type:varchar(10);not null;check:target_type IN ('villa', 'floor', 'room')" json:"target_type"`
	FloorID    string `gorm:"type:varchar(10)" json:"floor_id,omitempty"`
	RoomID     string `gorm:"type:varchar(10)" json:"room_id,omitempty"`

	CheckIn  time.Time `gorm:"not null;index" json:"check_in"`
	CheckOut time.Time `gorm:"not null;index" json:"check_out"`

	Status Status `gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending', 'paid', 'cancelled', 'blocked', 'refunded')" json:"status"`

	// Guest info
	GuestName  string `gorm:"size:255" json:"guest_name,omitempty"`
	GuestEmail string `gorm:"size:255;index" json:"guest_email,omitempty"`
	GuestPhone string `gorm:"size:32" json:"guest_phone,omitempty"`
	Adults     int    `gorm:"default:0" json:"adults"`
	Children   int    `gorm:"default:0" json:"children"`

	// Pricing snapshot, frozen at creation time. Rules changing afterwards
	// never touch an existing booking.
	BasePrice          float64 `gorm:"default:0" json:"base_price"`
	FinalPricePerNight float64 `gorm:"default:0" json:"final_price_per_night"`
	TotalPrice         float64 `gorm:"default:0" json:"total_price"`
	DepositAmount      float64 `gorm:"default:0" json:"deposit_amount"`
	PaidAmount         float64 `gorm:"default:0" json:"paid_amount"`
	RefundAmount       float64 `gorm:"default:0" json:"refund_amount"`

	// External payment references
	GatewayOrderID   string `gorm:"size:64;index" json:"gateway_order_id,omitempty"`
	GatewayPaymentID string `gorm:"size:64" json:"gateway_payment_id,omitempty"`
	GatewayRefundID  string `gorm:"size:64" json:"gateway_refund_id,omitempty"`
	RefundPending    bool   `gorm:"default:false" json:"refund_pending"`

	// AccessToken lets a guest look up their own booking without an account
	AccessToken string `gorm:"size:64" json:"-"`

	BlockReason string `gorm:"size:255" json:"block_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Relationships
	AppliedRules []AppliedRule `json:"applied_rules,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// AppliedRule is the per-booking summary of a pricing rule that fired on at
// least one night of the stay.
type AppliedRule struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`

	RuleName      string  `gorm:"size:255;not null" json:"rule_name"`
	ModifierType  string  `gorm:"type:varchar(10);not null" json:"modifier_type"`
	ModifierValue float64 `gorm:"not null" json:"modifier_value"`
	Priority      int     `gorm:"default:0" json:"priority"`
	Nights        int     `gorm:"default:0" json:"nights"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for AppliedRule
func (AppliedRule) TableName() string {
	return "booking_applied_rules"
}

// Target returns the inventory target this booking occupies
func (b *Booking) Target() inventory.Target {
	return inventory.Target{
		Type:    inventory.TargetType(b.TargetType),
		FloorID: b.FloorID,
		RoomID:  b.RoomID,
	}
}

// Range returns the stay window of this booking
func (b *Booking) Range() DateRange {
	return DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

// RemainingAmount is what is still owed after the deposit
func (b *Booking) RemainingAmount() float64 {
	remaining := b.TotalPrice - b.PaidAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Cancel marks the booking cancelled
func (b *Booking) Cancel() {
	b.Status = StatusCancelled
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// MarkPaid records a confirmed payment
func (b *Booking) MarkPaid(paymentID string, paidAmount float64) {
	b.Status = StatusPaid
	b.GatewayPaymentID = paymentID
	b.PaidAmount = paidAmount
	b.UpdatedAt = time.Now()
}

// MarkRefunded records a processed refund
func (b *Booking) MarkRefunded(refundID string, amount float64) {
	b.Status = StatusRefunded
	b.GatewayRefundID = refundID
	b.RefundAmount = amount
	b.RefundPending = false
	b.UpdatedAt = time.Now()
}
