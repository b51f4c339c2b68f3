package pricing

import (
	"time"

	"villabook/internal/inventory"

	"github.com/google/uuid"
)

// Modifier types
const (
	ModifierPercentage = "percentage"
	ModifierFixed      = "fixed"
)

// AppliesAll makes a rule match every booking target regardless of level
const AppliesAll = "all"

// PricingRule is a date-bounded nightly price modifier. The active window
// [StartDate, EndDate] is inclusive on both ends; DaysOfWeek narrows the
// window to specific weekdays (empty = every day, 0 = Sunday).
type PricingRule struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"size:1024" json:"description,omitempty"`

	// AppliesTo is "all" or a target type; TargetID narrows a floor/room
	// rule to one specific floor or room when set.
	AppliesTo string `gorm:"type:varchar(10);not null;default:'all';check:applies_to IN ('all', 'villa', 'floor', 'room')" json:"applies_to"`
	TargetID  string `gorm:"type:varchar(10)" json:"target_id,omitempty"`

	StartDate time.Time `gorm:"not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`

	DaysOfWeek []int `gorm:"serializer:json;type:jsonb" json:"days_of_week,omitempty"`

	ModifierType  string  `gorm:"type:varchar(10);not null;check:modifier_type IN ('percentage', 'fixed')" json:"modifier_type"`
	ModifierValue float64 `gorm:"not null" json:"modifier_value"`

	// Priority orders rules in breakdowns and listings. It never changes
	// the arithmetic; matching modifiers are always summed.
	Priority int `gorm:"default:0;index" json:"priority"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for PricingRule
func (PricingRule) TableName() string {
	return "pricing_rules"
}

// AppliesOn reports whether the rule is live on the given night
func (r *PricingRule) AppliesOn(night time.Time) bool {
	if !r.IsActive {
		return false
	}
	if night.Before(midnight(r.StartDate)) || night.After(midnight(r.EndDate)) {
		return false
	}
	if len(r.DaysOfWeek) == 0 {
		return true
	}
	weekday := int(night.Weekday())
	for _, d := range r.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

// Matches reports whether the rule is scoped to the given target
func (r *PricingRule) Matches(target inventory.Target) bool {
	if r.AppliesTo == AppliesAll {
		return true
	}
	if r.AppliesTo != target.Type.String() {
		return false
	}
	if r.TargetID == "" {
		return true
	}
	return r.TargetID == target.ID()
}

// ModifierAmount is the rule's additive contribution for one night.
// Percentage rules are computed against the original base price, so
// stacked rules never compound on each other.
func (r *PricingRule) ModifierAmount(basePrice float64) float64 {
	if r.ModifierType == ModifierPercentage {
		return basePrice * r.ModifierValue / 100
	}
	return r.ModifierValue
}

// NightPrice is one night of a priced stay
type NightPrice struct {
	Date         string   `json:"date"`
	Price        float64  `json:"price"`
	AppliedRules []string `json:"applied_rules,omitempty"`
}

// RuleSummary describes a rule that fired on at least one night of a stay
type RuleSummary struct {
	RuleID        uuid.UUID `json:"rule_id"`
	Name          string    `json:"name"`
	ModifierType  string    `json:"modifier_type"`
	ModifierValue float64   `json:"modifier_value"`
	Priority      int       `json:"priority"`
	Nights        int       `json:"nights"`
}

// Quote is the full pricing result for a stay
type Quote struct {
	TargetType         string        `json:"target_type"`
	TargetID           string        `json:"target_id,omitempty"`
	CheckIn            string        `json:"check_in"`
	CheckOut           string        `json:"check_out"`
	Nights             int           `json:"nights"`
	BasePrice          float64       `json:"base_price"`
	PerNight           []NightPrice  `json:"per_night"`
	TotalPrice         float64       `json:"total_price"`
	FinalPricePerNight float64       `json:"final_price_per_night"`
	AppliedRules       []RuleSummary `json:"applied_rules"`
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
