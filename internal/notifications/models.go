package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a booking lifecycle event
type EventType string

const (
	EventBookingCreated   EventType = "BOOKING_CREATED"
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
)

// BookingEvent is the message published for downstream email/ops consumers
type BookingEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	BookingID  string    `json:"booking_id"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id,omitempty"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	GuestName  string    `json:"guest_name,omitempty"`
	GuestEmail string    `json:"guest_email,omitempty"`
	TotalPrice float64   `json:"total_price"`
	Refunded   bool      `json:"refunded,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToJSON serializes the event for the wire
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON deserializes an event from the wire
func FromJSON(data []byte) (*BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
