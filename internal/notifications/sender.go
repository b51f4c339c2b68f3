package notifications

import (
	"context"
	"time"

	"villabook/internal/bookings"
	"villabook/pkg/logger"

	"github.com/google/uuid"
)

// Sender bridges booking lifecycle hooks to the Kafka producer. Publishing
// is best effort: a broker outage is logged and the booking operation
// proceeds.
type Sender struct {
	producer Producer
	logger   *logger.Logger
}

var _ bookings.NotificationSender = (*Sender)(nil)

func NewSender(producer Producer, log *logger.Logger) *Sender {
	return &Sender{producer: producer, logger: log}
}

func (s *Sender) BookingCreated(ctx context.Context, booking *bookings.Booking) {
	s.publish(ctx, EventBookingCreated, booking, false)
}

func (s *Sender) BookingConfirmed(ctx context.Context, booking *bookings.Booking) {
	s.publish(ctx, EventBookingConfirmed, booking, false)
}

func (s *Sender) BookingCancelled(ctx context.Context, booking *bookings.Booking, refunded bool) {
	s.publish(ctx, EventBookingCancelled, booking, refunded)
}

func (s *Sender) publish(ctx context.Context, eventType EventType, booking *bookings.Booking, refunded bool) {
	event := &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		BookingID:  booking.ID.String(),
		TargetType: booking.TargetType,
		TargetID:   booking.Target().ID(),
		CheckIn:    booking.CheckIn.Format(bookings.DateLayout),
		CheckOut:   booking.CheckOut.Format(bookings.DateLayout),
		GuestName:  booking.GuestName,
		GuestEmail: booking.GuestEmail,
		TotalPrice: booking.TotalPrice,
		Refunded:   refunded,
		CreatedAt:  time.Now(),
	}

	if err := s.producer.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish booking event",
			"type", eventType, "booking_id", event.BookingID, "error", err)
	}
}

// NopSender satisfies the sender contract when Kafka is disabled
type NopSender struct{}

var _ bookings.NotificationSender = NopSender{}

func (NopSender) BookingCreated(context.Context, *bookings.Booking)         {}
func (NopSender) BookingConfirmed(context.Context, *bookings.Booking)       {}
func (NopSender) BookingCancelled(context.Context, *bookings.Booking, bool) {}
