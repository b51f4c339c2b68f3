package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"villabook/internal/inventory"
	"villabook/internal/pricing"
	"villabook/internal/shared/config"
	"villabook/pkg/logger"

	"github.com/google/uuid"
)

// CreateParams is everything needed to open a booking
type CreateParams struct {
	Target     inventory.Target
	Range      DateRange
	GuestName  string
	GuestEmail string
	GuestPhone string
	Adults     int
	Children   int
}

// UpdatePatch is a partial admin edit of an existing booking
type UpdatePatch struct {
	Target *inventory.Target
	Range  *DateRange
	Status *Status
}

type Service interface {
	// Guest flow
	CreateBooking(ctx context.Context, params CreateParams) (*Booking, *GatewayOrder, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Payment callbacks, driven by gateway webhooks
	OnPaymentConfirmed(ctx context.Context, orderID, paymentID string, paidAmount float64) (*Booking, error)
	OnPaymentFailed(ctx context.Context, orderID string) error
	OnRefundProcessed(ctx context.Context, orderID, refundID string, amount float64) error

	// Availability, read side
	CheckAvailability(ctx context.Context, target inventory.Target, dateRange DateRange) (bool, error)
	BookedRanges(ctx context.Context, target inventory.Target) ([]DateRange, error)

	// Admin flow
	BlockDates(ctx context.Context, target inventory.Target, dateRange DateRange, reason string) (*Booking, error)
	AdminUpdate(ctx context.Context, id uuid.UUID, patch UpdatePatch) (*Booking, error)
	RetryRefund(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListBookings(ctx context.Context, query ListQuery) ([]Booking, int64, error)
	DeletePermanently(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	resolver Resolver
	inv      inventory.Service
	pricing  pricing.Service
	gateway  PaymentGateway
	notifier NotificationSender
	cfg      config.BookingConfig
	logger   *logger.Logger

	// now is swapped out in tests to pin the refund boundary
	now func() time.Time
}

func NewService(
	repo Repository,
	resolver Resolver,
	inv inventory.Service,
	pricingService pricing.Service,
	gateway PaymentGateway,
	notifier NotificationSender,
	cfg config.BookingConfig,
	log *logger.Logger,
) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		inv:      inv,
		pricing:  pricingService,
		gateway:  gateway,
		notifier: notifier,
		cfg:      cfg,
		logger:   log,
		now:      time.Now,
	}
}

func (s *service) CreateBooking(ctx context.Context, params CreateParams) (*Booking, *GatewayOrder, error) {
	if err := s.validateGuest(params); err != nil {
		return nil, nil, err
	}
	if err := s.validateStayWindow(params.Range); err != nil {
		return nil, nil, err
	}

	available, _, err := s.resolver.CheckAvailability(ctx, params.Target, params.Range, uuid.Nil)
	if err != nil {
		return nil, nil, err
	}
	if !available {
		return nil, nil, ErrNotAvailable
	}

	quote, err := s.pricing.PriceStay(ctx, params.Target, params.Range.CheckIn, params.Range.CheckOut, nil)
	if err != nil {
		return nil, nil, err
	}

	deposit := math.Round(quote.TotalPrice * s.cfg.DepositPercent / 100)
	orderID := newOrderID()

	booking := &Booking{
		ID:                 uuid.New(),
		TargetType:         params.Target.Type.String(),
		FloorID:            params.Target.FloorID,
		RoomID:             params.Target.RoomID,
		CheckIn:            params.Range.CheckIn,
		CheckOut:           params.Range.CheckOut,
		Status:             StatusPending,
		GuestName:          params.GuestName,
		GuestEmail:         params.GuestEmail,
		GuestPhone:         params.GuestPhone,
		Adults:             params.Adults,
		Children:           params.Children,
		BasePrice:          quote.BasePrice,
		FinalPricePerNight: quote.FinalPricePerNight,
		TotalPrice:         quote.TotalPrice,
		DepositAmount:      deposit,
		GatewayOrderID:     orderID,
		AccessToken:        newAccessToken(),
	}
	for _, rule := range quote.AppliedRules {
		booking.AppliedRules = append(booking.AppliedRules, AppliedRule{
			RuleName:      rule.Name,
			ModifierType:  rule.ModifierType,
			ModifierValue: rule.ModifierValue,
			Priority:      rule.Priority,
			Nights:        rule.Nights,
		})
	}

	order, err := s.gateway.CreateOrder(ctx, orderID, deposit, GatewayCustomer{
		ID:    booking.ID.String(),
		Name:  params.GuestName,
		Email: params.GuestEmail,
		Phone: params.GuestPhone,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	// The insert re-checks conflicts under the villa lock. Under the
	// default policy pendings never block, but the blocking statuses are
	// configurable and two racing creates must not both land.
	if err := s.repo.SaveIfAvailable(ctx, booking, s.resolver.BlockingStatuses(), s.resolver.ConflictFilterFor(params.Target)); err != nil {
		if errors.Is(err, ErrNotAvailable) {
			return nil, nil, ErrNotAvailable
		}
		return nil, nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.logger.LogBookingCreated(ctx, booking.ID.String(), booking.TargetType, params.Target.ID())
	s.notify(func(n NotificationSender) { n.BookingCreated(ctx, booking) })

	return booking, order, nil
}

func (s *service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// OnPaymentConfirmed flips a pending booking to paid. The status change is
// what registers the stay as occupancy-blocking; repeated webhook delivery
// for the same order finds a non-pending booking and changes nothing.
func (s *service) OnPaymentConfirmed(ctx context.Context, orderID, paymentID string, paidAmount float64) (*Booking, error) {
	booking, applied, err := s.repo.ConfirmPayment(ctx, orderID, paymentID, paidAmount)
	if err != nil {
		return nil, err
	}
	if !applied {
		s.logger.LogPaymentEvent(ctx, "payment_confirmed_duplicate", orderID)
		return booking, nil
	}

	// Pending bookings do not block each other, so two overlapping pendings
	// can both reach payment. The payment already happened; honor it and
	// flag the overlap for the admin to resolve.
	available, conflicts, checkErr := s.resolver.CheckAvailability(ctx, booking.Target(), booking.Range(), booking.ID)
	if checkErr == nil && !available {
		s.logger.Warn("Confirmed booking overlaps existing occupancy",
			"booking_id", booking.ID,
			"conflicts", len(conflicts),
		)
	}

	s.logger.LogPaymentEvent(ctx, "payment_confirmed", orderID)
	s.notify(func(n NotificationSender) { n.BookingConfirmed(ctx, booking) })
	return booking, nil
}

// OnPaymentFailed leaves the booking pending so the guest can retry payment
// against a fresh order.
func (s *service) OnPaymentFailed(ctx context.Context, orderID string) error {
	booking, err := s.repo.GetByGatewayOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	s.logger.LogPaymentEvent(ctx, "payment_failed", orderID)
	if booking.Status != StatusPending {
		s.logger.Warn("Payment failure for non-pending booking ignored",
			"booking_id", booking.ID, "status", booking.Status)
	}
	return nil
}

// OnRefundProcessed records an asynchronous refund confirmation from the
// gateway for a booking whose refund was left pending.
func (s *service) OnRefundProcessed(ctx context.Context, orderID, refundID string, amount float64) error {
	booking, err := s.repo.GetByGatewayOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if booking.Status == StatusRefunded {
		return nil
	}
	booking.MarkRefunded(refundID, amount)
	if err := s.repo.Save(ctx, booking); err != nil {
		return err
	}
	s.logger.LogPaymentEvent(ctx, "refund_processed", orderID)
	return nil
}

func (s *service) CheckAvailability(ctx context.Context, target inventory.Target, dateRange DateRange) (bool, error) {
	available, _, err := s.resolver.CheckAvailability(ctx, target, dateRange, uuid.Nil)
	return available, err
}

func (s *service) BookedRanges(ctx context.Context, target inventory.Target) ([]DateRange, error) {
	return s.resolver.BookedRanges(ctx, target, s.now())
}

// Cancel releases the booking's dates and, for paid bookings far enough from
// check-in, refunds the full paid amount. The cancellation itself commits
// before the refund is attempted: the dates must free up even when the
// gateway is down, and a failed refund is retried by the admin.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, ErrAlreadyTerminal
	}
	if !booking.Status.CanBeCancelled() {
		return nil, ErrInvalidStatusTransition
	}

	wasPaid := booking.Status == StatusPaid
	refundDue := wasPaid && booking.PaidAmount > 0 && s.daysUntil(booking.CheckIn) >= s.cfg.RefundCutoffDays

	booking.Cancel()
	if refundDue {
		booking.RefundPending = true
	}
	if err := s.repo.Save(ctx, booking); err != nil {
		return nil, err
	}
	s.logger.LogBookingCancelled(ctx, booking.ID.String(), refundDue)

	if refundDue {
		if err := s.issueRefund(ctx, booking); err != nil {
			// Dates are already released; the refund stays flagged pending.
			s.notify(func(n NotificationSender) { n.BookingCancelled(ctx, booking, false) })
			return booking, err
		}
	}

	s.notify(func(n NotificationSender) { n.BookingCancelled(ctx, booking, booking.Status == StatusRefunded) })
	return booking, nil
}

// RetryRefund re-attempts a refund that failed during cancellation
func (s *service) RetryRefund(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.RefundPending {
		return nil, ErrInvalidStatusTransition
	}
	if err := s.issueRefund(ctx, booking); err != nil {
		return booking, err
	}
	return booking, nil
}

func (s *service) BlockDates(ctx context.Context, target inventory.Target, dateRange DateRange, reason string) (*Booking, error) {
	if _, err := s.inv.ResolveTarget(target); err != nil {
		return nil, err
	}
	if err := s.validateStayWindow(dateRange); err != nil {
		return nil, err
	}

	block := &Booking{
		ID:          uuid.New(),
		TargetType:  target.Type.String(),
		FloorID:     target.FloorID,
		RoomID:      target.RoomID,
		CheckIn:     dateRange.CheckIn,
		CheckOut:    dateRange.CheckOut,
		Status:      StatusBlocked,
		BlockReason: reason,
	}

	err := s.repo.SaveIfAvailable(ctx, block, s.resolver.BlockingStatuses(), s.resolver.ConflictFilterFor(target))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Dates blocked", "booking_id", block.ID, "target_type", block.TargetType, "reason", reason)
	return block, nil
}

func (s *service) AdminUpdate(ctx context.Context, id uuid.UUID, patch UpdatePatch) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, ErrInvalidStatusTransition
		}
		// Unconfirming a payment is not an edit; it must go through cancel
		// so the refund policy applies.
		if booking.Status == StatusPaid && *patch.Status == StatusPending {
			return nil, ErrInvalidStatusTransition
		}
		booking.Status = *patch.Status
	}
	if patch.Target != nil {
		if _, err := s.inv.ResolveTarget(*patch.Target); err != nil {
			return nil, err
		}
		booking.TargetType = patch.Target.Type.String()
		booking.FloorID = patch.Target.FloorID
		booking.RoomID = patch.Target.RoomID
	}
	if patch.Range != nil {
		booking.CheckIn = patch.Range.CheckIn
		booking.CheckOut = patch.Range.CheckOut
	}

	// Re-check conflicts against the edited shape, excluding the booking
	// itself, atomically with the write.
	err = s.repo.SaveIfAvailable(ctx, booking, s.resolver.BlockingStatuses(), s.resolver.ConflictFilterFor(booking.Target()))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking updated by admin", "booking_id", booking.ID, "status", booking.Status)
	return booking, nil
}

func (s *service) ListBookings(ctx context.Context, query ListQuery) ([]Booking, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *service) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePermanently(ctx, id)
}

func (s *service) issueRefund(ctx context.Context, booking *Booking) error {
	refund, err := s.gateway.Refund(ctx, booking.GatewayOrderID, booking.PaidAmount, "booking cancelled")
	if err != nil {
		s.logger.ErrorWithContext(ctx, "Refund request failed", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
			"order_id":   booking.GatewayOrderID,
		})
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	booking.MarkRefunded(refund.RefundID, booking.PaidAmount)
	if err := s.repo.Save(ctx, booking); err != nil {
		return err
	}
	s.logger.LogPaymentEvent(ctx, "refund_issued", booking.GatewayOrderID)
	return nil
}

func (s *service) validateGuest(params CreateParams) error {
	if strings.TrimSpace(params.GuestName) == "" ||
		strings.TrimSpace(params.GuestEmail) == "" ||
		strings.TrimSpace(params.GuestPhone) == "" {
		return ErrInvalidGuestInfo
	}
	if params.Adults < 1 || params.Children < 0 {
		return ErrInvalidGuestInfo
	}
	if limit, ok := s.inv.GuestLimit(params.Target); ok {
		if params.Adults > limit.Adults || params.Adults+params.Children > limit.Total {
			return fmt.Errorf("%w: party exceeds capacity for target", ErrInvalidGuestInfo)
		}
	}
	return nil
}

// validateStayWindow requires check-in strictly after today. A same-day
// arrival cannot be sold: the payment window alone outlasts the day.
func (s *service) validateStayWindow(dateRange DateRange) error {
	if !dateRange.CheckIn.After(Midnight(s.now())) {
		return ErrPastDate
	}
	return nil
}

// daysUntil counts calendar days between today and the given date, both
// truncated to midnight. Counting by date keeps the refund boundary exact
// across clock changes, where hour arithmetic comes up short.
func (s *service) daysUntil(date time.Time) int {
	target := Midnight(date)
	days := 0
	for d := Midnight(s.now()); d.Before(target); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func (s *service) notify(fn func(NotificationSender)) {
	if s.notifier != nil {
		fn(s.notifier)
	}
}

func newOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("ORDER_%d_%s", time.Now().UnixMilli(), id[:6])
}

func newAccessToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
