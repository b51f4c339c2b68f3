package bookings

import "errors"

var (
	// Caller mistakes, never retried
	ErrInvalidDateRange = errors.New("bookings: check-in must be before check-out")
	ErrPastDate         = errors.New("bookings: check-in must be a future date")
	ErrInvalidGuestInfo = errors.New("bookings: invalid guest info")

	// Expected business outcomes
	ErrNotAvailable = errors.New("bookings: target not available for the selected dates")

	// State machine violations
	ErrAlreadyTerminal         = errors.New("bookings: booking already cancelled or refunded")
	ErrInvalidStatusTransition = errors.New("bookings: invalid status transition")

	ErrNotFound = errors.New("bookings: booking not found")

	// ErrGateway wraps payment gateway failures and timeouts. The booking
	// involved keeps its state so the caller can retry.
	ErrGateway = errors.New("bookings: payment gateway error")
)
