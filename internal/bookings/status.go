package bookings

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusBlocked   Status = "blocked"
	StatusRefunded  Status = "refunded"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusBlocked, StatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal checks if no further guest-facing transitions remain
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// CanBeCancelled checks if a booking with this status can be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusPending || s == StatusPaid || s == StatusBlocked
}
