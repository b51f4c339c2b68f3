package bookings

import "context"

// GatewayCustomer identifies the paying guest to the payment provider
type GatewayCustomer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// GatewayOrder is a payment order created with the provider
type GatewayOrder struct {
	OrderID        string
	Amount         float64
	Currency       string
	PaymentSession string
}

// GatewayRefund is the provider's acknowledgement of a refund request
type GatewayRefund struct {
	RefundID string
	OrderID  string
	Amount   float64
	Status   string
}

// PaymentGateway is the narrow contract the booking flow needs from the
// payment provider. The concrete client lives in the payments package; the
// interface on this side keeps the dependency one-directional.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, orderID string, amount float64, customer GatewayCustomer) (*GatewayOrder, error)
	Refund(ctx context.Context, orderID string, amount float64, note string) (*GatewayRefund, error)
}

// NotificationSender publishes booking lifecycle events for email/ops
// consumers. Delivery is best effort; a failed publish never fails the
// booking operation that triggered it.
type NotificationSender interface {
	BookingCreated(ctx context.Context, booking *Booking)
	BookingConfirmed(ctx context.Context, booking *Booking)
	BookingCancelled(ctx context.Context, booking *Booking, refunded bool)
}
