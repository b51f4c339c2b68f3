package bookings

import (
	"context"
	"time"

	"villabook/internal/inventory"
	"villabook/internal/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) GetByGatewayOrderID(ctx context.Context, orderID string) (*Booking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, booking *Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockRepository) FindOverlapping(ctx context.Context, dateRange DateRange, statuses []Status, excludeID uuid.UUID) ([]Booking, error) {
	args := m.Called(ctx, dateRange, statuses, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepository) SaveIfAvailable(ctx context.Context, booking *Booking, statuses []Status, filter ConflictFilter) error {
	args := m.Called(ctx, booking, statuses, filter)
	return args.Error(0)
}

func (m *MockRepository) ConfirmPayment(ctx context.Context, orderID, paymentID string, paidAmount float64) (*Booking, bool, error) {
	args := m.Called(ctx, orderID, paymentID, paidAmount)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*Booking), args.Bool(1), args.Error(2)
}

func (m *MockRepository) List(ctx context.Context, query ListQuery) ([]Booking, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) PurgeCheckedOutBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, orderID string, amount float64, customer GatewayCustomer) (*GatewayOrder, error) {
	args := m.Called(ctx, orderID, amount, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GatewayOrder), args.Error(1)
}

func (m *MockGateway) Refund(ctx context.Context, orderID string, amount float64, note string) (*GatewayRefund, error) {
	args := m.Called(ctx, orderID, amount, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GatewayRefund), args.Error(1)
}

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) PriceStay(ctx context.Context, target inventory.Target, checkIn, checkOut time.Time, basePriceOverride *float64) (*pricing.Quote, error) {
	args := m.Called(ctx, target, checkIn, checkOut, basePriceOverride)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

func (m *MockPricingService) CreateRule(ctx context.Context, rule *pricing.PricingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockPricingService) GetRule(ctx context.Context, id uuid.UUID) (*pricing.PricingRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PricingRule), args.Error(1)
}

func (m *MockPricingService) UpdateRule(ctx context.Context, rule *pricing.PricingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockPricingService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPricingService) ListRules(ctx context.Context, activeOnly bool) ([]pricing.PricingRule, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.PricingRule), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingCreated(ctx context.Context, booking *Booking) {
	m.Called(ctx, booking)
}

func (m *MockNotifier) BookingConfirmed(ctx context.Context, booking *Booking) {
	m.Called(ctx, booking)
}

func (m *MockNotifier) BookingCancelled(ctx context.Context, booking *Booking, refunded bool) {
	m.Called(ctx, booking, refunded)
}
