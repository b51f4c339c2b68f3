package pricing

import (
	"context"
	"testing"
	"time"

	"villabook/internal/inventory"
	"villabook/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) Create(ctx context.Context, rule *PricingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*PricingRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PricingRule), args.Error(1)
}

func (m *MockRuleRepository) Update(ctx context.Context, rule *PricingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRuleRepository) List(ctx context.Context, activeOnly bool) ([]PricingRule, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]PricingRule), args.Error(1)
}

func (m *MockRuleRepository) FindActiveInWindow(ctx context.Context, from, to time.Time) ([]PricingRule, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PricingRule), args.Error(1)
}

func (m *MockRuleRepository) PurgeEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func newPricingService(repo Repository) Service {
	return NewService(repo, inventory.NewDefaultService(), nil, logger.New())
}

func allDatesRule(name string, modifierType string, value float64, priority int) PricingRule {
	return PricingRule{
		ID:            uuid.New(),
		Name:          name,
		AppliesTo:     AppliesAll,
		StartDate:     date(2026, 1, 1),
		EndDate:       date(2026, 12, 31),
		ModifierType:  modifierType,
		ModifierValue: value,
		Priority:      priority,
		IsActive:      true,
	}
}

func TestPriceStayAdditiveStacking(t *testing.T) {
	repo := new(MockRuleRepository)
	repo.On("FindActiveInWindow", mock.Anything, mock.Anything, mock.Anything).
		Return([]PricingRule{
			allDatesRule("Season Uplift", ModifierFixed, 200, 5),
			allDatesRule("Event Premium", ModifierPercentage, 10, 1),
		}, nil)

	svc := newPricingService(repo)
	base := 1000.0
	quote, err := svc.PriceStay(context.Background(),
		inventory.Target{Type: inventory.TargetVilla},
		date(2026, 9, 10), date(2026, 9, 12), &base)
	require.NoError(t, err)

	// Percentage applies to the original base, never to the modified price:
	// 1000 + 200 + 100, not (1000+200)*1.10.
	require.Len(t, quote.PerNight, 2)
	assert.Equal(t, 1300.0, quote.PerNight[0].Price)
	assert.Equal(t, 1300.0, quote.PerNight[1].Price)
	assert.Equal(t, 2600.0, quote.TotalPrice)
	assert.Equal(t, 1300.0, quote.FinalPricePerNight)

	// Higher priority reported first; arithmetic unaffected
	require.Len(t, quote.AppliedRules, 2)
	assert.Equal(t, "Season Uplift", quote.AppliedRules[0].Name)
	assert.Equal(t, 2, quote.AppliedRules[0].Nights)
}

func TestPriceStayDayOfWeekFilter(t *testing.T) {
	weekend := allDatesRule("Weekend Surge", ModifierPercentage, 20, 10)
	weekend.DaysOfWeek = []int{5, 6} // Friday, Saturday

	repo := new(MockRuleRepository)
	repo.On("FindActiveInWindow", mock.Anything, mock.Anything, mock.Anything).
		Return([]PricingRule{weekend}, nil)

	svc := newPricingService(repo)
	// 2026-09-10 is a Thursday; the stay covers Thu, Fri, Sat nights
	quote, err := svc.PriceStay(context.Background(),
		inventory.Target{Type: inventory.TargetRoom, RoomID: "R1"},
		date(2026, 9, 10), date(2026, 9, 13), nil)
	require.NoError(t, err)

	require.Len(t, quote.PerNight, 3)
	assert.Equal(t, 5000.0, quote.PerNight[0].Price) // Thursday, base only
	assert.Equal(t, 6000.0, quote.PerNight[1].Price) // Friday
	assert.Equal(t, 6000.0, quote.PerNight[2].Price) // Saturday
	assert.Equal(t, 17000.0, quote.TotalPrice)

	require.Len(t, quote.AppliedRules, 1)
	assert.Equal(t, 2, quote.AppliedRules[0].Nights)
}

func TestPriceStayTargetScoping(t *testing.T) {
	floorRule := allDatesRule("Ground Floor Discount", ModifierFixed, -500, 0)
	floorRule.AppliesTo = "floor"
	floorRule.TargetID = "F1"

	repo := new(MockRuleRepository)
	repo.On("FindActiveInWindow", mock.Anything, mock.Anything, mock.Anything).
		Return([]PricingRule{floorRule}, nil)

	svc := newPricingService(repo)

	// Applies to F1
	quote, err := svc.PriceStay(context.Background(),
		inventory.Target{Type: inventory.TargetFloor, FloorID: "F1"},
		date(2026, 9, 10), date(2026, 9, 11), nil)
	require.NoError(t, err)
	assert.Equal(t, 8500.0, quote.TotalPrice)

	// Not to F2
	quote, err = svc.PriceStay(context.Background(),
		inventory.Target{Type: inventory.TargetFloor, FloorID: "F2"},
		date(2026, 9, 10), date(2026, 9, 11), nil)
	require.NoError(t, err)
	assert.Equal(t, 8000.0, quote.TotalPrice)
	assert.Empty(t, quote.AppliedRules)

	// Not to a room on F1: the rule names the floor, not its rooms
	quote, err = svc.PriceStay(context.Background(),
		inventory.Target{Type: inventory.TargetRoom, RoomID: "R1"},
		date(2026, 9, 10), date(2026, 9, 11), nil)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, quote.TotalPrice)
}

func TestPriceStayWindowEdges(t *testing.T) {
	rule := allDatesRule("March Special", ModifierFixed, 100, 0)
	rule.StartDate = date(2026, 3, 10)
	rule.EndDate = date(2026, 3, 12)

	repo := new(MockRuleRepository)
	repo.On("FindActiveInWindow", mock.Anything, mock.Anything, mock.Anything).
		Return([]PricingRule{rule}, nil)

	svc := newPricingService(repo)
	base := 1000.0
	quote, err := svc.PriceStay(context.Background(),
		inventory.Target{Type: inventory.TargetVilla},
		date(2026, 3, 9), date(2026, 3, 14), &base)
	require.NoError(t, err)

	// [StartDate, EndDate] is inclusive on both ends
	prices := make([]float64, 0, 5)
	for _, n := range quote.PerNight {
		prices = append(prices, n.Price)
	}
	assert.Equal(t, []float64{1000, 1100, 1100, 1100, 1000}, prices)
}

func TestPriceStayIgnoresInactiveRules(t *testing.T) {
	rule := allDatesRule("Disabled", ModifierFixed, 999, 0)
	rule.IsActive = false

	repo := new(MockRuleRepository)
	repo.On("FindActiveInWindow", mock.Anything, mock.Anything, mock.Anything).
		Return([]PricingRule{rule}, nil)

	svc := newPricingService(repo)
	quote, err := svc.PriceStay(context.Background(),
		inventory.Target{Type: inventory.TargetVilla},
		date(2026, 9, 10), date(2026, 9, 11), nil)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, quote.TotalPrice)
	assert.Empty(t, quote.AppliedRules)
}

func TestPriceStayRoundsPerNight(t *testing.T) {
	rule := allDatesRule("Odd Percent", ModifierPercentage, 33.333, 0)

	repo := new(MockRuleRepository)
	repo.On("FindActiveInWindow", mock.Anything, mock.Anything, mock.Anything).
		Return([]PricingRule{rule}, nil)

	svc := newPricingService(repo)
	base := 1000.0
	quote, err := svc.PriceStay(context.Background(),
		inventory.Target{Type: inventory.TargetVilla},
		date(2026, 9, 10), date(2026, 9, 11), &base)
	require.NoError(t, err)

	// 1000 + 333.33 rounds to the nearest whole unit per night
	assert.Equal(t, 1333.0, quote.PerNight[0].Price)
}

func TestPriceStayUnknownTarget(t *testing.T) {
	repo := new(MockRuleRepository)
	svc := newPricingService(repo)

	_, err := svc.PriceStay(context.Background(),
		inventory.Target{Type: inventory.TargetRoom, RoomID: "R9"},
		date(2026, 9, 10), date(2026, 9, 11), nil)
	assert.ErrorIs(t, err, ErrNoSuchTarget)
}

func TestRuleValidation(t *testing.T) {
	repo := new(MockRuleRepository)
	svc := newPricingService(repo)
	ctx := context.Background()

	bad := allDatesRule("", ModifierFixed, 100, 0)
	assert.ErrorIs(t, svc.CreateRule(ctx, &bad), ErrValidation)

	bad = allDatesRule("Bad Type", "multiplier", 100, 0)
	assert.ErrorIs(t, svc.CreateRule(ctx, &bad), ErrValidation)

	bad = allDatesRule("Backwards", ModifierFixed, 100, 0)
	bad.StartDate = date(2026, 5, 1)
	bad.EndDate = date(2026, 4, 1)
	assert.ErrorIs(t, svc.CreateRule(ctx, &bad), ErrValidation)

	bad = allDatesRule("Bad Day", ModifierFixed, 100, 0)
	bad.DaysOfWeek = []int{7}
	assert.ErrorIs(t, svc.CreateRule(ctx, &bad), ErrValidation)

	bad = allDatesRule("Scoped All", ModifierFixed, 100, 0)
	bad.TargetID = "R1"
	assert.ErrorIs(t, svc.CreateRule(ctx, &bad), ErrValidation)

	repo.AssertNotCalled(t, "Create")
}
