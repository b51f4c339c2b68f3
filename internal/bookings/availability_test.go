package bookings

import (
	"context"
	"testing"

	"villabook/internal/inventory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultBlocking = []Status{StatusPaid, StatusBlocked}

func paidBooking(t *testing.T, targetType, floorID, roomID, checkIn, checkOut string) Booking {
	t.Helper()
	r := mustRange(t, checkIn, checkOut)
	return Booking{
		ID:         uuid.New(),
		TargetType: targetType,
		FloorID:    floorID,
		RoomID:     roomID,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Status:     StatusPaid,
	}
}

func TestCheckAvailabilityHierarchyConflicts(t *testing.T) {
	inv := inventory.NewDefaultService()
	stay := mustRange(t, "2026-09-10", "2026-09-13")

	tests := []struct {
		name      string
		target    inventory.Target
		existing  Booking
		available bool
	}{
		{
			name:      "villa blocked by room booking",
			target:    inventory.Target{Type: inventory.TargetVilla},
			existing:  paidBooking(t, "room", "", "R3", "2026-09-11", "2026-09-14"),
			available: false,
		},
		{
			name:      "room blocked by villa booking",
			target:    inventory.Target{Type: inventory.TargetRoom, RoomID: "R1"},
			existing:  paidBooking(t, "villa", "", "", "2026-09-11", "2026-09-14"),
			available: false,
		},
		{
			name:      "floor blocked by its own room",
			target:    inventory.Target{Type: inventory.TargetFloor, FloorID: "F1"},
			existing:  paidBooking(t, "room", "", "R2", "2026-09-11", "2026-09-14"),
			available: false,
		},
		{
			name:      "floor free despite other floor's room",
			target:    inventory.Target{Type: inventory.TargetFloor, FloorID: "F1"},
			existing:  paidBooking(t, "room", "", "R3", "2026-09-11", "2026-09-14"),
			available: true,
		},
		{
			name:      "sibling rooms never conflict",
			target:    inventory.Target{Type: inventory.TargetRoom, RoomID: "R1"},
			existing:  paidBooking(t, "room", "", "R2", "2026-09-11", "2026-09-14"),
			available: true,
		},
		{
			name:      "room free against floor of other rooms",
			target:    inventory.Target{Type: inventory.TargetRoom, RoomID: "R4"},
			existing:  paidBooking(t, "floor", "F1", "", "2026-09-11", "2026-09-14"),
			available: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("FindOverlapping", mock.Anything, stay, defaultBlocking, uuid.Nil).
				Return([]Booking{tt.existing}, nil)

			resolver := NewResolver(repo, inv, defaultBlocking)
			available, conflicts, err := resolver.CheckAvailability(context.Background(), tt.target, stay, uuid.Nil)
			require.NoError(t, err)
			assert.Equal(t, tt.available, available)
			if !tt.available {
				assert.Len(t, conflicts, 1)
			}
		})
	}
}

func TestCheckAvailabilityUnknownTarget(t *testing.T) {
	repo := new(MockRepository)
	resolver := NewResolver(repo, inventory.NewDefaultService(), defaultBlocking)

	_, _, err := resolver.CheckAvailability(context.Background(),
		inventory.Target{Type: inventory.TargetRoom, RoomID: "R9"},
		mustRange(t, "2026-09-10", "2026-09-13"), uuid.Nil)

	assert.ErrorIs(t, err, inventory.ErrInvalidTarget)
	repo.AssertNotCalled(t, "FindOverlapping")
}

func TestCheckAvailabilityExcludesSelf(t *testing.T) {
	inv := inventory.NewDefaultService()
	stay := mustRange(t, "2026-09-10", "2026-09-13")
	selfID := uuid.New()

	repo := new(MockRepository)
	// The repository query already excludes the booking itself
	repo.On("FindOverlapping", mock.Anything, stay, defaultBlocking, selfID).
		Return([]Booking{}, nil)

	resolver := NewResolver(repo, inv, defaultBlocking)
	available, _, err := resolver.CheckAvailability(context.Background(),
		inventory.Target{Type: inventory.TargetVilla}, stay, selfID)

	require.NoError(t, err)
	assert.True(t, available)
	repo.AssertExpectations(t)
}

func TestBookedRangesFiltersByTarget(t *testing.T) {
	inv := inventory.NewDefaultService()

	r1Stay := paidBooking(t, "room", "", "R1", "2026-09-10", "2026-09-13")
	r3Stay := paidBooking(t, "room", "", "R3", "2026-09-20", "2026-09-22")

	repo := new(MockRepository)
	repo.On("FindOverlapping", mock.Anything, mock.Anything, defaultBlocking, uuid.Nil).
		Return([]Booking{r1Stay, r3Stay}, nil)

	resolver := NewResolver(repo, inv, defaultBlocking)

	// F1 sees only the R1 stay
	ranges, err := resolver.BookedRanges(context.Background(),
		inventory.Target{Type: inventory.TargetFloor, FloorID: "F1"}, mustRange(t, "2026-09-01", "2026-09-02").CheckIn)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, "2026-09-10", ranges[0].CheckIn.Format(DateLayout))

	// The villa sees both
	ranges, err = resolver.BookedRanges(context.Background(),
		inventory.Target{Type: inventory.TargetVilla}, mustRange(t, "2026-09-01", "2026-09-02").CheckIn)
	require.NoError(t, err)
	assert.Len(t, ranges, 2)
}
