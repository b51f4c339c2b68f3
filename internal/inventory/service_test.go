package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTarget_Villa(t *testing.T) {
	svc := NewDefaultService()

	res, err := svc.ResolveTarget(Target{Type: TargetVilla})
	require.NoError(t, err)

	assert.Len(t, res.LeafRooms, 4)
	assert.Contains(t, res.LeafRooms, "R1")
	assert.Contains(t, res.LeafRooms, "R4")
	assert.Equal(t, 15000.0, res.BasePrice)
}

func TestResolveTarget_Floor(t *testing.T) {
	svc := NewDefaultService()

	res, err := svc.ResolveTarget(Target{Type: TargetFloor, FloorID: "F2"})
	require.NoError(t, err)

	assert.Len(t, res.LeafRooms, 2)
	assert.Contains(t, res.LeafRooms, "R3")
	assert.Contains(t, res.LeafRooms, "R4")
	assert.Equal(t, 8000.0, res.BasePrice)
}

func TestResolveTarget_Room(t *testing.T) {
	svc := NewDefaultService()

	res, err := svc.ResolveTarget(Target{Type: TargetRoom, RoomID: "R1"})
	require.NoError(t, err)

	assert.Len(t, res.LeafRooms, 1)
	assert.Equal(t, 5000.0, res.BasePrice)
}

func TestResolveTarget_Invalid(t *testing.T) {
	svc := NewDefaultService()

	_, err := svc.ResolveTarget(Target{Type: TargetFloor, FloorID: "F9"})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.ResolveTarget(Target{Type: TargetRoom, RoomID: "R9"})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = svc.ResolveTarget(Target{Type: "suite"})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestFloorOfRoom(t *testing.T) {
	svc := NewDefaultService()

	floorID, err := svc.FloorOfRoom("R3")
	require.NoError(t, err)
	assert.Equal(t, "F2", floorID)

	_, err = svc.FloorOfRoom("R9")
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestRoomsOfFloor(t *testing.T) {
	svc := NewDefaultService()

	rooms, err := svc.RoomsOfFloor("F1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"R1", "R2"}, rooms)
}

func TestConflicts_Hierarchy(t *testing.T) {
	svc := NewDefaultService()

	villa := Target{Type: TargetVilla}
	f1 := Target{Type: TargetFloor, FloorID: "F1"}
	f2 := Target{Type: TargetFloor, FloorID: "F2"}
	r1 := Target{Type: TargetRoom, RoomID: "R1"}
	r3 := Target{Type: TargetRoom, RoomID: "R3"}

	// Villa conflicts with everything
	assert.True(t, svc.Conflicts(villa, villa))
	assert.True(t, svc.Conflicts(villa, f1))
	assert.True(t, svc.Conflicts(villa, r3))
	assert.True(t, svc.Conflicts(r1, villa))

	// A floor conflicts with itself and its own rooms
	assert.True(t, svc.Conflicts(f1, f1))
	assert.True(t, svc.Conflicts(f1, r1))
	assert.True(t, svc.Conflicts(r1, f1))

	// Disjoint floors and rooms do not conflict
	assert.False(t, svc.Conflicts(f1, f2))
	assert.False(t, svc.Conflicts(f1, r3))
	assert.False(t, svc.Conflicts(r1, r3))
}

func TestGuestLimit(t *testing.T) {
	svc := NewDefaultService()

	limit, ok := svc.GuestLimit(Target{Type: TargetVilla})
	require.True(t, ok)
	assert.Equal(t, GuestLimit{Total: 18, Adults: 13}, limit)

	limit, ok = svc.GuestLimit(Target{Type: TargetRoom, RoomID: "R1"})
	require.True(t, ok)
	assert.Equal(t, GuestLimit{Total: 6, Adults: 4}, limit)

	_, ok = svc.GuestLimit(Target{Type: TargetRoom, RoomID: "R9"})
	assert.False(t, ok)
}
