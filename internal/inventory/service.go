package inventory

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget is returned when a target references a floor or room that
// does not exist in the configured hierarchy.
var ErrInvalidTarget = errors.New("inventory: invalid target")

// Service answers pure lookups over the static villa hierarchy
type Service interface {
	ResolveTarget(target Target) (*Resolution, error)
	RoomsOfFloor(floorID string) ([]string, error)
	FloorOfRoom(roomID string) (string, error)
	Conflicts(a, b Target) bool
	GuestLimit(target Target) (GuestLimit, bool)
	VillaName() string
}

type service struct {
	villa       Villa
	floorRooms  map[string][]string
	roomFloor   map[string]string
	floorPrice  map[string]float64
	roomPrice   map[string]float64
	allRooms    []string
	guestLimits map[string]GuestLimit
}

// NewService builds the lookup tables once; every method afterwards is a pure
// map read and safe for concurrent use.
func NewService(villa Villa, guestLimits map[string]GuestLimit) Service {
	s := &service{
		villa:       villa,
		floorRooms:  make(map[string][]string),
		roomFloor:   make(map[string]string),
		floorPrice:  make(map[string]float64),
		roomPrice:   make(map[string]float64),
		guestLimits: guestLimits,
	}

	for _, floor := range villa.Floors {
		s.floorPrice[floor.ID] = floor.BasePrice
		for _, room := range floor.Rooms {
			s.floorRooms[floor.ID] = append(s.floorRooms[floor.ID], room.ID)
			s.roomFloor[room.ID] = floor.ID
			s.roomPrice[room.ID] = room.BasePrice
			s.allRooms = append(s.allRooms, room.ID)
		}
	}

	return s
}

// NewDefaultService returns a service over the production layout
func NewDefaultService() Service {
	return NewService(Default(), DefaultGuestLimits())
}

// ResolveTarget maps a target onto its leaf room set and base price
func (s *service) ResolveTarget(target Target) (*Resolution, error) {
	switch target.Type {
	case TargetVilla:
		return &Resolution{
			LeafRooms: toSet(s.allRooms),
			BasePrice: s.villa.BasePrice,
		}, nil

	case TargetFloor:
		rooms, ok := s.floorRooms[target.FloorID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown floor %q", ErrInvalidTarget, target.FloorID)
		}
		return &Resolution{
			LeafRooms: toSet(rooms),
			BasePrice: s.floorPrice[target.FloorID],
		}, nil

	case TargetRoom:
		if _, ok := s.roomFloor[target.RoomID]; !ok {
			return nil, fmt.Errorf("%w: unknown room %q", ErrInvalidTarget, target.RoomID)
		}
		return &Resolution{
			LeafRooms: toSet([]string{target.RoomID}),
			BasePrice: s.roomPrice[target.RoomID],
		}, nil
	}

	return nil, fmt.Errorf("%w: unknown target type %q", ErrInvalidTarget, target.Type)
}

// RoomsOfFloor returns the room ids of a floor
func (s *service) RoomsOfFloor(floorID string) ([]string, error) {
	rooms, ok := s.floorRooms[floorID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown floor %q", ErrInvalidTarget, floorID)
	}
	out := make([]string, len(rooms))
	copy(out, rooms)
	return out, nil
}

// FloorOfRoom returns the id of the floor a room belongs to
func (s *service) FloorOfRoom(roomID string) (string, error) {
	floorID, ok := s.roomFloor[roomID]
	if !ok {
		return "", fmt.Errorf("%w: unknown room %q", ErrInvalidTarget, roomID)
	}
	return floorID, nil
}

// Conflicts reports whether two targets compete for at least one leaf room.
// The villa intersects everything; a floor intersects itself and its rooms;
// a room intersects itself and its parent floor. Unresolvable targets never
// conflict; validation happens elsewhere.
func (s *service) Conflicts(a, b Target) bool {
	ra, err := s.ResolveTarget(a)
	if err != nil {
		return false
	}
	rb, err := s.ResolveTarget(b)
	if err != nil {
		return false
	}

	small, large := ra.LeafRooms, rb.LeafRooms
	if len(large) < len(small) {
		small, large = large, small
	}
	for room := range small {
		if _, ok := large[room]; ok {
			return true
		}
	}
	return false
}

// GuestLimit returns the party-size cap for a target
func (s *service) GuestLimit(target Target) (GuestLimit, bool) {
	key := target.ID()
	if target.Type == TargetVilla {
		key = "villa"
	}
	limit, ok := s.guestLimits[key]
	return limit, ok
}

// VillaName returns the configured villa name
func (s *service) VillaName() string {
	return s.villa.Name
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
