package inventory

// TargetType identifies the level of the villa hierarchy a booking or a
// pricing rule points at.
type TargetType string

const (
	TargetVilla TargetType = "villa"
	TargetFloor TargetType = "floor"
	TargetRoom  TargetType = "room"
)

// IsValid checks if the target type is valid
func (t TargetType) IsValid() bool {
	switch t {
	case TargetVilla, TargetFloor, TargetRoom:
		return true
	}
	return false
}

// String returns the string representation of TargetType
func (t TargetType) String() string {
	return string(t)
}

// Target is what a guest books: the whole villa, one floor, or one room.
type Target struct {
	Type    TargetType `json:"type"`
	FloorID string     `json:"floor_id,omitempty"`
	RoomID  string     `json:"room_id,omitempty"`
}

// ID returns the identifier of the node the target points at. The villa has
// no identifier of its own: there is exactly one.
func (t Target) ID() string {
	switch t.Type {
	case TargetFloor:
		return t.FloorID
	case TargetRoom:
		return t.RoomID
	}
	return ""
}

// Room is the atomic bookable unit
type Room struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
}

// Floor groups rooms; bookable as a whole
type Floor struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	Rooms     []Room  `json:"rooms"`
}

// Villa is the root of the hierarchy. The layout is fixed at configuration
// time and immutable at runtime.
type Villa struct {
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	Floors    []Floor `json:"floors"`
}

// GuestLimit caps the party size per target
type GuestLimit struct {
	Total  int `json:"total"`
	Adults int `json:"adults"`
}

// Resolution is the outcome of resolving a target against the hierarchy
type Resolution struct {
	LeafRooms map[string]struct{}
	BasePrice float64
}

// Default returns the production villa layout.
//
// R1 Robusta, R2 Arabica on the ground floor; R3 Excelsa, R4 Liberica on the
// top floor.
func Default() Villa {
	return Villa{
		Name:      "Anudina Kuteera",
		BasePrice: 15000,
		Floors: []Floor{
			{
				ID:        "F1",
				Name:      "Ground Floor - Robusta + Arabica",
				BasePrice: 9000,
				Rooms: []Room{
					{ID: "R1", Name: "Robusta", BasePrice: 5000},
					{ID: "R2", Name: "Arabica", BasePrice: 4000},
				},
			},
			{
				ID:        "F2",
				Name:      "Top Floor - Excelsa + Liberica",
				BasePrice: 8000,
				Rooms: []Room{
					{ID: "R3", Name: "Excelsa", BasePrice: 4000},
					{ID: "R4", Name: "Liberica", BasePrice: 4000},
				},
			},
		},
	}
}

// DefaultGuestLimits returns the production party-size caps per target.
func DefaultGuestLimits() map[string]GuestLimit {
	return map[string]GuestLimit{
		"villa": {Total: 18, Adults: 13},
		"F1":    {Total: 10, Adults: 7},
		"F2":    {Total: 8, Adults: 6},
		"R1":    {Total: 6, Adults: 4},
		"R2":    {Total: 4, Adults: 3},
		"R3":    {Total: 4, Adults: 3},
		"R4":    {Total: 4, Adults: 3},
	}
}
