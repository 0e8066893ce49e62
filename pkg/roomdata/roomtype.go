package roomdata

import "fmt"

// RoomType is a sealed tag over the canonical indoor and outdoor room
// vocabularies the solver knows Vastu preferences and default sizes for.
// An unrecognized type string from a Request maps to Untyped, which draws
// a flat Φ=0.5 field and no adjacency preferences.
type RoomType int

const (
	Untyped RoomType = iota

	// Indoor canonical subset.
	Entrance
	Kitchen
	MasterBedroom
	Bedroom
	Bathroom
	Toilet
	Pooja
	Living
	Hall
	Dining
	Study
	Store
	Balcony

	// Outdoor subset.
	Garden
	Lawn
	Parking
	SwimmingPool
	Driveway
	Deck
	Patio
	Terrace
	Trees
	BoreWell
	WaterTank
)

var roomTypeNames = map[RoomType]string{
	Untyped:       "untyped",
	Entrance:      "entrance",
	Kitchen:       "kitchen",
	MasterBedroom: "master_bedroom",
	Bedroom:       "bedroom",
	Bathroom:      "bathroom",
	Toilet:        "toilet",
	Pooja:         "pooja",
	Living:        "living",
	Hall:          "hall",
	Dining:        "dining",
	Study:         "study",
	Store:         "store",
	Balcony:       "balcony",
	Garden:        "garden",
	Lawn:          "lawn",
	Parking:       "parking",
	SwimmingPool:  "swimming_pool",
	Driveway:      "driveway",
	Deck:          "deck",
	Patio:         "patio",
	Terrace:       "terrace",
	Trees:         "trees",
	BoreWell:      "bore_well",
	WaterTank:     "water_tank",
}

var roomTypesByName = func() map[string]RoomType {
	m := make(map[string]RoomType, len(roomTypeNames))
	for t, n := range roomTypeNames {
		m[n] = t
	}
	// A couple of accepted aliases seen on incoming requests.
	m["carport"] = Parking
	m["car_port"] = Parking
	return m
}()

// String returns the canonical tag for a RoomType.
func (t RoomType) String() string {
	if n, ok := roomTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%d)", t)
}

// ParseRoomType maps a free-form type string to a RoomType, falling back to
// Untyped for anything the canonical/outdoor vocabularies don't name. Per
// spec.md's RoomType definition, an unrecognized tag is not an error.
func ParseRoomType(s string) RoomType {
	if t, ok := roomTypesByName[s]; ok {
		return t
	}
	return Untyped
}

var outdoorTypes = map[RoomType]bool{
	Garden:       true,
	Lawn:         true,
	Parking:      true,
	SwimmingPool: true,
	Driveway:     true,
	Deck:         true,
	Patio:        true,
	Terrace:      true,
	Trees:        true,
	BoreWell:     true,
	WaterTank:    true,
}

// IsOutdoor is the static predicate distinguishing the outdoor subset; it
// drives two-phase solve partitioning.
func (t RoomType) IsOutdoor() bool {
	return outdoorTypes[t]
}
