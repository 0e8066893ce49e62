package roomdata

// VastuPreference captures the directional rule set for a RoomType: the
// compass octants where the type should sit, the ones that are tolerable,
// and the ones to avoid, plus a weight reflecting how strictly the rule is
// enforced and a priority controlling placement order (lower goes first).
type VastuPreference struct {
	Preferred  []Direction
	Acceptable []Direction
	Avoid      []Direction
	Weight     float64
	Priority   int
}

// vastuTable replaces the source's dynamic string-keyed preference
// dictionary (VASTU_ZONES in the original Python) with a compile-time
// table keyed by the sealed RoomType. Anchor directions and weights for
// the seven types the original implementation hard-codes are taken
// directly from it; the remaining canonical types follow the same
// classical Vastu convention (pooja NE, kitchen SE, master bedroom SW,
// entrance N/NE, bathrooms NW/W, stores/toilets S/SW) at a lower weight
// since the original leaves them as the neutral default.
var vastuTable = map[RoomType]VastuPreference{
	Pooja: {
		Preferred: []Direction{NorthEast},
		Acceptable: []Direction{North, East},
		Weight:    1.0,
		Priority:  1,
	},
	Kitchen: {
		Preferred:  []Direction{SouthEast},
		Acceptable: []Direction{South, East},
		Avoid:      []Direction{NorthEast},
		Weight:     0.9,
		Priority:   2,
	},
	MasterBedroom: {
		Preferred:  []Direction{SouthWest},
		Acceptable: []Direction{South, West},
		Avoid:      []Direction{NorthEast},
		Weight:     0.8,
		Priority:   3,
	},
	Bathroom: {
		Preferred:  []Direction{NorthWest},
		Acceptable: []Direction{West},
		Avoid:      []Direction{NorthEast, SouthWest},
		Weight:     0.7,
		Priority:   7,
	},
	Living: {
		Preferred:  []Direction{North},
		Acceptable: []Direction{NorthEast, East},
		Weight:     0.7,
		Priority:   4,
	},
	Bedroom: {
		Preferred:  []Direction{West},
		Acceptable: []Direction{SouthWest, NorthWest},
		Weight:     0.6,
		Priority:   5,
	},
	Dining: {
		Preferred:  []Direction{Center, East},
		Acceptable: []Direction{West},
		Weight:     0.5,
		Priority:   6,
	},
	Entrance: {
		Preferred:  []Direction{North, NorthEast},
		Acceptable: []Direction{East},
		Avoid:      []Direction{SouthWest},
		Weight:     0.9,
		Priority:   0,
	},
	Toilet: {
		Preferred:  []Direction{West, NorthWest},
		Avoid:      []Direction{NorthEast, Center},
		Weight:     0.6,
		Priority:   8,
	},
	Hall: {
		Preferred:  []Direction{North, Center},
		Weight:     0.4,
		Priority:   9,
	},
	Study: {
		Preferred:  []Direction{NorthWest, West},
		Weight:     0.5,
		Priority:   10,
	},
	Store: {
		Preferred:  []Direction{SouthWest, South},
		Weight:     0.4,
		Priority:   11,
	},
	Balcony: {
		Preferred:  []Direction{North, East},
		Weight:     0.3,
		Priority:   12,
	},

	// Outdoor subset uses a gentler table (lower weights throughout), per
	// spec.md §4.2: "the outdoor subset uses a separate, gentler
	// preference table."
	Garden: {
		Preferred: []Direction{NorthEast, North},
		Weight:    0.4,
		Priority:  20,
	},
	Lawn: {
		Preferred: []Direction{North, East},
		Weight:    0.3,
		Priority:  21,
	},
	Parking: {
		Preferred: []Direction{SouthEast, NorthWest},
		Weight:    0.4,
		Priority:  22,
	},
	Driveway: {
		Preferred: []Direction{North, NorthWest},
		Weight:    0.3,
		Priority:  23,
	},
	SwimmingPool: {
		Preferred: []Direction{NorthWest, North},
		Weight:    0.3,
		Priority:  24,
	},
	Deck: {
		Preferred: []Direction{North, East},
		Weight:    0.3,
		Priority:  25,
	},
	Patio: {
		Preferred: []Direction{East, North},
		Weight:    0.3,
		Priority:  26,
	},
	Terrace: {
		Preferred: []Direction{North},
		Weight:    0.3,
		Priority:  27,
	},
	Trees: {
		Preferred: []Direction{South, SouthWest},
		Weight:    0.2,
		Priority:  28,
	},
	BoreWell: {
		Preferred: []Direction{NorthEast, North},
		Weight:    0.3,
		Priority:  29,
	},
	WaterTank: {
		Preferred: []Direction{SouthWest, South},
		Weight:    0.3,
		Priority:  30,
	},
}

// Preference returns the VastuPreference for a RoomType. Untyped and any
// type absent from the table (there is none, by construction, besides
// Untyped) returns a flat, unweighted preference: an empty rule set with
// weight 0 yields the uniform 0.5 field described in spec.md §3.
func Preference(t RoomType) VastuPreference {
	if p, ok := vastuTable[t]; ok {
		return p
	}
	return VastuPreference{Weight: 0, Priority: 99}
}
