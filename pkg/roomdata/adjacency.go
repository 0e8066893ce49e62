package roomdata

// Adjacency names a preferred neighbor for a RoomType and whether that
// pairing is critical (edge weight 2.0 in the placer/refiner) or
// ordinary (weight 1.0).
type Adjacency struct {
	Neighbor RoomType
	Critical bool
}

// adjacencyTable extends the original implementation's ADJACENCY_PREFS
// (kitchen-dining/living, master_bedroom-bathroom, bedroom-bathroom,
// living-dining/entrance, dining-kitchen/living, entrance-living) with the
// remaining canonical and outdoor types that a complete floor-plan solver
// needs a functional-adjacency opinion on. Kitchen-dining is marked
// critical, matching spec.md §4.4's example of a 2.0-weighted edge.
var adjacencyTable = map[RoomType][]Adjacency{
	Kitchen: {
		{Neighbor: Dining, Critical: true},
		{Neighbor: Living, Critical: false},
	},
	MasterBedroom: {
		{Neighbor: Bathroom, Critical: false},
	},
	Bedroom: {
		{Neighbor: Bathroom, Critical: false},
	},
	Living: {
		{Neighbor: Dining, Critical: false},
		{Neighbor: Entrance, Critical: false},
		{Neighbor: Hall, Critical: false},
	},
	Dining: {
		{Neighbor: Kitchen, Critical: true},
		{Neighbor: Living, Critical: false},
	},
	Entrance: {
		{Neighbor: Living, Critical: false},
		{Neighbor: Hall, Critical: false},
	},
	Hall: {
		{Neighbor: Entrance, Critical: false},
		{Neighbor: Living, Critical: false},
	},
	Pooja: {
		{Neighbor: Living, Critical: false},
	},
	Study: {
		{Neighbor: Bedroom, Critical: false},
	},
	Store: {
		{Neighbor: Kitchen, Critical: false},
	},
	Balcony: {
		{Neighbor: Bedroom, Critical: false},
		{Neighbor: Living, Critical: false},
	},
	Garden: {
		{Neighbor: Living, Critical: false},
	},
	Parking: {
		{Neighbor: Entrance, Critical: false},
		{Neighbor: Driveway, Critical: true},
	},
	Deck: {
		{Neighbor: Living, Critical: false},
	},
	Patio: {
		{Neighbor: Dining, Critical: false},
	},
}

// PreferredAdjacencies returns the functional-adjacency edges declared for
// a RoomType. Types absent from the table (including Untyped and the
// remaining outdoor types) have none; they still participate in the
// repulsion term of the placer.
func PreferredAdjacencies(t RoomType) []Adjacency {
	return adjacencyTable[t]
}
