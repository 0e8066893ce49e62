package roomdata

// Size describes the dimensional envelope of a RoomType: width/height
// bounds and preference, an area range, and the ideal aspect ratio the
// refiner's resize move tries to preserve. All lengths are in meters,
// area in square meters.
type Size struct {
	MinW, MaxW, PreferredW float64
	MinH, MaxH, PreferredH float64
	MinArea, MaxArea       float64
	IdealAspect, AspectTol float64
}

// sizeTable replaces the source's dynamic per-type dimension dictionary
// with a compile-time table. Values reflect typical residential room
// envelopes; rooms absent from this table (Untyped, and any canonical
// type with no entry) fall back to defaultSize.
var sizeTable = map[RoomType]Size{
	Entrance:      {MinW: 1.2, MaxW: 3.0, PreferredW: 2.0, MinH: 1.2, MaxH: 2.5, PreferredH: 1.8, MinArea: 2.0, MaxArea: 6.0, IdealAspect: 1.2, AspectTol: 0.4},
	Kitchen:       {MinW: 2.5, MaxW: 5.0, PreferredW: 3.5, MinH: 2.5, MaxH: 4.5, PreferredH: 3.2, MinArea: 8.0, MaxArea: 18.0, IdealAspect: 1.1, AspectTol: 0.3},
	MasterBedroom: {MinW: 3.5, MaxW: 6.0, PreferredW: 4.5, MinH: 3.0, MaxH: 5.5, PreferredH: 4.0, MinArea: 14.0, MaxArea: 28.0, IdealAspect: 1.15, AspectTol: 0.3},
	Bedroom:       {MinW: 3.0, MaxW: 4.5, PreferredW: 3.5, MinH: 2.8, MaxH: 4.0, PreferredH: 3.2, MinArea: 9.0, MaxArea: 16.0, IdealAspect: 1.1, AspectTol: 0.3},
	Bathroom:      {MinW: 1.5, MaxW: 2.8, PreferredW: 2.0, MinH: 1.8, MaxH: 3.0, PreferredH: 2.2, MinArea: 3.0, MaxArea: 7.0, IdealAspect: 1.0, AspectTol: 0.4},
	Toilet:        {MinW: 0.9, MaxW: 1.5, PreferredW: 1.1, MinH: 1.2, MaxH: 2.0, PreferredH: 1.5, MinArea: 1.2, MaxArea: 2.5, IdealAspect: 0.75, AspectTol: 0.4},
	Pooja:         {MinW: 1.0, MaxW: 2.2, PreferredW: 1.5, MinH: 1.0, MaxH: 2.2, PreferredH: 1.5, MinArea: 1.5, MaxArea: 4.0, IdealAspect: 1.0, AspectTol: 0.4},
	Living:        {MinW: 3.5, MaxW: 7.0, PreferredW: 5.0, MinH: 3.5, MaxH: 6.5, PreferredH: 4.5, MinArea: 16.0, MaxArea: 35.0, IdealAspect: 1.2, AspectTol: 0.35},
	Hall:          {MinW: 3.0, MaxW: 6.0, PreferredW: 4.0, MinH: 3.0, MaxH: 6.0, PreferredH: 4.0, MinArea: 12.0, MaxArea: 30.0, IdealAspect: 1.0, AspectTol: 0.35},
	Dining:        {MinW: 2.8, MaxW: 5.0, PreferredW: 3.5, MinH: 2.8, MaxH: 4.5, PreferredH: 3.2, MinArea: 9.0, MaxArea: 18.0, IdealAspect: 1.1, AspectTol: 0.3},
	Study:         {MinW: 2.2, MaxW: 3.5, PreferredW: 2.8, MinH: 2.2, MaxH: 3.5, PreferredH: 2.8, MinArea: 6.0, MaxArea: 10.0, IdealAspect: 1.0, AspectTol: 0.35},
	Store:         {MinW: 1.2, MaxW: 2.5, PreferredW: 1.8, MinH: 1.2, MaxH: 2.5, PreferredH: 1.6, MinArea: 2.0, MaxArea: 5.0, IdealAspect: 1.0, AspectTol: 0.4},
	Balcony:       {MinW: 1.2, MaxW: 3.5, PreferredW: 2.0, MinH: 1.0, MaxH: 2.0, PreferredH: 1.2, MinArea: 2.0, MaxArea: 6.0, IdealAspect: 2.0, AspectTol: 0.5},

	Garden:       {MinW: 3.0, MaxW: 10.0, PreferredW: 5.0, MinH: 3.0, MaxH: 10.0, PreferredH: 5.0, MinArea: 10.0, MaxArea: 80.0, IdealAspect: 1.2, AspectTol: 0.6},
	Lawn:         {MinW: 3.0, MaxW: 8.0, PreferredW: 4.5, MinH: 3.0, MaxH: 8.0, PreferredH: 4.5, MinArea: 9.0, MaxArea: 50.0, IdealAspect: 1.2, AspectTol: 0.6},
	Parking:      {MinW: 2.5, MaxW: 6.0, PreferredW: 3.0, MinH: 5.0, MaxH: 8.0, PreferredH: 5.5, MinArea: 12.0, MaxArea: 40.0, IdealAspect: 0.55, AspectTol: 0.5},
	SwimmingPool: {MinW: 3.0, MaxW: 10.0, PreferredW: 5.0, MinH: 2.0, MaxH: 6.0, PreferredH: 3.0, MinArea: 8.0, MaxArea: 50.0, IdealAspect: 1.6, AspectTol: 0.5},
	Driveway:     {MinW: 2.5, MaxW: 4.5, PreferredW: 3.0, MinH: 5.0, MaxH: 12.0, PreferredH: 7.0, MinArea: 12.0, MaxArea: 50.0, IdealAspect: 0.4, AspectTol: 0.5},
	Deck:         {MinW: 2.0, MaxW: 6.0, PreferredW: 3.5, MinH: 1.5, MaxH: 4.0, PreferredH: 2.5, MinArea: 4.0, MaxArea: 20.0, IdealAspect: 1.4, AspectTol: 0.5},
	Patio:        {MinW: 2.0, MaxW: 5.0, PreferredW: 3.0, MinH: 2.0, MaxH: 5.0, PreferredH: 3.0, MinArea: 4.0, MaxArea: 20.0, IdealAspect: 1.0, AspectTol: 0.5},
	Terrace:      {MinW: 2.5, MaxW: 8.0, PreferredW: 4.0, MinH: 2.5, MaxH: 8.0, PreferredH: 4.0, MinArea: 6.0, MaxArea: 50.0, IdealAspect: 1.0, AspectTol: 0.5},
	Trees:        {MinW: 1.0, MaxW: 3.0, PreferredW: 1.5, MinH: 1.0, MaxH: 3.0, PreferredH: 1.5, MinArea: 1.0, MaxArea: 9.0, IdealAspect: 1.0, AspectTol: 0.6},
	BoreWell:     {MinW: 0.5, MaxW: 1.2, PreferredW: 0.8, MinH: 0.5, MaxH: 1.2, PreferredH: 0.8, MinArea: 0.25, MaxArea: 1.4, IdealAspect: 1.0, AspectTol: 0.3},
	WaterTank:    {MinW: 1.0, MaxW: 2.5, PreferredW: 1.5, MinH: 1.0, MaxH: 2.5, PreferredH: 1.5, MinArea: 1.0, MaxArea: 6.0, IdealAspect: 1.0, AspectTol: 0.3},
}

// defaultSize is used for Untyped rooms and any type a future request
// vocabulary introduces without a table entry: a generic 3x3 room.
var defaultSize = Size{
	MinW: 2.0, MaxW: 5.0, PreferredW: 3.0,
	MinH: 2.0, MaxH: 5.0, PreferredH: 3.0,
	MinArea: 4.0, MaxArea: 25.0,
	IdealAspect: 1.0, AspectTol: 0.4,
}

// SizeOf returns the dimensional envelope for a RoomType.
func SizeOf(t RoomType) Size {
	if s, ok := sizeTable[t]; ok {
		return s
	}
	return defaultSize
}
