// Package graph provides the functional adjacency graph over a floor
// plan's rooms: the logical "should be near" topology that the placer's
// attraction term and the refiner's adjacency energy term both consume,
// independent of spatial layout.
package graph
