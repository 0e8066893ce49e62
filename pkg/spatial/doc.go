// Package spatial provides a grid-bucketed spatial index mapping
// axis-aligned rectangles to integer cells, used by the placer and
// refiner for O(1)-amortized overlap and neighbor queries.
package spatial
