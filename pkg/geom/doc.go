// Package geom provides the axis-aligned and polygon geometry primitives
// the placer, refiner, and Vastu field all depend on: point-in-polygon,
// boundary projection, shoelace area/centroid, inradius approximation,
// and rectangle overlap (including a Sutherland-Hodgman fallback for
// rotated rectangles). Primitives never fail or validate their input;
// malformed polygons are rejected upstream by the orchestrator.
package geom
