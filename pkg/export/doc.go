// Package export serializes a solved floor plan (solver.Response) to JSON
// and to an SVG floor-plan drawing.
//
// The package offers both formatted (indented) and compact JSON export to
// accommodate different use cases, from human-readable output to
// space-efficient storage.
package export
