// Package vastu builds and samples the Vastu potential field Φ: a dense
// per-RoomType grid of directional preference scalars over a plot's
// bounding box, constructed once per solve from Gaussian bumps at the
// nine canonical compass anchors and read-only thereafter.
package vastu
