// Package roomdata holds the closed vocabulary of room types, their Vastu
// directional preferences, default dimensional envelopes, and functional
// adjacency edges. These are compile-time tables rather than runtime
// configuration: a RoomType is a sealed tag, not a free-form string key.
package roomdata
