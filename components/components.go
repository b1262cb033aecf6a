// Package components defines the ECS components used by the decorative
// streak system.
package components

// Position is a streak head position in field space.
type Position struct {
	X, Y, Z float32
}

// Velocity is a streak velocity in field units per second.
type Velocity struct {
	X, Y, Z float32
}

// Streak holds the per-streak visual attributes. Trail is the time length of
// the tail in seconds: the tail endpoint is head minus velocity scaled by it.
type Streak struct {
	Trail float32
	Size  float32
	R     uint8
	G     uint8
	B     uint8
}
