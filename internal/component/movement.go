// internal/component/movement.go
package component

import "go-wave-defense/pkg/geom"

// Position is a live entity's location in world units.
type Position struct {
	Pos geom.Vec2
}

// Velocity is a live entity's motion vector (already scaled by speed).
type Velocity struct {
	Vel   geom.Vec2
	Speed float64
}

// Health tracks current and max hit points.
type Health struct {
	Value float64
	Max   float64
}
