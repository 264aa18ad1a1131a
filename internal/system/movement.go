// internal/system/movement.go
package system

import (
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/entity"
	"go-wave-defense/pkg/geom"
)

// MovementSystem advances enemies along their straight vector toward the
// arena center and flags the ones that cross the base radius. There is no
// path graph: re-steering every step toward the current center is what makes
// viewport rescaling safe mid-wave.
type MovementSystem struct {
	ecs   *entity.ECS
	arena geom.Arena
}

func NewMovementSystem(ecs *entity.ECS, arena geom.Arena) *MovementSystem {
	return &MovementSystem{ecs: ecs, arena: arena}
}

// SetArena updates the playfield after a host resize.
func (s *MovementSystem) SetArena(arena geom.Arena) {
	s.arena = arena
}

func (s *MovementSystem) Update(dt float64) {
	center := s.arena.Center()

	for _, id := range s.ecs.SortedEnemyIDs() {
		enemy := s.ecs.Enemies[id]
		if enemy.Escaped {
			continue
		}
		pos := s.ecs.Positions[id]
		vel := s.ecs.Velocities[id]
		if pos == nil || vel == nil {
			continue
		}

		dir := center.Sub(pos.Pos)
		dist := dir.Len()
		step := vel.Speed * dt

		if dist-step <= config.BaseRadius {
			// Crossing the base ring this step is an escape; the engine
			// applies damage immediately and removes the entity.
			pos.Pos = center.Sub(dir.Norm().Scale(config.BaseRadius))
			enemy.Escaped = true
			continue
		}

		vel.Vel = dir.Norm().Scale(vel.Speed)
		pos.Pos = pos.Pos.Add(vel.Vel.Scale(dt))
	}
}
