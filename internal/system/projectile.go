// internal/system/projectile.go
package system

import (
	"go-wave-defense/internal/component"
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/entity"
	"go-wave-defense/internal/types"
)

// ImpactResolver applies a projectile hit to its target. The engine owns the
// damage formula (conditionals, armor, kill accounting), the system owns the
// flight.
type ImpactResolver interface {
	ResolveImpact(targetID types.EntityID, proj *component.Projectile)
}

// ProjectileSystem moves projectiles toward their target each step. The
// target reference is an id lookup: a vanished target is a normal, checked
// outcome and the projectile simply expires.
type ProjectileSystem struct {
	ecs      *entity.ECS
	resolver ImpactResolver
}

func NewProjectileSystem(ecs *entity.ECS, resolver ImpactResolver) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, resolver: resolver}
}

func (s *ProjectileSystem) Update(dt float64) {
	for _, id := range s.ecs.SortedProjectileIDs() {
		proj := s.ecs.Projectiles[id]
		pos := s.ecs.Positions[id]
		if pos == nil {
			s.ecs.RemoveEntity(id)
			continue
		}

		targetPos, targetAlive := s.ecs.Positions[proj.TargetID]
		if !targetAlive {
			s.ecs.RemoveEntity(id)
			continue
		}
		if enemy, ok := s.ecs.Enemies[proj.TargetID]; !ok || enemy.Escaped {
			s.ecs.RemoveEntity(id)
			continue
		}

		delta := targetPos.Pos.Sub(pos.Pos)
		dist := delta.Len()

		if dist <= proj.Speed*dt || dist < config.ProjectileHitRadius {
			s.resolver.ResolveImpact(proj.TargetID, proj)
			s.ecs.RemoveEntity(id)
			continue
		}

		pos.Pos = pos.Pos.Add(delta.Norm().Scale(proj.Speed * dt))
	}
}
