// internal/system/combat.go
package system

import (
	"sort"

	"go-wave-defense/internal/component"
	"go-wave-defense/internal/entity"
	"go-wave-defense/internal/types"
	"go-wave-defense/pkg/geom"
)

// TowerParams is the tower's live output, derived by the engine from the
// formula package and the current modifier bundle each time progression
// state changes. Unlike the wave snapshot it is NOT frozen: an equip bought
// mid-wave changes the next shot.
type TowerParams struct {
	Damage      float64
	FireRate    float64
	Range       float64
	Shots       int
	CritCadence int // every Nth shot crits; 0 disables crits
	CritMult    float64
}

// CombatSystem runs the tower: cooldown, target selection and projectile
// spawning. Crit is a strict shot-counter cadence, not a roll.
type CombatSystem struct {
	ecs   *entity.ECS
	arena geom.Arena

	fireCooldown float64
	shotCounter  int
}

func NewCombatSystem(ecs *entity.ECS, arena geom.Arena) *CombatSystem {
	return &CombatSystem{ecs: ecs, arena: arena}
}

// SetArena updates the playfield after a host resize.
func (s *CombatSystem) SetArena(arena geom.Arena) {
	s.arena = arena
}

// ResetForWave clears the cooldown and crit counter; wave-scoped runtime
// always restarts from the same values so replays line up.
func (s *CombatSystem) ResetForWave() {
	s.fireCooldown = 0
	s.shotCounter = 0
}

func (s *CombatSystem) Update(dt float64, params TowerParams, speed float64) {
	if s.fireCooldown > 0 {
		s.fireCooldown -= dt
		return
	}

	targets := s.selectTargets(params.Range, params.Shots)
	if len(targets) == 0 {
		return
	}

	for _, targetID := range targets {
		s.shotCounter++
		critMult := 1.0
		if params.CritCadence > 0 && s.shotCounter%params.CritCadence == 0 {
			critMult = params.CritMult
		}
		s.spawnProjectile(targetID, params.Damage, critMult, speed)
	}

	if params.FireRate > 0 {
		s.fireCooldown = 1.0 / params.FireRate
	}
}

// selectTargets ranks enemies inside the range ring by distance to the base
// (closest to escaping first), with stable entity id breaking ties, and
// returns the top n.
func (s *CombatSystem) selectTargets(rangeRadius float64, n int) []types.EntityID {
	center := s.arena.Center()

	type candidate struct {
		id   types.EntityID
		dist float64
	}
	var candidates []candidate

	for _, id := range s.ecs.SortedEnemyIDs() {
		enemy := s.ecs.Enemies[id]
		if enemy.Escaped {
			continue
		}
		pos := s.ecs.Positions[id]
		health := s.ecs.Healths[id]
		if pos == nil || health == nil || health.Value <= 0 {
			continue
		}
		dist := pos.Pos.Dist(center)
		if dist <= rangeRadius {
			candidates = append(candidates, candidate{id: id, dist: dist})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].id < candidates[j].id
	})

	if n < 1 {
		n = 1
	}
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]types.EntityID, len(candidates))
	for i, c := range candidates {
		out[i] = c.id
	}
	return out
}

func (s *CombatSystem) spawnProjectile(targetID types.EntityID, damage, critMult, speed float64) {
	id := s.ecs.NewEntity()
	center := s.arena.Center()

	s.ecs.Positions[id] = &component.Position{Pos: center}
	s.ecs.Projectiles[id] = &component.Projectile{
		TargetID: targetID,
		Speed:    speed,
		Damage:   damage,
		CritMult: critMult,
	}
}
