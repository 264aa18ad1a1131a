package system

import (
	"testing"

	"go-wave-defense/internal/component"
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/entity"
	"go-wave-defense/internal/types"
	"go-wave-defense/pkg/geom"
)

func spawnEnemy(ecs *entity.ECS, pos geom.Vec2, hp float64) types.EntityID {
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{Pos: pos}
	ecs.Velocities[id] = &component.Velocity{Speed: 10}
	ecs.Healths[id] = &component.Health{Value: hp, Max: hp}
	ecs.Enemies[id] = &component.Enemy{ArchetypeID: "ARCH_GRUNT"}
	return id
}

func TestCombatTargetsClosestToBase(t *testing.T) {
	ecs := entity.NewECS()
	arena := geom.Arena{Width: 1000, Height: 1000}
	center := arena.Center()
	combat := NewCombatSystem(ecs, arena)
	combat.ResetForWave()

	far := spawnEnemy(ecs, geom.Vec2{X: center.X + 300, Y: center.Y}, 100)
	near := spawnEnemy(ecs, geom.Vec2{X: center.X + 80, Y: center.Y}, 100)
	_ = far

	params := TowerParams{Damage: 10, FireRate: 1, Range: 400, Shots: 1, CritMult: 1.5}
	combat.Update(config.FixedStep, params, config.ProjectileSpeed)

	ids := ecs.SortedProjectileIDs()
	if len(ids) != 1 {
		t.Fatalf("projectiles spawned = %d, want 1", len(ids))
	}
	if got := ecs.Projectiles[ids[0]].TargetID; got != near {
		t.Errorf("targeted %d, want nearest enemy %d", got, near)
	}
}

func TestCombatRespectsRange(t *testing.T) {
	ecs := entity.NewECS()
	arena := geom.Arena{Width: 1000, Height: 1000}
	center := arena.Center()
	combat := NewCombatSystem(ecs, arena)
	combat.ResetForWave()

	spawnEnemy(ecs, geom.Vec2{X: center.X + 450, Y: center.Y}, 100)

	params := TowerParams{Damage: 10, FireRate: 1, Range: 200, Shots: 1}
	combat.Update(config.FixedStep, params, config.ProjectileSpeed)

	if got := len(ecs.SortedProjectileIDs()); got != 0 {
		t.Errorf("fired at an out-of-range enemy: %d projectiles", got)
	}
}

func TestCombatMultiShotSpreadsTargets(t *testing.T) {
	ecs := entity.NewECS()
	arena := geom.Arena{Width: 1000, Height: 1000}
	center := arena.Center()
	combat := NewCombatSystem(ecs, arena)
	combat.ResetForWave()

	a := spawnEnemy(ecs, geom.Vec2{X: center.X + 50, Y: center.Y}, 100)
	b := spawnEnemy(ecs, geom.Vec2{X: center.X + 120, Y: center.Y}, 100)
	c := spawnEnemy(ecs, geom.Vec2{X: center.X + 200, Y: center.Y}, 100)
	_ = c

	params := TowerParams{Damage: 10, FireRate: 1, Range: 150, Shots: 3}
	combat.Update(config.FixedStep, params, config.ProjectileSpeed)

	targets := make(map[types.EntityID]bool)
	for _, id := range ecs.SortedProjectileIDs() {
		targets[ecs.Projectiles[id].TargetID] = true
	}
	// Only two enemies are in range; each gets one projectile.
	if len(targets) != 2 || !targets[a] || !targets[b] {
		t.Errorf("targets = %v, want {%d, %d}", targets, a, b)
	}
}

func TestCombatCritCadence(t *testing.T) {
	ecs := entity.NewECS()
	arena := geom.Arena{Width: 1000, Height: 1000}
	center := arena.Center()
	combat := NewCombatSystem(ecs, arena)
	combat.ResetForWave()

	spawnEnemy(ecs, geom.Vec2{X: center.X + 50, Y: center.Y}, 1e12)

	params := TowerParams{Damage: 10, FireRate: 1000, Range: 200, Shots: 1, CritCadence: 3, CritMult: 2}

	crits := 0
	for shot := 1; shot <= 9; shot++ {
		// A cooling-down update fires nothing; drive until the shot lands.
		var ids []types.EntityID
		for len(ids) == 0 {
			combat.Update(1.0, params, config.ProjectileSpeed)
			ids = ecs.SortedProjectileIDs()
		}
		if len(ids) != 1 {
			t.Fatalf("shot %d: %d projectiles live", shot, len(ids))
		}
		proj := ecs.Projectiles[ids[0]]
		isCrit := proj.CritMult > 1
		if shot%3 == 0 && !isCrit {
			t.Errorf("shot %d should crit", shot)
		}
		if shot%3 != 0 && isCrit {
			t.Errorf("shot %d should not crit", shot)
		}
		if isCrit {
			crits++
		}
		ecs.RemoveEntity(ids[0])
	}
	if crits != 3 {
		t.Errorf("crits = %d, want exactly 3 in 9 shots", crits)
	}
}

func TestCombatCooldownGatesFiring(t *testing.T) {
	ecs := entity.NewECS()
	arena := geom.Arena{Width: 1000, Height: 1000}
	center := arena.Center()
	combat := NewCombatSystem(ecs, arena)
	combat.ResetForWave()

	spawnEnemy(ecs, geom.Vec2{X: center.X + 50, Y: center.Y}, 1e12)

	params := TowerParams{Damage: 10, FireRate: 2, Range: 200, Shots: 1} // 0.5s cooldown

	combat.Update(config.FixedStep, params, config.ProjectileSpeed)
	if got := len(ecs.SortedProjectileIDs()); got != 1 {
		t.Fatalf("first update fired %d projectiles, want 1", got)
	}

	// The next few steps sit inside the cooldown window.
	for i := 0; i < 5; i++ {
		combat.Update(config.FixedStep, params, config.ProjectileSpeed)
	}
	if got := len(ecs.SortedProjectileIDs()); got != 1 {
		t.Errorf("cooldown ignored: %d projectiles live", got)
	}
}
