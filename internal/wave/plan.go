// internal/wave/plan.go
package wave

import (
	"math"
	"sort"

	"go-wave-defense/internal/config"
	"go-wave-defense/internal/formula"
	"go-wave-defense/pkg/geom"
)

// PlanEntry is one pre-computed enemy: everything about it is fixed before
// the wave starts, so spawning is just "copy the entry into the live world
// when simTime reaches SpawnTime".
type PlanEntry struct {
	Index       int        `json:"index"`
	SpawnTime   float64    `json:"spawnTime"`
	HP          float64    `json:"hp"`
	Armor       float64    `json:"armor"`
	Speed       float64    `json:"speed"`
	ArchetypeID string     `json:"archetypeId"`
	SpawnPoint  geom.Vec2  `json:"spawnPoint"`
	Velocity    geom.Vec2  `json:"velocity"` // unit-speed vector toward center, pre-scaled
}

// BuildPlan enumerates the whole wave in one deterministic pass from the
// frozen snapshot, sorted ascending by spawn time.
func BuildPlan(snap Snapshot, bal config.Balance, arena geom.Arena) []PlanEntry {
	center := arena.Center()
	radius := arena.SpawnRadius(config.SpawnMargin)

	plan := make([]PlanEntry, 0, snap.SpawnCount)
	for i := 0; i < snap.SpawnCount; i++ {
		hp, armor, speed, arch := formula.EnemyStats(snap.Wave, i, snap.HPBudget, snap.SpawnCount, bal)

		point := spawnPoint(snap.Wave, i, center, radius)
		vel := center.Sub(point).Norm().Scale(speed)

		plan = append(plan, PlanEntry{
			Index:       i,
			SpawnTime:   formula.SpawnTime(snap.Wave, i, snap.SpawnCount, bal),
			HP:          hp,
			Armor:       armor,
			Speed:       speed,
			ArchetypeID: arch.ID,
			SpawnPoint:  point,
			Velocity:    vel,
		})
	}

	sort.SliceStable(plan, func(a, b int) bool { return plan[a].SpawnTime < plan[b].SpawnTime })
	return plan
}

// Rescale maps a plan built for one arena onto another, preserving spawn
// times and stats while re-aiming velocities at the new center. Used when the
// host viewport resizes mid-wave.
func Rescale(plan []PlanEntry, from, to geom.Arena) []PlanEntry {
	if from.Width <= 0 || from.Height <= 0 {
		return plan
	}
	sx := to.Width / from.Width
	sy := to.Height / from.Height
	center := to.Center()

	out := make([]PlanEntry, len(plan))
	for i, e := range plan {
		e.SpawnPoint = geom.Vec2{X: e.SpawnPoint.X * sx, Y: e.SpawnPoint.Y * sy}
		e.Velocity = center.Sub(e.SpawnPoint).Norm().Scale(e.Speed)
		out[i] = e
	}
	return out
}

// spawnPoint places enemy i on the spawn ring. The angle is a hash rotation
// of (wave, index) plus a golden-angle stride, which scatters entries around
// the rim without ever consuming entropy.
func spawnPoint(wave, index int, center geom.Vec2, radius float64) geom.Vec2 {
	const goldenAngle = 2.399963229728653 // radians

	h := formula.Hash64(uint64(wave)*0x9e3779b9 + uint64(index) + 1)
	base := float64(h%3600) / 3600 * 2 * math.Pi
	angle := base + goldenAngle*float64(index)

	return geom.Vec2{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}
