// internal/wave/snapshot.go
package wave

import (
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/formula"
	"go-wave-defense/internal/passive"
	"go-wave-defense/internal/state"
)

// Snapshot is the frozen difficulty contract for one wave. It is computed
// once at wave start and held for the wave's whole duration: re-equipping
// mid-wave changes tower output but never the budget, spawn count or
// threshold already in force.
type Snapshot struct {
	Wave       int     `json:"wave"`
	DPS        float64 `json:"dps"` // tower DPS at snapshot time
	HPBudget   float64 `json:"hpBudget"`
	SpawnCount int     `json:"spawnCount"`
	Threshold  float64 `json:"threshold"`
}

// BuildSnapshot freezes the wave contract from the live progression state
// and the modifier bundle in force at wave start.
func BuildSnapshot(gs *state.GameState, bal config.Balance, mods passive.Bundle, qualityTier string) Snapshot {
	dps := formula.TowerDPS(gs, bal, mods)
	return Snapshot{
		Wave:       gs.Wave,
		DPS:        dps,
		HPBudget:   formula.HPBudget(gs.Wave, dps, bal),
		SpawnCount: formula.SpawnCount(gs.Wave, bal, qualityTier),
		Threshold:  formula.KillRatioThreshold(gs.Wave, bal),
	}
}
