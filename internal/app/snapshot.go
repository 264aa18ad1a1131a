// internal/app/snapshot.go
package app

import (
	"go-wave-defense/internal/component"
	"go-wave-defense/internal/event"
	"go-wave-defense/internal/state"
	"go-wave-defense/internal/types"
	"go-wave-defense/internal/wave"
	"go-wave-defense/pkg/geom"
)

// WaveReport scores one finished wave against its frozen snapshot.
type WaveReport struct {
	Wave          int     `json:"wave"`
	SpawnCount    int     `json:"spawnCount"`
	Killed        int     `json:"killed"`
	Escaped       int     `json:"escaped"`
	KillRatio     float64 `json:"killRatio"`
	Threshold     float64 `json:"threshold"`
	PenaltyFactor float64 `json:"penaltyFactor"`
	RewardGold    float64 `json:"rewardGold"`
	RewardPoints  float64 `json:"rewardPoints"`
	XPGain        float64 `json:"xpGain"`
	LevelUps      int     `json:"levelUps"`
	ResearchDone  string  `json:"researchDone,omitempty"`
	BaseHealth    float64 `json:"baseHealth"`
}

// GameOverSummary accompanies the terminal event.
type GameOverSummary struct {
	Wave  int            `json:"wave"`
	Stats state.RunStats `json:"stats"`
}

// EnemyView is a read-only projection of one live enemy.
type EnemyView struct {
	ID          types.EntityID `json:"id"`
	Pos         geom.Vec2      `json:"pos"`
	HP          float64        `json:"hp"`
	MaxHP       float64        `json:"maxHp"`
	Armor       float64        `json:"armor"`
	ArchetypeID string         `json:"archetypeId"`
}

// ProjectileView is a read-only projection of one in-flight projectile.
type ProjectileView struct {
	ID       types.EntityID `json:"id"`
	Pos      geom.Vec2      `json:"pos"`
	TargetID types.EntityID `json:"targetId"`
	Crit     bool           `json:"crit"`
}

// EngineSnapshot is the full read-only view handed to hosts: progression
// state, wave runtime and entity projections. Nothing in it aliases engine
// memory.
type EngineSnapshot struct {
	Phase     component.Phase `json:"phase"`
	Paused    bool            `json:"paused"`
	TimeScale int             `json:"timeScale"`
	SimTime   float64         `json:"simTime"`

	State       *state.GameState          `json:"state"`
	WaveSnap    wave.Snapshot             `json:"waveSnapshot"`
	Killed      int                       `json:"killed"`
	Escaped     int                       `json:"escaped"`
	Ability     component.AbilityRuntime  `json:"ability"`
	Enemies     []EnemyView               `json:"enemies"`
	Projectiles []ProjectileView          `json:"projectiles"`
	Reports     []*WaveReport             `json:"reports"`
}

// Snapshot captures the engine's externally visible state at this instant.
func (g *Game) Snapshot() *EngineSnapshot {
	snap := &EngineSnapshot{
		Phase:     g.phase,
		Paused:    g.paused,
		TimeScale: g.timeScale,
		SimTime:   g.simTime,
		State:     g.state.Clone(),
		WaveSnap:  g.waveSnap,
		Killed:    g.killed,
		Escaped:   g.escaped,
		Ability:   g.abilities.Runtime(),
		Reports:   append([]*WaveReport(nil), g.reports...),
	}

	for _, id := range g.ecs.SortedEnemyIDs() {
		enemy := g.ecs.Enemies[id]
		pos := g.ecs.Positions[id]
		health := g.ecs.Healths[id]
		if enemy.Escaped || pos == nil || health == nil {
			continue
		}
		snap.Enemies = append(snap.Enemies, EnemyView{
			ID:          id,
			Pos:         pos.Pos,
			HP:          health.Value,
			MaxHP:       health.Max,
			Armor:       enemy.Armor,
			ArchetypeID: enemy.ArchetypeID,
		})
	}
	for _, id := range g.ecs.SortedProjectileIDs() {
		proj := g.ecs.Projectiles[id]
		pos := g.ecs.Positions[id]
		if pos == nil {
			continue
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID:       id,
			Pos:      pos.Pos,
			TargetID: proj.TargetID,
			Crit:     proj.CritMult > 1,
		})
	}
	return snap
}

// ApplyMode selects how SetSnapshot treats in-flight wave runtime.
type ApplyMode string

const (
	// ApplyHard replaces everything and parks the engine between waves.
	ApplyHard ApplyMode = "hard"
	// ApplySoft swaps progression state under a running wave, keeping the
	// frozen snapshot, spawn plan and live entities. Requires the incoming
	// record to be on the same wave; otherwise it degrades to hard.
	ApplySoft ApplyMode = "soft"
)

// ApplyReport describes what SetSnapshot actually did.
type ApplyReport struct {
	Mode     ApplyMode `json:"mode"`
	Degraded bool      `json:"degraded"`
}

// SetSnapshot installs an externally supplied record. Input is sanitized
// field by field, never rejected wholesale: a damaged record loads as the
// nearest valid state.
func (g *Game) SetSnapshot(incoming *state.GameState, mode ApplyMode) ApplyReport {
	report := ApplyReport{Mode: mode}
	if incoming == nil {
		report.Degraded = true
		return report
	}

	clean := incoming.Clone()
	state.Sanitize(clean)

	if mode == ApplySoft {
		if g.phase == component.PhaseSpawningAndActive && clean.Wave == g.state.Wave {
			g.state = clean
			g.refreshDerived()
			g.dispatcher.Dispatch(event.Event{Type: event.StateChanged, Data: g.state.Clone()})
			return report
		}
		report.Degraded = true
	}

	g.state = clean
	g.gameOver = false
	g.ecs.Clear()
	g.plan = nil
	g.planCursor = 0
	g.simTime = 0
	g.killed = 0
	g.escaped = 0
	g.accumulator = 0
	g.waveSnap = wave.Snapshot{}
	g.phase = component.PhaseAwaitingContinue
	if g.state.BaseHealth <= 0 {
		g.state.BaseHealth = 1
	}
	g.refreshDerived()
	g.dispatcher.Dispatch(event.Event{Type: event.StateChanged, Data: g.state.Clone()})
	return report
}
