// internal/state/state.go
package state

import (
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/types"
)

// CurrentVersion is the shape of records this build writes.
const CurrentVersion = 2

// ResearchInFlight tracks the single research job currently running.
type ResearchInFlight struct {
	Key       string `json:"key"`
	WavesLeft int    `json:"wavesLeft"`
}

// RunStats accumulates lifetime statistics across waves.
type RunStats struct {
	Kills        int64   `json:"kills"`
	Escapes      int64   `json:"escapes"`
	WavesCleared int64   `json:"wavesCleared"`
	BestWave     int     `json:"bestWave"`
	LifetimeGold float64 `json:"lifetimeGold"`
}

// GameState is the only persisted record. It is a flat, versioned structure:
// everything transient (live entities, wave timers, ability charges) is
// rebuilt from it deterministically and never serialized.
type GameState struct {
	Version    int     `json:"version"`
	Wave       int     `json:"wave"`
	BaseHealth float64 `json:"baseHealth"`

	Gold        float64 `json:"gold"`
	Points      float64 `json:"points"`
	XP          float64 `json:"xp"`
	Level       int     `json:"level"`
	SkillPoints int     `json:"skillPoints"`

	Upgrades map[types.UpgradeTrackID]int `json:"upgrades"`
	Skills   map[string]int               `json:"skills"`
	Research map[string]int               `json:"research"`

	ActiveResearch *ResearchInFlight `json:"activeResearch,omitempty"`

	UnlockedItems []string                  `json:"unlockedItems"`
	Equipped      map[types.ItemSlot]string `json:"equipped"`

	Stats RunStats `json:"stats"`
}

// New returns a fresh run at wave 1.
func New() *GameState {
	return &GameState{
		Version:    CurrentVersion,
		Wave:       1,
		BaseHealth: config.BaseHealth,
		Level:      1,
		Upgrades:   make(map[types.UpgradeTrackID]int),
		Skills:     make(map[string]int),
		Research:   make(map[string]int),
		Equipped:   make(map[types.ItemSlot]string),
	}
}

// Clone deep-copies the record so snapshots handed to the host can never
// alias live engine state.
func (s *GameState) Clone() *GameState {
	out := *s
	out.Upgrades = make(map[types.UpgradeTrackID]int, len(s.Upgrades))
	for k, v := range s.Upgrades {
		out.Upgrades[k] = v
	}
	out.Skills = make(map[string]int, len(s.Skills))
	for k, v := range s.Skills {
		out.Skills[k] = v
	}
	out.Research = make(map[string]int, len(s.Research))
	for k, v := range s.Research {
		out.Research[k] = v
	}
	out.Equipped = make(map[types.ItemSlot]string, len(s.Equipped))
	for k, v := range s.Equipped {
		out.Equipped[k] = v
	}
	out.UnlockedItems = append([]string(nil), s.UnlockedItems...)
	if s.ActiveResearch != nil {
		r := *s.ActiveResearch
		out.ActiveResearch = &r
	}
	return &out
}

// HasItem reports whether an item id has been unlocked.
func (s *GameState) HasItem(id string) bool {
	for _, have := range s.UnlockedItems {
		if have == id {
			return true
		}
	}
	return false
}
