// internal/state/sanitize.go
package state

import (
	"encoding/json"
	"fmt"
	"math"

	"go-wave-defense/internal/config"
	"go-wave-defense/internal/defs"
	"go-wave-defense/internal/types"
)

// Decode parses a persisted record and repairs it field by field. Malformed
// numeric fields clamp, missing fields default, unknown ids are dropped.
// Only non-JSON input is an error; a legacy or partial record never is.
func Decode(raw []byte) (*GameState, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse state record: %w", err)
	}

	// Migration chain: one pure rewrite per legacy shape, composed in order.
	fields = migrateV0(fields)
	fields = migrateV1(fields)

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode migrated record: %w", err)
	}
	gs := New()
	// Unknown fields are ignored, absent ones keep the New() defaults.
	_ = json.Unmarshal(merged, gs)
	Sanitize(gs)
	return gs, nil
}

// migrateV0 lifts pre-versioned saves: "coins" was renamed to "gold" and
// "stage" to "wave".
func migrateV0(fields map[string]json.RawMessage) map[string]json.RawMessage {
	if _, ok := fields["version"]; ok {
		return fields
	}
	out := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		switch k {
		case "coins":
			out["gold"] = v
		case "stage":
			out["wave"] = v
		default:
			out[k] = v
		}
	}
	return out
}

// migrateV1 splits the old single "currency" pool into gold, leaving points
// empty, and drops the retired "prestige" counter.
func migrateV1(fields map[string]json.RawMessage) map[string]json.RawMessage {
	var version int
	if raw, ok := fields["version"]; ok {
		_ = json.Unmarshal(raw, &version)
	}
	if version >= 2 {
		return fields
	}
	out := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		switch k {
		case "currency":
			out["gold"] = v
		case "prestige":
			// dropped in v2
		default:
			out[k] = v
		}
	}
	return out
}

// Sanitize repairs a decoded record in place: defaults for missing maps,
// clamps for out-of-range numerics, and removal of ids that no definition
// backs any more.
func Sanitize(gs *GameState) {
	gs.Version = CurrentVersion

	if gs.Wave < 1 {
		gs.Wave = 1
	}
	gs.BaseHealth = clampFinite(gs.BaseHealth, 0, config.BaseHealth)
	if gs.BaseHealth == 0 && gs.Wave == 1 {
		gs.BaseHealth = config.BaseHealth
	}
	gs.Gold = clampFinite(gs.Gold, 0, math.MaxFloat64)
	gs.Points = clampFinite(gs.Points, 0, math.MaxFloat64)
	gs.XP = clampFinite(gs.XP, 0, math.MaxFloat64)
	if gs.Level < 1 {
		gs.Level = 1
	}
	if gs.SkillPoints < 0 {
		gs.SkillPoints = 0
	}

	if gs.Upgrades == nil {
		gs.Upgrades = make(map[types.UpgradeTrackID]int)
	}
	for id, lvl := range gs.Upgrades {
		def, ok := defs.UpgradeLibrary[id]
		if !ok {
			delete(gs.Upgrades, id)
			continue
		}
		if lvl < 0 {
			gs.Upgrades[id] = 0
		} else if lvl > def.MaxLevel {
			gs.Upgrades[id] = def.MaxLevel
		}
	}

	if gs.Skills == nil {
		gs.Skills = make(map[string]int)
	}
	for id, rank := range gs.Skills {
		def, ok := defs.SkillLibrary[id]
		if !ok {
			delete(gs.Skills, id)
			continue
		}
		if rank < 0 {
			gs.Skills[id] = 0
		} else if rank > def.MaxRank {
			gs.Skills[id] = def.MaxRank
		}
	}

	if gs.Research == nil {
		gs.Research = make(map[string]int)
	}
	for key, lvl := range gs.Research {
		def, ok := defs.ResearchLibrary[key]
		if !ok {
			delete(gs.Research, key)
			continue
		}
		if lvl < 0 {
			gs.Research[key] = 0
		} else if lvl > def.MaxLevel {
			gs.Research[key] = def.MaxLevel
		}
	}
	if gs.ActiveResearch != nil {
		def, ok := defs.ResearchLibrary[gs.ActiveResearch.Key]
		if !ok || gs.ActiveResearch.WavesLeft <= 0 {
			gs.ActiveResearch = nil
		} else if gs.ActiveResearch.WavesLeft > def.Waves {
			gs.ActiveResearch.WavesLeft = def.Waves
		}
	}

	kept := gs.UnlockedItems[:0]
	for _, id := range gs.UnlockedItems {
		if _, ok := defs.ItemLibrary[id]; ok {
			kept = append(kept, id)
		}
	}
	gs.UnlockedItems = kept

	if gs.Equipped == nil {
		gs.Equipped = make(map[types.ItemSlot]string)
	}
	for slot, id := range gs.Equipped {
		def, ok := defs.ItemLibrary[id]
		if !ok || def.Slot != slot || !gs.HasItem(id) {
			delete(gs.Equipped, slot)
		}
	}

	if gs.Stats.Kills < 0 {
		gs.Stats.Kills = 0
	}
	if gs.Stats.Escapes < 0 {
		gs.Stats.Escapes = 0
	}
	if gs.Stats.WavesCleared < 0 {
		gs.Stats.WavesCleared = 0
	}
	if gs.Stats.BestWave < 0 {
		gs.Stats.BestWave = 0
	}
	gs.Stats.LifetimeGold = clampFinite(gs.Stats.LifetimeGold, 0, math.MaxFloat64)
}

// Encode serializes the record at the current version.
func Encode(gs *GameState) ([]byte, error) {
	gs.Version = CurrentVersion
	out, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state record: %w", err)
	}
	return out, nil
}

func clampFinite(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
