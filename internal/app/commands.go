// internal/app/commands.go
package app

import (
	"go-wave-defense/internal/component"
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/defs"
	"go-wave-defense/internal/event"
	"go-wave-defense/internal/formula"
	"go-wave-defense/internal/state"
	"go-wave-defense/internal/types"
)

// BuyAmount selects how many upgrade levels a purchase attempts.
type BuyAmount int

const (
	BuyOne BuyAmount = 1
	BuyTen BuyAmount = 10
	// BuyMax spends down to the last affordable level on the track.
	BuyMax BuyAmount = -1
)

// ContinueNextWave starts the next wave when the engine is parked between
// waves. Returns false in any other phase.
func (g *Game) ContinueNextWave() bool {
	if g.phase != component.PhaseAwaitingContinue || g.gameOver {
		return false
	}
	g.startWave()
	return true
}

// SetPaused freezes or resumes the tick loop. Pausing drops the accumulator
// so resume does not replay the paused span.
func (g *Game) SetPaused(paused bool) {
	if paused && !g.paused {
		g.accumulator = 0
	}
	g.paused = paused
}

func (g *Game) IsPaused() bool {
	return g.paused
}

// SetTimeScale accepts integer speeds 1 through the configured cap.
func (g *Game) SetTimeScale(scale int) bool {
	if scale < 1 || scale > config.MaxTimeScale {
		return false
	}
	g.timeScale = scale
	return true
}

func (g *Game) TimeScale() int {
	return g.timeScale
}

// BuyUpgrade spends gold on an upgrade track. Partial fills are allowed for
// bulk amounts: buying ten with gold for three buys three. Returns the number
// of levels bought.
func (g *Game) BuyUpgrade(track types.UpgradeTrackID, amount BuyAmount) int {
	if g.gameOver {
		return 0
	}
	def, ok := defs.UpgradeLibrary[track]
	if !ok {
		return 0
	}
	level := g.state.Upgrades[track]

	want := int(amount)
	if amount == BuyMax {
		want = def.MaxLevel - level
	}
	if want <= 0 {
		return 0
	}

	affordable := formula.MaxAffordableLevels(track, level, g.state.Gold, g.bal)
	if affordable < want {
		want = affordable
	}
	if want <= 0 {
		return 0
	}

	cost := formula.BulkUpgradeCost(track, level, want, g.bal)
	g.state.Gold -= cost
	g.state.Upgrades[track] = level + want
	g.onStateChanged()
	return want
}

// BuySkill spends skill points on one rank of a skill-tree node.
func (g *Game) BuySkill(id string) bool {
	if g.gameOver {
		return false
	}
	def, ok := defs.SkillLibrary[id]
	if !ok {
		return false
	}
	rank := g.state.Skills[id]
	if rank >= def.MaxRank || g.state.SkillPoints < def.Cost {
		return false
	}
	g.state.SkillPoints -= def.Cost
	g.state.Skills[id] = rank + 1
	g.onStateChanged()
	return true
}

// RespecSkills refunds every spent skill point and clears all ranks.
func (g *Game) RespecSkills() {
	if g.gameOver {
		return
	}
	refund := 0
	for id, rank := range g.state.Skills {
		if def, ok := defs.SkillLibrary[id]; ok {
			refund += def.Cost * rank
		}
	}
	g.state.Skills = make(map[string]int)
	g.state.SkillPoints += refund
	g.onStateChanged()
}

// StartResearch pays gold to begin the next level of a research line. Only
// one job runs at a time; it advances one step per cleared wave.
func (g *Game) StartResearch(key string) bool {
	if g.gameOver || g.state.ActiveResearch != nil {
		return false
	}
	def, ok := defs.ResearchLibrary[key]
	if !ok {
		return false
	}
	level := g.state.Research[key]
	if level >= def.MaxLevel {
		return false
	}
	cost := formula.ResearchCost(key, level, g.bal)
	if g.state.Gold < cost {
		return false
	}
	g.state.Gold -= cost
	g.state.ActiveResearch = &state.ResearchInFlight{Key: key, WavesLeft: def.Waves}
	g.onStateChanged()
	return true
}

// UnlockItem spends points to add an item to the unlocked pool.
func (g *Game) UnlockItem(id string) bool {
	if g.gameOver {
		return false
	}
	def, ok := defs.ItemLibrary[id]
	if !ok || g.state.HasItem(id) {
		return false
	}
	if g.state.Points < def.UnlockCost {
		return false
	}
	g.state.Points -= def.UnlockCost
	g.state.UnlockedItems = append(g.state.UnlockedItems, id)
	g.onStateChanged()
	return true
}

// EquipItem places an unlocked item in its slot, or clears the slot when id
// is empty. The item's declared slot must match.
func (g *Game) EquipItem(slot types.ItemSlot, id string) bool {
	if g.gameOver {
		return false
	}
	if !validSlot(slot) {
		return false
	}
	if id == "" {
		delete(g.state.Equipped, slot)
		g.onStateChanged()
		return true
	}
	def, ok := defs.ItemLibrary[id]
	if !ok || def.Slot != slot || !g.state.HasItem(id) {
		return false
	}
	g.state.Equipped[slot] = id
	g.onStateChanged()
	return true
}

func validSlot(slot types.ItemSlot) bool {
	for _, s := range defs.ItemSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// onStateChanged recomputes derived values and notifies subscribers. Note
// that the wave snapshot is deliberately NOT rebuilt: mid-wave purchases
// change the tower, never the wave's difficulty contract.
func (g *Game) onStateChanged() {
	g.refreshDerived()
	g.dispatcher.Dispatch(event.Event{Type: event.StateChanged, Data: g.state.Clone()})
}
