package passive

import (
	"testing"

	"go-wave-defense/internal/defs"
	"go-wave-defense/internal/state"
)

func TestAggregateFreshState(t *testing.T) {
	got := Aggregate(state.New())

	if got.DamageMult != 1 || got.FireRateMult != 1 || got.RangeMult != 1 {
		t.Errorf("fresh multipliers not identity: %+v", got)
	}
	if got.GoldMult != 1 || got.PointsMult != 1 || got.XPMult != 1 {
		t.Errorf("fresh reward multipliers not identity: %+v", got)
	}
	if got.DamageFlat != 0 || got.CritChance != 0 || got.RegenPerSec != 0 {
		t.Errorf("fresh additive fields not zero: %+v", got)
	}
}

func TestAggregateSkillRanks(t *testing.T) {
	gs := state.New()
	gs.Skills["SKILL_SHARPENING"] = 2 // 1.05 multiplicative per rank

	got := Aggregate(gs)
	want := 1.05 * 1.05
	if got.DamageMult != want {
		t.Errorf("damage mult = %v, want %v", got.DamageMult, want)
	}
}

func TestAggregateStacksSources(t *testing.T) {
	gs := state.New()
	gs.Skills["SKILL_KEEN_EYE"] = 3          // +0.02 crit chance per rank
	gs.Research["RES_BALLISTICS"] = 2        // x1.03 damage per level
	gs.UnlockedItems = []string{"ITEM_OVERDRIVE_CORE"}
	gs.Equipped[defs.SlotCore] = "ITEM_OVERDRIVE_CORE" // x1.15 damage, x0.95 fire rate

	got := Aggregate(gs)

	if diff := got.CritChance - 0.06; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("crit chance = %v, want 0.06", got.CritChance)
	}
	wantDamage := 1.03 * 1.03 * 1.15
	if diff := got.DamageMult - wantDamage; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("damage mult = %v, want %v", got.DamageMult, wantDamage)
	}
	if got.FireRateMult != 0.95 {
		t.Errorf("fire rate mult = %v, want 0.95", got.FireRateMult)
	}
}

func TestAggregateClampsExtremes(t *testing.T) {
	gs := state.New()
	// Far beyond any reachable rank; the fold must clamp, not explode.
	gs.Skills["SKILL_SHARPENING"] = 1000
	gs.Skills["SKILL_KEEN_EYE"] = 1000
	gs.Skills["SKILL_PIERCING_ROUNDS"] = 1000

	got := Aggregate(gs)
	if got.DamageMult > 6 {
		t.Errorf("damage mult %v above clamp", got.DamageMult)
	}
	if got.CritChance > 0.5 {
		t.Errorf("crit chance %v above clamp", got.CritChance)
	}
	if got.ArmorPierce > 0.8 {
		t.Errorf("armor pierce %v above clamp", got.ArmorPierce)
	}
}

func TestAggregateIgnoresUnequippedItems(t *testing.T) {
	gs := state.New()
	gs.UnlockedItems = []string{"ITEM_OVERDRIVE_CORE"}

	got := Aggregate(gs)
	if got.DamageMult != 1 {
		t.Errorf("unequipped item leaked into bundle: damage mult %v", got.DamageMult)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	gs := state.New()
	gs.Skills["SKILL_SHARPENING"] = 5
	gs.Skills["SKILL_FIELD_REPAIR"] = 3
	gs.Research["RES_SMELTING"] = 4
	gs.UnlockedItems = []string{"ITEM_REGEN_MESH"}
	gs.Equipped[defs.SlotPlating] = "ITEM_REGEN_MESH"

	a := Aggregate(gs)
	for i := 0; i < 50; i++ {
		if b := Aggregate(gs); a != b {
			t.Fatalf("aggregation diverged on iteration %d: %+v vs %+v", i, a, b)
		}
	}
}
