// internal/passive/aggregator.go
package passive

import (
	"go-wave-defense/internal/defs"
	"go-wave-defense/internal/state"
)

// Bundle is the folded result of every unlocked passive source. The formula
// engine consumes it; it is derived, cheap to rebuild and never persisted.
type Bundle struct {
	DamageMult   float64
	DamageFlat   float64
	FireRateMult float64
	RangeMult    float64
	MultiShot    float64
	CritChance   float64
	CritMult     float64
	ArmorPierce  float64

	GoldMult   float64
	PointsMult float64
	XPMult     float64

	RegenPerSec          float64
	ShieldFullCharges    float64
	ShieldPartialCharges float64
	ShieldPartialBlock   float64
	StepShieldBlock      float64
	RefundOnLowHealth    float64
	EmergencyHeal        float64
	WaveEndHeal          float64

	ComboMaxStacks float64
	ComboDamage    float64
	ExecuteBonus   float64
	OpeningBonus   float64
	BurstTime      float64
	BurstMult      float64
}

// clampRange bounds one field after folding so independent progression
// systems cannot stack a term past its documented safe range.
type clampRange struct {
	base, min, max float64
}

var clamps = map[defs.ModField]clampRange{
	defs.FieldDamageMult:   {base: 1, min: 0.2, max: 6},
	defs.FieldDamageFlat:   {base: 0, min: 0, max: 500},
	defs.FieldFireRateMult: {base: 1, min: 0.5, max: 3},
	defs.FieldRangeMult:    {base: 1, min: 0.5, max: 2.5},
	defs.FieldMultiShot:    {base: 0, min: 0, max: 6},
	defs.FieldCritChance:   {base: 0, min: 0, max: 0.5},
	defs.FieldCritMult:     {base: 0, min: 0, max: 2.5},
	defs.FieldArmorPierce:  {base: 0, min: 0, max: 0.8},

	defs.FieldGoldMult:   {base: 1, min: 0.5, max: 4},
	defs.FieldPointsMult: {base: 1, min: 0.5, max: 4},
	defs.FieldXPMult:     {base: 1, min: 0.5, max: 4},

	defs.FieldRegenPerSec:          {base: 0, min: 0, max: 50},
	defs.FieldShieldFullCharges:    {base: 0, min: 0, max: 3},
	defs.FieldShieldPartialCharges: {base: 0, min: 0, max: 6},
	defs.FieldShieldPartialBlock:   {base: 0, min: 0, max: 0.9},
	defs.FieldStepShieldBlock:      {base: 0, min: 0, max: 0.6},
	defs.FieldRefundOnLowHealth:    {base: 0, min: 0, max: 0.5},
	defs.FieldEmergencyHeal:        {base: 0, min: 0, max: 100},
	defs.FieldWaveEndHeal:          {base: 0, min: 0, max: 60},

	defs.FieldComboMaxStacks: {base: 0, min: 0, max: 8},
	defs.FieldComboDamage:    {base: 0, min: 0, max: 0.4},
	defs.FieldExecuteBonus:   {base: 0, min: 0, max: 0.6},
	defs.FieldOpeningBonus:   {base: 0, min: 0, max: 0.6},
	defs.FieldBurstTime:      {base: 0, min: 0, max: 12},
	defs.FieldBurstMult:      {base: 0, min: 0, max: 1},
}

// accumulator folds contributions for one field. Additive and multiplicative
// terms accumulate independently and combine as (base + add) * mul.
type accumulator struct {
	add float64
	mul float64
}

// Aggregate walks every purchased skill rank, completed research level and
// equipped item exactly once and folds their contributions into a Bundle.
// It is pure and idempotent; the engine calls it whenever progression state
// changes (never per tick).
func Aggregate(gs *state.GameState) Bundle {
	acc := make(map[defs.ModField]*accumulator, len(clamps))

	apply := func(contribs []defs.Contribution, times int) {
		for _, c := range contribs {
			a, ok := acc[c.Field]
			if !ok {
				a = &accumulator{mul: 1}
				acc[c.Field] = a
			}
			switch c.Op {
			case defs.OpAdd:
				a.add += c.Value * float64(times)
			case defs.OpMultiply:
				for i := 0; i < times; i++ {
					a.mul *= c.Value
				}
			}
		}
	}

	// Fixed iteration order keeps float folding byte-identical across runs.
	for _, id := range defs.SortedSkillIDs() {
		rank := gs.Skills[id]
		if rank <= 0 {
			continue
		}
		apply(defs.SkillLibrary[id].PerRank, rank)
	}
	for _, key := range defs.SortedResearchKeys() {
		level := gs.Research[key]
		if level <= 0 {
			continue
		}
		apply(defs.ResearchLibrary[key].PerLevel, level)
	}
	for _, slot := range defs.ItemSlots {
		id, ok := gs.Equipped[slot]
		if !ok {
			continue
		}
		if def, found := defs.ItemLibrary[id]; found {
			apply(def.Mods, 1)
		}
	}

	resolve := func(field defs.ModField) float64 {
		c := clamps[field]
		v := c.base
		if a, ok := acc[field]; ok {
			v = (c.base + a.add) * a.mul
		}
		if v < c.min {
			v = c.min
		}
		if v > c.max {
			v = c.max
		}
		return v
	}

	return Bundle{
		DamageMult:   resolve(defs.FieldDamageMult),
		DamageFlat:   resolve(defs.FieldDamageFlat),
		FireRateMult: resolve(defs.FieldFireRateMult),
		RangeMult:    resolve(defs.FieldRangeMult),
		MultiShot:    resolve(defs.FieldMultiShot),
		CritChance:   resolve(defs.FieldCritChance),
		CritMult:     resolve(defs.FieldCritMult),
		ArmorPierce:  resolve(defs.FieldArmorPierce),

		GoldMult:   resolve(defs.FieldGoldMult),
		PointsMult: resolve(defs.FieldPointsMult),
		XPMult:     resolve(defs.FieldXPMult),

		RegenPerSec:          resolve(defs.FieldRegenPerSec),
		ShieldFullCharges:    resolve(defs.FieldShieldFullCharges),
		ShieldPartialCharges: resolve(defs.FieldShieldPartialCharges),
		ShieldPartialBlock:   resolve(defs.FieldShieldPartialBlock),
		StepShieldBlock:      resolve(defs.FieldStepShieldBlock),
		RefundOnLowHealth:    resolve(defs.FieldRefundOnLowHealth),
		EmergencyHeal:        resolve(defs.FieldEmergencyHeal),
		WaveEndHeal:          resolve(defs.FieldWaveEndHeal),

		ComboMaxStacks: resolve(defs.FieldComboMaxStacks),
		ComboDamage:    resolve(defs.FieldComboDamage),
		ExecuteBonus:   resolve(defs.FieldExecuteBonus),
		OpeningBonus:   resolve(defs.FieldOpeningBonus),
		BurstTime:      resolve(defs.FieldBurstTime),
		BurstMult:      resolve(defs.FieldBurstMult),
	}
}
