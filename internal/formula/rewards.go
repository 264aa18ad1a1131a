// internal/formula/rewards.go
package formula

import (
	"math"

	"go-wave-defense/internal/config"
	"go-wave-defense/internal/defs"
	"go-wave-defense/internal/passive"
	"go-wave-defense/internal/types"
)

// KillRatioThreshold rises logarithmically with wave and clamps to the
// configured band.
func KillRatioThreshold(wave int, bal config.Balance) float64 {
	w := math.Max(1, float64(wave))
	th := bal.ThresholdBase + bal.ThresholdLogK*math.Log(w)
	return clamp(th, bal.ThresholdMin, bal.ThresholdMax)
}

// Deficit is the normalized shortfall below the threshold, 0 when the ratio
// meets it. Both reward shrinkage and escape-damage amplification consume
// this one value, which keeps the two coherent.
func Deficit(killRatio, threshold float64) float64 {
	if threshold <= 0 || killRatio >= threshold {
		return 0
	}
	return clamp((threshold-killRatio)/threshold, 0, 1)
}

// PenaltyFactor shrinks rewards when the kill ratio misses the threshold.
// Non-increasing in the deficit; exactly 1 at or above the threshold.
func PenaltyFactor(killRatio, threshold float64, bal config.Balance) float64 {
	d := Deficit(killRatio, threshold)
	if d == 0 {
		return 1
	}
	return clamp(1-bal.PenaltyK*d, bal.PenaltyMin, 1)
}

// BaseGold follows a power law of the wave's effective-HP budget.
func BaseGold(hpBudget float64, bal config.Balance) float64 {
	return bal.GoldK * math.Pow(math.Max(1, hpBudget), bal.GoldExp)
}

// PointsReward steps up exponentially per 10-wave tier with a mild
// within-tier ramp.
func PointsReward(wave int, bal config.Balance) float64 {
	if wave < 1 {
		wave = 1
	}
	tier := (wave - 1) / 10
	return bal.PointsBase * math.Pow(bal.PointsTierMult, float64(tier)) * (1 + bal.PointsWaveStep*float64((wave-1)%10))
}

// XPGain mirrors PointsReward with its own coefficients.
func XPGain(wave int, bal config.Balance) float64 {
	if wave < 1 {
		wave = 1
	}
	tier := (wave - 1) / 10
	return bal.XPBase * math.Pow(bal.XPTierMult, float64(tier)) * (1 + bal.XPWaveStep*float64((wave-1)%10))
}

// XPForLevel is the cost of advancing from the given level to the next.
func XPForLevel(level int, bal config.Balance) float64 {
	if level < 1 {
		level = 1
	}
	return bal.XPLevelBase * math.Pow(bal.XPLevelGrowth, float64(level-1))
}

// WaveRewards applies penalty and bundle multipliers to the frozen snapshot
// values. Same inputs always yield the same deltas.
func WaveRewards(hpBudget float64, wave int, penalty float64, bal config.Balance, mods passive.Bundle) (gold, points, xp float64) {
	gold = BaseGold(hpBudget, bal) * penalty * mods.GoldMult
	points = PointsReward(wave, bal) * penalty * mods.PointsMult
	xp = XPGain(wave, bal) * penalty * mods.XPMult
	return gold, points, xp
}

// PerEscapeDamage is the base-health hit for one escaping enemy, amplified by
// the live deficit against the frozen threshold.
func PerEscapeDamage(wave int, deficit float64, bal config.Balance) float64 {
	w := math.Max(1, float64(wave))
	dmg := config.EscapeDamageBase * (1 + config.EscapeDamageWaveK*math.Sqrt(w))
	return dmg * (1 + config.EscapeDamageDeficitK*clamp(deficit, 0, 1))
}

// UpgradeCost is the gold price of buying level -> level+1 on a track.
func UpgradeCost(track types.UpgradeTrackID, level int, bal config.Balance) float64 {
	def, ok := defs.UpgradeLibrary[track]
	if !ok {
		return math.Inf(1)
	}
	if level < 0 {
		level = 0
	}
	return math.Ceil(def.BaseCost * math.Pow(def.CostGrowth, float64(level)))
}

// BulkUpgradeCost prices n sequential levels starting at level. Levels past
// the track cap are not charged.
func BulkUpgradeCost(track types.UpgradeTrackID, level, n int, bal config.Balance) float64 {
	def, ok := defs.UpgradeLibrary[track]
	if !ok || n <= 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < n && level+i < def.MaxLevel; i++ {
		total += UpgradeCost(track, level+i, bal)
	}
	return total
}

// MaxAffordableLevels returns how many sequential levels the given gold buys.
func MaxAffordableLevels(track types.UpgradeTrackID, level int, gold float64, bal config.Balance) int {
	def, ok := defs.UpgradeLibrary[track]
	if !ok {
		return 0
	}
	bought := 0
	for level+bought < def.MaxLevel {
		cost := UpgradeCost(track, level+bought, bal)
		if cost > gold {
			break
		}
		gold -= cost
		bought++
	}
	return bought
}

// ResearchCost is the gold price of starting the next research level.
func ResearchCost(key string, level int, bal config.Balance) float64 {
	def, ok := defs.ResearchLibrary[key]
	if !ok {
		return math.Inf(1)
	}
	if level < 0 {
		level = 0
	}
	return math.Ceil(def.BaseCost * math.Pow(def.CostGrowth, float64(level)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
