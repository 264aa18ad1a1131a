// internal/formula/formula.go
//
// Pure, total functions mapping (state, balance, modifiers) to derived
// numbers. Nothing in this package consumes entropy: apparent variety comes
// from hash rotations of (wave, index), so a given input always reproduces
// the same output. Every division and exponentiation site is guarded so the
// tick path can never see NaN or Inf.
package formula

import (
	"math"

	"go-wave-defense/internal/config"
	"go-wave-defense/internal/defs"
	"go-wave-defense/internal/passive"
	"go-wave-defense/internal/state"
)

// DamagePerShot is the raw per-projectile damage before crit, conditionals
// and armor. Exponential on upgrade level, scaled and offset by the bundle,
// floored at 1.
func DamagePerShot(gs *state.GameState, bal config.Balance, mods passive.Bundle) float64 {
	level := gs.Upgrades[defs.TrackDamage]
	base := bal.DamageBase * math.Pow(bal.DamageGrowth, float64(level))
	dmg := base*mods.DamageMult + mods.DamageFlat
	return math.Max(1, dmg)
}

// FireRate grows logarithmically with upgrade level and is hard-capped, so
// fire-rate stacking stays sub-linear by construction.
func FireRate(gs *state.GameState, bal config.Balance, mods passive.Bundle) float64 {
	level := gs.Upgrades[defs.TrackFireRate]
	base := bal.FireRateBase * (1 + bal.FireRateLogK*math.Log(1+float64(level)))
	rate := base * mods.FireRateMult
	return math.Min(math.Max(rate, 0.1), bal.FireRateCap)
}

// Range is the targeting radius from the center, in world units.
func Range(gs *state.GameState, bal config.Balance, mods passive.Bundle) float64 {
	level := gs.Upgrades[defs.TrackRange]
	r := (bal.RangeBase + bal.RangeStep*math.Sqrt(float64(level))) * mods.RangeMult
	maxR := math.Hypot(config.ArenaWidth, config.ArenaHeight) / 2
	return math.Min(math.Max(r, config.BaseRadius), maxR)
}

// ShotCount is how many projectiles one fire event spawns: base multi-shot
// level plus flat bonuses, floored and capped.
func ShotCount(gs *state.GameState, mods passive.Bundle) int {
	n := 1 + gs.Upgrades[defs.TrackMultiShot] + int(math.Floor(mods.MultiShot))
	if n < 1 {
		n = 1
	}
	if n > config.MultiShotCap {
		n = config.MultiShotCap
	}
	return n
}

// CritCadence converts the summed chance-style crit terms into a strict
// "every Nth shot crits" cadence. Returns 0 when crits never fire.
func CritCadence(gs *state.GameState, bal config.Balance, mods passive.Bundle) int {
	level := gs.Upgrades[defs.TrackCrit]
	chance := bal.CritChanceBase*float64(level) + mods.CritChance
	if chance <= 0 {
		return 0
	}
	if chance > 1 {
		chance = 1
	}
	n := int(math.Round(1 / chance))
	if n < config.CritCadenceMin {
		n = config.CritCadenceMin
	}
	return n
}

// CritMultiplier is the damage factor applied on a crit shot.
func CritMultiplier(gs *state.GameState, bal config.Balance, mods passive.Bundle) float64 {
	level := gs.Upgrades[defs.TrackCrit]
	return bal.CritMultBase + bal.CritMultStep*float64(level) + mods.CritMult
}

// TowerDPS is the closed-form expected damage per second the difficulty
// budget is derived from.
func TowerDPS(gs *state.GameState, bal config.Balance, mods passive.Bundle) float64 {
	dmg := DamagePerShot(gs, bal, mods)
	rate := FireRate(gs, bal, mods)
	shots := float64(ShotCount(gs, mods))

	critFactor := 1.0
	if cadence := CritCadence(gs, bal, mods); cadence > 0 {
		critFactor = 1 + (CritMultiplier(gs, bal, mods)-1)/float64(cadence)
	}
	return dmg * rate * shots * critFactor
}

// HPBudget is the total effective HP distributed across a wave's enemies.
func HPBudget(wave int, dps float64, bal config.Balance) float64 {
	w := math.Max(1, float64(wave))
	budget := dps * bal.BudgetTimeFactor * (1 + bal.BudgetWaveK*math.Log(w))
	return math.Max(bal.BudgetMin, budget)
}

// SpawnCount for a wave: nMin + floor(u*sqrt(wave) + v*ln(1+wave)), clamped
// to the quality tier's ceiling.
func SpawnCount(wave int, bal config.Balance, qualityTier string) int {
	w := math.Max(1, float64(wave))
	n := bal.SpawnCountMin + int(math.Floor(bal.SpawnCountSqrtK*math.Sqrt(w)+bal.SpawnCountLogK*math.Log(1+w)))
	if n < 1 {
		n = 1
	}
	if cap := bal.SpawnCap(qualityTier); n > cap {
		n = cap
	}
	return n
}

// SpawnTime front-loads the schedule with a power law; on "burst" pattern
// waves the curve blends toward linear spacing. Purely cosmetic pacing
// variety, fully reproducible.
func SpawnTime(wave, index, count int, bal config.Balance) float64 {
	if count <= 1 {
		return 0
	}
	frac := float64(index) / float64(count-1)
	power := math.Pow(frac, math.Max(0.1, bal.SpawnFrontLoadP))
	t := power
	if burstWave(wave, bal) {
		t = bal.BurstBlend*frac + (1-bal.BurstBlend)*power
	}
	return bal.SpawnWindow * t
}

func burstWave(wave int, bal config.Balance) bool {
	if bal.SpawnPatterns <= 1 {
		return false
	}
	pattern := (bal.SpawnPatternP1*wave + bal.SpawnPatternP2) % bal.SpawnPatterns
	return pattern == 0
}

// EnemyStats derives one planned enemy from the frozen snapshot inputs. The
// per-index wobble and archetype rotation are hash functions, not rolls.
func EnemyStats(wave, index int, hpBudget float64, spawnCount int, bal config.Balance) (hp, armor, speed float64, archetype defs.ArchetypeDefinition) {
	arch := ArchetypeFor(wave, index, bal)

	share := hpBudget / math.Max(1, float64(spawnCount))
	hp = math.Max(1, share*indexVariation(index, bal)*arch.HPMult)

	w := math.Max(1, float64(wave))
	armor = math.Min(bal.ArmorCap, bal.ArmorK*math.Log(1+w)) + arch.ArmorBonus
	armor = math.Max(0, math.Floor(armor))

	speed = bal.SpeedBase * (1 + bal.SpeedWaveK*(math.Sqrt(w)-1)) * arch.SpeedMult
	speed = math.Min(math.Max(speed, 5), bal.SpeedCap)
	return hp, armor, speed, arch
}

// indexVariation is a small deterministic wobble around 1.0 driven by
// index mod M, so enemies in one wave differ without RNG.
func indexVariation(index int, bal config.Balance) float64 {
	m := bal.VariationPeriod
	if m < 2 {
		return 1
	}
	step := float64(index%m) / float64(m-1) // 0..1
	return 1 - bal.VariationSpread/2 + bal.VariationSpread*step
}

// ArchetypeFor rotates through the archetype library via a hash of
// (A*wave + B*index + C). Same inputs, same archetype, always.
func ArchetypeFor(wave, index int, bal config.Balance) defs.ArchetypeDefinition {
	k := len(defs.ArchetypeLibrary)
	if k == 0 {
		return defs.ArchetypeDefinition{ID: "ARCH_NONE", HPMult: 1, SpeedMult: 1}
	}
	seed := uint64(bal.ArchRotA*wave + bal.ArchRotB*index + bal.ArchRotC)
	return defs.ArchetypeLibrary[int(Hash64(seed)%uint64(k))]
}

// Hash64 is a xorshift64 step: a cheap, well-distributed deterministic hash
// used wherever the simulation wants the appearance of randomness.
func Hash64(v uint64) uint64 {
	v ^= v << 13
	v ^= v >> 7
	v ^= v << 17
	if v == 0 {
		return 0x9e3779b97f4a7c15
	}
	return v
}
