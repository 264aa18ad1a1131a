// internal/config/balance.go
package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance holds every closed-form curve coefficient the formula engine
// consumes. It is loaded once at startup and never mutated at runtime.
type Balance struct {
	// Tower curves.
	DamageBase     float64 `yaml:"damage_base"`
	DamageGrowth   float64 `yaml:"damage_growth"` // exponential per upgrade level
	FireRateBase   float64 `yaml:"fire_rate_base"`
	FireRateLogK   float64 `yaml:"fire_rate_log_k"` // sub-linear on purpose
	FireRateCap    float64 `yaml:"fire_rate_cap"`
	RangeBase      float64 `yaml:"range_base"`
	RangeStep      float64 `yaml:"range_step"`
	CritChanceBase float64 `yaml:"crit_chance_base"` // per crit upgrade level
	CritMultBase   float64 `yaml:"crit_mult_base"`
	CritMultStep   float64 `yaml:"crit_mult_step"`

	// Enemy / wave difficulty curves.
	BudgetTimeFactor float64 `yaml:"budget_time_factor"` // seconds of tower DPS per wave
	BudgetWaveK      float64 `yaml:"budget_wave_k"`
	BudgetMin        float64 `yaml:"budget_min"`
	VariationPeriod  int     `yaml:"variation_period"` // M in the index-mod-M HP wobble
	VariationSpread  float64 `yaml:"variation_spread"`
	ArmorK           float64 `yaml:"armor_k"`
	ArmorCap         float64 `yaml:"armor_cap"`
	SpeedBase        float64 `yaml:"speed_base"`
	SpeedWaveK       float64 `yaml:"speed_wave_k"`
	SpeedCap         float64 `yaml:"speed_cap"`

	// Spawn schedule.
	SpawnCountMin   int     `yaml:"spawn_count_min"`
	SpawnCountSqrtK float64 `yaml:"spawn_count_sqrt_k"`
	SpawnCountLogK  float64 `yaml:"spawn_count_log_k"`
	SpawnWindow     float64 `yaml:"spawn_window"` // seconds over which the wave spawns
	SpawnFrontLoadP float64 `yaml:"spawn_front_load_p"`
	SpawnPatternP1  int     `yaml:"spawn_pattern_p1"`
	SpawnPatternP2  int     `yaml:"spawn_pattern_p2"`
	SpawnPatterns   int     `yaml:"spawn_patterns"`
	BurstBlend      float64 `yaml:"burst_blend"`

	// Kill-ratio threshold and penalty.
	ThresholdBase float64 `yaml:"threshold_base"`
	ThresholdLogK float64 `yaml:"threshold_log_k"`
	ThresholdMin  float64 `yaml:"threshold_min"`
	ThresholdMax  float64 `yaml:"threshold_max"`
	PenaltyK      float64 `yaml:"penalty_k"`
	PenaltyMin    float64 `yaml:"penalty_min"`

	// Rewards and progression.
	GoldK           float64 `yaml:"gold_k"`
	GoldExp         float64 `yaml:"gold_exp"`
	PointsBase      float64 `yaml:"points_base"`
	PointsTierMult  float64 `yaml:"points_tier_mult"` // per 10-wave tier
	PointsWaveStep  float64 `yaml:"points_wave_step"`
	XPBase          float64 `yaml:"xp_base"`
	XPTierMult      float64 `yaml:"xp_tier_mult"`
	XPWaveStep      float64 `yaml:"xp_wave_step"`
	XPLevelBase     float64 `yaml:"xp_level_base"`
	XPLevelGrowth   float64 `yaml:"xp_level_growth"`
	SkillPointsPerLevel int `yaml:"skill_points_per_level"`

	// Archetype rotation constants ((A*wave + B*index + C) hashed, mod K).
	ArchRotA int `yaml:"arch_rot_a"`
	ArchRotB int `yaml:"arch_rot_b"`
	ArchRotC int `yaml:"arch_rot_c"`

	// Per-quality-tier ceiling on live enemy count. This is the one place a
	// presentation setting feeds simulation math, to bound entity counts on
	// constrained hosts.
	SpawnCaps map[string]int `yaml:"spawn_caps"`
}

// DefaultBalance returns the shipped tuning. A YAML file can override it.
func DefaultBalance() Balance {
	return Balance{
		DamageBase:     30.0,
		DamageGrowth:   1.12,
		FireRateBase:   1.0,
		FireRateLogK:   0.35,
		FireRateCap:    8.0,
		RangeBase:      220.0,
		RangeStep:      14.0,
		CritChanceBase: 0.05,
		CritMultBase:   1.5,
		CritMultStep:   0.1,

		BudgetTimeFactor: 22.0,
		BudgetWaveK:      0.45,
		BudgetMin:        150.0,
		VariationPeriod:  7,
		VariationSpread:  0.5,
		ArmorK:           1.8,
		ArmorCap:         14.0,
		SpeedBase:        55.0,
		SpeedWaveK:       0.16,
		SpeedCap:         180.0,

		SpawnCountMin:   6,
		SpawnCountSqrtK: 2.2,
		SpawnCountLogK:  1.4,
		SpawnWindow:     26.0,
		SpawnFrontLoadP: 1.6,
		SpawnPatternP1:  5,
		SpawnPatternP2:  3,
		SpawnPatterns:   7,
		BurstBlend:      0.65,

		ThresholdBase: 0.42,
		ThresholdLogK: 0.055,
		ThresholdMin:  0.40,
		ThresholdMax:  0.85,
		PenaltyK:      1.2,
		PenaltyMin:    0.25,

		GoldK:          1.6,
		GoldExp:        0.72,
		PointsBase:     12.0,
		PointsTierMult: 1.9,
		PointsWaveStep: 0.08,
		XPBase:         20.0,
		XPTierMult:     1.7,
		XPWaveStep:     0.06,
		XPLevelBase:    100.0,
		XPLevelGrowth:  1.35,
		SkillPointsPerLevel: 1,

		ArchRotA: 13,
		ArchRotB: 7,
		ArchRotC: 5,

		SpawnCaps: map[string]int{
			"low":    24,
			"medium": 48,
			"high":   96,
		},
	}
}

// LoadBalance reads a YAML override on top of the defaults. A missing path
// returns the defaults untouched.
func LoadBalance(path string) (Balance, error) {
	bal := DefaultBalance()
	if path == "" {
		return bal, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return bal, fmt.Errorf("failed to read balance file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &bal); err != nil {
		return bal, fmt.Errorf("failed to unmarshal balance file: %w", err)
	}
	log.Printf("Loaded balance overrides from %s", path)
	return bal, nil
}

// SpawnCap returns the live-enemy ceiling for a quality tier, falling back to
// the most permissive tier for unknown names.
func (b Balance) SpawnCap(tier string) int {
	if cap, ok := b.SpawnCaps[tier]; ok && cap > 0 {
		return cap
	}
	best := 0
	for _, c := range b.SpawnCaps {
		if c > best {
			best = c
		}
	}
	if best == 0 {
		best = 96
	}
	return best
}
