// internal/defs/types.go
package defs

// ModOp says how a contribution folds into its field.
type ModOp string

const (
	OpAdd      ModOp = "ADD"
	OpMultiply ModOp = "MULTIPLY"
)

// ModField enumerates every stat a passive source may contribute to. The
// aggregator folds contributions per field through one generic reducer, so
// adding a field here needs no new folding code.
type ModField string

const (
	FieldDamageMult   ModField = "damage_mult"
	FieldDamageFlat   ModField = "damage_flat"
	FieldFireRateMult ModField = "fire_rate_mult"
	FieldRangeMult    ModField = "range_mult"
	FieldMultiShot    ModField = "multi_shot"
	FieldCritChance   ModField = "crit_chance"
	FieldCritMult     ModField = "crit_mult"
	FieldArmorPierce  ModField = "armor_pierce"

	FieldGoldMult   ModField = "gold_mult"
	FieldPointsMult ModField = "points_mult"
	FieldXPMult     ModField = "xp_mult"

	FieldRegenPerSec          ModField = "regen_per_sec"
	FieldShieldFullCharges    ModField = "shield_full_charges"
	FieldShieldPartialCharges ModField = "shield_partial_charges"
	FieldShieldPartialBlock   ModField = "shield_partial_block"
	FieldStepShieldBlock      ModField = "step_shield_block"
	FieldRefundOnLowHealth    ModField = "refund_on_low_health"
	FieldEmergencyHeal        ModField = "emergency_heal"
	FieldWaveEndHeal          ModField = "wave_end_heal"

	FieldComboMaxStacks ModField = "combo_max_stacks"
	FieldComboDamage    ModField = "combo_damage"
	FieldExecuteBonus   ModField = "execute_bonus"
	FieldOpeningBonus   ModField = "opening_bonus"
	FieldBurstTime      ModField = "burst_time"
	FieldBurstMult      ModField = "burst_mult"
)

// Contribution is one typed (field, op, value) term declared by a skill rank,
// research level or item.
type Contribution struct {
	Field ModField `yaml:"field" json:"field"`
	Op    ModOp    `yaml:"op" json:"op"`
	Value float64  `yaml:"value" json:"value"`
}
