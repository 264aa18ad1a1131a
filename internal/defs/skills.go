// internal/defs/skills.go
package defs

// SkillDefinition holds one skill-tree node. PerRank contributions are applied
// once per purchased rank by the aggregator.
type SkillDefinition struct {
	ID      string         `yaml:"id" json:"id"`
	Name    string         `yaml:"name" json:"name"`
	MaxRank int            `yaml:"max_rank" json:"max_rank"`
	Cost    int            `yaml:"cost" json:"cost"` // skill points per rank
	PerRank []Contribution `yaml:"per_rank" json:"per_rank"`
}

// SkillLibrary maps skill id to its definition.
var SkillLibrary = map[string]SkillDefinition{
	"SKILL_SHARPENING": {
		ID: "SKILL_SHARPENING", Name: "Sharpening", MaxRank: 10, Cost: 1,
		PerRank: []Contribution{{Field: FieldDamageMult, Op: OpMultiply, Value: 1.05}},
	},
	"SKILL_RAPID_LOADER": {
		ID: "SKILL_RAPID_LOADER", Name: "Rapid Loader", MaxRank: 8, Cost: 1,
		PerRank: []Contribution{{Field: FieldFireRateMult, Op: OpMultiply, Value: 1.04}},
	},
	"SKILL_KEEN_EYE": {
		// Chance-style on paper; the engine converts the summed chance into a
		// strict 1-in-N shot cadence.
		ID: "SKILL_KEEN_EYE", Name: "Keen Eye", MaxRank: 10, Cost: 1,
		PerRank: []Contribution{{Field: FieldCritChance, Op: OpAdd, Value: 0.02}},
	},
	"SKILL_PIERCING_ROUNDS": {
		ID: "SKILL_PIERCING_ROUNDS", Name: "Piercing Rounds", MaxRank: 8, Cost: 1,
		PerRank: []Contribution{{Field: FieldArmorPierce, Op: OpAdd, Value: 0.06}},
	},
	"SKILL_EXECUTIONER": {
		ID: "SKILL_EXECUTIONER", Name: "Executioner", MaxRank: 5, Cost: 2,
		PerRank: []Contribution{{Field: FieldExecuteBonus, Op: OpAdd, Value: 0.06}},
	},
	"SKILL_FIRST_BLOOD": {
		ID: "SKILL_FIRST_BLOOD", Name: "First Blood", MaxRank: 5, Cost: 2,
		PerRank: []Contribution{{Field: FieldOpeningBonus, Op: OpAdd, Value: 0.05}},
	},
	"SKILL_COMBO_DRIVE": {
		ID: "SKILL_COMBO_DRIVE", Name: "Combo Drive", MaxRank: 5, Cost: 2,
		PerRank: []Contribution{
			{Field: FieldComboMaxStacks, Op: OpAdd, Value: 1},
			{Field: FieldComboDamage, Op: OpAdd, Value: 0.02},
		},
	},
	"SKILL_OPENING_BARRAGE": {
		ID: "SKILL_OPENING_BARRAGE", Name: "Opening Barrage", MaxRank: 3, Cost: 2,
		PerRank: []Contribution{
			{Field: FieldBurstTime, Op: OpAdd, Value: 2.0},
			{Field: FieldBurstMult, Op: OpAdd, Value: 0.15},
		},
	},
	"SKILL_FIELD_REPAIR": {
		ID: "SKILL_FIELD_REPAIR", Name: "Field Repair", MaxRank: 10, Cost: 1,
		PerRank: []Contribution{{Field: FieldRegenPerSec, Op: OpAdd, Value: 0.3}},
	},
	"SKILL_BULWARK": {
		ID: "SKILL_BULWARK", Name: "Bulwark", MaxRank: 3, Cost: 3,
		PerRank: []Contribution{{Field: FieldShieldFullCharges, Op: OpAdd, Value: 1}},
	},
	"SKILL_SHOCK_ABSORBERS": {
		ID: "SKILL_SHOCK_ABSORBERS", Name: "Shock Absorbers", MaxRank: 5, Cost: 2,
		PerRank: []Contribution{{Field: FieldRefundOnLowHealth, Op: OpAdd, Value: 0.08}},
	},
	"SKILL_LAST_STAND": {
		ID: "SKILL_LAST_STAND", Name: "Last Stand", MaxRank: 1, Cost: 5,
		PerRank: []Contribution{{Field: FieldEmergencyHeal, Op: OpAdd, Value: 30}},
	},
	"SKILL_PROSPECTOR": {
		ID: "SKILL_PROSPECTOR", Name: "Prospector", MaxRank: 10, Cost: 1,
		PerRank: []Contribution{{Field: FieldGoldMult, Op: OpMultiply, Value: 1.04}},
	},
	"SKILL_SCHOLAR": {
		ID: "SKILL_SCHOLAR", Name: "Scholar", MaxRank: 10, Cost: 1,
		PerRank: []Contribution{{Field: FieldXPMult, Op: OpMultiply, Value: 1.04}},
	},
}
