// internal/defs/research.go
package defs

// ResearchDefinition is a long-horizon passive: started for gold, it completes
// after a number of cleared waves and then applies PerLevel once per level.
type ResearchDefinition struct {
	Key        string         `yaml:"key" json:"key"`
	Name       string         `yaml:"name" json:"name"`
	MaxLevel   int            `yaml:"max_level" json:"max_level"`
	BaseCost   float64        `yaml:"base_cost" json:"base_cost"`
	CostGrowth float64        `yaml:"cost_growth" json:"cost_growth"`
	Waves      int            `yaml:"waves" json:"waves"` // waves to complete one level
	PerLevel   []Contribution `yaml:"per_level" json:"per_level"`
}

// ResearchLibrary maps research key to its definition.
var ResearchLibrary = map[string]ResearchDefinition{
	"RES_BALLISTICS": {
		Key: "RES_BALLISTICS", Name: "Ballistics", MaxLevel: 20, BaseCost: 200, CostGrowth: 1.5, Waves: 3,
		PerLevel: []Contribution{{Field: FieldDamageMult, Op: OpMultiply, Value: 1.03}},
	},
	"RES_SERVO_MOTORS": {
		Key: "RES_SERVO_MOTORS", Name: "Servo Motors", MaxLevel: 15, BaseCost: 300, CostGrowth: 1.55, Waves: 4,
		PerLevel: []Contribution{{Field: FieldFireRateMult, Op: OpMultiply, Value: 1.025}},
	},
	"RES_OPTICS": {
		Key: "RES_OPTICS", Name: "Optics", MaxLevel: 10, BaseCost: 250, CostGrowth: 1.6, Waves: 3,
		PerLevel: []Contribution{{Field: FieldRangeMult, Op: OpMultiply, Value: 1.03}},
	},
	"RES_STEP_SHIELD": {
		Key: "RES_STEP_SHIELD", Name: "Step Shield", MaxLevel: 6, BaseCost: 500, CostGrowth: 1.8, Waves: 5,
		PerLevel: []Contribution{{Field: FieldStepShieldBlock, Op: OpAdd, Value: 0.08}},
	},
	"RES_TRIAGE": {
		Key: "RES_TRIAGE", Name: "Triage Protocol", MaxLevel: 8, BaseCost: 400, CostGrowth: 1.6, Waves: 4,
		PerLevel: []Contribution{{Field: FieldWaveEndHeal, Op: OpAdd, Value: 4}},
	},
	"RES_SMELTING": {
		Key: "RES_SMELTING", Name: "Smelting", MaxLevel: 12, BaseCost: 350, CostGrowth: 1.5, Waves: 4,
		PerLevel: []Contribution{{Field: FieldGoldMult, Op: OpMultiply, Value: 1.03}},
	},
}
