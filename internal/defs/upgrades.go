// internal/defs/upgrades.go
package defs

import "go-wave-defense/internal/types"

const (
	TrackDamage    types.UpgradeTrackID = "damage"
	TrackFireRate  types.UpgradeTrackID = "fire_rate"
	TrackRange     types.UpgradeTrackID = "range"
	TrackMultiShot types.UpgradeTrackID = "multi_shot"
	TrackCrit      types.UpgradeTrackID = "crit"
)

// UpgradeTrackDefinition describes one upgradeable tower track and its
// geometric gold cost curve.
type UpgradeTrackDefinition struct {
	ID         types.UpgradeTrackID `yaml:"id" json:"id"`
	Name       string               `yaml:"name" json:"name"`
	BaseCost   float64              `yaml:"base_cost" json:"base_cost"`
	CostGrowth float64              `yaml:"cost_growth" json:"cost_growth"`
	MaxLevel   int                  `yaml:"max_level" json:"max_level"`
}

// UpgradeLibrary maps track id to its definition.
var UpgradeLibrary = map[types.UpgradeTrackID]UpgradeTrackDefinition{
	TrackDamage:    {ID: TrackDamage, Name: "Damage", BaseCost: 15, CostGrowth: 1.18, MaxLevel: 200},
	TrackFireRate:  {ID: TrackFireRate, Name: "Fire Rate", BaseCost: 25, CostGrowth: 1.22, MaxLevel: 120},
	TrackRange:     {ID: TrackRange, Name: "Range", BaseCost: 20, CostGrowth: 1.25, MaxLevel: 60},
	TrackMultiShot: {ID: TrackMultiShot, Name: "Multi-Shot", BaseCost: 400, CostGrowth: 2.1, MaxLevel: 5},
	TrackCrit:      {ID: TrackCrit, Name: "Critical Strike", BaseCost: 120, CostGrowth: 1.45, MaxLevel: 40},
}
