// internal/defs/archetypes.go
package defs

// ArchetypeDefinition holds the static multipliers for one enemy flavor.
// Archetypes give waves their apparent variety; which one an enemy gets is a
// pure function of (wave, index), never a roll.
type ArchetypeDefinition struct {
	ID        string  `yaml:"id" json:"id"`
	Name      string  `yaml:"name" json:"name"`
	HPMult    float64 `yaml:"hp_mult" json:"hp_mult"`
	SpeedMult float64 `yaml:"speed_mult" json:"speed_mult"`
	ArmorBonus float64 `yaml:"armor_bonus" json:"armor_bonus"`
}

// ArchetypeLibrary is ordered: the rotation formula indexes into it, so the
// order is part of the deterministic contract.
var ArchetypeLibrary = []ArchetypeDefinition{
	{ID: "ARCH_GRUNT", Name: "Grunt", HPMult: 1.0, SpeedMult: 1.0, ArmorBonus: 0},
	{ID: "ARCH_RUNNER", Name: "Runner", HPMult: 0.65, SpeedMult: 1.5, ArmorBonus: 0},
	{ID: "ARCH_BRUTE", Name: "Brute", HPMult: 1.8, SpeedMult: 0.7, ArmorBonus: 2},
	{ID: "ARCH_SHELL", Name: "Shellback", HPMult: 1.1, SpeedMult: 0.85, ArmorBonus: 5},
	{ID: "ARCH_WISP", Name: "Wisp", HPMult: 0.5, SpeedMult: 1.25, ArmorBonus: 0},
}

// ArchetypeByID resolves an archetype, falling back to the first entry so a
// stale save can never dereference a missing definition.
func ArchetypeByID(id string) ArchetypeDefinition {
	for _, a := range ArchetypeLibrary {
		if a.ID == id {
			return a
		}
	}
	return ArchetypeLibrary[0]
}
