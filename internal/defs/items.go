// internal/defs/items.go
package defs

import "go-wave-defense/internal/types"

const (
	SlotCore      types.ItemSlot = "core"
	SlotPlating   types.ItemSlot = "plating"
	SlotTargeting types.ItemSlot = "targeting"
)

// ItemSlots is the canonical slot order.
var ItemSlots = []types.ItemSlot{SlotCore, SlotPlating, SlotTargeting}

// ItemDefinition is a piece of equipment. Mods apply while the item is in its
// slot; UnlockCost is paid in meta currency (points).
type ItemDefinition struct {
	ID         string         `yaml:"id" json:"id"`
	Name       string         `yaml:"name" json:"name"`
	Slot       types.ItemSlot `yaml:"slot" json:"slot"`
	UnlockCost float64        `yaml:"unlock_cost" json:"unlock_cost"`
	Mods       []Contribution `yaml:"mods" json:"mods"`
}

// ItemLibrary maps item id to its definition.
var ItemLibrary = map[string]ItemDefinition{
	"ITEM_OVERDRIVE_CORE": {
		ID: "ITEM_OVERDRIVE_CORE", Name: "Overdrive Core", Slot: SlotCore, UnlockCost: 150,
		Mods: []Contribution{
			{Field: FieldDamageMult, Op: OpMultiply, Value: 1.15},
			{Field: FieldFireRateMult, Op: OpMultiply, Value: 0.95},
		},
	},
	"ITEM_PULSE_CORE": {
		ID: "ITEM_PULSE_CORE", Name: "Pulse Core", Slot: SlotCore, UnlockCost: 150,
		Mods: []Contribution{
			{Field: FieldFireRateMult, Op: OpMultiply, Value: 1.12},
		},
	},
	"ITEM_COMBO_CORE": {
		ID: "ITEM_COMBO_CORE", Name: "Combo Core", Slot: SlotCore, UnlockCost: 300,
		Mods: []Contribution{
			{Field: FieldComboMaxStacks, Op: OpAdd, Value: 2},
			{Field: FieldComboDamage, Op: OpAdd, Value: 0.03},
		},
	},
	"ITEM_ABLATIVE_PLATING": {
		ID: "ITEM_ABLATIVE_PLATING", Name: "Ablative Plating", Slot: SlotPlating, UnlockCost: 200,
		Mods: []Contribution{
			{Field: FieldShieldPartialCharges, Op: OpAdd, Value: 2},
			{Field: FieldShieldPartialBlock, Op: OpAdd, Value: 0.15},
		},
	},
	"ITEM_REGEN_MESH": {
		ID: "ITEM_REGEN_MESH", Name: "Regenerative Mesh", Slot: SlotPlating, UnlockCost: 250,
		Mods: []Contribution{
			{Field: FieldRegenPerSec, Op: OpAdd, Value: 1.0},
			{Field: FieldWaveEndHeal, Op: OpAdd, Value: 5},
		},
	},
	"ITEM_AEGIS_PLATING": {
		ID: "ITEM_AEGIS_PLATING", Name: "Aegis Plating", Slot: SlotPlating, UnlockCost: 500,
		Mods: []Contribution{
			{Field: FieldShieldFullCharges, Op: OpAdd, Value: 1},
		},
	},
	"ITEM_TARGETING_ARRAY": {
		ID: "ITEM_TARGETING_ARRAY", Name: "Targeting Array", Slot: SlotTargeting, UnlockCost: 350,
		Mods: []Contribution{
			{Field: FieldMultiShot, Op: OpAdd, Value: 1},
		},
	},
	"ITEM_CRIT_SCOPE": {
		ID: "ITEM_CRIT_SCOPE", Name: "Crit Scope", Slot: SlotTargeting, UnlockCost: 300,
		Mods: []Contribution{
			{Field: FieldCritChance, Op: OpAdd, Value: 0.05},
			{Field: FieldCritMult, Op: OpAdd, Value: 0.25},
		},
	},
	"ITEM_RANGEFINDER": {
		ID: "ITEM_RANGEFINDER", Name: "Rangefinder", Slot: SlotTargeting, UnlockCost: 200,
		Mods: []Contribution{
			{Field: FieldRangeMult, Op: OpMultiply, Value: 1.15},
		},
	},
}
