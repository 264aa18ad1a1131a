// internal/types/types.go
package types

// EntityID identifies a live entity (enemy or projectile) inside the
// simulation. IDs are assigned sequentially and never reused within a run,
// which makes them usable as a stable tie-breaker in targeting.
type EntityID uint64

// UpgradeTrackID names one upgradeable tower track ("damage", "fire_rate", ...).
type UpgradeTrackID string

// ItemSlot names an equipment slot.
type ItemSlot string
