// internal/entity/ecs.go
package entity

import (
	"sort"

	"go-wave-defense/internal/component"
	"go-wave-defense/internal/types"
)

// ECS holds the live entity tables. Systems always walk entities through the
// Sorted*IDs helpers: Go map order is randomized, and iteration order feeds
// float math, so id-ordered passes are what make replays byte-identical.
type ECS struct {
	NextID types.EntityID

	Positions   map[types.EntityID]*component.Position
	Velocities  map[types.EntityID]*component.Velocity
	Healths     map[types.EntityID]*component.Health
	Enemies     map[types.EntityID]*component.Enemy
	Projectiles map[types.EntityID]*component.Projectile
}

// NewECS returns empty tables with id numbering starting at 1, so id 0 can
// mean "no entity".
func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Positions:   make(map[types.EntityID]*component.Position),
		Velocities:  make(map[types.EntityID]*component.Velocity),
		Healths:     make(map[types.EntityID]*component.Health),
		Enemies:     make(map[types.EntityID]*component.Enemy),
		Projectiles: make(map[types.EntityID]*component.Projectile),
	}
}

// NewEntity allocates the next entity id.
func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity drops an id from every table.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Healths, id)
	delete(ecs.Enemies, id)
	delete(ecs.Projectiles, id)
}

// SortedEnemyIDs returns live enemy ids in ascending order.
func (ecs *ECS) SortedEnemyIDs() []types.EntityID {
	return sortedIDs(ecs.Enemies)
}

// SortedProjectileIDs returns live projectile ids in ascending order.
func (ecs *ECS) SortedProjectileIDs() []types.EntityID {
	return sortedIDs(ecs.Projectiles)
}

// Clear removes every live entity but keeps the id counter running, so ids
// stay unique across waves within a run.
func (ecs *ECS) Clear() {
	ecs.Positions = make(map[types.EntityID]*component.Position)
	ecs.Velocities = make(map[types.EntityID]*component.Velocity)
	ecs.Healths = make(map[types.EntityID]*component.Health)
	ecs.Enemies = make(map[types.EntityID]*component.Enemy)
	ecs.Projectiles = make(map[types.EntityID]*component.Projectile)
}

func sortedIDs[V any](table map[types.EntityID]V) []types.EntityID {
	ids := make([]types.EntityID, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
