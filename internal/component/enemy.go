// internal/component/enemy.go
package component

// Enemy marks a live hostile and carries its frozen plan stats.
type Enemy struct {
	ArchetypeID string
	PlanIndex   int
	Armor       float64
	Escaped     bool // set when the base radius is crossed; removal is deferred to cleanup
}
