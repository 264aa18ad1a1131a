// internal/component/projectile.go
package component

import "go-wave-defense/internal/types"

// Projectile seeks its target by id each step. The reference is weak: if the
// target died, the projectile self-expires on the next step, which is a
// normal outcome rather than an error.
type Projectile struct {
	TargetID types.EntityID
	Speed    float64
	Damage   float64 // raw damage at fire time, before conditionals and armor
	CritMult float64 // 1.0 for a normal shot; recorded at fire time
}
