// internal/component/ability.go
package component

// AbilityRuntime is the wave-scoped ability state. Reset at every wave start;
// never persisted.
type AbilityRuntime struct {
	ComboStacks int

	BurstRemaining float64 // seconds left on the wave-start damage burst

	ShieldFullCharges    int // consumed first, blocks a whole escape hit
	ShieldPartialCharges int
	StepShieldCooldown   float64 // seconds until the step shield may proc again
	EmergencyHealUsed    bool

	LastProcTag    string  // for host UI feedback
	LastProcExpiry float64 // sim time at which the tag goes stale
}

// Phase is the wave lifecycle state.
type Phase string

const (
	PhaseSpawningAndActive Phase = "SPAWNING_AND_ACTIVE"
	PhaseAwaitingContinue  Phase = "AWAITING_CONTINUE"
	PhaseGameOver          Phase = "GAME_OVER"
)
