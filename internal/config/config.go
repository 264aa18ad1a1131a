// internal/config/config.go
package config

const (
	// Fixed-timestep loop. The host reports wall-clock deltas; the engine
	// drains them in FixedStep slices so per-tick math never sees frame jitter.
	FixedStep     = 1.0 / 60.0
	MaxFrameDelta = 0.25 // longer host stalls are dropped, never replayed as a burst
	MaxTimeScale  = 3

	ArenaWidth  = 1200.0
	ArenaHeight = 900.0
	BaseRadius  = 42.0 // enemies crossing this radius around the center escape
	SpawnMargin = 30.0 // spawn ring sits this far inside the arena half-extent

	BaseHealth   = 100.0
	WaveDuration = 45.0 // seconds of SPAWNING_AND_ACTIVE before the wave is scored

	ProjectileSpeed     = 420.0
	ProjectileHitRadius = 12.0

	MultiShotCap   = 8
	CritCadenceMin = 2 // a crit can fire at most every 2nd shot

	ReportHistory = 16
)

// Escape damage tuning. The live penalty deficit amplifies every hit.
const (
	EscapeDamageBase     = 8.0
	EscapeDamageWaveK    = 0.35
	EscapeDamageDeficitK = 1.5
	StepShieldCooldown   = 4.0 // seconds between step-shield procs
	EmergencyHealRatio   = 0.25
	ProcTagDuration      = 2.5 // seconds a "last proc" tag stays visible to the host
	RefundHealthRatio    = 0.35
)
