// internal/event/types.go
package event

const (
	WaveCompleted Type = "WaveCompleted" // wave scored; Data is *app.WaveReport
	GameOver      Type = "GameOver"      // base destroyed; Data is app.GameOverSummary
	StateChanged  Type = "StateChanged"  // progression state mutated; Data is *state.GameState
	EnemyKilled   Type = "EnemyKilled"   // Data is types.EntityID
	EnemyEscaped  Type = "EnemyEscaped"  // Data is types.EntityID
	AbilityProc   Type = "AbilityProc"   // Data is the proc tag string
)
