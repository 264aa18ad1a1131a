// internal/app/game.go
package app

import (
	"math"

	"go-wave-defense/internal/component"
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/entity"
	"go-wave-defense/internal/event"
	"go-wave-defense/internal/formula"
	"go-wave-defense/internal/passive"
	"go-wave-defense/internal/state"
	"go-wave-defense/internal/system"
	"go-wave-defense/internal/types"
	"go-wave-defense/internal/wave"
	"go-wave-defense/pkg/geom"
)

// Game owns the simulation: the only mutator of live state. External callers
// interact through the command methods and receive read-only snapshots and
// events; nothing in here consumes entropy, so a state plus an input history
// always replays to the identical outcome.
type Game struct {
	bal         config.Balance
	qualityTier string
	arena       geom.Arena

	state *state.GameState
	mods  passive.Bundle

	ecs         *entity.ECS
	movement    *system.MovementSystem
	combat      *system.CombatSystem
	projectiles *system.ProjectileSystem
	abilities   *system.AbilitySystem
	dispatcher  *event.Dispatcher

	phase       component.Phase
	waveSnap    wave.Snapshot
	plan        []wave.PlanEntry
	planCursor  int
	simTime     float64
	killed      int
	escaped     int
	towerParams system.TowerParams

	accumulator float64
	timeScale   int
	paused      bool
	gameOver    bool

	reports []*WaveReport
}

// Option tweaks engine construction.
type Option func(*Game)

// WithQualityTier sets the presentation quality tier. This is the single
// sanctioned presentation input to simulation math: it caps spawn counts.
func WithQualityTier(tier string) Option {
	return func(g *Game) { g.qualityTier = tier }
}

// WithArena overrides the default playfield dimensions.
func WithArena(width, height float64) Option {
	return func(g *Game) { g.arena = geom.Arena{Width: width, Height: height} }
}

// NewGame builds an engine around a fresh run. The engine starts in
// AWAITING_CONTINUE; the host kicks off wave 1 with ContinueNextWave.
func NewGame(bal config.Balance, opts ...Option) *Game {
	g := &Game{
		bal:         bal,
		qualityTier: "high",
		arena:       geom.Arena{Width: config.ArenaWidth, Height: config.ArenaHeight},
		state:       state.New(),
		ecs:         entity.NewECS(),
		dispatcher:  event.NewDispatcher(),
		phase:       component.PhaseAwaitingContinue,
		timeScale:   1,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.movement = system.NewMovementSystem(g.ecs, g.arena)
	g.combat = system.NewCombatSystem(g.ecs, g.arena)
	g.projectiles = system.NewProjectileSystem(g.ecs, g)
	g.abilities = system.NewAbilitySystem(g.dispatcher)

	g.refreshDerived()
	return g
}

// Dispatcher exposes the event bus so hosts can subscribe before ticking.
func (g *Game) Dispatcher() *event.Dispatcher {
	return g.dispatcher
}

// Phase reports the engine's lifecycle phase.
func (g *Game) Phase() component.Phase {
	return g.phase
}

// refreshDerived rebuilds the modifier bundle and live tower output. Called
// after every progression mutation, never per tick.
func (g *Game) refreshDerived() {
	g.mods = passive.Aggregate(g.state)
	g.towerParams = system.TowerParams{
		Damage:      formula.DamagePerShot(g.state, g.bal, g.mods),
		FireRate:    formula.FireRate(g.state, g.bal, g.mods),
		Range:       formula.Range(g.state, g.bal, g.mods),
		Shots:       formula.ShotCount(g.state, g.mods),
		CritCadence: formula.CritCadence(g.state, g.bal, g.mods),
		CritMult:    formula.CritMultiplier(g.state, g.bal, g.mods),
	}
}

// Tick drains the host's wall-clock delta in fixed steps. The time scale
// stretches the simulated delta per step, not the step size, so targeting
// granularity is constant across 1x/2x/3x.
func (g *Game) Tick(dtSeconds float64) {
	if g.paused || g.phase != component.PhaseSpawningAndActive {
		return
	}
	if dtSeconds < 0 || math.IsNaN(dtSeconds) || math.IsInf(dtSeconds, 0) {
		return
	}
	if dtSeconds > config.MaxFrameDelta {
		// A stalled host resumes where it left off; missed time is dropped,
		// never replayed as a catch-up burst.
		dtSeconds = config.MaxFrameDelta
	}

	g.accumulator += dtSeconds
	for g.accumulator >= config.FixedStep {
		g.accumulator -= config.FixedStep
		g.step(config.FixedStep * float64(g.timeScale))
		if g.phase != component.PhaseSpawningAndActive {
			g.accumulator = 0
			return
		}
	}
}

// step advances the simulation by one fixed slice of simulated time.
func (g *Game) step(dt float64) {
	g.simTime += dt

	g.abilities.Update(dt)
	g.applyRegen(dt)
	g.spawnDue()

	g.combat.Update(dt, g.towerParams, config.ProjectileSpeed)
	g.projectiles.Update(dt)
	g.movement.Update(dt)

	if !g.handleEscapes() {
		return // base fell; the rest of this tick is short-circuited
	}

	if g.simTime >= config.WaveDuration || (g.planCursor >= len(g.plan) && len(g.ecs.Enemies) == 0) {
		g.endWave()
	}
}

func (g *Game) applyRegen(dt float64) {
	if g.mods.RegenPerSec <= 0 {
		return
	}
	g.state.BaseHealth = math.Min(config.BaseHealth, g.state.BaseHealth+g.mods.RegenPerSec*dt)
}

// spawnDue copies every plan entry whose time has arrived into the live
// world. Entries are pre-sorted by spawn time.
func (g *Game) spawnDue() {
	for g.planCursor < len(g.plan) && g.simTime >= g.plan[g.planCursor].SpawnTime {
		entry := g.plan[g.planCursor]
		g.planCursor++

		id := g.ecs.NewEntity()
		g.ecs.Positions[id] = &component.Position{Pos: entry.SpawnPoint}
		g.ecs.Velocities[id] = &component.Velocity{Vel: entry.Velocity, Speed: entry.Speed}
		g.ecs.Healths[id] = &component.Health{Value: entry.HP, Max: entry.HP}
		g.ecs.Enemies[id] = &component.Enemy{
			ArchetypeID: entry.ArchetypeID,
			PlanIndex:   entry.Index,
			Armor:       entry.Armor,
		}
	}
}

// ResolveImpact applies one projectile hit: conditional multipliers fold into
// the raw damage, the recorded crit multiplier applies, then armor subtracts.
// Implements system.ImpactResolver.
func (g *Game) ResolveImpact(targetID types.EntityID, proj *component.Projectile) {
	health := g.ecs.Healths[targetID]
	enemy := g.ecs.Enemies[targetID]
	if health == nil || enemy == nil || health.Value <= 0 {
		return
	}

	raw := proj.Damage
	if health.Max > 0 {
		ratio := health.Value / health.Max
		if ratio >= 0.8 && g.mods.OpeningBonus > 0 {
			raw *= 1 + g.mods.OpeningBonus
		}
		if ratio <= 0.2 && g.mods.ExecuteBonus > 0 {
			raw *= 1 + g.mods.ExecuteBonus
		}
	}
	if stacks := g.abilities.ComboStacks(); stacks > 0 {
		raw *= 1 + g.mods.ComboDamage*float64(stacks)
	}
	if g.abilities.BurstActive() {
		raw *= 1 + g.mods.BurstMult
	}

	effectiveArmor := enemy.Armor * (1 - g.mods.ArmorPierce)
	dmg := math.Max(1, raw*proj.CritMult-effectiveArmor*10)

	health.Value -= dmg
	if health.Value <= 0 {
		g.killed++
		g.state.Stats.Kills++
		g.abilities.OnKill(g.mods)
		g.ecs.RemoveEntity(targetID)
		g.dispatcher.Dispatch(event.Event{Type: event.EnemyKilled, Data: targetID})
	}
}

// handleEscapes removes enemies flagged by the movement pass and applies
// escape damage immediately, hit by hit, through the defensive chain.
// Returns false when the base fell.
func (g *Game) handleEscapes() bool {
	for _, id := range g.ecs.SortedEnemyIDs() {
		enemy := g.ecs.Enemies[id]
		if !enemy.Escaped {
			continue
		}
		g.ecs.RemoveEntity(id)
		g.escaped++
		g.state.Stats.Escapes++
		g.dispatcher.Dispatch(event.Event{Type: event.EnemyEscaped, Data: id})

		killRatio := g.liveKillRatio()
		deficit := formula.Deficit(killRatio, g.waveSnap.Threshold)
		dmg := formula.PerEscapeDamage(g.waveSnap.Wave, deficit, g.bal)

		applied, heal := g.abilities.AbsorbEscape(dmg, g.state.BaseHealth, config.BaseHealth, g.simTime, g.mods)
		g.state.BaseHealth = math.Min(config.BaseHealth, g.state.BaseHealth-applied+heal)

		if g.state.BaseHealth <= 0 {
			g.state.BaseHealth = 0
			g.enterGameOver()
			return false
		}
	}
	return true
}

func (g *Game) liveKillRatio() float64 {
	ratio := float64(g.killed) / math.Max(1, float64(g.waveSnap.SpawnCount))
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// startWave freezes the snapshot, lays out the spawn plan and resets all
// wave-scoped runtime. From here the wave's difficulty contract is fixed no
// matter what the player equips.
func (g *Game) startWave() {
	g.refreshDerived()
	g.waveSnap = wave.BuildSnapshot(g.state, g.bal, g.mods, g.qualityTier)
	g.plan = wave.BuildPlan(g.waveSnap, g.bal, g.arena)
	g.planCursor = 0
	g.simTime = 0
	g.killed = 0
	g.escaped = 0
	g.accumulator = 0

	g.ecs.Clear()
	g.combat.ResetForWave()
	g.abilities.ResetForWave(g.mods)

	g.phase = component.PhaseSpawningAndActive
}

// endWave scores the finished wave against the frozen snapshot, applies
// rewards and progression, and parks the engine until the host continues.
func (g *Game) endWave() {
	killRatio := g.liveKillRatio()
	penalty := formula.PenaltyFactor(killRatio, g.waveSnap.Threshold, g.bal)
	gold, points, xp := formula.WaveRewards(g.waveSnap.HPBudget, g.waveSnap.Wave, penalty, g.bal, g.mods)

	g.state.Gold += gold
	g.state.Points += points
	g.state.XP += xp
	g.state.Stats.LifetimeGold += gold
	g.state.Stats.WavesCleared++
	if g.waveSnap.Wave > g.state.Stats.BestWave {
		g.state.Stats.BestWave = g.waveSnap.Wave
	}

	levelUps := 0
	for g.state.XP >= formula.XPForLevel(g.state.Level, g.bal) {
		g.state.XP -= formula.XPForLevel(g.state.Level, g.bal)
		g.state.Level++
		g.state.SkillPoints += g.bal.SkillPointsPerLevel
		levelUps++
	}

	researchDone := g.advanceResearch()

	if g.mods.WaveEndHeal > 0 {
		g.state.BaseHealth = math.Min(config.BaseHealth, g.state.BaseHealth+g.mods.WaveEndHeal)
	}

	report := &WaveReport{
		Wave:          g.waveSnap.Wave,
		SpawnCount:    g.waveSnap.SpawnCount,
		Killed:        g.killed,
		Escaped:       g.escaped,
		KillRatio:     killRatio,
		Threshold:     g.waveSnap.Threshold,
		PenaltyFactor: penalty,
		RewardGold:    gold,
		RewardPoints:  points,
		XPGain:        xp,
		LevelUps:      levelUps,
		ResearchDone:  researchDone,
		BaseHealth:    g.state.BaseHealth,
	}
	g.reports = append(g.reports, report)
	if len(g.reports) > config.ReportHistory {
		g.reports = g.reports[len(g.reports)-config.ReportHistory:]
	}

	g.state.Wave++
	g.ecs.Clear()
	g.phase = component.PhaseAwaitingContinue

	g.dispatcher.Dispatch(event.Event{Type: event.WaveCompleted, Data: report})
	g.dispatcher.Dispatch(event.Event{Type: event.StateChanged, Data: g.state.Clone()})
}

// advanceResearch decrements the in-flight job at wave end and completes a
// level when it reaches zero. Returns the finished research key, if any.
func (g *Game) advanceResearch() string {
	job := g.state.ActiveResearch
	if job == nil {
		return ""
	}
	job.WavesLeft--
	if job.WavesLeft > 0 {
		return ""
	}
	key := job.Key
	g.state.Research[key]++
	g.state.ActiveResearch = nil
	g.refreshDerived()
	return key
}

// enterGameOver fires the terminal transition exactly once.
func (g *Game) enterGameOver() {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.phase = component.PhaseGameOver

	summary := GameOverSummary{
		Wave:  g.waveSnap.Wave,
		Stats: g.state.Stats,
	}
	g.dispatcher.Dispatch(event.Event{Type: event.GameOver, Data: summary})
}

// Resize rescales live entity coordinates onto the new viewport and re-aims
// the remaining spawn plan at the new center, advanced to the current sim
// time. Nothing teleports and nothing double-spawns.
func (g *Game) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	old := g.arena
	g.arena = geom.Arena{Width: width, Height: height}
	g.movement.SetArena(g.arena)
	g.combat.SetArena(g.arena)

	if old.Width > 0 && old.Height > 0 {
		sx := width / old.Width
		sy := height / old.Height
		center := g.arena.Center()
		for _, id := range g.ecs.SortedEnemyIDs() {
			pos := g.ecs.Positions[id]
			vel := g.ecs.Velocities[id]
			if pos == nil {
				continue
			}
			pos.Pos = geom.Vec2{X: pos.Pos.X * sx, Y: pos.Pos.Y * sy}
			if vel != nil {
				vel.Vel = center.Sub(pos.Pos).Norm().Scale(vel.Speed)
			}
		}
		for _, id := range g.ecs.SortedProjectileIDs() {
			if pos := g.ecs.Positions[id]; pos != nil {
				pos.Pos = geom.Vec2{X: pos.Pos.X * sx, Y: pos.Pos.Y * sy}
			}
		}
	}

	g.plan = wave.Rescale(g.plan, old, g.arena)
}
