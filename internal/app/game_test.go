package app

import (
	"reflect"
	"testing"

	"go-wave-defense/internal/component"
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/defs"
	"go-wave-defense/internal/event"
	"go-wave-defense/internal/state"
)

func newTestGame() *Game {
	return NewGame(config.DefaultBalance())
}

// richGame returns an engine loaded with gold and maxed offensive tracks, so
// lifecycle tests clear waves comfortably.
func richGame(t *testing.T) *Game {
	t.Helper()
	g := newTestGame()

	gs := state.New()
	gs.Gold = 1e12
	g.SetSnapshot(gs, ApplyHard)

	g.BuyUpgrade(defs.TrackDamage, BuyMax)
	g.BuyUpgrade(defs.TrackFireRate, BuyMax)
	g.BuyUpgrade(defs.TrackRange, BuyMax)
	g.BuyUpgrade(defs.TrackMultiShot, BuyMax)
	return g
}

// driveWave runs the current wave to completion with fixed-size host deltas.
func driveWave(t *testing.T, g *Game) {
	t.Helper()
	if !g.ContinueNextWave() {
		t.Fatalf("could not start wave in phase %s", g.Phase())
	}
	for i := 0; g.Phase() == component.PhaseSpawningAndActive; i++ {
		if i > 100000 {
			t.Fatal("wave never resolved")
		}
		g.Tick(0.25)
	}
}

func TestNewGameStartsParked(t *testing.T) {
	g := newTestGame()

	if g.Phase() != component.PhaseAwaitingContinue {
		t.Errorf("phase = %s, want awaiting continue", g.Phase())
	}
	snap := g.Snapshot()
	if snap.State.Wave != 1 || snap.State.BaseHealth != config.BaseHealth {
		t.Errorf("fresh state: wave %d health %v", snap.State.Wave, snap.State.BaseHealth)
	}

	// Ticking while parked is a no-op.
	g.Tick(1.0)
	if got := g.Snapshot().SimTime; got != 0 {
		t.Errorf("sim time advanced while parked: %v", got)
	}
}

func TestWaveLifecycle(t *testing.T) {
	g := richGame(t)
	driveWave(t, g)

	if g.Phase() != component.PhaseAwaitingContinue {
		t.Fatalf("phase after wave = %s", g.Phase())
	}

	snap := g.Snapshot()
	if snap.State.Wave != 2 {
		t.Errorf("wave = %d, want 2", snap.State.Wave)
	}
	if len(snap.Reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(snap.Reports))
	}

	r := snap.Reports[0]
	if r.Wave != 1 {
		t.Errorf("report wave = %d", r.Wave)
	}
	if r.Killed+r.Escaped > r.SpawnCount {
		t.Errorf("killed %d + escaped %d exceeds spawn count %d", r.Killed, r.Escaped, r.SpawnCount)
	}
	if r.KillRatio < 0 || r.KillRatio > 1 {
		t.Errorf("kill ratio %v out of range", r.KillRatio)
	}
	if r.PenaltyFactor < config.DefaultBalance().PenaltyMin || r.PenaltyFactor > 1 {
		t.Errorf("penalty %v out of range", r.PenaltyFactor)
	}
	if r.RewardGold <= 0 || r.RewardPoints <= 0 || r.XPGain <= 0 {
		t.Errorf("rewards not positive: %+v", r)
	}
}

func TestFullClearPaysUnpenalizedRewards(t *testing.T) {
	g := richGame(t)
	driveWave(t, g)

	r := g.Snapshot().Reports[0]
	if r.KillRatio >= r.Threshold && r.PenaltyFactor != 1 {
		t.Errorf("ratio %v met threshold %v but penalty is %v", r.KillRatio, r.Threshold, r.PenaltyFactor)
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := func() *Game {
		g := richGame(t)
		driveWave(t, g)
		g.BuySkill("SKILL_SHARPENING")
		g.ContinueNextWave()
		// Uneven host deltas; the fixed-step accumulator absorbs them.
		for _, dt := range []float64{0.013, 0.2, 0.017, 0.25, 0.1} {
			g.Tick(dt)
		}
		return g
	}

	a := script().Snapshot()
	b := script().Snapshot()
	if !reflect.DeepEqual(a, b) {
		t.Error("identical scripts produced different snapshots")
	}
}

func TestSnapshotFrozenAgainstMidWavePurchases(t *testing.T) {
	g := richGame(t)
	if !g.ContinueNextWave() {
		t.Fatal("could not start wave")
	}
	g.Tick(0.25)

	frozen := g.Snapshot().WaveSnap
	g.BuyUpgrade(defs.TrackCrit, BuyMax)
	g.Tick(0.25)

	if got := g.Snapshot().WaveSnap; got != frozen {
		t.Errorf("mid-wave purchase changed the wave contract: %+v -> %+v", frozen, got)
	}
}

func TestNextWaveSeesNewPower(t *testing.T) {
	g := richGame(t)
	driveWave(t, g)
	first := g.Snapshot().WaveSnap

	g.BuyUpgrade(defs.TrackCrit, BuyMax)
	driveWave(t, g)
	second := g.Snapshot().WaveSnap

	if second.Wave != first.Wave+1 {
		t.Fatalf("waves %d -> %d", first.Wave, second.Wave)
	}
	if second.DPS <= first.DPS {
		t.Errorf("crit purchase did not raise next snapshot DPS: %v -> %v", first.DPS, second.DPS)
	}
}

func TestGameOverFiresExactlyOnce(t *testing.T) {
	g := newTestGame()

	gs := state.New()
	gs.Wave = 200
	gs.BaseHealth = 5
	g.SetSnapshot(gs, ApplyHard)

	overs := 0
	g.Dispatcher().Subscribe(event.GameOver, event.ListenerFunc(func(e event.Event) {
		overs++
		if summary, ok := e.Data.(GameOverSummary); !ok || summary.Wave != 200 {
			t.Errorf("bad summary payload: %#v", e.Data)
		}
	}))

	if !g.ContinueNextWave() {
		t.Fatal("could not start wave")
	}
	for i := 0; g.Phase() == component.PhaseSpawningAndActive; i++ {
		if i > 100000 {
			t.Fatal("run never ended")
		}
		g.Tick(0.25)
	}

	if g.Phase() != component.PhaseGameOver {
		t.Fatalf("phase = %s, want game over", g.Phase())
	}
	if overs != 1 {
		t.Fatalf("game over fired %d times", overs)
	}
	if g.Snapshot().State.BaseHealth != 0 {
		t.Error("base health not zeroed on game over")
	}

	// The terminal phase rejects everything.
	if g.ContinueNextWave() {
		t.Error("continue accepted after game over")
	}
	g.Tick(1.0)
	if overs != 1 {
		t.Errorf("extra ticks re-fired game over: %d", overs)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := richGame(t)
	g.ContinueNextWave()
	g.Tick(0.25)
	before := g.Snapshot().SimTime

	g.SetPaused(true)
	if !g.IsPaused() {
		t.Fatal("pause not recorded")
	}
	g.Tick(5.0)
	if got := g.Snapshot().SimTime; got != before {
		t.Errorf("sim advanced while paused: %v -> %v", before, got)
	}

	g.SetPaused(false)
	g.Tick(0.25)
	if got := g.Snapshot().SimTime; got <= before {
		t.Error("sim did not resume")
	}
}

func TestTimeScaleStretchesSimulatedDelta(t *testing.T) {
	g := richGame(t)

	if g.SetTimeScale(0) || g.SetTimeScale(config.MaxTimeScale+1) {
		t.Error("out-of-range time scale accepted")
	}
	if !g.SetTimeScale(3) {
		t.Fatal("valid time scale rejected")
	}

	g.ContinueNextWave()
	g.Tick(config.FixedStep) // exactly one fixed step
	want := config.FixedStep * 3
	if got := g.Snapshot().SimTime; got != want {
		t.Errorf("sim time = %v, want %v", got, want)
	}
}

func TestHugeFrameDeltaIsClamped(t *testing.T) {
	g := richGame(t)
	g.ContinueNextWave()

	g.Tick(3600) // an hour of wall clock must not fast-forward the wave
	if got := g.Snapshot().SimTime; got > config.MaxFrameDelta+config.FixedStep {
		t.Errorf("sim time %v after one huge delta, want at most one clamped frame", got)
	}
}

func TestSetSnapshotSoftKeepsWaveRuntime(t *testing.T) {
	g := richGame(t)
	g.ContinueNextWave()
	for i := 0; len(g.Snapshot().Enemies) == 0; i++ {
		if i > 10000 {
			t.Fatal("no enemies ever spawned")
		}
		g.Tick(0.25)
	}

	before := g.Snapshot()
	incoming := before.State.Clone()
	incoming.Gold += 777

	report := g.SetSnapshot(incoming, ApplySoft)
	if report.Degraded {
		t.Fatal("same-wave soft apply degraded")
	}

	after := g.Snapshot()
	if after.Phase != component.PhaseSpawningAndActive {
		t.Error("soft apply interrupted the wave")
	}
	if after.SimTime != before.SimTime || len(after.Enemies) != len(before.Enemies) {
		t.Error("soft apply disturbed wave runtime")
	}
	if after.WaveSnap != before.WaveSnap {
		t.Error("soft apply rebuilt the frozen wave contract")
	}
	if after.State.Gold != before.State.Gold+777 {
		t.Errorf("gold = %v, want %v", after.State.Gold, before.State.Gold+777)
	}
}

func TestSetSnapshotSoftDegradesOnWaveMismatch(t *testing.T) {
	g := richGame(t)
	g.ContinueNextWave()
	g.Tick(0.25)

	incoming := g.Snapshot().State.Clone()
	incoming.Wave += 5

	report := g.SetSnapshot(incoming, ApplySoft)
	if !report.Degraded {
		t.Error("wave mismatch should degrade to hard apply")
	}
	if g.Phase() != component.PhaseAwaitingContinue {
		t.Errorf("degraded apply left phase %s", g.Phase())
	}
	if len(g.Snapshot().Enemies) != 0 {
		t.Error("degraded apply kept live entities")
	}
}

func TestSetSnapshotSanitizesIncoming(t *testing.T) {
	g := newTestGame()

	gs := state.New()
	gs.Gold = -500
	gs.Skills["SKILL_RETIRED"] = 3
	g.SetSnapshot(gs, ApplyHard)

	snap := g.Snapshot()
	if snap.State.Gold != 0 {
		t.Errorf("negative gold survived: %v", snap.State.Gold)
	}
	if _, ok := snap.State.Skills["SKILL_RETIRED"]; ok {
		t.Error("unknown skill survived hard apply")
	}
}

func TestResearchCompletesByClearedWaves(t *testing.T) {
	g := richGame(t)

	if !g.StartResearch("RES_BALLISTICS") {
		t.Fatal("research start rejected")
	}
	if g.StartResearch("RES_OPTICS") {
		t.Error("second concurrent research accepted")
	}

	waves := defs.ResearchLibrary["RES_BALLISTICS"].Waves
	for i := 0; i < waves; i++ {
		driveWave(t, g)
	}

	snap := g.Snapshot()
	if snap.State.Research["RES_BALLISTICS"] != 1 {
		t.Errorf("research level = %d, want 1", snap.State.Research["RES_BALLISTICS"])
	}
	if snap.State.ActiveResearch != nil {
		t.Error("finished research still in flight")
	}
	if got := snap.Reports[len(snap.Reports)-1].ResearchDone; got != "RES_BALLISTICS" {
		t.Errorf("completion not reported: %q", got)
	}
}

func TestLevelUpsGrantSkillPoints(t *testing.T) {
	g := richGame(t)

	for i := 0; g.Snapshot().State.Level < 2; i++ {
		if i > 40 {
			t.Fatal("never leveled up")
		}
		driveWave(t, g)
	}
	if got := g.Snapshot().State.SkillPoints; got < 1 {
		t.Errorf("skill points = %d after level up", got)
	}
}

func TestSkillPurchaseAndRespec(t *testing.T) {
	g := newTestGame()

	gs := state.New()
	gs.SkillPoints = 5
	g.SetSnapshot(gs, ApplyHard)

	if !g.BuySkill("SKILL_SHARPENING") {
		t.Fatal("affordable skill rejected")
	}
	if g.BuySkill("SKILL_UNKNOWN") {
		t.Error("unknown skill accepted")
	}

	snap := g.Snapshot()
	if snap.State.SkillPoints != 4 || snap.State.Skills["SKILL_SHARPENING"] != 1 {
		t.Errorf("after purchase: points %d ranks %d", snap.State.SkillPoints, snap.State.Skills["SKILL_SHARPENING"])
	}

	g.RespecSkills()
	snap = g.Snapshot()
	if snap.State.SkillPoints != 5 || len(snap.State.Skills) != 0 {
		t.Errorf("after respec: points %d skills %v", snap.State.SkillPoints, snap.State.Skills)
	}
}

func TestItemUnlockAndEquip(t *testing.T) {
	g := newTestGame()

	gs := state.New()
	gs.Points = 1000
	g.SetSnapshot(gs, ApplyHard)

	if g.EquipItem(defs.SlotCore, "ITEM_OVERDRIVE_CORE") {
		t.Error("equip accepted before unlock")
	}
	if !g.UnlockItem("ITEM_OVERDRIVE_CORE") {
		t.Fatal("affordable unlock rejected")
	}
	if g.UnlockItem("ITEM_OVERDRIVE_CORE") {
		t.Error("double unlock accepted")
	}
	if g.EquipItem(defs.SlotPlating, "ITEM_OVERDRIVE_CORE") {
		t.Error("wrong-slot equip accepted")
	}
	if !g.EquipItem(defs.SlotCore, "ITEM_OVERDRIVE_CORE") {
		t.Fatal("valid equip rejected")
	}
	if got := g.Snapshot().State.Equipped[defs.SlotCore]; got != "ITEM_OVERDRIVE_CORE" {
		t.Errorf("equipped = %q", got)
	}

	// Clearing the slot.
	if !g.EquipItem(defs.SlotCore, "") {
		t.Fatal("unequip rejected")
	}
	if _, ok := g.Snapshot().State.Equipped[defs.SlotCore]; ok {
		t.Error("slot not cleared")
	}
}

func TestResizeKeepsEntitiesInBounds(t *testing.T) {
	g := richGame(t)
	g.ContinueNextWave()
	for i := 0; len(g.Snapshot().Enemies) == 0; i++ {
		if i > 10000 {
			t.Fatal("no enemies ever spawned")
		}
		g.Tick(0.25)
	}

	g.Resize(600, 450)
	for _, e := range g.Snapshot().Enemies {
		if e.Pos.X < 0 || e.Pos.X > 600 || e.Pos.Y < 0 || e.Pos.Y > 450 {
			t.Fatalf("enemy outside resized arena: %+v", e.Pos)
		}
	}

	// The wave still resolves after the resize.
	for i := 0; g.Phase() == component.PhaseSpawningAndActive; i++ {
		if i > 100000 {
			t.Fatal("wave never resolved after resize")
		}
		g.Tick(0.25)
	}
}

func TestBuyUpgradePartialFill(t *testing.T) {
	g := newTestGame()

	gs := state.New()
	// Enough for exactly three damage levels.
	gs.Gold = 15 + 18 + 21 // ceil(15), ceil(15*1.18), ceil(15*1.18^2)
	g.SetSnapshot(gs, ApplyHard)

	bought := g.BuyUpgrade(defs.TrackDamage, BuyTen)
	if bought != 3 {
		t.Errorf("bought %d levels, want 3", bought)
	}
	snap := g.Snapshot()
	if snap.State.Upgrades[defs.TrackDamage] != 3 {
		t.Errorf("level = %d", snap.State.Upgrades[defs.TrackDamage])
	}
	if snap.State.Gold >= 15 {
		t.Errorf("gold left = %v, should not afford another level", snap.State.Gold)
	}
}
