package system

import (
	"testing"

	"go-wave-defense/internal/config"
	"go-wave-defense/internal/event"
	"go-wave-defense/internal/passive"
)

func newAbility() *AbilitySystem {
	return NewAbilitySystem(event.NewDispatcher())
}

func TestAbsorbEscapeFullBlockShortCircuits(t *testing.T) {
	s := newAbility()
	mods := passive.Bundle{
		ShieldFullCharges:  1,
		ShieldPartialBlock: 0.5,
		StepShieldBlock:    0.3,
		EmergencyHeal:      20,
	}
	s.ResetForWave(mods)

	applied, heal := s.AbsorbEscape(40, 100, 100, 1.0, mods)
	if applied != 0 || heal != 0 {
		t.Errorf("full block should absorb everything: applied %v heal %v", applied, heal)
	}
	if s.Runtime().ShieldFullCharges != 0 {
		t.Error("full charge not consumed")
	}

	// Second hit falls through to the next stage.
	applied, _ = s.AbsorbEscape(40, 100, 100, 2.0, mods)
	if applied == 0 || applied >= 40 {
		t.Errorf("second hit should be partially blocked, applied %v", applied)
	}
}

func TestAbsorbEscapePartialAndStepShieldExclusive(t *testing.T) {
	s := newAbility()
	mods := passive.Bundle{
		ShieldPartialCharges: 1,
		ShieldPartialBlock:   0.5,
		StepShieldBlock:      0.25,
	}
	s.ResetForWave(mods)

	// First hit consumes the partial charge; the step shield must stay cold.
	applied, _ := s.AbsorbEscape(40, 100, 100, 1.0, mods)
	if applied != 20 {
		t.Errorf("partial block applied %v, want 20", applied)
	}
	if s.Runtime().StepShieldCooldown != 0 {
		t.Error("step shield fired on the same hit as the partial charge")
	}

	// Charges gone; the step shield takes the next hit and starts cooling.
	applied, _ = s.AbsorbEscape(40, 100, 100, 2.0, mods)
	if applied != 30 {
		t.Errorf("step shield applied %v, want 30", applied)
	}
	if s.Runtime().StepShieldCooldown != config.StepShieldCooldown {
		t.Error("step shield cooldown not armed")
	}

	// While cooling down, hits pass through untouched.
	applied, _ = s.AbsorbEscape(40, 100, 100, 3.0, mods)
	if applied != 40 {
		t.Errorf("cooling step shield still blocked: applied %v", applied)
	}
}

func TestStepShieldCooldownRecovers(t *testing.T) {
	s := newAbility()
	mods := passive.Bundle{StepShieldBlock: 0.5}
	s.ResetForWave(mods)

	s.AbsorbEscape(10, 100, 100, 0, mods)
	for i := 0; i < 100; i++ {
		s.Update(config.StepShieldCooldown / 50)
	}
	applied, _ := s.AbsorbEscape(10, 100, 100, 10, mods)
	if applied != 5 {
		t.Errorf("recovered step shield applied %v, want 5", applied)
	}
}

func TestEmergencyHealFiresOncePerWave(t *testing.T) {
	s := newAbility()
	mods := passive.Bundle{EmergencyHeal: 30}
	s.ResetForWave(mods)

	// Health drops to 20 of 100, under the emergency ratio.
	applied, heal := s.AbsorbEscape(10, 30, 100, 1.0, mods)
	if applied != 10 || heal != 30 {
		t.Errorf("emergency heal: applied %v heal %v, want 10/30", applied, heal)
	}

	// Never twice in one wave.
	_, heal = s.AbsorbEscape(10, 30, 100, 2.0, mods)
	if heal != 0 {
		t.Errorf("emergency heal fired twice: %v", heal)
	}

	// A new wave refills the one-shot.
	s.ResetForWave(mods)
	_, heal = s.AbsorbEscape(10, 30, 100, 1.0, mods)
	if heal != 30 {
		t.Errorf("emergency heal not restored on wave reset: %v", heal)
	}
}

func TestEmergencyHealNotOnLethalHit(t *testing.T) {
	s := newAbility()
	mods := passive.Bundle{EmergencyHeal: 30}
	s.ResetForWave(mods)

	// The hit itself is lethal; the heal cannot save an already dead base.
	_, heal := s.AbsorbEscape(50, 40, 100, 1.0, mods)
	if heal != 0 {
		t.Errorf("heal fired on lethal hit: %v", heal)
	}
}

func TestRefundOnLowHealth(t *testing.T) {
	s := newAbility()
	mods := passive.Bundle{RefundOnLowHealth: 0.5}
	s.ResetForWave(mods)

	// Post-hit health 25 of 100 is below the refund line.
	applied, heal := s.AbsorbEscape(10, 35, 100, 1.0, mods)
	if applied != 10 || heal != 5 {
		t.Errorf("refund: applied %v heal %v, want 10/5", applied, heal)
	}

	// Comfortable health, no refund.
	_, heal = s.AbsorbEscape(10, 90, 100, 2.0, mods)
	if heal != 0 {
		t.Errorf("refund fired at high health: %v", heal)
	}
}

func TestComboStacksCapAndReset(t *testing.T) {
	s := newAbility()
	mods := passive.Bundle{ComboMaxStacks: 3}
	s.ResetForWave(mods)

	for i := 0; i < 10; i++ {
		s.OnKill(mods)
	}
	if got := s.ComboStacks(); got != 3 {
		t.Errorf("combo stacks = %d, want cap 3", got)
	}

	s.ResetForWave(mods)
	if got := s.ComboStacks(); got != 0 {
		t.Errorf("stacks survived wave reset: %d", got)
	}
}

func TestBurstWindowExpires(t *testing.T) {
	s := newAbility()
	mods := passive.Bundle{BurstTime: 1.0, BurstMult: 0.5}
	s.ResetForWave(mods)

	if !s.BurstActive() {
		t.Fatal("burst should open at wave start")
	}
	s.Update(0.6)
	if !s.BurstActive() {
		t.Error("burst closed early")
	}
	s.Update(0.6)
	if s.BurstActive() {
		t.Error("burst still open past its window")
	}
}
