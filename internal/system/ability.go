// internal/system/ability.go
package system

import (
	"go-wave-defense/internal/component"
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/event"
	"go-wave-defense/internal/passive"
)

// AbilitySystem owns the wave-scoped ability runtime: combo stacks, timed
// buffs, shield charges and the escape-hit absorption chain.
type AbilitySystem struct {
	runtime    component.AbilityRuntime
	dispatcher *event.Dispatcher
}

func NewAbilitySystem(dispatcher *event.Dispatcher) *AbilitySystem {
	return &AbilitySystem{dispatcher: dispatcher}
}

// Runtime exposes a read-only copy for snapshots.
func (s *AbilitySystem) Runtime() component.AbilityRuntime {
	return s.runtime
}

// ResetForWave refills charges and buffs from the bundle in force at wave
// start. Everything here is wave-scoped by contract.
func (s *AbilitySystem) ResetForWave(mods passive.Bundle) {
	s.runtime = component.AbilityRuntime{
		BurstRemaining:       mods.BurstTime,
		ShieldFullCharges:    int(mods.ShieldFullCharges),
		ShieldPartialCharges: int(mods.ShieldPartialCharges),
	}
}

// Update ticks buff timers and cooldowns.
func (s *AbilitySystem) Update(dt float64) {
	if s.runtime.BurstRemaining > 0 {
		s.runtime.BurstRemaining -= dt
		if s.runtime.BurstRemaining < 0 {
			s.runtime.BurstRemaining = 0
		}
	}
	if s.runtime.StepShieldCooldown > 0 {
		s.runtime.StepShieldCooldown -= dt
		if s.runtime.StepShieldCooldown < 0 {
			s.runtime.StepShieldCooldown = 0
		}
	}
}

// BurstActive reports whether the wave-start damage window is still open.
func (s *AbilitySystem) BurstActive() bool {
	return s.runtime.BurstRemaining > 0
}

// ComboStacks returns the current stack count, already capped.
func (s *AbilitySystem) ComboStacks() int {
	return s.runtime.ComboStacks
}

// OnKill advances the combo counter up to the bundle's cap.
func (s *AbilitySystem) OnKill(mods passive.Bundle) {
	maxStacks := int(mods.ComboMaxStacks)
	if s.runtime.ComboStacks < maxStacks {
		s.runtime.ComboStacks++
	}
}

// AbsorbEscape runs one escape hit through the defensive chain in priority
// order: full-block charge, partial-block charge, step shield, then the
// post-block reactions (low-health refund heal, one-shot emergency heal).
// It returns the damage to apply and any heal to add back, and records the
// proc tag for host feedback.
//
// A full block short-circuits the chain. Partial-block and step shield are
// exclusive per hit; the refund and emergency heal key off the post-block
// damage and resulting health, so they stack with whichever block fired.
func (s *AbilitySystem) AbsorbEscape(damage, health, maxHealth, simTime float64, mods passive.Bundle) (applied, heal float64) {
	tag := ""

	switch {
	case s.runtime.ShieldFullCharges > 0:
		s.runtime.ShieldFullCharges--
		s.tagProc("shield_full", simTime)
		return 0, 0

	case s.runtime.ShieldPartialCharges > 0:
		s.runtime.ShieldPartialCharges--
		damage *= 1 - mods.ShieldPartialBlock
		tag = "shield_partial"

	case mods.StepShieldBlock > 0 && s.runtime.StepShieldCooldown <= 0:
		s.runtime.StepShieldCooldown = config.StepShieldCooldown
		damage *= 1 - mods.StepShieldBlock
		tag = "step_shield"
	}

	after := health - damage
	if mods.RefundOnLowHealth > 0 && after > 0 && after < maxHealth*config.RefundHealthRatio {
		heal += damage * mods.RefundOnLowHealth
		tag = "shock_absorbers"
	}
	if mods.EmergencyHeal > 0 && !s.runtime.EmergencyHealUsed && after > 0 && after <= maxHealth*config.EmergencyHealRatio {
		s.runtime.EmergencyHealUsed = true
		heal += mods.EmergencyHeal
		tag = "emergency_heal"
	}

	if tag != "" {
		s.tagProc(tag, simTime)
	}
	return damage, heal
}

func (s *AbilitySystem) tagProc(tag string, simTime float64) {
	s.runtime.LastProcTag = tag
	s.runtime.LastProcExpiry = simTime + config.ProcTagDuration
	s.dispatcher.Dispatch(event.Event{Type: event.AbilityProc, Data: tag})
}
