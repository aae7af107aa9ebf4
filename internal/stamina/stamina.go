// Package stamina implements a drain/recovery model: stamina drains on
// thrown punches and passively with round time, recovers between rounds
// at a fighter-specific rate, and triggers a GASSED debuff below a
// threshold.
package stamina

import (
	"boxingsim/internal/effects"
	"boxingsim/internal/punch"
	"boxingsim/internal/tunables"
)

// Pool tracks one fighter's stamina percentage in [0,1].
type Pool struct {
	Percent float64
}

// NewPool returns a full stamina pool.
func NewPool() Pool { return Pool{Percent: 1.0} }

// DrainForPunch applies the stamina cost of throwing a punch, scaled by the
// fighter's cardio attribute (higher cardio, less drain).
func (p *Pool) DrainForPunch(t tunables.Table, cardio int, punchType punch.Type) {
	cost := punch.Of(punchType).StaminaCost
	if punchType.IsPower() {
		cost += t.StaminaDrainPower - t.StaminaDrainJab
	}
	// cardio in [1,100]; scale drain down as cardio rises, floor at 40%.
	scale := 1.2 - (float64(cardio)/100.0)*0.8
	p.drain(cost * scale)
}

// DrainPassive applies the per-tick passive drain regardless of action.
func (p *Pool) DrainPassive(t tunables.Table) {
	p.drain(t.StaminaPassiveDrain)
}

// DrainBodyHit applies the extra stamina loss a fighter suffers from
// taking a body punch.
func (p *Pool) DrainBodyHit(t tunables.Table, punchType punch.Type) {
	p.drain(t.BodyStaminaDrain * punch.Of(punchType).BodyStaminaMultiplier)
}

func (p *Pool) drain(amount float64) {
	p.Percent -= amount
	if p.Percent < 0 {
		p.Percent = 0
	}
}

// RecoverBetweenRounds applies end-of-round recovery scaled by the
// fighter's recovery attribute.
func (p *Pool) RecoverBetweenRounds(t tunables.Table, recoveryAttr int) {
	amount := t.StaminaRecoveryRate * (0.5 + float64(recoveryAttr)/100.0)
	p.Percent += amount
	if p.Percent > 1.0 {
		p.Percent = 1.0
	}
}

// ApplyGassed applies or clears the GASSED debuff based on the current
// threshold, mutating the fighter's effect list.
func ApplyGassed(t tunables.Table, pool Pool, el *effects.EffectList) {
	if pool.Percent < t.GassedThreshold {
		el.Apply(effects.Effect{
			Kind:           effects.Gassed,
			Magnitude:      t.GassedAccuracyPenalty,
			RemainingTicks: 2, // refreshed every tick the condition holds
			Stack:          effects.Refresh,
		})
		return
	}
	el.Remove(effects.Gassed)
}
