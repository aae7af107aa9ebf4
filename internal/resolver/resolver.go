// Package resolver implements the combat resolver: given two fighters'
// intents for the same tick, it produces PunchOutcomes (hit/miss, damage,
// counter status, knockdown and hurt rolls). All randomness flows through
// the caller's *rand.Rand so resolution stays replay-deterministic.
package resolver

import (
	"math/rand"

	"boxingsim/internal/controller"
	"boxingsim/internal/effects"
	"boxingsim/internal/fighter"
	"boxingsim/internal/punch"
	"boxingsim/internal/tunables"
)

// PunchOutcome is the result of resolving one fighter's offensive intent.
type PunchOutcome struct {
	Attacker        int // 0 or 1, index into the Fight's two fighters
	PunchType       punch.Type
	Location        punch.Location
	Landed          bool
	Damage          float64
	IsCounter       bool
	CausesHurt      bool
	CausesKnockdown bool
}

// Resolve produces outcomes for both fighters' intents this tick, in
// attacker order A then B. Mutual landing is permitted (simultaneous
// exchange).
func Resolve(t tunables.Table, rng *rand.Rand, a, b fighterCtx) (PunchOutcome, PunchOutcome, bool, bool) {
	var outA, outB PunchOutcome
	var hasA, hasB bool

	if a.Intent.Kind == controller.Throw {
		outA, hasA = resolveOne(t, rng, 0, a, b)
	}
	if b.Intent.Kind == controller.Throw {
		outB, hasB = resolveOne(t, rng, 1, b, a)
	}

	// Counter classification: a punch lands as a counter iff the defender's
	// intent this tick was also a punch and the attacker resolves second.
	// Attacker A always resolves first, so only B's landed punch can be a
	// counter against A's simultaneous throw.
	if hasB && outB.Landed && a.Intent.Kind == controller.Throw {
		outB.IsCounter = true
		outB.Damage *= 1 + t.CounterBonus
		outB.CausesKnockdown = rollKnockdown(t, rng, outB, b, a)
		outB.CausesHurt = outB.CausesKnockdown || outB.CausesHurt || rollHurt(t, rng, outB, a)
	}

	return outA, outB, hasA, hasB
}

// fighterCtx bundles what the resolver needs to read about one side:
// static attributes, mutable in-fight state, and this tick's intent.
type fighterCtx struct {
	F      *fighter.Fighter
	FS     *fighter.InFightState
	Intent controller.Intent
	Dist   float64
}

// NewFighterCtx constructs a resolver-facing context for one fighter.
func NewFighterCtx(f *fighter.Fighter, fs *fighter.InFightState, intent controller.Intent, dist float64) fighterCtx {
	return fighterCtx{F: f, FS: fs, Intent: intent, Dist: dist}
}

func resolveOne(t tunables.Table, rng *rand.Rand, attackerIdx int, atk, def fighterCtx) (PunchOutcome, bool) {
	profile := punch.Of(atk.Intent.PunchType)
	if !profile.Feasible(atk.Dist) {
		return PunchOutcome{}, false
	}

	out := PunchOutcome{
		Attacker:  attackerIdx,
		PunchType: atk.Intent.PunchType,
		Location:  atk.Intent.Target,
	}

	if rng.Float64() >= hitChance(t, atk, def) {
		return out, true // miss
	}
	out.Landed = true

	out.Damage = baseDamage(t, atk, def, out)
	out.CausesKnockdown = rollKnockdown(t, rng, out, atk, def)
	out.CausesHurt = out.CausesKnockdown || rollHurt(t, rng, out, def)

	return out, true
}

func hitChance(t tunables.Table, atk, def fighterCtx) float64 {
	chance := t.BaseHitChance
	chance += (float64(atk.F.Technical.Accuracy) - 50) / 100 * t.AccuracyWeight
	chance += (float64(atk.F.Speed.Hand) - float64(def.F.Speed.Reflexes)) / 100 * t.SpeedAdvantageWeight
	defenseScore := float64(def.F.Defense.Blocking+def.F.Defense.HeadMovement) / 2
	chance -= (defenseScore - 50) / 100 * t.DefenseWeight
	chance += (1 - def.FS.StaminaPercent) * t.StaminaHitPenalty

	// A defender committed to defense this tick is harder to catch clean.
	switch def.Intent.Kind {
	case controller.Block:
		chance -= 0.15
	case controller.Slip:
		chance -= 0.10
	case controller.Clinch:
		chance -= 0.20
	}

	if def.FS.Effects.Has(effects.Gassed) {
		chance += t.GassedAccuracyPenalty * 0.3
	}
	if atk.FS.Effects.Has(effects.Gassed) {
		chance -= t.GassedAccuracyPenalty
	}

	if chance < t.MinHitChance {
		chance = t.MinHitChance
	}
	if chance > t.MaxHitChance {
		chance = t.MaxHitChance
	}
	return chance
}

func baseDamage(t tunables.Table, atk, def fighterCtx, out PunchOutcome) float64 {
	profile := punch.Of(out.PunchType)
	power := float64(atk.F.Power.Right)
	if out.PunchType == punch.Jab {
		power = (float64(atk.F.Power.Left) + float64(atk.F.Power.Right)) / 2 * 0.6
	}

	chinResist := 1 - float64(def.F.Mental.Chin)/t.ChinResistanceDiv
	if chinResist < 0.3 {
		chinResist = 0.3
	}

	dmg := power * t.BaseDamageScale * profile.PowerWeight * chinResist

	if atk.FS.Effects.Has(effects.Gassed) {
		dmg *= 1 - t.GassedPowerPenalty
	}
	if m, ok := atk.FS.Effects.Get(effects.Momentum); ok {
		dmg *= 1 + m.Magnitude
	}
	if c, ok := atk.FS.Effects.Get(effects.Confidence); ok {
		dmg *= 1 + c.Magnitude*0.5
	}
	if hh, ok := atk.FS.Effects.Get(effects.HurtHands); ok {
		red := hh.Magnitude
		if red > 0.5 {
			red = 0.5
		}
		dmg *= 1 - red
	}
	if def.FS.Effects.Has(effects.Staggered) {
		dmg *= 1 + t.KnockdownStaggerBonus
	}
	if def.Intent.Kind == controller.Clinch {
		dmg *= 0.5
	}

	return dmg
}

func rollKnockdown(t tunables.Table, rng *rand.Rand, out PunchOutcome, atk, def fighterCtx) bool {
	p := t.KnockdownBase
	p += out.Damage * t.KnockdownDamageWeight
	p += def.FS.HeadDamage * t.KnockdownCumWeight
	if out.Location == punch.Body {
		// Body shots fell a fighter through accumulated body damage, not
		// head trauma.
		p += def.FS.BodyDamage * t.KnockdownCumWeight * 0.5
	}
	p -= float64(def.F.Mental.Chin) / t.KnockdownChinDivisor
	p -= float64(def.F.Mental.Heart) / t.KnockdownHeartDivisor
	if def.FS.State == fighter.Hurt || def.FS.State == fighter.Stunned {
		p += t.KnockdownStaggerBonus
	}
	if out.Location == punch.Body {
		p *= 0.5
	}
	if p < 0 {
		p = 0
	}
	return rng.Float64() < p
}

func rollHurt(t tunables.Table, rng *rand.Rand, out PunchOutcome, def fighterCtx) bool {
	p := t.KnockdownBase / t.HurtThresholdRatio
	p += out.Damage * t.KnockdownDamageWeight / t.HurtThresholdRatio
	p += def.FS.HeadDamage * t.KnockdownCumWeight / t.HurtThresholdRatio
	p -= float64(def.F.Mental.Chin) / (t.KnockdownChinDivisor * 1.5)
	if p < 0 {
		p = 0
	}
	return rng.Float64() < p
}
