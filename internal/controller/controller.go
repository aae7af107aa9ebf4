// Package controller implements the fighter's tactical policy: a priority
// cascade that maps observed bout state to a single Intent for the next
// tick. The controller never decides whether a thrown punch lands -- only
// what is attempted.
//
// The cascade is an ordered slice of predicate+producer Rules rather than
// one large function, so each step is testable in isolation: survival
// checks first, then opportunistic finishing, then a style-weighted
// default.
package controller

import (
	"fmt"
	"math/rand"

	"boxingsim/internal/effects"
	"boxingsim/internal/fighter"
	"boxingsim/internal/position"
	"boxingsim/internal/punch"
)

// Priority orders how urgently an intent should pre-empt lower-priority
// rules. Only used for the human-readable Strategy surfaced to display;
// the cascade itself is ties-broken by rule order, not by this value.
type Priority int

const (
	Critical Priority = iota
	Urgent
	High
	Normal
	Low
)

func (p Priority) String() string {
	switch p {
	case Critical:
		return "critical"
	case Urgent:
		return "urgent"
	case High:
		return "high"
	case Normal:
		return "normal"
	default:
		return "low"
	}
}

// Kind enumerates the actions a fighter controller may produce.
type Kind int

const (
	Throw Kind = iota
	Slip
	Block
	Clinch
	Move
	Rest
)

// Intent is the single action a controller emits for the next tick.
type Intent struct {
	Kind      Kind
	PunchType punch.Type
	Target    punch.Location
	Direction position.Direction
}

// Strategy is the human-readable label attached to an Intent for display
// only; it never influences resolution.
type Strategy struct {
	Name     string
	Priority Priority
}

// Observation is everything a controller may read: its own fighter and
// in-fight state, the opponent's, distance, round and elapsed round time,
// and the recent event window. Pure input; the controller mutates nothing.
type Observation struct {
	Self     *fighter.Fighter
	SelfFS   *fighter.InFightState
	Opp      *fighter.Fighter
	OppFS    *fighter.InFightState
	Distance float64
	Round    int
	RoundSec float64
}

// Rule is one cascade step: Match reports whether the rule applies to the
// observation, Produce yields the intent and display strategy when it does.
type Rule struct {
	Name    string
	Match   func(Observation, *rand.Rand) bool
	Produce func(Observation, *rand.Rand) (Intent, Strategy)
}

// Controller evaluates an ordered cascade of Rules against an Observation,
// returning the first matching rule's intent. Tie-break among rules that
// would match is deterministic by rule order -- earlier rules shadow later
// ones.
type Controller struct {
	rules []Rule
}

// New builds the default priority cascade: survival rules, then
// opportunistic finishing, then style-weighted default behavior.
func New() *Controller {
	return &Controller{rules: defaultRules()}
}

// UnrepresentableIntentError reports an intent outside the action
// enumeration, e.g. from a custom rule set. The engine recovers by
// substituting a rest for that tick.
type UnrepresentableIntentError struct {
	Kind Kind
}

func (e *UnrepresentableIntentError) Error() string {
	return fmt.Sprintf("controller: unrepresentable intent kind %d", e.Kind)
}

// Validate checks that an intent can be resolved: a known action kind,
// and a known punch type when the action is a throw.
func Validate(i Intent) error {
	if i.Kind < Throw || i.Kind > Rest {
		return &UnrepresentableIntentError{Kind: i.Kind}
	}
	if i.Kind == Throw {
		if i.PunchType < punch.Jab || i.PunchType > punch.Uppercut {
			return &UnrepresentableIntentError{Kind: i.Kind}
		}
	}
	return nil
}

// Decide runs the cascade and returns the first matching Intent. Falls back
// to Rest if no rule matches (should never happen; defaultRules always ends
// in a catch-all).
func (c *Controller) Decide(obs Observation, rng *rand.Rand) (Intent, Strategy) {
	for _, r := range c.rules {
		if r.Match(obs, rng) {
			return r.Produce(obs, rng)
		}
	}
	return Intent{Kind: Rest}, Strategy{Name: "fallback-rest", Priority: Low}
}

func defaultRules() []Rule {
	return []Rule{
		{
			Name: "opponent-down-hold",
			Match: func(o Observation, _ *rand.Rand) bool {
				return o.OppFS.IsDown()
			},
			Produce: func(o Observation, _ *rand.Rand) (Intent, Strategy) {
				return Intent{Kind: Move, Direction: position.Backward},
					Strategy{Name: "neutral-corner", Priority: Critical}
			},
		},
		{
			Name: "hurt-survive",
			Match: func(o Observation, _ *rand.Rand) bool {
				return o.SelfFS.State == fighter.Hurt || o.SelfFS.State == fighter.Stunned
			},
			Produce: func(o Observation, rng *rand.Rand) (Intent, Strategy) {
				if o.Distance < 2.0 {
					return Intent{Kind: Clinch}, Strategy{Name: "clinch-to-survive", Priority: Critical}
				}
				if rng.Float64() < 0.5 {
					return Intent{Kind: Block}, Strategy{Name: "cover-up", Priority: Critical}
				}
				return Intent{Kind: Move, Direction: position.Backward},
					Strategy{Name: "retreat-hurt", Priority: Critical}
			},
		},
		{
			Name: "gassed-rest-weighted",
			Match: func(o Observation, _ *rand.Rand) bool {
				return o.SelfFS.StaminaPercent < 0.15
			},
			Produce: func(o Observation, rng *rand.Rand) (Intent, Strategy) {
				if rng.Float64() < 0.6 {
					return Intent{Kind: Rest}, Strategy{Name: "tank-stamina", Priority: Urgent}
				}
				return Intent{Kind: Throw, PunchType: punch.Jab, Target: punch.Head},
					Strategy{Name: "arm-punch-jab", Priority: Urgent}
			},
		},
		{
			Name: "finish-hurt-opponent",
			Match: func(o Observation, _ *rand.Rand) bool {
				hurt := o.OppFS.State == fighter.Hurt || o.OppFS.State == fighter.Stunned
				return hurt && o.SelfFS.StaminaPercent > 0.4
			},
			Produce: func(o Observation, rng *rand.Rand) (Intent, Strategy) {
				pt := finishingPunch(o, rng)
				return Intent{Kind: Throw, PunchType: pt, Target: punch.Head},
					Strategy{Name: "finishing-combination", Priority: High}
			},
		},
		{
			Name:  "style-default",
			Match: func(Observation, *rand.Rand) bool { return true },
			Produce: func(o Observation, rng *rand.Rand) (Intent, Strategy) {
				return styleDefault(o, rng)
			},
		},
	}
}

func finishingPunch(o Observation, rng *rand.Rand) punch.Type {
	if o.Distance <= punch.Of(punch.Uppercut).MaxRange {
		if rng.Float64() < 0.5 {
			return punch.Uppercut
		}
		return punch.Hook
	}
	return punch.Cross
}

// activityRate is the per-tick probability that a fighter commits to
// offense instead of moving, feinting, and measuring. Most ticks are not
// punches; this is what keeps output near real-world punch volumes.
func activityRate(o Observation) float64 {
	var base float64
	switch o.Self.Style.Primary {
	case fighter.VolumePuncher:
		base = 0.34
	case fighter.Swarmer:
		base = 0.28
	case fighter.InsideFighter:
		base = 0.25
	case fighter.BoxerPuncher:
		base = 0.22
	case fighter.OutBoxer:
		base = 0.20
	case fighter.Slugger:
		base = 0.18
	case fighter.CounterPuncher:
		base = 0.15
	default:
		base = 0.22
	}
	// Tired fighters sit down on the stool mid-round.
	return base * (0.5 + o.SelfFS.StaminaPercent/2)
}

// feint is the non-committed default tick: close if out of range,
// otherwise circle or make the opponent miss.
func feint(o Observation, rng *rand.Rand) (Intent, Strategy) {
	if o.Distance > punch.Of(punch.Jab).MaxRange {
		return Intent{Kind: Move, Direction: position.Forward}, Strategy{Name: "close-distance", Priority: Normal}
	}
	if rng.Float64() < 0.5 {
		return Intent{Kind: Move, Direction: position.Circle}, Strategy{Name: "feint-and-measure", Priority: Low}
	}
	return Intent{Kind: Slip}, Strategy{Name: "feint-and-measure", Priority: Low}
}

// styleDefault implements the style-weighted probability table: each
// PrimaryStyle biases the move/throw mix differently across three range
// bands (too close, out of range, in the pocket).
func styleDefault(o Observation, rng *rand.Rand) (Intent, Strategy) {
	if rng.Float64() >= activityRate(o) {
		return feint(o, rng)
	}
	return styleAction(o, rng)
}

// styleAction is the committed-offense branch of the style table; the
// activity gate has already fired by the time it runs.
func styleAction(o Observation, rng *rand.Rand) (Intent, Strategy) {
	gassed := o.SelfFS.Effects.Has(effects.Gassed)

	inRange := func(t punch.Type) bool { return punch.Of(t).Feasible(o.Distance) }

	switch o.Self.Style.Primary {
	case fighter.OutBoxer:
		if o.Distance > punch.Of(punch.Jab).MaxRange {
			return Intent{Kind: Move, Direction: position.Forward}, Strategy{Name: "close-distance", Priority: Normal}
		}
		if inRange(punch.Jab) && !gassed && rng.Float64() < 0.6 {
			return Intent{Kind: Throw, PunchType: punch.Jab, Target: punch.Head}, Strategy{Name: "jab-and-move", Priority: Normal}
		}
		return Intent{Kind: Move, Direction: position.Circle}, Strategy{Name: "circle-out", Priority: Normal}
	case fighter.Swarmer:
		if o.Distance > punch.Of(punch.Hook).MaxRange {
			return Intent{Kind: Move, Direction: position.Forward}, Strategy{Name: "close-for-inside", Priority: Normal}
		}
		t := punch.Hook
		loc := punch.Body
		if rng.Float64() < 0.4 {
			loc = punch.Head
		}
		return Intent{Kind: Throw, PunchType: t, Target: loc}, Strategy{Name: "body-head-pressure", Priority: Normal}
	case fighter.Slugger:
		if inRange(punch.Cross) && !gassed {
			return Intent{Kind: Throw, PunchType: punch.Cross, Target: punch.Head}, Strategy{Name: "load-up-power", Priority: Normal}
		}
		return Intent{Kind: Move, Direction: position.Forward}, Strategy{Name: "walk-down", Priority: Normal}
	case fighter.CounterPuncher:
		if o.OppFS.Stats.Thrown() > 0 && rng.Float64() < 0.45 && inRange(punch.Cross) {
			return Intent{Kind: Throw, PunchType: punch.Cross, Target: punch.Head}, Strategy{Name: "counter-cross", Priority: Normal}
		}
		return Intent{Kind: Slip}, Strategy{Name: "wait-and-read", Priority: Normal}
	case fighter.InsideFighter:
		if o.Distance > punch.Of(punch.Uppercut).MaxRange {
			return Intent{Kind: Move, Direction: position.Forward}, Strategy{Name: "get-inside", Priority: Normal}
		}
		return Intent{Kind: Throw, PunchType: punch.Uppercut, Target: punch.Body}, Strategy{Name: "uppercut-inside", Priority: Normal}
	case fighter.VolumePuncher:
		if inRange(punch.Jab) {
			return Intent{Kind: Throw, PunchType: punch.Jab, Target: punch.Head}, Strategy{Name: "high-output-jab", Priority: Normal}
		}
		return Intent{Kind: Move, Direction: position.Forward}, Strategy{Name: "stay-busy", Priority: Normal}
	case fighter.SwitchHitter:
		if rng.Float64() < 0.5 {
			return styleAction(withStyle(o, fighter.OutBoxer), rng)
		}
		return styleAction(withStyle(o, fighter.Swarmer), rng)
	default: // BoxerPuncher and fallback
		if inRange(punch.Jab) && rng.Float64() < 0.5 {
			return Intent{Kind: Throw, PunchType: punch.Jab, Target: punch.Head}, Strategy{Name: "set-up-jab", Priority: Normal}
		}
		if inRange(punch.Cross) {
			return Intent{Kind: Throw, PunchType: punch.Cross, Target: punch.Head}, Strategy{Name: "straight-right", Priority: Normal}
		}
		return Intent{Kind: Move, Direction: position.Forward}, Strategy{Name: "close-range", Priority: Normal}
	}
}

// withStyle returns a shallow observation copy with a substituted primary
// style, used by SwitchHitter to delegate to one of its two blended styles
// without mutating the caller's Fighter.
func withStyle(o Observation, s fighter.PrimaryStyle) Observation {
	self := *o.Self
	self.Style.Primary = s
	o.Self = &self
	return o
}
