// Package foul implements detection and discipline for in-fight fouls:
// per-kind Bernoulli detection rolls, warning-then-deduction escalation,
// and the cumulative-deduction/flagrant-foul disqualification threshold.
package foul

import (
	"math/rand"

	"boxingsim/internal/fighter"
	"boxingsim/internal/tunables"
)

// Kind enumerates the fixed set of detectable fouls.
type Kind string

const (
	LowBlow        Kind = "low_blow"
	RabbitPunch    Kind = "rabbit_punch"
	Headbutt       Kind = "headbutt"
	Holding        Kind = "holding"
	HittingOnBreak Kind = "hitting_on_break"
)

// All enumerates every foul kind, used to roll detection once per
// candidate tick.
var All = []Kind{LowBlow, RabbitPunch, Headbutt, Holding, HittingOnBreak}

// FlagrantChance returns the probability that a single detected instance of
// this foul kind triggers an immediate disqualification rather than the
// warning/deduction ladder.
// Headbutts that draw blood and flagrant low-blows are the conventional
// single-incident DQ triggers; modeled here as a fixed flagrant-rate roll
// per detected foul rather than a separate kind.
func (k Kind) FlagrantChance() float64 {
	switch k {
	case Headbutt:
		return 0.05
	case LowBlow:
		return 0.02
	default:
		return 0.0
	}
}

// Detection is one tick's candidate-foul roll outcome.
type Detection struct {
	Kind      Kind
	Flagrant  bool
	IsWarning bool // true if this is the fighter's first offense of Kind
	Deducted  bool // true if a point was deducted this detection
}

// Roll evaluates every foul kind's per-tick Bernoulli detection chance for
// one fighter and returns any detections this tick (normally zero or one).
func Roll(t tunables.Table, rng *rand.Rand) []Kind {
	var hit []Kind
	for _, k := range All {
		rate, ok := t.FoulRates[string(k)]
		if !ok {
			continue
		}
		if rng.Float64() < rate {
			hit = append(hit, k)
		}
	}
	return hit
}

// Apply records a detected foul against the fouler's FoulRecord and
// returns the discipline outcome: warning vs. point deduction, whether
// this single foul is flagrant, and whether the fouler has now crossed the
// DQ threshold.
func Apply(t tunables.Table, rng *rand.Rand, rec *fighter.FoulRecord, k Kind) (Detection, bool) {
	d := Detection{Kind: k}

	if rng.Float64() < k.FlagrantChance() {
		d.Flagrant = true
		return d, true
	}

	warnings := rec.Warnings[string(k)]
	if warnings < t.WarningsBeforeDeduction {
		rec.Warnings[string(k)] = warnings + 1
		d.IsWarning = true
		return d, false
	}

	rec.Deductions[string(k)]++
	d.Deducted = true

	dq := rec.TotalDeductions() >= t.DeductionDQCount
	return d, dq
}
