// Package scoring implements round-by-round judge scoring as a pure
// function over round statistics, kept separate from any display logic.
// Judge randomness comes in through an explicit *rand.Rand so a replayed
// bout scores identically.
package scoring

import (
	"math/rand"

	"boxingsim/internal/tunables"
)

// JudgeProfile biases how a judge weighs the components of a round.
type JudgeProfile int

const (
	Power JudgeProfile = iota
	Volume
	Balanced
)

// RoundStats is one fighter's round-level tallies fed into scoring.
type RoundStats struct {
	DamageDealt     float64
	PowerLanded     int
	JabsLanded      int
	TotalLanded     int
	StaggersCaused  int
	Knockdowns      int
	PointDeductions int
}

// RoundScore is one judge's scorecard entry for a single round.
type RoundScore struct {
	JudgeID int
	A, B    int
}

// ScoreRound scores one round for judge judgeID with the given profile.
// A knockdown always overrides stagger-only computation: in a round with a
// real knockdown the felled fighter scores 9 minus the knockdowns suffered
// (10-8 for one, 10-7 for two, never below 7) before any stagger-based 10-8
// is considered. cardGapAB is the running card gap
// (positive when A leads), used for the close-round balancing nudge.
func ScoreRound(t tunables.Table, judgeID int, profile JudgeProfile, a, b RoundStats, cardGapAB int, rng *rand.Rand) RoundScore {
	if a.Knockdowns > 0 || b.Knockdowns > 0 {
		return knockdownScore(judgeID, a, b)
	}

	advA := effectiveAdvantage(t, profile, a, b)

	advA += (rng.Float64()*2 - 1) * t.JudgeVarianceBand
	if rng.Float64() < 0.30 {
		advA += (rng.Float64()*2 - 1) * t.MemorableMomentBand
	}
	if rng.Float64() < t.SwingRoundChance {
		advA += (rng.Float64()*2 - 1) * t.SwingRoundBand
	}

	// Once the cards have opened a gap, nudge close rounds toward the
	// trailing fighter.
	if cardGapAB >= t.BalancingNudgeGap {
		advA -= t.BalancingNudgeAmount
	} else if cardGapAB <= -t.BalancingNudgeGap {
		advA += t.BalancingNudgeAmount
	}

	if advA < t.AdvantageClampLow {
		advA = t.AdvantageClampLow
	}
	if advA > t.AdvantageClampHigh {
		advA = t.AdvantageClampHigh
	}

	aScore, bScore := bandToRound(t, advA, rng)

	if a.StaggersCaused >= 2 && b.StaggersCaused == 0 {
		aScore, bScore = 10, 8
	} else if b.StaggersCaused >= 2 && a.StaggersCaused == 0 {
		aScore, bScore = 8, 10
	}

	aScore = clampScore(aScore - a.PointDeductions)
	bScore = clampScore(bScore - b.PointDeductions)

	return RoundScore{JudgeID: judgeID, A: aScore, B: bScore}
}

func clampScore(v int) int {
	if v < 7 {
		return 7
	}
	return v
}

// knockdownScore applies the conventional knockdown override: a fighter
// dropped once loses the round 10-8, and each further knockdown costs
// another point down to the 7 floor.
func knockdownScore(judgeID int, a, b RoundStats) RoundScore {
	aScore, bScore := 10, 10
	if a.Knockdowns > 0 {
		bScore = 9 - a.Knockdowns
	}
	if b.Knockdowns > 0 {
		aScore = 9 - b.Knockdowns
	}
	aScore = clampScore(aScore - a.PointDeductions)
	bScore = clampScore(bScore - b.PointDeductions)
	return RoundScore{JudgeID: judgeID, A: aScore, B: bScore}
}

// effectiveAdvantage computes fighter A's [0,1] advantage for the round
// from damage, power shots, jabs, total landed, and the per-stagger bonus,
// weighted per judge personality.
func effectiveAdvantage(t tunables.Table, profile JudgeProfile, a, b RoundStats) float64 {
	var wDamage, wPower, wVolume, wJab float64
	switch profile {
	case Power:
		wDamage, wPower, wJab, wVolume = 0.45, 0.35, 0.05, 0.15
	case Volume:
		wDamage, wPower, wJab, wVolume = 0.20, 0.15, 0.25, 0.40
	default: // Balanced
		wDamage, wPower, wJab, wVolume = 0.30, 0.25, 0.15, 0.30
	}

	staggerA := float64(a.StaggersCaused) * t.StaggerBonusPerStagger
	staggerB := float64(b.StaggersCaused) * t.StaggerBonusPerStagger

	scoreA := a.DamageDealt*wDamage*100 + float64(a.PowerLanded)*wPower +
		float64(a.JabsLanded)*wJab + float64(a.TotalLanded)*wVolume*0.3 + staggerA
	scoreB := b.DamageDealt*wDamage*100 + float64(b.PowerLanded)*wPower +
		float64(b.JabsLanded)*wJab + float64(b.TotalLanded)*wVolume*0.3 + staggerB

	total := scoreA + scoreB
	if total <= 0 {
		return 0.5
	}
	return scoreA / total
}

// bandToRound maps a [0,1] advantage to a 10-9, 9-10 or even round, with
// a minority-upset roll so even a one-sided statistical round occasionally
// goes the other way. A 10-8 without a knockdown comes only from the
// multi-stagger override, never from volume alone.
func bandToRound(t tunables.Table, advA float64, rng *rand.Rand) (int, int) {
	upset := rng.Float64() < t.MinorityUpsetChance

	switch {
	case advA >= 0.56:
		if upset {
			return 9, 10
		}
		return 10, 9
	case advA <= 0.44:
		if upset {
			return 10, 9
		}
		return 9, 10
	default:
		return 10, 10
	}
}

// DecisionKind classifies a full-fight aggregate across three judges.
type DecisionKind int

const (
	Unanimous DecisionKind = iota
	Majority
	Split
	DrawUnanimous
	DrawMajority
	DrawSplit
)

// Tally totals three judges' per-round cards into a decision.
func Tally(cards [3][]RoundScore) (totals [3][2]int, kind DecisionKind) {
	for j := 0; j < 3; j++ {
		for _, rs := range cards[j] {
			totals[j][0] += rs.A
			totals[j][1] += rs.B
		}
	}

	winA, winB, draw := 0, 0, 0
	for j := 0; j < 3; j++ {
		switch {
		case totals[j][0] > totals[j][1]:
			winA++
		case totals[j][1] > totals[j][0]:
			winB++
		default:
			draw++
		}
	}

	switch {
	case winA == 3 || winB == 3:
		return totals, Unanimous
	case draw == 3:
		return totals, DrawUnanimous
	case winA == 2 && draw == 1, winB == 2 && draw == 1:
		return totals, Majority
	case winA == 1 && winB == 1 && draw == 1:
		return totals, DrawSplit
	case winA == 1 && draw == 2, winB == 1 && draw == 2:
		return totals, DrawMajority
	default:
		return totals, Split
	}
}

// MajorityCard returns the majority verdict of the three judges for a
// single round, falling back to the BALANCED judge (index 2 by convention)
// on a three-way disagreement.
func MajorityCard(j0, j1, j2 RoundScore) RoundScore {
	votes := map[[2]int]int{}
	votes[[2]int{j0.A, j0.B}]++
	votes[[2]int{j1.A, j1.B}]++
	votes[[2]int{j2.A, j2.B}]++

	for k, v := range votes {
		if v >= 2 {
			return RoundScore{A: k[0], B: k[1]}
		}
	}
	return j2
}
