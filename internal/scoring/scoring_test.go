package scoring

import (
	"math/rand"
	"testing"

	"boxingsim/internal/tunables"
)

// TestKnockdownOverridesEverything scores a round where A lands 30 jabs
// but B scores one knockdown: every judge profile must return 10-8 B.
func TestKnockdownOverridesEverything(t *testing.T) {
	a := RoundStats{JabsLanded: 30, TotalLanded: 30, DamageDealt: 0.6}
	b := RoundStats{Knockdowns: 1, PowerLanded: 1, TotalLanded: 1, DamageDealt: 0.1}

	for _, profile := range []JudgeProfile{Power, Volume, Balanced} {
		rng := rand.New(rand.NewSource(1))
		rs := ScoreRound(tunables.Default(), 0, profile, a, b, 0, rng)
		if rs.A != 8 || rs.B != 10 {
			t.Errorf("profile %d: got %d-%d, want 8-10", profile, rs.A, rs.B)
		}
	}
}

// TestSecondKnockdownCostsAnotherPoint checks the 10-7 band and its floor.
func TestSecondKnockdownCostsAnotherPoint(t *testing.T) {
	tests := []struct {
		name       string
		knockdowns int
		wantB      int
	}{
		{"one knockdown", 1, 8},
		{"two knockdowns", 2, 7},
		{"three knockdowns floors at 7", 3, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			rs := ScoreRound(tunables.Default(), 0, Balanced, RoundStats{Knockdowns: tt.knockdowns}, RoundStats{}, 0, rng)
			if rs.A != 10 || rs.B != tt.wantB {
				t.Errorf("got %d-%d, want 10-%d", rs.A, rs.B, tt.wantB)
			}
		})
	}
}

// TestRoundScoreBounds fuzzes knockdown-free rounds and asserts every
// score pair without deductions is 10-10, 10-9, 9-10, or a multi-stagger
// 10-8.
func TestRoundScoreBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tun := tunables.Default()

	for i := 0; i < 500; i++ {
		a := RoundStats{
			DamageDealt: rng.Float64() * 0.3,
			PowerLanded: rng.Intn(20), JabsLanded: rng.Intn(30),
			StaggersCaused: rng.Intn(3),
		}
		a.TotalLanded = a.PowerLanded + a.JabsLanded
		b := RoundStats{
			DamageDealt: rng.Float64() * 0.3,
			PowerLanded: rng.Intn(20), JabsLanded: rng.Intn(30),
			StaggersCaused: rng.Intn(3),
		}
		b.TotalLanded = b.PowerLanded + b.JabsLanded

		rs := ScoreRound(tun, i%3, JudgeProfile(i%3), a, b, 0, rng)
		if rs.A < 7 || rs.A > 10 || rs.B < 7 || rs.B > 10 {
			t.Fatalf("iteration %d: score %d-%d outside [7,10]", i, rs.A, rs.B)
		}

		multiStagger := (a.StaggersCaused >= 2 && b.StaggersCaused == 0) ||
			(b.StaggersCaused >= 2 && a.StaggersCaused == 0)
		if !multiStagger {
			ok := (rs.A == 10 && rs.B >= 9) || (rs.B == 10 && rs.A >= 9)
			if !ok {
				t.Fatalf("iteration %d: plain round scored %d-%d", i, rs.A, rs.B)
			}
		}
	}
}

// TestMultiStaggerForcesTenEight verifies two unanswered staggers force a
// 10-8 round.
func TestMultiStaggerForcesTenEight(t *testing.T) {
	a := RoundStats{StaggersCaused: 2, PowerLanded: 5, TotalLanded: 8, DamageDealt: 0.2}
	b := RoundStats{TotalLanded: 3, JabsLanded: 3}

	rng := rand.New(rand.NewSource(9))
	rs := ScoreRound(tunables.Default(), 0, Volume, a, b, 0, rng)
	if rs.A != 10 || rs.B != 8 {
		t.Errorf("got %d-%d, want 10-8", rs.A, rs.B)
	}
}

// TestPointDeductionApplied verifies deductions subtract from the round
// score after banding.
func TestPointDeductionApplied(t *testing.T) {
	a := RoundStats{Knockdowns: 1, PointDeductions: 1}
	rng := rand.New(rand.NewSource(1))
	rs := ScoreRound(tunables.Default(), 0, Balanced, a, RoundStats{}, 0, rng)
	if rs.A != 9 {
		t.Errorf("deduction not applied: got A=%d, want 9", rs.A)
	}
}

func card(scores ...[2]int) []RoundScore {
	out := make([]RoundScore, len(scores))
	for i, s := range scores {
		out[i] = RoundScore{A: s[0], B: s[1]}
	}
	return out
}

// TestTallyClassification covers the decision taxonomy.
func TestTallyClassification(t *testing.T) {
	tests := []struct {
		name  string
		cards [3][]RoundScore
		want  DecisionKind
	}{
		{
			"unanimous",
			[3][]RoundScore{card([2]int{10, 9}), card([2]int{10, 9}), card([2]int{10, 9})},
			Unanimous,
		},
		{
			"split",
			[3][]RoundScore{card([2]int{10, 9}), card([2]int{9, 10}), card([2]int{10, 9})},
			Split,
		},
		{
			"majority",
			[3][]RoundScore{card([2]int{10, 9}), card([2]int{10, 9}), card([2]int{10, 10})},
			Majority,
		},
		{
			"unanimous draw",
			[3][]RoundScore{card([2]int{10, 10}), card([2]int{10, 10}), card([2]int{10, 10})},
			DrawUnanimous,
		},
		{
			"majority draw",
			[3][]RoundScore{card([2]int{10, 10}), card([2]int{10, 10}), card([2]int{10, 9})},
			DrawMajority,
		},
		{
			"split draw",
			[3][]RoundScore{card([2]int{10, 9}), card([2]int{9, 10}), card([2]int{10, 10})},
			DrawSplit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, kind := Tally(tt.cards)
			if kind != tt.want {
				t.Errorf("got %d, want %d", kind, tt.want)
			}
		})
	}
}

// TestMajorityCard checks the two-of-three vote and the balanced-judge
// fallback on full disagreement.
func TestMajorityCard(t *testing.T) {
	agree := MajorityCard(RoundScore{A: 10, B: 9}, RoundScore{A: 10, B: 9}, RoundScore{A: 9, B: 10})
	if agree.A != 10 || agree.B != 9 {
		t.Errorf("majority vote: got %d-%d, want 10-9", agree.A, agree.B)
	}

	split := MajorityCard(RoundScore{A: 10, B: 8}, RoundScore{A: 9, B: 10}, RoundScore{A: 10, B: 10})
	if split.A != 10 || split.B != 10 {
		t.Errorf("fallback: got %d-%d, want the balanced judge's 10-10", split.A, split.B)
	}
}
