package foul

import (
	"math/rand"
	"testing"

	"boxingsim/internal/fighter"
	"boxingsim/internal/tunables"
)

// TestRollRespectsRates pins the zero-rate and certain-rate ends.
func TestRollRespectsRates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	none := tunables.Default()
	none.FoulRates = map[string]float64{}
	for i := 0; i < 100; i++ {
		if kinds := Roll(none, rng); len(kinds) != 0 {
			t.Fatal("foul detected with empty rate table")
		}
	}

	always := tunables.Default()
	always.FoulRates = map[string]float64{"holding": 1.0}
	kinds := Roll(always, rng)
	if len(kinds) != 1 || kinds[0] != Holding {
		t.Fatalf("Roll = %v, want [holding]", kinds)
	}
}

// TestWarningThenDeductionLadder walks one foul kind through the
// escalation to disqualification.
func TestWarningThenDeductionLadder(t *testing.T) {
	tun := tunables.Default()
	rec := fighter.NewFoulRecord()
	rng := rand.New(rand.NewSource(2))

	// First offense warns.
	d, dq := Apply(tun, rng, &rec, Holding)
	if !d.IsWarning || d.Deducted || dq {
		t.Fatalf("first offense: %+v dq=%v", d, dq)
	}

	// Repeat offenses deduct; the third deduction crosses the DQ line.
	for i := 1; i <= tun.DeductionDQCount; i++ {
		d, dq = Apply(tun, rng, &rec, Holding)
		if !d.Deducted {
			t.Fatalf("offense %d did not deduct", i+1)
		}
		wantDQ := i == tun.DeductionDQCount
		if dq != wantDQ {
			t.Fatalf("offense %d: dq = %v, want %v", i+1, dq, wantDQ)
		}
	}

	if rec.TotalDeductions() != tun.DeductionDQCount {
		t.Errorf("recorded %d deductions, want %d", rec.TotalDeductions(), tun.DeductionDQCount)
	}
}

// TestDeductionsAccumulateAcrossKinds verifies the DQ threshold counts
// all foul kinds together.
func TestDeductionsAccumulateAcrossKinds(t *testing.T) {
	tun := tunables.Default()
	rec := fighter.NewFoulRecord()
	rng := rand.New(rand.NewSource(3))

	kinds := []Kind{Holding, HittingOnBreak, RabbitPunch}
	// One warning each first.
	for _, k := range kinds {
		Apply(tun, rng, &rec, k)
	}

	dqSeen := false
	for _, k := range kinds {
		_, dq := Apply(tun, rng, &rec, k)
		dqSeen = dqSeen || dq
	}
	if !dqSeen {
		t.Error("three deductions across different kinds did not trigger DQ")
	}
}

// TestFlagrantChancesBounded sanity-checks the per-kind flagrant rates.
func TestFlagrantChancesBounded(t *testing.T) {
	for _, k := range All {
		c := k.FlagrantChance()
		if c < 0 || c > 0.1 {
			t.Errorf("%s flagrant chance %v outside [0,0.1]", k, c)
		}
	}
	if Headbutt.FlagrantChance() == 0 {
		t.Error("headbutt should carry single-incident DQ risk")
	}
}
