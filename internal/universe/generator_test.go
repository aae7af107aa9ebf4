package universe

import (
	"math/rand"
	"testing"

	"boxingsim/internal/tunables"
)

// TestGenerateRosterCoversDivisions verifies roster size, division spread
// and attribute bounds.
func TestGenerateRosterCoversDivisions(t *testing.T) {
	u := New(Date{Year: 2026, Week: 1}, tunables.Default())
	GenerateRoster(u, rand.New(rand.NewSource(1)), 130, nil)

	if len(u.Fighters) != 130 {
		t.Fatalf("roster has %d fighters, want 130", len(u.Fighters))
	}
	for _, div := range DivisionNames {
		if n := len(u.ActiveFighters(div)); n != 10 {
			t.Errorf("division %s has %d fighters, want 10", div, n)
		}
	}

	now := u.Date.AsOf()
	for _, f := range u.Fighters {
		attrs := []int{
			f.Power.Left, f.Power.Right, f.Power.Knockout,
			f.Speed.Hand, f.Speed.Foot, f.Speed.Reflexes,
			f.Stamina.Cardio, f.Stamina.Recovery,
			f.Defense.HeadMovement, f.Defense.Blocking,
			f.Mental.Chin, f.Mental.Heart, f.Mental.KillerInstinct,
			f.Technical.Accuracy, f.Technical.FightIQ, f.Technical.RingGeneralship,
		}
		for _, v := range attrs {
			if v < 1 || v > 100 {
				t.Fatalf("fighter %s has attribute %d outside [1,100]", f.Name, v)
			}
		}
		if age := f.Age(now); age < 18 || age > 35 {
			t.Errorf("fighter %s generated at age %d", f.Name, age)
		}
		if f.Name == "" {
			t.Error("fighter generated without a name")
		}
	}
}

// TestGenerateRosterIsSeedDeterministic verifies two same-seed rosters
// match on everything except the random fighter IDs.
func TestGenerateRosterIsSeedDeterministic(t *testing.T) {
	build := func() *Universe {
		u := New(Date{Year: 2026, Week: 1}, tunables.Default())
		GenerateRoster(u, rand.New(rand.NewSource(77)), 26, nil)
		return u
	}
	u1, u2 := build(), build()

	list1 := u1.Divisions["Heavyweight"].RosterIDs
	list2 := u2.Divisions["Heavyweight"].RosterIDs
	if len(list1) != len(list2) {
		t.Fatal("rosters differ in size")
	}
	for i := range list1 {
		f1, f2 := u1.Fighters[list1[i]], u2.Fighters[list2[i]]
		if f1.Name != f2.Name || f1.Power != f2.Power || f1.Style != f2.Style {
			t.Fatalf("same seed produced different fighter #%d: %q vs %q", i, f1.Name, f2.Name)
		}
	}
}

// TestGenerateRosterProgressCallback checks the cooperative progress
// contract fires and ends on the final count.
func TestGenerateRosterProgressCallback(t *testing.T) {
	u := New(Date{Year: 2026, Week: 1}, tunables.Default())

	var last int
	GenerateRoster(u, rand.New(rand.NewSource(2)), 120, func(done, total int) {
		if total != 120 {
			t.Errorf("total = %d, want 120", total)
		}
		last = done
	})
	if last != 120 {
		t.Errorf("final progress call reported %d, want 120", last)
	}
}
