package punch

import "testing"

// TestRangeBands verifies jabs reach farthest and uppercuts need inside
// position.
func TestRangeBands(t *testing.T) {
	tests := []struct {
		punchType Type
		dist      float64
		feasible  bool
	}{
		{Jab, 8.5, true},
		{Jab, 2.0, false}, // too close to extend a jab
		{Cross, 6.5, true},
		{Cross, 8.0, false},
		{Hook, 1.0, true},
		{Hook, 5.0, false},
		{Uppercut, 0.5, true},
		{Uppercut, 3.5, false},
	}
	for _, tt := range tests {
		if got := Of(tt.punchType).Feasible(tt.dist); got != tt.feasible {
			t.Errorf("%s at %.1f: feasible = %v, want %v", tt.punchType, tt.dist, got, tt.feasible)
		}
	}
}

// TestPowerWeightOrdering pins jab < hook < cross < uppercut.
func TestPowerWeightOrdering(t *testing.T) {
	jab, hook, cross, uppercut := Of(Jab).PowerWeight, Of(Hook).PowerWeight, Of(Cross).PowerWeight, Of(Uppercut).PowerWeight
	if !(jab < hook && hook < cross && cross < uppercut) {
		t.Errorf("power ordering violated: %v %v %v %v", jab, hook, cross, uppercut)
	}
}

// TestOnlyJabIsNotPower verifies the power-punch classification.
func TestOnlyJabIsNotPower(t *testing.T) {
	for _, p := range All() {
		want := p.Type != Jab
		if p.Type.IsPower() != want {
			t.Errorf("%s IsPower = %v", p.Type, p.Type.IsPower())
		}
	}
}

// TestAllOrderedAndComplete verifies the table enumeration.
func TestAllOrderedAndComplete(t *testing.T) {
	all := All()
	want := []Type{Jab, Cross, Hook, Uppercut}
	if len(all) != len(want) {
		t.Fatalf("All returned %d profiles", len(all))
	}
	for i, w := range want {
		if all[i].Type != w {
			t.Errorf("position %d: got %s, want %s", i, all[i].Type, w)
		}
		if all[i].StaminaCost <= 0 {
			t.Errorf("%s has non-positive stamina cost", w)
		}
	}
}
