package effects

import "testing"

// TestStackPolicies covers refresh, additive, and replace merging.
func TestStackPolicies(t *testing.T) {
	t.Run("refresh resets duration and keeps the larger magnitude", func(t *testing.T) {
		var l EffectList
		l.Apply(Effect{Kind: Momentum, Magnitude: 0.3, RemainingTicks: 5, Stack: Refresh})
		l.Apply(Effect{Kind: Momentum, Magnitude: 0.1, RemainingTicks: 9, Stack: Refresh})

		e, _ := l.Get(Momentum)
		if e.RemainingTicks != 9 {
			t.Errorf("duration = %d, want 9", e.RemainingTicks)
		}
		if e.Magnitude != 0.3 {
			t.Errorf("magnitude = %v, want 0.3", e.Magnitude)
		}
	})

	t.Run("additive sums magnitude", func(t *testing.T) {
		var l EffectList
		l.Apply(Effect{Kind: Cut, Magnitude: 0.05, RemainingTicks: 10, Stack: Additive})
		l.Apply(Effect{Kind: Cut, Magnitude: 0.05, RemainingTicks: 4, Stack: Additive})

		e, _ := l.Get(Cut)
		if e.Magnitude != 0.1 {
			t.Errorf("magnitude = %v, want 0.1", e.Magnitude)
		}
		if e.RemainingTicks != 10 {
			t.Errorf("duration = %d, want the longer 10", e.RemainingTicks)
		}
	})

	t.Run("replace overwrites", func(t *testing.T) {
		var l EffectList
		l.Apply(Effect{Kind: Recovering, Magnitude: 1, RemainingTicks: 6, Stack: Replace})
		l.Apply(Effect{Kind: Recovering, Magnitude: 0.5, RemainingTicks: 2, Stack: Replace})

		e, _ := l.Get(Recovering)
		if e.Magnitude != 0.5 || e.RemainingTicks != 2 {
			t.Errorf("replace kept %+v", e)
		}
	})
}

// TestTickExpiry verifies effects expire exactly when their ticks run out.
func TestTickExpiry(t *testing.T) {
	var l EffectList
	l.Apply(Effect{Kind: Staggered, Magnitude: 1, RemainingTicks: 2, Stack: Refresh})
	l.Apply(Effect{Kind: Gassed, Magnitude: 0.2, RemainingTicks: 1, Stack: Refresh})

	l.Tick()
	if l.Has(Gassed) {
		t.Error("one-tick effect survived a tick")
	}
	if !l.Has(Staggered) {
		t.Error("two-tick effect expired early")
	}

	l.Tick()
	if l.Has(Staggered) {
		t.Error("effect survived past its duration")
	}
}

// TestRemoveClearsKind verifies removal leaves other kinds intact.
func TestRemoveClearsKind(t *testing.T) {
	var l EffectList
	l.Apply(Effect{Kind: Gassed, Magnitude: 0.2, RemainingTicks: 5, Stack: Refresh})
	l.Apply(Effect{Kind: Momentum, Magnitude: 0.1, RemainingTicks: 5, Stack: Refresh})

	l.Remove(Gassed)
	if l.Has(Gassed) {
		t.Error("removed kind still present")
	}
	if !l.Has(Momentum) {
		t.Error("unrelated kind removed")
	}
}

// TestRegistryCoversAllKinds checks every enum value has metadata and a
// non-empty display name.
func TestRegistryCoversAllKinds(t *testing.T) {
	kinds := []Kind{Momentum, Gassed, HurtHands, Staggered, Cut, Confidence, Recovering}
	for _, k := range kinds {
		m := MetaOf(k)
		if m.Name == "" {
			t.Errorf("kind %d has empty display name", k)
		}
	}
}

// TestAllReturnsCopy verifies mutating the returned slice cannot corrupt
// the list.
func TestAllReturnsCopy(t *testing.T) {
	var l EffectList
	l.Apply(Effect{Kind: Momentum, Magnitude: 0.1, RemainingTicks: 5, Stack: Refresh})

	out := l.All()
	out[0].Magnitude = 99

	e, _ := l.Get(Momentum)
	if e.Magnitude == 99 {
		t.Error("All leaked internal storage")
	}
}
