package resolver

import (
	"math/rand"
	"testing"

	"boxingsim/internal/controller"
	"boxingsim/internal/effects"
	"boxingsim/internal/fighter"
	"boxingsim/internal/punch"
	"boxingsim/internal/tunables"
)

func resolverFighter(power, chin int) (*fighter.Fighter, *fighter.InFightState) {
	f := fighter.New("F")
	f.Power = fighter.Power{Left: power, Right: power, Knockout: power}
	f.Speed = fighter.Speed{Hand: 60, Foot: 60, Reflexes: 60}
	f.Defense = fighter.Defense{HeadMovement: 50, Blocking: 50}
	f.Mental = fighter.Mental{Chin: chin, Heart: 70, KillerInstinct: 60}
	f.Technical = fighter.Technical{Accuracy: 60, FightIQ: 60, RingGeneralship: 60}
	return f, fighter.NewInFightState(f.ID)
}

func throwIntent(pt punch.Type) controller.Intent {
	return controller.Intent{Kind: controller.Throw, PunchType: pt, Target: punch.Head}
}

// alwaysHit pins the hit roll so damage paths are deterministic.
func alwaysHit() tunables.Table {
	t := tunables.Default()
	t.MinHitChance = 1.0
	t.MaxHitChance = 1.0
	t.KnockdownBase = 0
	t.KnockdownDamageWeight = 0
	t.KnockdownCumWeight = 0
	t.KnockdownStaggerBonus = 0
	return t
}

// TestOutOfRangePunchDoesNotResolve verifies range gating per punch type.
func TestOutOfRangePunchDoesNotResolve(t *testing.T) {
	fA, fsA := resolverFighter(80, 70)
	fB, fsB := resolverFighter(80, 70)
	rng := rand.New(rand.NewSource(1))

	// Uppercut needs inside distance; 8.0 is jab range only.
	a := NewFighterCtx(fA, fsA, throwIntent(punch.Uppercut), 8.0)
	b := NewFighterCtx(fB, fsB, controller.Intent{Kind: controller.Rest}, 8.0)

	_, _, hasA, hasB := Resolve(tunables.Default(), rng, a, b)
	if hasA {
		t.Error("uppercut resolved at jab range")
	}
	if hasB {
		t.Error("resting fighter produced an outcome")
	}
}

// TestCounterOnlyForSecondResolver verifies only B's landed punch in a
// mutual exchange is a counter, and that it outdamages the same punch
// uncountered.
func TestCounterOnlyForSecondResolver(t *testing.T) {
	tun := alwaysHit()

	fA, fsA := resolverFighter(80, 70)
	fB, fsB := resolverFighter(80, 70)

	a := NewFighterCtx(fA, fsA, throwIntent(punch.Cross), 4.0)
	b := NewFighterCtx(fB, fsB, throwIntent(punch.Cross), 4.0)

	rng := rand.New(rand.NewSource(2))
	outA, outB, hasA, hasB := Resolve(tun, rng, a, b)
	if !hasA || !hasB || !outA.Landed || !outB.Landed {
		t.Fatal("expected a mutual landed exchange under pinned hit chance")
	}
	if outA.IsCounter {
		t.Error("first-resolved punch flagged as counter")
	}
	if !outB.IsCounter {
		t.Error("second-resolved punch in an exchange not flagged as counter")
	}
	if outB.Damage <= outA.Damage {
		t.Errorf("counter damage %v not above plain damage %v", outB.Damage, outA.Damage)
	}

	// B alone throwing (A resting) must not counter.
	fsB2 := fighter.NewInFightState(fB.ID)
	aRest := NewFighterCtx(fA, fsA, controller.Intent{Kind: controller.Rest}, 4.0)
	bOnly := NewFighterCtx(fB, fsB2, throwIntent(punch.Cross), 4.0)
	_, outB2, _, hasB2 := Resolve(tun, rand.New(rand.NewSource(2)), aRest, bOnly)
	if !hasB2 || outB2.IsCounter {
		t.Error("lone attacker flagged as counter")
	}
}

// TestPunchTypeDamageOrdering verifies jab < hook < cross < uppercut on
// head damage with identical fighters.
func TestPunchTypeDamageOrdering(t *testing.T) {
	tun := alwaysHit()

	damageOf := func(pt punch.Type, dist float64) float64 {
		fA, fsA := resolverFighter(80, 70)
		fB, fsB := resolverFighter(80, 70)
		a := NewFighterCtx(fA, fsA, throwIntent(pt), dist)
		b := NewFighterCtx(fB, fsB, controller.Intent{Kind: controller.Rest}, dist)
		out, _, has, _ := Resolve(tun, rand.New(rand.NewSource(3)), a, b)
		if !has || !out.Landed {
			t.Fatalf("%s did not land", pt)
		}
		return out.Damage
	}

	jab := damageOf(punch.Jab, 4.0)
	hook := damageOf(punch.Hook, 2.5)
	cross := damageOf(punch.Cross, 4.0)
	uppercut := damageOf(punch.Uppercut, 1.5)

	if !(jab < hook && hook < cross && cross < uppercut) {
		t.Errorf("damage ordering violated: jab=%v hook=%v cross=%v uppercut=%v", jab, hook, cross, uppercut)
	}
}

// TestChinReducesDamage verifies a granite chin absorbs more than a glass
// one.
func TestChinReducesDamage(t *testing.T) {
	tun := alwaysHit()

	damageVsChin := func(chin int) float64 {
		fA, fsA := resolverFighter(80, 70)
		fB, fsB := resolverFighter(80, chin)
		a := NewFighterCtx(fA, fsA, throwIntent(punch.Cross), 4.0)
		b := NewFighterCtx(fB, fsB, controller.Intent{Kind: controller.Rest}, 4.0)
		out, _, _, _ := Resolve(tun, rand.New(rand.NewSource(4)), a, b)
		return out.Damage
	}

	if granite, glass := damageVsChin(95), damageVsChin(20); granite >= glass {
		t.Errorf("chin 95 took %v, chin 20 took %v", granite, glass)
	}
}

// TestBlockingIntentLowersHitChance runs many resolutions against a
// blocking defender and expects a lower land rate.
func TestBlockingIntentLowersHitChance(t *testing.T) {
	tun := tunables.Default()

	landRate := func(defIntent controller.Intent) float64 {
		rng := rand.New(rand.NewSource(5))
		landed := 0
		const trials = 2000
		for i := 0; i < trials; i++ {
			fA, fsA := resolverFighter(80, 70)
			fB, fsB := resolverFighter(80, 70)
			a := NewFighterCtx(fA, fsA, throwIntent(punch.Cross), 4.0)
			b := NewFighterCtx(fB, fsB, defIntent, 4.0)
			out, _, has, _ := Resolve(tun, rng, a, b)
			if has && out.Landed {
				landed++
			}
		}
		return float64(landed) / trials
	}

	resting := landRate(controller.Intent{Kind: controller.Rest})
	blocking := landRate(controller.Intent{Kind: controller.Block})
	if blocking >= resting {
		t.Errorf("blocking land rate %v not below resting %v", blocking, resting)
	}
}

// TestGassedAttackerHitsSofter verifies the GASSED power penalty reaches
// the damage formula.
func TestGassedAttackerHitsSofter(t *testing.T) {
	tun := alwaysHit()

	damage := func(gassed bool) float64 {
		fA, fsA := resolverFighter(80, 70)
		if gassed {
			fsA.Effects.Apply(effects.Effect{Kind: effects.Gassed, Magnitude: 0.2, RemainingTicks: 5, Stack: effects.Refresh})
		}
		fB, fsB := resolverFighter(80, 70)
		a := NewFighterCtx(fA, fsA, throwIntent(punch.Cross), 4.0)
		b := NewFighterCtx(fB, fsB, controller.Intent{Kind: controller.Rest}, 4.0)
		out, _, _, _ := Resolve(tun, rand.New(rand.NewSource(6)), a, b)
		return out.Damage
	}

	if fresh, tired := damage(false), damage(true); tired >= fresh {
		t.Errorf("gassed damage %v not below fresh %v", tired, fresh)
	}
}
