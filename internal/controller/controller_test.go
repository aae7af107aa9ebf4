package controller

import (
	"math/rand"
	"testing"

	"boxingsim/internal/effects"
	"boxingsim/internal/fighter"
	"boxingsim/internal/punch"
)

func observation(style fighter.PrimaryStyle, dist float64) Observation {
	self := fighter.New("Self")
	self.Style.Primary = style
	self.Stamina = fighter.Stamina{Cardio: 70, Recovery: 70}
	opp := fighter.New("Opp")

	selfFS := fighter.NewInFightState(self.ID)
	oppFS := fighter.NewInFightState(opp.ID)

	return Observation{
		Self: self, SelfFS: selfFS, Opp: opp, OppFS: oppFS,
		Distance: dist, Round: 1, RoundSec: 30,
	}
}

// TestNeverPunchesDownedOpponent verifies the highest-priority rule: a
// downed opponent is never hit.
func TestNeverPunchesDownedOpponent(t *testing.T) {
	c := New()
	rng := rand.New(rand.NewSource(1))

	obs := observation(fighter.Slugger, 1.0)
	obs.OppFS.State = fighter.Down

	for i := 0; i < 50; i++ {
		intent, strategy := c.Decide(obs, rng)
		if intent.Kind == Throw {
			t.Fatalf("iteration %d: threw a punch at a downed opponent", i)
		}
		if strategy.Priority != Critical {
			t.Fatalf("downed-opponent rule surfaced priority %s", strategy.Priority)
		}
	}
}

// TestHurtFighterSurvives verifies a hurt fighter clinches, covers, or
// retreats rather than trading.
func TestHurtFighterSurvives(t *testing.T) {
	c := New()
	rng := rand.New(rand.NewSource(2))

	obs := observation(fighter.Swarmer, 1.5)
	obs.SelfFS.State = fighter.Hurt

	for i := 0; i < 50; i++ {
		intent, _ := c.Decide(obs, rng)
		switch intent.Kind {
		case Clinch, Block, Move:
		default:
			t.Fatalf("hurt fighter produced intent kind %d", intent.Kind)
		}
	}
}

// TestGassedFighterRests verifies the low-stamina rule biases toward rest
// with only jabs allowed through.
func TestGassedFighterRests(t *testing.T) {
	c := New()
	rng := rand.New(rand.NewSource(3))

	obs := observation(fighter.VolumePuncher, 4.0)
	obs.SelfFS.StaminaPercent = 0.1

	rests := 0
	for i := 0; i < 100; i++ {
		intent, _ := c.Decide(obs, rng)
		switch intent.Kind {
		case Rest:
			rests++
		case Throw:
			if intent.PunchType != punch.Jab {
				t.Fatalf("gassed fighter threw a %s", intent.PunchType)
			}
		default:
			t.Fatalf("gassed fighter produced intent kind %d", intent.Kind)
		}
	}
	if rests < 40 {
		t.Errorf("gassed fighter rested only %d/100 ticks", rests)
	}
}

// TestFinishesHurtOpponent verifies the opportunistic rule fires with
// stamina in reserve.
func TestFinishesHurtOpponent(t *testing.T) {
	c := New()
	rng := rand.New(rand.NewSource(4))

	obs := observation(fighter.OutBoxer, 2.0)
	obs.OppFS.State = fighter.Hurt
	obs.SelfFS.StaminaPercent = 0.8

	intent, strategy := c.Decide(obs, rng)
	if intent.Kind != Throw {
		t.Fatalf("fresh fighter did not attack a hurt opponent (kind %d)", intent.Kind)
	}
	if strategy.Priority != High {
		t.Errorf("finishing rule surfaced priority %s", strategy.Priority)
	}
}

// TestStyleDefaults samples the style table at range: the signature punch
// shows up, and no punch outside the style's pattern is ever thrown.
func TestStyleDefaults(t *testing.T) {
	c := New()

	tests := []struct {
		name      string
		style     fighter.PrimaryStyle
		dist      float64
		signature punch.Type
		neverMove bool
	}{
		{"slugger loads up in range", fighter.Slugger, 4.0, punch.Cross, false},
		{"inside fighter digs uppercuts inside", fighter.InsideFighter, 1.0, punch.Uppercut, false},
		{"volume puncher stays busy with jabs", fighter.VolumePuncher, 5.0, punch.Jab, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(5))
			obs := observation(tt.style, tt.dist)

			sawSignature := false
			for i := 0; i < 200; i++ {
				intent, _ := c.Decide(obs, rng)
				if intent.Kind != Throw {
					continue
				}
				if intent.PunchType == tt.signature {
					sawSignature = true
				} else {
					t.Fatalf("style threw a %s, expected only %s", intent.PunchType, tt.signature)
				}
			}
			if !sawSignature {
				t.Errorf("signature punch %s never thrown in 200 ticks", tt.signature)
			}
		})
	}
}

// TestOutBoxerClosesFromRange verifies out-of-range ticks always move in.
func TestOutBoxerClosesFromRange(t *testing.T) {
	c := New()
	rng := rand.New(rand.NewSource(7))
	obs := observation(fighter.OutBoxer, 9.5)

	for i := 0; i < 50; i++ {
		intent, _ := c.Decide(obs, rng)
		if intent.Kind != Move {
			t.Fatalf("out-boxer at 9.5 produced kind %d", intent.Kind)
		}
	}
}

// TestGassedEffectChangesStyleDefault verifies the GASSED debuff stops an
// out-boxer's jab output at range.
func TestGassedEffectChangesStyleDefault(t *testing.T) {
	c := New()
	rng := rand.New(rand.NewSource(6))

	obs := observation(fighter.OutBoxer, 5.0)
	obs.SelfFS.Effects.Apply(effects.Effect{Kind: effects.Gassed, Magnitude: 0.2, RemainingTicks: 5, Stack: effects.Refresh})

	for i := 0; i < 30; i++ {
		intent, _ := c.Decide(obs, rng)
		if intent.Kind == Throw {
			t.Fatal("gassed out-boxer kept throwing at range")
		}
	}
}
