package fight

import (
	"testing"
	"time"

	"boxingsim/internal/events"
	"boxingsim/internal/fighter"
	"boxingsim/internal/punch"
	"boxingsim/internal/resolver"
	"boxingsim/internal/tunables"
)

func testFighter(name string, chin, heart, power int) *fighter.Fighter {
	f := fighter.New(name)
	f.Division = "Heavyweight"
	f.DateOfBirth = time.Date(1998, time.March, 10, 0, 0, 0, 0, time.UTC)
	f.Power = fighter.Power{Left: power, Right: power, Knockout: power}
	f.Speed = fighter.Speed{Hand: 60, Foot: 60, Reflexes: 60}
	f.Stamina = fighter.Stamina{Cardio: 70, Recovery: 70}
	f.Defense = fighter.Defense{HeadMovement: 55, Blocking: 55}
	f.Mental = fighter.Mental{Chin: chin, Heart: heart, KillerInstinct: 60}
	f.Technical = fighter.Technical{Accuracy: 60, FightIQ: 60, RingGeneralship: 60}
	f.Style.Primary = fighter.BoxerPuncher
	return f
}

func runBout(t *testing.T, cfg Config, fA, fB *fighter.Fighter, tun tunables.Table) ([]events.Event, *Result) {
	t.Helper()
	bus := events.NewBus()
	bout := New(cfg, fA, fB, fighter.NewInFightState(fA.ID), fighter.NewInFightState(fB.ID), bus, tun)
	result := bout.Run()
	if result == nil {
		t.Fatal("Run returned nil result")
	}
	return bus.History(), result
}

var terminalMethods = map[Method]bool{
	MethodKO: true, MethodTKO: true,
	MethodDecisionUnanimous: true, MethodDecisionMajority: true, MethodDecisionSplit: true,
	MethodDrawUnanimous: true, MethodDrawMajority: true, MethodDrawSplit: true,
	MethodDisqualification: true, MethodNoContest: true,
}

// TestEveryBoutTerminates verifies stoppage completeness across seeds: a
// single terminal method, never running past the scheduled rounds.
func TestEveryBoutTerminates(t *testing.T) {
	fA := testFighter("A", 85, 90, 75)
	fB := testFighter("B", 55, 60, 90)

	for seed := int64(1); seed <= 25; seed++ {
		cfg := DefaultConfig(seed)
		_, result := runBout(t, cfg, fA, fB, tunables.Default())

		if !terminalMethods[result.Method] {
			t.Errorf("seed %d: unexpected method %q", seed, result.Method)
		}
		if result.Round < 1 || result.Round > cfg.Rounds {
			t.Errorf("seed %d: result round %d outside 1..%d", seed, result.Round, cfg.Rounds)
		}
	}
}

// TestDamageMonotonicAndBounded verifies punch damage is never negative in
// the event stream and final damage/stamina fractions stay in [0,1].
func TestDamageMonotonicAndBounded(t *testing.T) {
	fA := testFighter("A", 70, 70, 80)
	fB := testFighter("B", 70, 70, 80)
	fsA := fighter.NewInFightState(fA.ID)
	fsB := fighter.NewInFightState(fB.ID)

	bus := events.NewBus()
	bout := New(DefaultConfig(7), fA, fB, fsA, fsB, bus, tunables.Default())
	if bout.Run() == nil {
		t.Fatal("nil result")
	}

	for _, e := range bus.History() {
		if e.Type != events.TypePunchLanded {
			continue
		}
		var p events.PunchOutcomePayload
		if err := events.Decode(e, &p); err != nil {
			t.Fatalf("decode punch payload: %v", err)
		}
		if p.Damage < 0 {
			t.Fatalf("negative damage %v in event %d", p.Damage, e.Sequence)
		}
	}

	for _, fs := range []*fighter.InFightState{fsA, fsB} {
		if fs.HeadDamage < 0 || fs.HeadDamage > 1 {
			t.Errorf("head damage %v outside [0,1]", fs.HeadDamage)
		}
		if fs.BodyDamage < 0 || fs.BodyDamage > 1 {
			t.Errorf("body damage %v outside [0,1]", fs.BodyDamage)
		}
		if fs.StaminaPercent < 0 || fs.StaminaPercent > 1 {
			t.Errorf("stamina %v outside [0,1]", fs.StaminaPercent)
		}
	}
}

// TestSingleDownInvariant replays the event stream and checks that no
// knockdown is recorded for one fighter while the other is already down.
func TestSingleDownInvariant(t *testing.T) {
	fA := testFighter("A", 40, 45, 95)
	fB := testFighter("B", 40, 45, 95)

	for seed := int64(1); seed <= 15; seed++ {
		history, _ := runBout(t, DefaultConfig(seed), fA, fB, tunables.Default())

		down := "" // fighter ID currently down
		var downTick uint64
		for _, e := range history {
			switch e.Type {
			case events.TypeKnockdown:
				var p events.KnockdownPayload
				if err := events.Decode(e, &p); err != nil {
					t.Fatal(err)
				}
				// A mutual exchange may record both knockdowns in one
				// tick; DOWN then belongs to the later one. Only a
				// knockdown on a *different* tick while someone is still
				// down breaks the invariant.
				if down != "" && down != p.FighterID && e.TickNum != downTick {
					t.Fatalf("seed %d: %s knocked down while %s still down", seed, p.FighterID, down)
				}
				down = p.FighterID
				downTick = e.TickNum
			case events.TypeRecovered:
				down = ""
			case events.TypeRoundStart, events.TypeFightEnd:
				down = ""
			}
		}
	}
}

// TestCountTenIsKO verifies a count reaching 10 is always followed by a
// fightEnd with method KO and the opponent as winner.
func TestCountTenIsKO(t *testing.T) {
	fA := testFighter("A", 85, 90, 95)
	fB := testFighter("B", 30, 20, 50) // fragile and faint-hearted, counted out often

	sawCountOut := false
	for seed := int64(1); seed <= 40 && !sawCountOut; seed++ {
		history, result := runBout(t, DefaultConfig(seed), fA, fB, tunables.Default())

		counted := ""
		for _, e := range history {
			if e.Type == events.TypeCount {
				var p events.CountPayload
				if err := events.Decode(e, &p); err != nil {
					t.Fatal(err)
				}
				if p.Count >= 10 {
					counted = p.FighterID
				}
			}
		}
		if counted == "" {
			continue
		}
		sawCountOut = true

		if result.Method != MethodKO {
			t.Fatalf("seed %d: count reached 10 but method is %q", seed, result.Method)
		}
		if result.WinnerID == nil {
			t.Fatal("KO with no winner")
		}
		if result.WinnerID.String() == counted {
			t.Fatalf("seed %d: counted-out fighter recorded as winner", seed)
		}
	}
	if !sawCountOut {
		t.Skip("no count-out across 40 seeds with these fighters")
	}
}

// TestFoulLadderDisqualifies forces foul detection every tick and checks
// the warning, point deduction, disqualification escalation with the loser
// being the fouler.
func TestFoulLadderDisqualifies(t *testing.T) {
	tun := tunables.Default()
	tun.FoulRates = map[string]float64{"holding": 1.0}

	fA := testFighter("A", 70, 70, 10)
	fB := testFighter("B", 70, 70, 10)

	history, result := runBout(t, DefaultConfig(3), fA, fB, tun)

	if result.Method != MethodDisqualification {
		t.Fatalf("expected DISQUALIFICATION, got %q", result.Method)
	}
	// A's fouls are rolled first each tick, so A crosses the deduction
	// threshold first and B takes the win.
	if result.WinnerID == nil || *result.WinnerID != fB.ID {
		t.Errorf("expected B to win by DQ")
	}

	var warnings, deductions int
	firstDeduction := -1
	for i, e := range history {
		switch e.Type {
		case events.TypeWarning:
			warnings++
			if firstDeduction >= 0 && i > firstDeduction {
				t.Error("warning after first deduction for same sequence")
			}
		case events.TypePointDeduction:
			if firstDeduction < 0 {
				firstDeduction = i
			}
			deductions++
		}
	}
	if warnings == 0 {
		t.Error("expected at least one warning before deductions")
	}
	if deductions < tun.DeductionDQCount {
		t.Errorf("expected >= %d deductions before DQ, got %d", tun.DeductionDQCount, deductions)
	}
}

// TestHeavyweightScenario pits a durable 75-power fighter against a
// fragile 90-power puncher and checks the bout lands in a sane band.
func TestHeavyweightScenario(t *testing.T) {
	fA := testFighter("Iron", 85, 90, 75)
	fB := testFighter("Glass", 55, 60, 90)

	cfg := DefaultConfig(1)
	_, result := runBout(t, cfg, fA, fB, tunables.Default())

	if result.Method == MethodNoContest {
		t.Fatalf("scenario produced NO_CONTEST: %v", result.Error)
	}
	for _, card := range result.Scorecards {
		for _, rs := range card.Rounds {
			if rs.A < 7 || rs.A > 10 || rs.B < 7 || rs.B > 10 {
				t.Errorf("judge %d scored %d-%d outside [7,10]", card.JudgeID, rs.A, rs.B)
			}
		}
	}
}

// TestCardioGapShowsLate gives one fighter a huge conditioning edge and
// expects them to win clearly more often than not over a seed sample.
func TestCardioGapShowsLate(t *testing.T) {
	if testing.Short() {
		t.Skip("seed-sample test")
	}

	fA := testFighter("Engine", 70, 70, 70)
	fA.Stamina = fighter.Stamina{Cardio: 90, Recovery: 90}
	fB := testFighter("Fader", 70, 70, 70)
	fB.Stamina = fighter.Stamina{Cardio: 20, Recovery: 20}

	winsA, decided := 0, 0
	for seed := int64(1); seed <= 30; seed++ {
		_, result := runBout(t, DefaultConfig(seed), fA, fB, tunables.Default())
		if result.WinnerID == nil {
			continue
		}
		decided++
		if *result.WinnerID == fA.ID {
			winsA++
		}
	}
	if decided == 0 {
		t.Fatal("no decided bouts in sample")
	}
	if float64(winsA)/float64(decided) < 0.6 {
		t.Errorf("high-cardio fighter won only %d/%d decided bouts", winsA, decided)
	}
}

// TestHurtEscalatesToStunned verifies a second hurting shot moves the
// defender from HURT to STUNNED, and that the state clears back to
// NEUTRAL once the stagger window expires.
func TestHurtEscalatesToStunned(t *testing.T) {
	fA := testFighter("A", 70, 70, 80)
	fB := testFighter("B", 70, 70, 80)

	bus := events.NewBus()
	bout := New(DefaultConfig(1), fA, fB, fighter.NewInFightState(fA.ID), fighter.NewInFightState(fB.ID), bus, tunables.Default())

	hurting := resolver.PunchOutcome{
		Attacker: 0, PunchType: punch.Cross, Location: punch.Head,
		Landed: true, Damage: 0.01, CausesHurt: true,
	}

	bout.applyOutcome(0, hurting)
	if bout.b.FS.State != fighter.Hurt {
		t.Fatalf("first hurting shot left state %s, want HURT", bout.b.FS.State)
	}

	bout.applyOutcome(0, hurting)
	if bout.b.FS.State != fighter.Stunned {
		t.Fatalf("second hurting shot left state %s, want STUNNED", bout.b.FS.State)
	}

	// Let the stagger window run out; the next action tick clears it.
	for i := 0; i < 12; i++ {
		bout.b.FS.Effects.Tick()
	}
	bout.clearExpiredStates()
	if bout.b.FS.State != fighter.Neutral {
		t.Errorf("expired stagger left state %s, want NEUTRAL", bout.b.FS.State)
	}
}

// TestEventOrdering verifies the stream starts with fightStart, ends with
// fightEnd, and sequence numbers are strictly increasing.
func TestEventOrdering(t *testing.T) {
	fA := testFighter("A", 70, 70, 70)
	fB := testFighter("B", 70, 70, 70)

	history, _ := runBout(t, DefaultConfig(11), fA, fB, tunables.Default())

	if len(history) == 0 {
		t.Fatal("empty event history")
	}
	if history[0].Type != events.TypeFightStart {
		t.Errorf("first event is %s, want fightStart", history[0].Type)
	}
	if history[len(history)-1].Type != events.TypeFightEnd {
		t.Errorf("last event is %s, want fightEnd", history[len(history)-1].Type)
	}
	for i := 1; i < len(history); i++ {
		if history[i].Sequence <= history[i-1].Sequence {
			t.Fatalf("sequence not strictly increasing at index %d", i)
		}
	}
}

// TestStopAbortsWithoutResult verifies Stop is cooperative and idempotent.
func TestStopAbortsWithoutResult(t *testing.T) {
	fA := testFighter("A", 70, 70, 70)
	fB := testFighter("B", 70, 70, 70)

	cfg := DefaultConfig(5)
	cfg.RealTime = true
	cfg.TickRate = 0.01

	bus := events.NewBus()
	bout := New(cfg, fA, fB, fighter.NewInFightState(fA.ID), fighter.NewInFightState(fB.ID), bus, tunables.Default())

	done := make(chan *Result, 1)
	go func() { done <- bout.Run() }()

	time.Sleep(20 * time.Millisecond)
	bout.Stop()
	bout.Stop()

	select {
	case result := <-done:
		if result != nil {
			t.Errorf("stopped bout produced a result: %+v", result)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
