// Package fight implements the combat engine: the tick-driven loop that
// owns a single bout's lifecycle from fightStart to fightEnd and produces
// its ordered event stream.
package fight

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"boxingsim/internal/controller"
	"boxingsim/internal/damage"
	"boxingsim/internal/effects"
	"boxingsim/internal/events"
	"boxingsim/internal/fighter"
	"boxingsim/internal/foul"
	"boxingsim/internal/position"
	"boxingsim/internal/punch"
	"boxingsim/internal/resolver"
	"boxingsim/internal/scoring"
	"boxingsim/internal/stamina"
	"boxingsim/internal/tunables"
)

// Phase is the bout-level state machine position.
type Phase int

const (
	Idle Phase = iota
	RoundActive
	RoundEnd
	Rest
	FightEndPhase
)

// Method is the terminal result classification.
type Method string

const (
	MethodKO                Method = "KO"
	MethodTKO               Method = "TKO"
	MethodDecisionUnanimous Method = "DECISION_UNANIMOUS"
	MethodDecisionMajority  Method = "DECISION_MAJORITY"
	MethodDecisionSplit     Method = "DECISION_SPLIT"
	MethodDrawUnanimous     Method = "DRAW_UNANIMOUS"
	MethodDrawMajority      Method = "DRAW_MAJORITY"
	MethodDrawSplit         Method = "DRAW_SPLIT"
	MethodDisqualification  Method = "DISQUALIFICATION"
	MethodNoContest         Method = "NO_CONTEST"
)

// TKOReason enumerates the technical-stoppage reasons.
type TKOReason string

const (
	ReasonDamage              TKOReason = "damage"
	ReasonBodyDamage          TKOReason = "body_damage"
	ReasonThreeKnockdowns     TKOReason = "three_knockdowns"
	ReasonAccumulation        TKOReason = "accumulation"
	ReasonExhaustionAndDamage TKOReason = "exhaustion_and_damage"
)

// Rules bounds the stoppage thresholds evaluated at each tick boundary.
type Rules struct {
	DamageStoppageThreshold    float64
	ExhaustionDamageThreshold  float64
	ExhaustionStaminaThreshold float64
	MaxKnockdownsPerRound      int
}

// DefaultRules returns the standard professional ruleset.
func DefaultRules() Rules {
	return Rules{
		DamageStoppageThreshold:    1.0,
		ExhaustionDamageThreshold:  0.85,
		ExhaustionStaminaThreshold: 0.08,
		MaxKnockdownsPerRound:      3,
	}
}

// Config configures one bout's engine instance.
type Config struct {
	Rounds           int
	RoundDurationSec float64
	RestDurationSec  float64
	TickRate         float64 // simulation seconds per tick
	SpeedMultiplier  float64 // display pacing only; never alters outcomes
	RealTime         bool
	Rules            Rules
	Seed             int64
}

// DefaultConfig returns the standard 12-round championship-distance
// configuration.
func DefaultConfig(seed int64) Config {
	return Config{
		Rounds:           12,
		RoundDurationSec: 180,
		RestDurationSec:  60,
		TickRate:         0.5,
		SpeedMultiplier:  1.0,
		RealTime:         false,
		Rules:            DefaultRules(),
		Seed:             seed,
	}
}

// Scorecard is one judge's full card for the bout.
type Scorecard struct {
	JudgeID int
	Rounds  []scoring.RoundScore
	TotalA  int
	TotalB  int
}

// Result is the terminal outcome of a completed (or aborted) bout.
type Result struct {
	WinnerID         *uuid.UUID
	Method           Method
	Reason           TKOReason
	Round            int
	TimeSec          float64
	Scorecards       []Scorecard
	FinishingPunch   *resolver.PunchOutcome
	KnockdownsTotalA int
	KnockdownsTotalB int
	Error            error // set on NO_CONTEST originating from a SimulationError
}

// side bundles everything the engine owns for one of the two combatants.
type side struct {
	F          *fighter.Fighter
	FS         *fighter.InFightState
	Controller *controller.Controller
	Stamina    stamina.Pool
	Damage     damage.Accumulator
	RoundStats scoring.RoundStats
	judges     [3][]scoring.RoundScore
}

// Fight owns one bout's full lifecycle and event stream.
type Fight struct {
	mu sync.Mutex

	cfg      Config
	tunables tunables.Table
	bus      *events.Bus
	rng      *rand.Rand
	rngSeed  int64

	a, b *side

	phase    Phase
	round    int
	roundSec float64
	tickNum  uint64

	downIdx    int // index of the currently-DOWN fighter, -1 if none
	countStart float64

	lastLanded *resolver.PunchOutcome

	speedMult float64
	paused    bool
	stopped   bool

	result *Result
}

// SimulationError marks an internal invariant violation that terminates
// the bout as NO_CONTEST rather than propagating.
type SimulationError struct {
	Msg string
}

func (e *SimulationError) Error() string { return "fight: simulation error: " + e.Msg }

// New constructs a Fight ready to run. fsA/fsB are freshly-reset in-fight
// states (see fighter.NewInFightState); Fight never resets a caller's
// state for them.
func New(cfg Config, fA, fB *fighter.Fighter, fsA, fsB *fighter.InFightState, bus *events.Bus, t tunables.Table) *Fight {
	fsA.Pos = fighter.Position{X: -3, Y: 0}
	fsB.Pos = fighter.Position{X: 3, Y: 0}

	return &Fight{
		cfg:       cfg,
		tunables:  t,
		bus:       bus,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		rngSeed:   cfg.Seed,
		a:         &side{F: fA, FS: fsA, Controller: controller.New(), Stamina: stamina.Pool{Percent: fsA.StaminaPercent}},
		b:         &side{F: fB, FS: fsB, Controller: controller.New(), Stamina: stamina.Pool{Percent: fsB.StaminaPercent}},
		phase:     Idle,
		round:     1,
		downIdx:   -1,
		speedMult: cfg.SpeedMultiplier,
	}
}

// Run drives the bout to completion synchronously. In instant mode
// (RealTime=false) this returns immediately with the final Result; in
// real-time mode the caller is expected to invoke this from a goroutine
// and observe progress via the event bus, with pause/resume/setSpeed/stop
// available concurrently.
func (f *Fight) Run() *Result {
	f.mu.Lock()
	f.phase = RoundActive
	f.mu.Unlock()

	f.emit(events.TypeFightStart, "", events.FightStartPayload{
		FighterAID: f.a.F.ID.String(),
		FighterBID: f.b.F.ID.String(),
		Rounds:     f.cfg.Rounds,
	})
	f.emit(events.TypeRoundStart, "", events.RoundStartPayload{Round: f.round})

	for {
		f.mu.Lock()
		if f.stopped {
			f.mu.Unlock()
			return f.result
		}
		if f.cfg.RealTime && f.paused {
			f.mu.Unlock()
			time.Sleep(10 * time.Millisecond)
			continue
		}
		f.mu.Unlock()

		if f.step() {
			return f.result
		}

		if f.cfg.RealTime {
			delay := time.Duration(f.cfg.TickRate / f.currentSpeed() * float64(time.Second))
			time.Sleep(delay)
		}
	}
}

func (f *Fight) currentSpeed() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.speedMult <= 0 {
		return 1.0
	}
	return f.speedMult
}

// step advances exactly one tick and reports whether the fight has ended.
func (f *Fight) step() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tickNum++
	f.rngSeed = f.rng.Int63()
	f.rng.Seed(f.rngSeed)

	f.emitLocked(events.TypeTick, "", events.TickPayload{RNGSeed: f.rngSeed})

	switch f.phase {
	case RoundActive:
		if f.downIdx >= 0 {
			f.advanceCount()
		} else {
			f.advanceAction()
		}
	case Rest:
		f.advanceRest()
	}

	return f.phase == FightEndPhase
}

// advanceAction runs one normal (no fighter down) tick. Side-effect order
// within the tick is fixed: controllers emit intents, the resolver produces
// outcomes, movement and per-punch stamina costs apply, each landed punch
// applies its damage together with any HURT/knockdown transition, passive
// stamina and GASSED apply, fouls are rolled, effect durations tick down,
// and stoppage is checked last. Events are published to the bus as each
// step produces them, not held back until the tick completes.
func (f *Fight) advanceAction() {
	f.roundSec += f.cfg.TickRate
	if f.roundSec >= f.cfg.RoundDurationSec {
		f.endRound()
		return
	}

	f.clearExpiredStates()

	dist := position.Distance(toPoint(f.a.FS.Pos), toPoint(f.b.FS.Pos))

	intentA, _ := f.decide(f.a, f.b, dist)
	intentB, _ := f.decide(f.b, f.a, dist)

	ctxA := resolver.NewFighterCtx(f.a.F, f.a.FS, intentA, dist)
	ctxB := resolver.NewFighterCtx(f.b.F, f.b.FS, intentB, dist)

	outA, outB, hasA, hasB := resolver.Resolve(f.tunables, f.rng, ctxA, ctxB)

	f.applyIntent(f.a, f.b, intentA)
	f.applyIntent(f.b, f.a, intentB)

	if hasA {
		f.applyOutcome(0, outA)
	}
	if hasB {
		f.applyOutcome(1, outB)
	}

	f.a.Stamina.DrainPassive(f.tunables)
	f.b.Stamina.DrainPassive(f.tunables)
	f.syncStamina()
	stamina.ApplyGassed(f.tunables, f.a.Stamina, &f.a.FS.Effects)
	stamina.ApplyGassed(f.tunables, f.b.Stamina, &f.b.FS.Effects)

	f.rollFouls(0, f.a)
	if f.phase == FightEndPhase {
		return
	}
	f.rollFouls(1, f.b)
	if f.phase == FightEndPhase {
		return
	}

	f.a.FS.Effects.Tick()
	f.b.FS.Effects.Tick()

	f.checkStoppage()
}

// clearExpiredStates returns fighters to NEUTRAL once a hurt spell or
// post-knockdown recovery window has run out.
func (f *Fight) clearExpiredStates() {
	for _, s := range [2]*side{f.a, f.b} {
		switch s.FS.State {
		case fighter.Hurt, fighter.Stunned:
			if !s.FS.Effects.Has(effects.Staggered) {
				s.FS.State = fighter.Neutral
			}
		case fighter.Recovering:
			if f.roundSec >= s.FS.RecoveringUntil {
				s.FS.State = fighter.Neutral
				s.FS.Effects.Remove(effects.Recovering)
			}
		}
	}
}

func (f *Fight) syncStamina() {
	f.a.FS.StaminaPercent = f.a.Stamina.Percent
	f.b.FS.StaminaPercent = f.b.Stamina.Percent
}

func (f *Fight) decide(self, opp *side, dist float64) (controller.Intent, controller.Strategy) {
	obs := controller.Observation{
		Self: self.F, SelfFS: self.FS, Opp: opp.F, OppFS: opp.FS,
		Distance: dist, Round: f.round, RoundSec: f.roundSec,
	}
	intent, strategy := self.Controller.Decide(obs, f.rng)
	if err := controller.Validate(intent); err != nil {
		// Recoverable: an unrepresentable intent costs the fighter the
		// tick, nothing more.
		return controller.Intent{Kind: controller.Rest}, controller.Strategy{Name: "rest", Priority: controller.Low}
	}
	return intent, strategy
}

func (f *Fight) applyIntent(self, opp *side, intent controller.Intent) {
	switch intent.Kind {
	case controller.Move:
		self.FS.Pos = fromPoint(position.Move(toPoint(self.FS.Pos), toPoint(opp.FS.Pos), intent.Direction))
	case controller.Throw:
		self.Stamina.DrainForPunch(f.tunables, self.F.Stamina.Cardio, intent.PunchType)
		self.FS.StaminaPercent = self.Stamina.Percent
		if intent.PunchType.IsPower() {
			self.FS.Stats.PowerThrown++
		} else {
			self.FS.Stats.JabsThrown++
		}
		if intent.Target == punch.Head {
			self.FS.Stats.HeadThrown++
		} else {
			self.FS.Stats.BodyThrown++
		}
	}
}

func (f *Fight) applyOutcome(attackerIdx int, out resolver.PunchOutcome) {
	atk, def := f.a, f.b
	if attackerIdx == 1 {
		atk, def = f.b, f.a
	}

	if !out.Landed {
		f.emitLocked(events.TypeMissed, atk.F.ID.String(), events.PunchOutcomePayload{
			Attacker: atk.F.ID.String(), PunchType: out.PunchType.String(),
			Location: out.Location.String(), Landed: false,
		})
		return
	}

	if out.PunchType.IsPower() {
		atk.FS.Stats.PowerLanded++
		atk.RoundStats.PowerLanded++
	} else {
		atk.FS.Stats.JabsLanded++
		atk.RoundStats.JabsLanded++
	}
	atk.RoundStats.TotalLanded++
	if out.Location == punch.Head {
		atk.FS.Stats.HeadLanded++
	} else {
		atk.FS.Stats.BodyLanded++
	}

	if out.Location == punch.Head {
		def.Damage.AddHead(out.Damage)
		def.FS.HeadDamage = def.Damage.HeadPercent()
		atk.RoundStats.DamageDealt += out.Damage
		if out.Damage > 0.02 && f.rng.Float64() < 0.1 {
			def.FS.Effects.Apply(effects.Effect{Kind: effects.Cut, Magnitude: 0.05, RemainingTicks: 9999, Stack: effects.Additive})
		}
	} else {
		def.Damage.AddBody(out.Damage)
		def.FS.BodyDamage = def.Damage.BodyPercent()
		atk.RoundStats.DamageDealt += out.Damage * 0.8
		def.Stamina.DrainBodyHit(f.tunables, out.PunchType)
		def.FS.StaminaPercent = def.Stamina.Percent
	}

	if out.PunchType.IsPower() && f.rng.Float64() < 0.005 {
		atk.FS.Effects.Apply(effects.Effect{Kind: effects.HurtHands, Magnitude: 0.1, RemainingTicks: 9999, Stack: effects.Additive})
	}

	atk.FS.Effects.Apply(effects.Effect{Kind: effects.Momentum, Magnitude: 0.1, RemainingTicks: 3, Stack: effects.Refresh})

	landed := out
	f.lastLanded = &landed

	f.emitLocked(events.TypePunchLanded, atk.F.ID.String(), events.PunchOutcomePayload{
		Attacker: atk.F.ID.String(), PunchType: out.PunchType.String(), Location: out.Location.String(),
		Landed: true, Damage: out.Damage, IsCounter: out.IsCounter,
		CausesHurt: out.CausesHurt, CausesKO: out.CausesKnockdown,
	})

	if out.CausesHurt && !out.CausesKnockdown {
		// A clean shot on an already-hurt fighter escalates to STUNNED:
		// a longer stagger window and a bigger knockdown exposure.
		if def.FS.State == fighter.Hurt || def.FS.State == fighter.Stunned {
			def.FS.State = fighter.Stunned
			def.FS.Effects.Apply(effects.Effect{Kind: effects.Staggered, Magnitude: 1, RemainingTicks: 10, Stack: effects.Refresh})
		} else {
			def.FS.State = fighter.Hurt
			def.FS.Effects.Apply(effects.Effect{Kind: effects.Staggered, Magnitude: 1, RemainingTicks: 6, Stack: effects.Refresh})
		}
		atk.RoundStats.StaggersCaused++
		f.emitLocked(events.TypeHurt, def.F.ID.String(), events.HurtPayload{FighterID: def.F.ID.String()})
	}

	if out.CausesKnockdown {
		f.causeKnockdown(def, atk, &out)
	}
}

// causeKnockdown transitions def into DOWN state. When both fighters'
// punches would score a knockdown in the same tick, DOWN is applied to the
// fighter carrying the larger resulting total damage, ties broken by
// attacker initiative (lower reflexes yield first).
func (f *Fight) causeKnockdown(def, atk *side, out *resolver.PunchOutcome) {
	if f.downIdx >= 0 {
		alreadyDown := f.otherSide(def)
		defTotal := def.FS.HeadDamage + def.FS.BodyDamage
		otherTotal := alreadyDown.FS.HeadDamage + alreadyDown.FS.BodyDamage
		if defTotal < otherTotal {
			return
		}
		if defTotal == otherTotal && atk.F.Speed.Reflexes >= f.otherSide(atk).F.Speed.Reflexes {
			return
		}
		alreadyDown.FS.State = fighter.Neutral
		alreadyDown.FS.CountActive = false
		alreadyDown.FS.Count = 0
	}

	def.FS.State = fighter.Down
	def.FS.KnockdownsThisRound++
	def.FS.KnockdownsTotal++
	def.FS.CountActive = true
	def.FS.Count = 0
	def.FS.DownSince = f.roundSec
	atk.RoundStats.Knockdowns++
	atk.FS.Effects.Apply(effects.Effect{Kind: effects.Confidence, Magnitude: 0.15, RemainingTicks: 30, Stack: effects.Refresh})
	f.downIdx = f.indexOf(def)
	f.countStart = f.roundSec

	landed := *out
	f.lastLanded = &landed

	f.emitLocked(events.TypeKnockdown, def.F.ID.String(), events.KnockdownPayload{
		FighterID: def.F.ID.String(), Count: def.FS.KnockdownsThisRound,
	})
	f.emitLocked(events.TypeMomentumShift, atk.F.ID.String(), events.MomentumShiftPayload{
		FighterID: atk.F.ID.String(), Magnitude: 0.15,
	})
}

func (f *Fight) otherSide(s *side) *side {
	if s == f.a {
		return f.b
	}
	return f.a
}

func (f *Fight) indexOf(s *side) int {
	if s == f.a {
		return 0
	}
	return 1
}

// advanceCount runs the referee count over a DOWN fighter: the count
// advances once per simulated second, with a recovery check each tick and
// an automatic stoppage at the per-round knockdown limit. Count timing is
// simulation time, so it is immune to pause.
func (f *Fight) advanceCount() {
	f.roundSec += f.cfg.TickRate

	down := f.a
	if f.downIdx == 1 {
		down = f.b
	}
	other := f.otherSide(down)

	if down.FS.KnockdownsThisRound >= f.cfg.Rules.MaxKnockdownsPerRound {
		f.finish(MethodTKO, other, ReasonThreeKnockdowns)
		return
	}

	elapsed := f.roundSec - f.countStart
	count := int(elapsed) + 1
	if count > 10 {
		count = 10
	}
	if count != down.FS.Count {
		down.FS.Count = count
		f.emitLocked(events.TypeCount, down.F.ID.String(), events.CountPayload{FighterID: down.F.ID.String(), Count: count})
	}

	if count >= 10 {
		f.finish(MethodKO, other, "")
		return
	}

	if f.rng.Float64() < f.recoveryChance(down, elapsed) {
		down.FS.State = fighter.Recovering
		down.FS.RecoveringUntil = f.roundSec + 3
		down.FS.CountActive = false
		down.FS.Count = 0
		down.FS.Effects.Apply(effects.Effect{Kind: effects.Recovering, Magnitude: 1, RemainingTicks: 6, Stack: effects.Replace})
		f.downIdx = -1
		f.emitLocked(events.TypeRecovered, down.F.ID.String(), events.RecoveredPayload{FighterID: down.F.ID.String()})
	}
}

func (f *Fight) recoveryChance(down *side, elapsed float64) float64 {
	t := f.tunables
	p := 0.05
	p += float64(down.F.Mental.Heart) / 100 * t.RecoveryHeartWeight
	p += elapsed / 10 * t.RecoveryTimeWeight
	p -= down.FS.HeadDamage * t.RecoveryDamagePenalty
	p -= float64(down.FS.KnockdownsThisRound) * t.RecoveryKnockdownPenalty
	if p < 0 {
		p = 0
	}
	if p > 0.9 {
		p = 0.9
	}
	return p
}

// checkStoppage evaluates the damage and exhaustion stoppage rules at the
// tick boundary, after state transitions have been applied.
func (f *Fight) checkStoppage() {
	for idx, s := range [2]*side{f.a, f.b} {
		other := f.a
		if idx == 0 {
			other = f.b
		}
		if s.FS.State == fighter.Down {
			continue
		}
		if s.FS.HeadDamage >= f.cfg.Rules.DamageStoppageThreshold {
			f.finish(MethodTKO, other, ReasonDamage)
			return
		}
		if s.FS.BodyDamage >= f.cfg.Rules.DamageStoppageThreshold {
			f.finish(MethodTKO, other, ReasonBodyDamage)
			return
		}
		if s.FS.HeadDamage >= f.cfg.Rules.ExhaustionDamageThreshold &&
			s.FS.StaminaPercent <= f.cfg.Rules.ExhaustionStaminaThreshold {
			f.finish(MethodTKO, other, ReasonExhaustionAndDamage)
			return
		}
	}

	if f.a.FS.State == fighter.Down && f.b.FS.State == fighter.Down {
		f.abort(&SimulationError{Msg: "both fighters down simultaneously"})
	}
}

// rollFouls runs the per-tick Bernoulli foul detection for one fighter and
// applies the warning, deduction, disqualification ladder.
func (f *Fight) rollFouls(idx int, s *side) {
	other := f.a
	if idx == 0 {
		other = f.b
	}
	kinds := foul.Roll(f.tunables, f.rng)
	for _, k := range kinds {
		det, dq := foul.Apply(f.tunables, f.rng, &s.FS.Fouls, k)
		f.emitLocked(events.TypeFoul, s.F.ID.String(), events.FoulPayload{FighterID: s.F.ID.String(), Kind: string(k)})
		if det.Flagrant {
			f.finish(MethodDisqualification, other, "")
			return
		}
		if det.IsWarning {
			f.emitLocked(events.TypeWarning, s.F.ID.String(), events.WarningPayload{FighterID: s.F.ID.String(), Kind: string(k)})
		}
		if det.Deducted {
			s.RoundStats.PointDeductions++
			f.emitLocked(events.TypePointDeduction, s.F.ID.String(), events.PointDeductionPayload{
				FighterID: s.F.ID.String(), Kind: string(k), Points: 1,
			})
		}
		if dq {
			f.finish(MethodDisqualification, other, "")
			return
		}
	}
}

// endRound scores the round with three judges, resets per-round counters,
// applies between-rounds stamina recovery, then transitions to Rest (or
// straight to a decision if this was the last round).
func (f *Fight) endRound() {
	profiles := [3]scoring.JudgeProfile{scoring.Power, scoring.Volume, scoring.Balanced}
	var roundScores [3]scoring.RoundScore

	// Card gap so far, summed across judges: positive means A leads.
	gapAB := 0
	for j := 0; j < 3; j++ {
		for _, rs := range f.a.judges[j] {
			gapAB += rs.A - rs.B
		}
	}

	for j := 0; j < 3; j++ {
		rs := scoring.ScoreRound(f.tunables, j, profiles[j], f.a.RoundStats, f.b.RoundStats, gapAB, f.rng)
		roundScores[j] = rs
		f.a.judges[j] = append(f.a.judges[j], rs)
		f.b.judges[j] = append(f.b.judges[j], scoring.RoundScore{JudgeID: j, A: rs.B, B: rs.A})
	}

	f.emitLocked(events.TypeRoundEnd, "", events.RoundEndPayload{
		Round:        f.round,
		ScoreAJudge1: roundScores[0].A, ScoreBJudge1: roundScores[0].B,
		ScoreAJudge2: roundScores[1].A, ScoreBJudge2: roundScores[1].B,
		ScoreAJudge3: roundScores[2].A, ScoreBJudge3: roundScores[2].B,
	})

	f.a.RoundStats = scoring.RoundStats{}
	f.b.RoundStats = scoring.RoundStats{}
	f.a.FS.KnockdownsThisRound = 0
	f.b.FS.KnockdownsThisRound = 0

	f.a.Stamina.RecoverBetweenRounds(f.tunables, f.a.F.Stamina.Recovery)
	f.b.Stamina.RecoverBetweenRounds(f.tunables, f.b.F.Stamina.Recovery)
	f.syncStamina()

	if f.round >= f.cfg.Rounds {
		f.finishDecision()
		return
	}

	f.phase = Rest
	f.roundSec = 0
}

func (f *Fight) advanceRest() {
	f.roundSec += f.cfg.TickRate
	if f.roundSec < f.cfg.RestDurationSec {
		return
	}
	f.round++
	f.phase = RoundActive
	f.roundSec = 0
	f.a.FS.State = fighter.Neutral
	f.b.FS.State = fighter.Neutral
	f.emitLocked(events.TypeRoundStart, "", events.RoundStartPayload{Round: f.round})
}

func (f *Fight) finishDecision() {
	var cardsA [3][]scoring.RoundScore
	for j := 0; j < 3; j++ {
		cardsA[j] = f.a.judges[j]
	}
	totals, kind := scoring.Tally(cardsA)

	var method Method
	var winner *uuid.UUID
	switch kind {
	case scoring.Unanimous:
		method = MethodDecisionUnanimous
	case scoring.Majority:
		method = MethodDecisionMajority
	case scoring.Split:
		method = MethodDecisionSplit
	case scoring.DrawUnanimous:
		method = MethodDrawUnanimous
	case scoring.DrawMajority:
		method = MethodDrawMajority
	default:
		method = MethodDrawSplit
	}

	if method == MethodDecisionUnanimous || method == MethodDecisionMajority || method == MethodDecisionSplit {
		winA := 0
		for j := 0; j < 3; j++ {
			if totals[j][0] > totals[j][1] {
				winA++
			}
		}
		if winA >= 2 {
			winner = &f.a.F.ID
		} else {
			winner = &f.b.F.ID
		}
	}

	scorecards := make([]Scorecard, 3)
	for j := 0; j < 3; j++ {
		scorecards[j] = Scorecard{JudgeID: j, Rounds: cardsA[j], TotalA: totals[j][0], TotalB: totals[j][1]}
	}

	f.result = &Result{
		WinnerID: winner, Method: method, Round: f.round, TimeSec: f.roundSec,
		Scorecards: scorecards, KnockdownsTotalA: f.a.FS.KnockdownsTotal, KnockdownsTotalB: f.b.FS.KnockdownsTotal,
	}
	f.emitFightEnd()
	f.phase = FightEndPhase
}

func (f *Fight) finish(method Method, winner *side, reason TKOReason) {
	f.result = &Result{
		WinnerID: &winner.F.ID, Method: method, Reason: reason, Round: f.round, TimeSec: f.roundSec,
		KnockdownsTotalA: f.a.FS.KnockdownsTotal, KnockdownsTotalB: f.b.FS.KnockdownsTotal,
	}
	if method == MethodKO || method == MethodTKO {
		f.result.FinishingPunch = f.lastLanded
	}
	f.emitFightEnd()
	f.phase = FightEndPhase
}

// abort terminates the bout as NO_CONTEST following a SimulationError;
// internal invariant violations never panic or propagate.
func (f *Fight) abort(err error) {
	f.result = &Result{
		Method: MethodNoContest, Round: f.round, TimeSec: f.roundSec, Error: err,
	}
	f.emitFightEnd()
	f.phase = FightEndPhase
}

func (f *Fight) emitFightEnd() {
	winnerID := ""
	if f.result.WinnerID != nil {
		winnerID = f.result.WinnerID.String()
	}
	f.emitLocked(events.TypeFightEnd, "", events.FightEndPayload{
		Method: string(f.result.Method), Round: f.result.Round, WinnerID: winnerID, Reason: string(f.result.Reason),
	})
	f.bus.Close()
}

// emit publishes an event; callers must not hold f.mu.
func (f *Fight) emit(t events.Type, actorID string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emitLocked(t, actorID, payload)
}

func (f *Fight) emitLocked(t events.Type, actorID string, payload any) {
	if f.bus == nil {
		return
	}
	f.bus.Publish(events.New(t, f.round, f.tickNum, f.roundSec, actorID, payload))
}

// Pause suspends wall-clock advancement in RealTime mode only; the
// deterministic tick stream itself is unchanged.
func (f *Fight) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = true
}

// Resume clears a pause.
func (f *Fight) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = false
}

// SetSpeed adjusts the display pacing multiplier; never changes
// deterministic outcomes.
func (f *Fight) SetSpeed(mult float64) {
	f.mu.Lock()
	f.speedMult = mult
	f.mu.Unlock()
	f.emit(events.TypeSpeedChange, "", events.SpeedChangePayload{Multiplier: mult})
}

// Stop aborts the bout without emitting a result, idempotently.
func (f *Fight) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func toPoint(p fighter.Position) position.Point   { return position.Point{X: p.X, Y: p.Y} }
func fromPoint(p position.Point) fighter.Position { return fighter.Position{X: p.X, Y: p.Y} }
