package fighter

import (
	"github.com/google/uuid"

	"boxingsim/internal/effects"
)

// CombatState is the PlayerState-equivalent lifecycle state for a fighter
// inside a single bout: NEUTRAL, HURT, STUNNED, DOWN, or RECOVERING.
type CombatState int

const (
	Neutral CombatState = iota
	Hurt
	Stunned
	Down
	Recovering
)

func (s CombatState) String() string {
	switch s {
	case Neutral:
		return "NEUTRAL"
	case Hurt:
		return "HURT"
	case Stunned:
		return "STUNNED"
	case Down:
		return "DOWN"
	case Recovering:
		return "RECOVERING"
	default:
		return "UNKNOWN"
	}
}

// PunchStats counts thrown/landed punches broken out by type and target.
type PunchStats struct {
	JabsThrown, JabsLanded   int
	PowerThrown, PowerLanded int
	HeadThrown, HeadLanded   int
	BodyThrown, BodyLanded   int
}

// Thrown returns the total punches thrown.
func (p PunchStats) Thrown() int { return p.JabsThrown + p.PowerThrown }

// Landed returns the total punches landed.
func (p PunchStats) Landed() int { return p.JabsLanded + p.PowerLanded }

// FoulRecord tracks warnings and point deductions by foul kind for the
// discipline subsystem.
type FoulRecord struct {
	Warnings   map[string]int
	Deductions map[string]int
}

// NewFoulRecord returns an empty FoulRecord.
func NewFoulRecord() FoulRecord {
	return FoulRecord{
		Warnings:   make(map[string]int),
		Deductions: make(map[string]int),
	}
}

// TotalDeductions sums point deductions across all foul kinds.
func (r FoulRecord) TotalDeductions() int {
	total := 0
	for _, n := range r.Deductions {
		total += n
	}
	return total
}

// Position is a 2-D point in the bounded ring arena.
type Position struct {
	X, Y float64
}

// InFightState is the mutable aggregate owned by one fighter for the
// duration of a bout: one owned struct per combatant holding
// damage/stamina/position/effects fields, rather than many small ad-hoc
// objects scattered across packages.
type InFightState struct {
	FighterID uuid.UUID

	HeadDamage float64 // cumulative 0..1 fraction; 1.0 == KO threshold
	BodyDamage float64

	StaminaPercent float64 // 1.0 -> 0.0

	State CombatState

	Pos Position

	KnockdownsThisRound int
	KnockdownsTotal     int

	Stats PunchStats

	Effects effects.EffectList

	Fouls FoulRecord

	// Count state machine, active only while State == Down.
	CountActive bool
	Count       int     // 1..10
	DownSince   float64 // simulation seconds elapsed in round when knocked down

	// RecoveringUntil is the simulation time (seconds in round) at which a
	// RECOVERING fighter returns to NEUTRAL.
	RecoveringUntil float64
}

// NewInFightState resets a fighter to the start-of-bout state.
func NewInFightState(id uuid.UUID) *InFightState {
	return &InFightState{
		FighterID:      id,
		StaminaPercent: 1.0,
		State:          Neutral,
		Fouls:          NewFoulRecord(),
	}
}

// HeadPercent returns the monotonic head-damage fraction.
func (s *InFightState) HeadPercent() float64 { return s.HeadDamage }

// BodyPercent returns the monotonic body-damage fraction.
func (s *InFightState) BodyPercent() float64 { return s.BodyDamage }

// IsDown reports whether the fighter is currently down.
func (s *InFightState) IsDown() bool { return s.State == Down }
