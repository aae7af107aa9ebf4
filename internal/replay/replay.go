// Package replay implements the value-copy Snapshot needed to
// deterministically re-run a historical bout, and the Run helper that does
// so via internal/fight. A Snapshot holds Clone()d fighter.Fighter
// values, never a pointer into the live roster, so a fighter's later
// attribute drift cannot retroactively change a historical result.
package replay

import (
	"boxingsim/internal/events"
	"boxingsim/internal/fight"
	"boxingsim/internal/fighter"
	"boxingsim/internal/tunables"
)

// Snapshot is a complete, self-contained value copy of everything needed
// to rerun a historical bout: both fighters' full static attributes at
// fight date, the rounds count, and the RNG seed.
type Snapshot struct {
	FighterA fighter.Fighter
	FighterB fighter.Fighter
	Rounds   int
	Seed     int64
	Tunables tunables.Table
}

// NewSnapshot captures a value-copy snapshot of both fighters as they
// stood at fight time.
func NewSnapshot(a, b *fighter.Fighter, rounds int, seed int64, t tunables.Table) Snapshot {
	return Snapshot{
		FighterA: a.Clone(),
		FighterB: b.Clone(),
		Rounds:   rounds,
		Seed:     seed,
		Tunables: t,
	}
}

// Run replays a Snapshot from scratch: fresh in-fight states, the
// snapshot's seed, and instant mode (no wall-clock pacing), then returns
// the resulting event history and Result. Given the same Snapshot, two
// calls to Run produce bit-identical event streams and results, because
// every source of randomness in internal/fight and internal/scoring is
// seeded exclusively from Snapshot.Seed.
func Run(s Snapshot) ([]events.Event, *fight.Result) {
	a := s.FighterA
	b := s.FighterB

	fsA := fighter.NewInFightState(a.ID)
	fsB := fighter.NewInFightState(b.ID)

	cfg := fight.DefaultConfig(s.Seed)
	cfg.Rounds = s.Rounds
	cfg.RealTime = false

	bus := events.NewBus()
	bout := fight.New(cfg, &a, &b, fsA, fsB, bus, s.Tunables)

	result := bout.Run()
	return bus.History(), result
}
