// Package universe implements the Universe Simulator (C2): the weekly
// scheduler that ages fighters, runs matchmaking, resolves bouts through
// internal/fight in instant mode, and maintains rankings, titles,
// retirement, and hall-of-fame state across a population of fighters.
package universe

import (
	"time"

	"github.com/google/uuid"

	"boxingsim/internal/fighter"
	"boxingsim/internal/replay"
	"boxingsim/internal/tunables"
)

// Date is the universe's current simulated calendar position.
type Date struct {
	Year int
	Week int // 1..52
}

// Advance moves the date forward by one week, rolling over at week 52.
func (d Date) Advance() Date {
	d.Week++
	if d.Week > 52 {
		d.Week = 1
		d.Year++
	}
	return d
}

// HistoryEntry is one completed bout recorded against a fighter's career,
// carrying a self-contained replay snapshot (per internal/replay) rather
// than a reference to either participant's live roster entry.
type HistoryEntry struct {
	FightID    uuid.UUID
	Date       Date
	OpponentID uuid.UUID
	Won        bool
	Drew       bool
	Method     string
	Round      int
	Division   string
	TitleFight bool
	Body       string // sanctioning body short name, if a title fight
	// OpponentRank is the opponent's best standing across the four bodies
	// going into the bout: 1 for a champion or #1 contender, 0 if
	// unranked. Captured at fight time so hall-of-fame scoring can weigh
	// notable wins without consulting mutable later state.
	OpponentRank int
	ReplayData   replay.Snapshot
}

// Universe is the aggregate state root: exactly one canonical Fighter per
// ID, mutated exclusively by the WeekProcessor. All other components
// operate on values they own.
type Universe struct {
	Date Date

	Fighters  map[uuid.UUID]*fighter.Fighter
	Divisions map[string]*Division
	Bodies    []*SanctioningBody

	HallOfFame HallOfFame

	RecentResults []HistoryEntry // rolling window, most recent first
	History       map[uuid.UUID][]HistoryEntry

	Tunables tunables.Table

	AutosaveSlot string
}

// New creates an empty Universe for the given starting date.
func New(start Date, t tunables.Table) *Universe {
	u := &Universe{
		Date:      start,
		Fighters:  make(map[uuid.UUID]*fighter.Fighter),
		Divisions: make(map[string]*Division),
		Bodies:    NewBodies(),
		HallOfFame: HallOfFame{
			Inducted: make(map[uuid.UUID]Induction),
		},
		History:  make(map[uuid.UUID][]HistoryEntry),
		Tunables: t,
	}
	for _, name := range DivisionNames {
		u.Divisions[name] = &Division{Name: name}
	}
	return u
}

// AddFighter inserts a fighter into the roster and their division.
func (u *Universe) AddFighter(f *fighter.Fighter) {
	u.Fighters[f.ID] = f
	if div, ok := u.Divisions[f.Division]; ok {
		div.RosterIDs = append(div.RosterIDs, f.ID)
	}
}

// RecordHistory appends a completed bout to both the rolling recent-results
// window and the fighter's permanent history, keyed by fighter ID.
func (u *Universe) RecordHistory(fighterID uuid.UUID, entry HistoryEntry) {
	u.History[fighterID] = append(u.History[fighterID], entry)
	u.RecentResults = append([]HistoryEntry{entry}, u.RecentResults...)
	const maxRecent = 500
	if len(u.RecentResults) > maxRecent {
		u.RecentResults = u.RecentResults[:maxRecent]
	}
}

// ActiveFighters returns every non-retired fighter in a division.
func (u *Universe) ActiveFighters(division string) []*fighter.Fighter {
	div, ok := u.Divisions[division]
	if !ok {
		return nil
	}
	out := make([]*fighter.Fighter, 0, len(div.RosterIDs))
	for _, id := range div.RosterIDs {
		if f, ok := u.Fighters[id]; ok && !f.Retired {
			out = append(out, f)
		}
	}
	return out
}

// AsOf returns a time.Time for the universe's current date, using week*7
// days from January 1st as the convention for age/retirement arithmetic.
func (d Date) AsOf() time.Time {
	jan1 := time.Date(d.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return jan1.AddDate(0, 0, (d.Week-1)*7)
}
