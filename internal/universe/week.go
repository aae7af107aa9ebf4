// WeekProcessor advances the universe by one week: age/decay, matchmake,
// run each match through the combat engine in instant mode, update
// careers/rankings/titles, check retirement, inaugurate vacant titles,
// process hall-of-fame eligibility, advance the date, and autosave.
package universe

import (
	"log"
	"math/rand"

	"github.com/google/uuid"

	"boxingsim/internal/events"
	"boxingsim/internal/fight"
	"boxingsim/internal/fighter"
	"boxingsim/internal/replay"
	"boxingsim/internal/tunables"
)

// Persister is the autosave collaborator contract: one operation per
// call, atomic, with failures logged but never fatal to the in-memory
// universe.
type Persister interface {
	Save(u *Universe, slot string) error
}

// ProgressFunc is the cooperative-yield callback the processor invokes
// periodically during long-running operations, letting a host UI observe
// progress without the core blocking on it.
type ProgressFunc func(weekDone, totalWeeks, fightsRun int)

// WeekProcessor advances a Universe one week at a time.
type WeekProcessor struct {
	persister Persister
	rng       *rand.Rand
}

// NewWeekProcessor builds a processor backed by the given autosave
// collaborator and a seeded RNG (used for ranking skip-list level draws
// and per-fight seed derivation).
func NewWeekProcessor(p Persister, seed int64) *WeekProcessor {
	return &WeekProcessor{persister: p, rng: rand.New(rand.NewSource(seed))}
}

// WeekResult summarizes one week's outcome for the caller/progress UI.
type WeekResult struct {
	FightsRun     int
	NoContests    int
	TitlesChanged int
	Inducted      []uuid.UUID
}

// AdvanceWeek runs exactly one week's pipeline in a fixed step order and
// advances {year, week} by exactly one; it is never a no-op.
func (wp *WeekProcessor) AdvanceWeek(u *Universe) WeekResult {
	ageAndDecay(u, u.Tunables)

	card := Matchmake(u)

	var result WeekResult
	for _, m := range card {
		wp.runMatch(u, m, &result)
	}

	RecomputeAll(u, wp.rng)

	checkRetirements(u)
	RecomputeAll(u, wp.rng)

	wp.inaugurateChampionships(u, &result)

	before := make(map[uuid.UUID]bool, len(u.HallOfFame.Inducted))
	for id := range u.HallOfFame.Inducted {
		before[id] = true
	}
	ProcessHallOfFame(u)
	for id := range u.HallOfFame.Inducted {
		if !before[id] {
			result.Inducted = append(result.Inducted, id)
		}
	}

	u.Date = u.Date.Advance()

	if wp.persister != nil {
		if err := wp.persister.Save(u, u.AutosaveSlot); err != nil {
			log.Printf("universe: autosave failed (slot %q): %v; in-memory state remains authoritative", u.AutosaveSlot, err)
		}
	}

	return result
}

// RunWeeks advances the universe n weeks, invoking progress after each
// week so a host can yield to a UI/input loop.
func (wp *WeekProcessor) RunWeeks(u *Universe, n int, progress ProgressFunc) {
	fightsRun := 0
	for i := 0; i < n; i++ {
		res := wp.AdvanceWeek(u)
		fightsRun += res.FightsRun
		if progress != nil {
			progress(i+1, n, fightsRun)
		}
	}
}

// runMatch resolves one proposed Match through the combat engine in
// instant mode and folds the result back into the universe. A panic or
// SimulationError from the bout is caught and the fight is marked
// NO_CONTEST rather than aborting the week.
func (wp *WeekProcessor) runMatch(u *Universe, m Match, result *WeekResult) {
	fA, okA := u.Fighters[m.A]
	fB, okB := u.Fighters[m.B]
	if !okA || !okB {
		return
	}

	seed := wp.rng.Int63()
	res := wp.safeRunFight(u, fA, fB, m, seed)
	result.FightsRun++
	if res == nil || res.Method == fight.MethodNoContest {
		result.NoContests++
		return
	}

	wp.applyResult(u, fA, fB, m, seed, res, result)
	RecomputeDivision(u, m.Division, wp.rng)
}

func (wp *WeekProcessor) safeRunFight(u *Universe, fA, fB *fighter.Fighter, m Match, seed int64) (res *fight.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("universe: fight %s vs %s panicked: %v; marking NO_CONTEST", fA.Name, fB.Name, r)
			res = &fight.Result{Method: fight.MethodNoContest}
		}
	}()

	cfg := fight.DefaultConfig(seed)
	cfg.Rounds = m.Rounds
	cfg.RealTime = false

	fsA := fighter.NewInFightState(fA.ID)
	fsB := fighter.NewInFightState(fB.ID)
	bus := events.NewBus()
	bout := fight.New(cfg, fA, fB, fsA, fsB, bus, u.Tunables)
	return bout.Run()
}

// bestRankOf returns a fighter's best standing across the four bodies in
// a division: 1 for a reigning champion or #1 contender, the best
// contender rank otherwise, 0 if unranked everywhere.
func bestRankOf(u *Universe, division string, id uuid.UUID) int {
	best := 0
	for _, body := range u.Bodies {
		dr := body.Rankings[division]
		if dr.IsChampion(id) {
			return 1
		}
		if r := dr.ContenderRank(id); r > 0 && (best == 0 || r < best) {
			best = r
		}
	}
	return best
}

func (wp *WeekProcessor) applyResult(u *Universe, fA, fB *fighter.Fighter, m Match, seed int64, res *fight.Result, weekResult *WeekResult) {
	snapshot := replay.NewSnapshot(fA, fB, m.Rounds, seed, u.Tunables)

	// Standings going into the bout, before this result moves the lists.
	rankA := bestRankOf(u, m.Division, fA.ID)
	rankB := bestRankOf(u, m.Division, fB.ID)

	aWon := res.WinnerID != nil && *res.WinnerID == fA.ID
	bWon := res.WinnerID != nil && *res.WinnerID == fB.ID
	draw := res.WinnerID == nil && res.Method != fight.MethodDisqualification && res.Method != fight.MethodNoContest

	updateRecord(fA, aWon, draw, res)
	updateRecord(fB, bWon, draw, res)

	bodyName := ""
	if m.Type == TitleFight {
		bodyName = string(m.Body)
	}

	entryFor := func(opp *fighter.Fighter, won bool, oppRank int) HistoryEntry {
		return HistoryEntry{
			FightID: uuid.New(), Date: u.Date, OpponentID: opp.ID, Won: won, Drew: draw,
			Method: string(res.Method), Round: res.Round, Division: m.Division,
			TitleFight: m.Type == TitleFight, Body: bodyName, OpponentRank: oppRank,
			ReplayData: snapshot,
		}
	}
	u.RecordHistory(fA.ID, entryFor(fB, aWon, rankB))
	u.RecordHistory(fB.ID, entryFor(fA, bWon, rankA))

	if m.Type == TitleFight && res.WinnerID != nil {
		for _, body := range u.Bodies {
			if body.ShortName != m.Body {
				continue
			}
			dr := body.Rankings[m.Division]
			UpdateTitle(dr, *res.WinnerID, otherOf(*res.WinnerID, fA.ID, fB.ID), true)
			weekResult.TitlesChanged++
		}
	}
}

func otherOf(winner, a, b uuid.UUID) uuid.UUID {
	if winner == a {
		return b
	}
	return a
}

func updateRecord(f *fighter.Fighter, won, drew bool, res *fight.Result) {
	switch {
	case drew:
		f.Record.Draws++
	case won:
		f.Record.Wins++
		if res.Method == fight.MethodKO {
			f.Record.WinsByKO++
		} else if res.Method == fight.MethodTKO {
			f.Record.WinsByTKO++
		}
	default:
		f.Record.Losses++
		if res.Method == fight.MethodKO {
			f.Record.LossesByKO++
		} else if res.Method == fight.MethodTKO {
			f.Record.LossesByTKO++
		}
	}
}

// inaugurateChampionships resolves a vacant-title bout whenever a
// division/body has no champion and its top-2 contenders are both
// active. The bout runs within the week the vacancy is detected; the
// processor keeps no separate next-week match queue.
func (wp *WeekProcessor) inaugurateChampionships(u *Universe, result *WeekResult) {
	for _, body := range u.Bodies {
		for _, div := range DivisionNames {
			dr := body.Rankings[div]
			if dr.Champion != nil || len(dr.Contenders) < 2 {
				continue
			}
			a, okA := u.Fighters[dr.Contenders[0]]
			b, okB := u.Fighters[dr.Contenders[1]]
			if !okA || !okB || a.Retired || b.Retired {
				continue
			}
			m := Match{Type: TitleFight, Division: div, Body: body.ShortName, A: a.ID, B: b.ID, Rounds: 12}
			wp.runMatch(u, m, result)
		}
	}
}

func checkRetirements(u *Universe) {
	for _, f := range u.Fighters {
		if f.Retired {
			continue
		}
		age := f.Age(u.Date.AsOf())
		if age >= u.Tunables.RetirementAgeHard {
			retire(u, f)
			continue
		}
		if age >= u.Tunables.RetirementAgeSoft && consecutiveDevastatingLosses(u, f.ID) >= 2 {
			retire(u, f)
		}
	}
}

func consecutiveDevastatingLosses(u *Universe, id uuid.UUID) int {
	hist := u.History[id]
	n := 0
	for i := len(hist) - 1; i >= 0; i-- {
		h := hist[i]
		if h.Won || h.Drew {
			break
		}
		if h.Method == string(fight.MethodKO) || h.Method == string(fight.MethodTKO) {
			n++
		} else {
			break
		}
	}
	return n
}

func retire(u *Universe, f *fighter.Fighter) {
	f.Retired = true
	f.RetiredAt = u.Date.AsOf()
	f.DivisionAt = f.Division
	for _, body := range u.Bodies {
		dr := body.Rankings[f.Division]
		if dr.IsChampion(f.ID) {
			Vacate(dr)
		}
	}
}

// ageAndDecay drifts age-relevant attributes week over week: peak years
// plateau (no change), gentle decline past the peak end for speed/power,
// and chin erosion scaled by accumulated career stoppage losses.
func ageAndDecay(u *Universe, t tunables.Table) {
	now := u.Date.AsOf()
	for _, f := range u.Fighters {
		if f.Retired {
			continue
		}
		age := f.Age(now)
		if age <= t.PeakAgeEnd {
			continue
		}
		yearsPast := float64(age - t.PeakAgeEnd)
		decay := yearsPast * t.DeclineRate / 52 // per-week fraction of the annual decline rate

		f.Speed.Hand = declineInt(f.Speed.Hand, decay)
		f.Speed.Foot = declineInt(f.Speed.Foot, decay)
		f.Power.Left = declineInt(f.Power.Left, decay*0.7)
		f.Power.Right = declineInt(f.Power.Right, decay*0.7)

		stoppageLosses := f.Record.LossesByKO + f.Record.LossesByTKO
		chinErosion := float64(stoppageLosses) * t.ChinErosionRate / 52
		f.Mental.Chin = declineInt(f.Mental.Chin, chinErosion)
	}
}

func declineInt(v int, amount float64) int {
	next := float64(v) - amount
	if next < 1 {
		return 1
	}
	return int(next)
}
