// Package api exposes the simulation's read-only observable surface over
// HTTP and WebSocket: universe state, division rankings, fighter records,
// historical replays, and a live event feed. The core never reads from
// any of these consumers.
package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"boxingsim/internal/events"
	"boxingsim/internal/fighter"
	"boxingsim/internal/replay"
	"boxingsim/internal/universe"
)

// UniverseService mediates HTTP access to the Universe aggregate. The
// universe itself is single-writer (the week processor); the service's
// mutex serializes reader requests against AdvanceWeeks so handlers never
// observe a half-processed week.
type UniverseService struct {
	mu sync.RWMutex

	u         *universe.Universe
	processor *universe.WeekProcessor
	persister universe.Persister
}

// NewUniverseService wraps a universe for API access. processor and
// persister may be nil for a read-only surface.
func NewUniverseService(u *universe.Universe, wp *universe.WeekProcessor, p universe.Persister) *UniverseService {
	return &UniverseService{u: u, processor: wp, persister: p}
}

// UniverseSummary is the top-level state view.
type UniverseSummary struct {
	Year         int      `json:"year"`
	Week         int      `json:"week"`
	FighterCount int      `json:"fighterCount"`
	ActiveCount  int      `json:"activeCount"`
	Divisions    []string `json:"divisions"`
	HOFCount     int      `json:"hofCount"`
}

// Summary returns the universe's top-level state.
func (s *UniverseService) Summary() UniverseSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := 0
	for _, f := range s.u.Fighters {
		if !f.Retired {
			active++
		}
	}
	return UniverseSummary{
		Year:         s.u.Date.Year,
		Week:         s.u.Date.Week,
		FighterCount: len(s.u.Fighters),
		ActiveCount:  active,
		Divisions:    universe.DivisionNames,
		HOFCount:     len(s.u.HallOfFame.Inducted),
	}
}

// BodyRankingView is one sanctioning body's champion and contender list
// for a division.
type BodyRankingView struct {
	Body       string   `json:"body"`
	Champion   string   `json:"champion,omitempty"`
	Contenders []string `json:"contenders"`
}

// DivisionRankings returns all four bodies' rankings for one division.
func (s *UniverseService) DivisionRankings(division string) ([]BodyRankingView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.u.Divisions[division]; !ok {
		return nil, false
	}

	out := make([]BodyRankingView, 0, len(s.u.Bodies))
	for _, body := range s.u.Bodies {
		dr := body.Rankings[division]
		view := BodyRankingView{Body: string(body.ShortName)}
		if dr.Champion != nil {
			if champ, ok := s.u.Fighters[*dr.Champion]; ok {
				view.Champion = champ.Name
			}
		}
		for _, id := range dr.Contenders {
			if f, ok := s.u.Fighters[id]; ok {
				view.Contenders = append(view.Contenders, f.Name)
			}
		}
		out = append(out, view)
	}
	return out, true
}

// FighterView is the public shape of one fighter's identity and record.
type FighterView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Division string `json:"division"`
	Retired  bool   `json:"retired"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
	KOs      int    `json:"kos"`
}

func toFighterView(f *fighter.Fighter) FighterView {
	return FighterView{
		ID:       f.ID.String(),
		Name:     f.Name,
		Nickname: f.Nickname,
		Division: f.Division,
		Retired:  f.Retired,
		Wins:     f.Record.Wins,
		Losses:   f.Record.Losses,
		Draws:    f.Record.Draws,
		KOs:      f.Record.WinsByKO + f.Record.WinsByTKO,
	}
}

// Fighter returns one fighter by ID.
func (s *UniverseService) Fighter(id string) (FighterView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uid, err := uuid.Parse(id)
	if err != nil {
		return FighterView{}, false
	}
	f, ok := s.u.Fighters[uid]
	if !ok {
		return FighterView{}, false
	}
	return toFighterView(f), true
}

// HistoryView is one completed bout on a fighter's record.
type HistoryView struct {
	Bout       int    `json:"bout"`
	Year       int    `json:"year"`
	Week       int    `json:"week"`
	Opponent   string `json:"opponent"`
	Won        bool   `json:"won"`
	Drew       bool   `json:"drew"`
	Method     string `json:"method"`
	Round      int    `json:"round"`
	Division   string `json:"division"`
	TitleFight bool   `json:"titleFight"`
	Body       string `json:"body,omitempty"`
}

// FighterHistory returns a fighter's bout-by-bout career.
func (s *UniverseService) FighterHistory(id string) ([]HistoryView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}
	if _, ok := s.u.Fighters[uid]; !ok {
		return nil, false
	}

	hist := s.u.History[uid]
	out := make([]HistoryView, 0, len(hist))
	for i, h := range hist {
		oppName := ""
		if opp, ok := s.u.Fighters[h.OpponentID]; ok {
			oppName = opp.Name
		}
		out = append(out, HistoryView{
			Bout: i, Year: h.Date.Year, Week: h.Date.Week, Opponent: oppName,
			Won: h.Won, Drew: h.Drew, Method: h.Method, Round: h.Round,
			Division: h.Division, TitleFight: h.TitleFight, Body: h.Body,
		})
	}
	return out, true
}

// RecentResults returns the newest-first rolling results window, capped
// at limit entries.
func (s *UniverseService) RecentResults(limit int) []HistoryView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.u.RecentResults) {
		limit = len(s.u.RecentResults)
	}
	out := make([]HistoryView, 0, limit)
	for i := 0; i < limit; i++ {
		h := s.u.RecentResults[i]
		oppName := ""
		if opp, ok := s.u.Fighters[h.OpponentID]; ok {
			oppName = opp.Name
		}
		out = append(out, HistoryView{
			Year: h.Date.Year, Week: h.Date.Week, Opponent: oppName,
			Won: h.Won, Drew: h.Drew, Method: h.Method, Round: h.Round,
			Division: h.Division, TitleFight: h.TitleFight, Body: h.Body,
		})
	}
	return out
}

// HOFView is one hall-of-fame induction.
type HOFView struct {
	Fighter  string  `json:"fighter"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Year     int     `json:"year"`
}

// HallOfFame returns every induction.
func (s *UniverseService) HallOfFame() []HOFView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]HOFView, 0, len(s.u.HallOfFame.Inducted))
	for id, ind := range s.u.HallOfFame.Inducted {
		name := id.String()
		if f, ok := s.u.Fighters[id]; ok {
			name = f.Name
		}
		out = append(out, HOFView{
			Fighter: name, Category: string(ind.Category), Score: ind.Score, Year: ind.Date.Year,
		})
	}
	return out
}

// ReplayBout reruns bout #bout from a fighter's history via its stored
// snapshot and returns the reproduced event stream.
func (s *UniverseService) ReplayBout(id string, bout int) ([]events.Event, error) {
	s.mu.RLock()
	uid, err := uuid.Parse(id)
	if err != nil {
		s.mu.RUnlock()
		return nil, fmt.Errorf("api: invalid fighter id %q", id)
	}
	hist := s.u.History[uid]
	if bout < 0 || bout >= len(hist) {
		s.mu.RUnlock()
		return nil, fmt.Errorf("api: fighter %s has no bout %d", id, bout)
	}
	snapshot := hist[bout].ReplayData
	s.mu.RUnlock()

	// The snapshot is a value copy; the rerun needs no universe lock.
	start := time.Now()
	log, result := replay.Run(snapshot)
	if result != nil {
		RecordFight(string(result.Method), time.Since(start))
	}
	return log, nil
}

// AdvanceWeeks runs the week processor n times. Serialized against all
// readers; returns the aggregate fights run.
func (s *UniverseService) AdvanceWeeks(n int) (int, error) {
	if s.processor == nil {
		return 0, fmt.Errorf("api: universe is read-only")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	fights := 0
	for i := 0; i < n; i++ {
		start := time.Now()
		res := s.processor.AdvanceWeek(s.u)
		RecordWeek(time.Since(start))
		fights += res.FightsRun
	}
	return fights, nil
}

// Save persists the universe to its autosave slot.
func (s *UniverseService) Save() error {
	if s.persister == nil {
		return fmt.Errorf("api: no persister configured")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persister.Save(s.u, s.u.AutosaveSlot)
}
