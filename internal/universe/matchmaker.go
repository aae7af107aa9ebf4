// Matchmaking for the weekly card: title fights, main events, and
// undercards, proposed greedily with priority by type, then rank
// proximity, then freshness. Candidate ordering always pairs a primary
// sort key with a deterministic tiebreak so a given universe state yields
// the same card every time.
package universe

import (
	"sort"

	"github.com/google/uuid"

	"boxingsim/internal/fighter"
)

// MatchType classifies a proposed bout's billing.
type MatchType string

const (
	TitleFight MatchType = "TITLE_FIGHT"
	MainEvent  MatchType = "MAIN_EVENT"
	Undercard  MatchType = "UNDERCARD"
)

// Match is one proposed pairing for the week's card.
type Match struct {
	Type     MatchType
	Division string
	Body     BodyShortName // set only for TitleFight
	A, B     uuid.UUID
	Rounds   int
}

// MinWeeksSinceLastFight is the minimum gap a title challenger must clear
// since their last bout.
const MinWeeksSinceLastFight = 8

// MaxCardSize bounds the number of matches proposed per week, preventing
// the scheduler from pairing the entire roster in one pass.
const MaxCardSize = 60

// Matchmake proposes the week's card: title fights first (champion vs.
// #1-#4 contender with a minimum gap since last bout), then main events
// (top-15 contenders of similar standing), then undercards filling the
// remaining schedule from whoever is left unmatched.
func Matchmake(u *Universe) []Match {
	var card []Match
	matched := make(map[uuid.UUID]bool)

	for _, div := range DivisionNames {
		for _, body := range u.Bodies {
			if len(card) >= MaxCardSize {
				return card
			}
			dr := body.Rankings[div]
			if m, ok := proposeTitleFight(u, div, body.ShortName, dr, matched); ok {
				card = append(card, m)
				matched[m.A] = true
				matched[m.B] = true
			}
		}
	}

	for _, div := range DivisionNames {
		if len(card) >= MaxCardSize {
			return card
		}
		card = append(card, proposeMainEvents(u, div, matched)...)
	}

	card = append(card, proposeUndercards(u, matched)...)
	if len(card) > MaxCardSize {
		card = card[:MaxCardSize]
	}

	return card
}

func proposeTitleFight(u *Universe, division string, body BodyShortName, dr *DivisionRanking, matched map[uuid.UUID]bool) (Match, bool) {
	if dr.Champion == nil || len(dr.Contenders) == 0 {
		return Match{}, false
	}
	champID := *dr.Champion
	if matched[champID] {
		return Match{}, false
	}
	champ, ok := u.Fighters[champID]
	if !ok || champ.Retired {
		return Match{}, false
	}

	for i, challID := range dr.Contenders {
		if i >= 4 {
			break
		}
		if matched[challID] || challID == champID {
			continue
		}
		chall, ok := u.Fighters[challID]
		if !ok || chall.Retired {
			continue
		}
		if weeksSinceLastFight(u, challID) < MinWeeksSinceLastFight {
			continue
		}
		if weeksSinceLastFight(u, champID) < MinWeeksSinceLastFight {
			continue
		}
		return Match{Type: TitleFight, Division: division, Body: body, A: champID, B: challID, Rounds: 12}, true
	}
	return Match{}, false
}

// proposeMainEvents pairs the division's consensus top 15 by rank
// proximity: the list arrives best-first from consensusTop15, so adjacent
// unmatched contenders are the closest available matchups.
func proposeMainEvents(u *Universe, division string, matched map[uuid.UUID]bool) []Match {
	consensus := consensusTop15(u, division)
	candidates := make([]uuid.UUID, 0, len(consensus))
	for _, id := range consensus {
		if !matched[id] {
			candidates = append(candidates, id)
		}
	}

	var matches []Match
	for i := 0; i+1 < len(candidates); i += 2 {
		a, b := candidates[i], candidates[i+1]
		matches = append(matches, Match{Type: MainEvent, Division: division, A: a, B: b, Rounds: 10})
		matched[a] = true
		matched[b] = true
	}
	return matches
}

func proposeUndercards(u *Universe, matched map[uuid.UUID]bool) []Match {
	var pool []*fighter.Fighter
	for _, f := range u.Fighters {
		if !f.Retired && !matched[f.ID] {
			pool = append(pool, f)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].ID.String() < pool[j].ID.String() })

	var matches []Match
	byDivision := make(map[string][]*fighter.Fighter)
	for _, f := range pool {
		byDivision[f.Division] = append(byDivision[f.Division], f)
	}
	divs := make([]string, 0, len(byDivision))
	for div := range byDivision {
		divs = append(divs, div)
	}
	sort.Strings(divs)
	for _, div := range divs {
		fs := byDivision[div]
		for i := 0; i+1 < len(fs) && len(matches) < MaxCardSize; i += 2 {
			a, b := fs[i], fs[i+1]
			matches = append(matches, Match{Type: Undercard, Division: div, A: a.ID, B: b.ID, Rounds: 8})
			matched[a.ID] = true
			matched[b.ID] = true
		}
	}
	return matches
}

// consensusTop15 derives a division's consensus rankings from the four
// bodies' independent lists: average rank across bodies that rank the
// fighter, sorted ascending (best first).
func consensusTop15(u *Universe, division string) []uuid.UUID {
	sum := make(map[uuid.UUID]int)
	count := make(map[uuid.UUID]int)
	for _, body := range u.Bodies {
		dr := body.Rankings[division]
		for i, id := range dr.Contenders {
			sum[id] += i + 1
			count[id]++
		}
	}
	type scored struct {
		id  uuid.UUID
		avg float64
	}
	var list []scored
	for id, c := range count {
		list = append(list, scored{id: id, avg: float64(sum[id]) / float64(c)})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].avg != list[j].avg {
			return list[i].avg < list[j].avg
		}
		return list[i].id.String() < list[j].id.String()
	})
	if len(list) > MaxContenders {
		list = list[:MaxContenders]
	}
	out := make([]uuid.UUID, len(list))
	for i, s := range list {
		out[i] = s.id
	}
	return out
}

func weeksSinceLastFight(u *Universe, fighterID uuid.UUID) int {
	hist := u.History[fighterID]
	if len(hist) == 0 {
		return MinWeeksSinceLastFight + 1
	}
	last := hist[len(hist)-1].Date
	return weeksBetween(last, u.Date)
}

func weeksBetween(a, b Date) int {
	return (b.Year-a.Year)*52 + (b.Week - a.Week)
}
