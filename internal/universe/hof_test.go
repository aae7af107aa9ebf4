package universe

import (
	"testing"
	"time"

	"boxingsim/internal/fighter"
	"boxingsim/internal/tunables"
)

func retiredGreat(u *Universe, name string, yearsRetired int) *fighter.Fighter {
	f := fighter.New(name)
	f.Division = "Middleweight"
	f.Record = fighter.Record{Wins: 48, Losses: 2, WinsByKO: 30, WinsByTKO: 8}
	f.Retired = true
	f.RetiredAt = u.Date.AsOf().AddDate(-yearsRetired, 0, -1)
	u.AddFighter(f)

	// A career worth enshrining: title defenses and wins over ranked men.
	for i := 0; i < 8; i++ {
		u.History[f.ID] = append(u.History[f.ID], HistoryEntry{
			OpponentID: fighter.New("opp").ID, Won: true, Method: "KO",
			Division: f.Division, TitleFight: true, Body: "WBC", OpponentRank: i%5 + 1,
		})
	}
	return f
}

// TestHOFInductsLongRetiredGreats verifies the three-year wait and the
// score threshold.
func TestHOFInductsLongRetiredGreats(t *testing.T) {
	u := New(Date{Year: 2030, Week: 1}, tunables.Default())

	great := retiredGreat(u, "The Great", 4)
	recent := retiredGreat(u, "Too Recent", 1)

	journeyman := fighter.New("Journeyman")
	journeyman.Division = "Middleweight"
	journeyman.Record = fighter.Record{Wins: 12, Losses: 30}
	journeyman.Retired = true
	journeyman.RetiredAt = u.Date.AsOf().AddDate(-5, 0, 0)
	u.AddFighter(journeyman)

	ProcessHallOfFame(u)

	if _, ok := u.HallOfFame.Inducted[great.ID]; !ok {
		t.Error("long-retired great not inducted")
	}
	if _, ok := u.HallOfFame.Inducted[recent.ID]; ok {
		t.Error("fighter retired one year inducted early")
	}
	if _, ok := u.HallOfFame.Inducted[journeyman.ID]; ok {
		t.Error("losing-record journeyman inducted")
	}
}

// TestHOFInductionIsIdempotent runs the pass twice and expects a single
// stable entry.
func TestHOFInductionIsIdempotent(t *testing.T) {
	u := New(Date{Year: 2030, Week: 1}, tunables.Default())
	great := retiredGreat(u, "The Great", 4)

	ProcessHallOfFame(u)
	first := u.HallOfFame.Inducted[great.ID]
	ProcessHallOfFame(u)
	second := u.HallOfFame.Inducted[great.ID]

	if len(u.HallOfFame.Inducted) != 1 {
		t.Fatalf("expected one induction, got %d", len(u.HallOfFame.Inducted))
	}
	if first != second {
		t.Error("induction record changed on second pass")
	}
}

// TestHOFCategoryBands checks score banding into the three tiers.
func TestHOFCategoryBands(t *testing.T) {
	tests := []struct {
		score float64
		want  Category
	}{
		{90, FirstBallot},
		{75, Standard},
		{60, VeteransCommittee},
	}
	for _, tt := range tests {
		if got := classify(tt.score); got != tt.want {
			t.Errorf("classify(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

// TestScoreRewardsDominance compares an all-time record against a padded
// one.
func TestScoreRewardsDominance(t *testing.T) {
	dominant := fighter.New("Dominant")
	dominant.Record = fighter.Record{Wins: 50, WinsByKO: 44}

	padded := fighter.New("Padded")
	padded.Record = fighter.Record{Wins: 30, Losses: 20, WinsByKO: 3}

	if Score(dominant, nil) <= Score(padded, nil) {
		t.Errorf("Score(dominant)=%v <= Score(padded)=%v", Score(dominant, nil), Score(padded, nil))
	}

	empty := fighter.New("Empty")
	empty.DateOfBirth = time.Time{}
	if Score(empty, nil) != 0 {
		t.Errorf("zero-bout fighter scored %v", Score(empty, nil))
	}
}

// TestScoreWeighsTitlesAndNotableWins compares identical records where
// one career was built on title fights against ranked opposition and the
// other entirely on unranked opponents.
func TestScoreWeighsTitlesAndNotableWins(t *testing.T) {
	record := fighter.Record{Wins: 40, Losses: 3, WinsByKO: 20}

	champ := fighter.New("Champ")
	champ.Record = record
	var champHist []HistoryEntry
	for i := 0; i < 6; i++ {
		champHist = append(champHist, HistoryEntry{Won: true, TitleFight: true, Body: "WBA", OpponentRank: 2})
	}

	padder := fighter.New("Padder")
	padder.Record = record
	var padderHist []HistoryEntry
	for i := 0; i < 6; i++ {
		padderHist = append(padderHist, HistoryEntry{Won: true, OpponentRank: 0})
	}

	champScore, padderScore := Score(champ, champHist), Score(padder, padderHist)
	if champScore <= padderScore {
		t.Fatalf("title career scored %v, padded career %v", champScore, padderScore)
	}

	// Losing title fights earn no reign credit.
	var losses []HistoryEntry
	for i := 0; i < 6; i++ {
		losses = append(losses, HistoryEntry{Won: false, TitleFight: true, OpponentRank: 1})
	}
	if Score(champ, losses) != Score(champ, nil) {
		t.Error("losing title fights changed the score")
	}
}
