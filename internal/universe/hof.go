// Hall of Fame induction: any fighter retired for at least 3 years with a
// score above threshold is inducted into one of three categories.
package universe

import (
	"github.com/google/uuid"

	"boxingsim/internal/fighter"
)

// Category is the HOF induction tier.
type Category string

const (
	FirstBallot       Category = "FIRST_BALLOT"
	Standard          Category = "STANDARD"
	VeteransCommittee Category = "VETERANS_COMMITTEE"
)

// Induction is one fighter's hall-of-fame record.
type Induction struct {
	FighterID uuid.UUID
	Category  Category
	Score     float64
	Date      Date
}

// HallOfFame is the register of inducted fighters.
type HallOfFame struct {
	Inducted map[uuid.UUID]Induction
}

// NotableWinRankCeiling bounds which beaten opponents count as notable: a
// win over a fighter who entered the bout ranked this high or better.
const NotableWinRankCeiling = 10

// Score computes a fighter's HOF eligibility score from overall record,
// stoppage power, career length, title-fight wins, and notable wins (wins
// over opponents who entered the bout champion or top-10 ranked, per the
// OpponentRank captured on each history entry).
func Score(f *fighter.Fighter, history []HistoryEntry) float64 {
	r := f.Record
	total := r.Wins + r.Losses + r.Draws
	if total == 0 {
		return 0
	}
	winRate := float64(r.Wins) / float64(total)
	stoppagePower := float64(r.WinsByKO+r.WinsByTKO) / float64(total)
	longevity := float64(total) / 10 // bouts fought, rewards durable careers
	if longevity > 6 {
		longevity = 6
	}

	titleWins, notableWins := 0, 0
	for _, h := range history {
		if !h.Won {
			continue
		}
		if h.TitleFight {
			titleWins++
		}
		if h.OpponentRank >= 1 && h.OpponentRank <= NotableWinRankCeiling {
			notableWins++
		}
	}
	titleFactor := float64(titleWins) * 2.5
	if titleFactor > 20 {
		titleFactor = 20
	}
	notableFactor := float64(notableWins) * 1.5
	if notableFactor > 15 {
		notableFactor = 15
	}

	return winRate*40 + stoppagePower*20 + longevity*3 + titleFactor + notableFactor
}

// classify assigns an eligible fighter's Category by score band.
func classify(score float64) Category {
	switch {
	case score >= 85:
		return FirstBallot
	case score >= 70:
		return Standard
	default:
		return VeteransCommittee
	}
}

// ProcessHallOfFame inducts every retired fighter who has been retired for
// at least 3 years and whose HOF score clears the tunable threshold.
func ProcessHallOfFame(u *Universe) {
	now := u.Date.AsOf()
	for id, f := range u.Fighters {
		if !f.Retired {
			continue
		}
		if _, already := u.HallOfFame.Inducted[id]; already {
			continue
		}
		years := now.Sub(f.RetiredAt).Hours() / (24 * 365)
		if years < 3 {
			continue
		}
		score := Score(f, u.History[id])
		if score < u.Tunables.HOFScoreThreshold {
			continue
		}
		u.HallOfFame.Inducted[id] = Induction{
			FighterID: id, Category: classify(score), Score: score, Date: u.Date,
		}
	}
}
