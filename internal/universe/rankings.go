// Rankings policy: after each fight, both participants' rankings across
// all four bodies are recomputed from a base rating (attributes) plus a
// recent-form modifier plus the body's stable bias.
// Champions are excluded from the contender list; top 15 are retained.
package universe

import (
	"math/rand"

	"github.com/google/uuid"

	"boxingsim/internal/fighter"
	"boxingsim/internal/tunables"
)

// BaseRating computes a fighter's intrinsic rating from attributes,
// independent of form.
func BaseRating(f *fighter.Fighter) float64 {
	power := float64(f.Power.Left+f.Power.Right+f.Power.Knockout) / 3
	speed := float64(f.Speed.Hand+f.Speed.Foot+f.Speed.Reflexes) / 3
	defense := float64(f.Defense.HeadMovement + f.Defense.Blocking)
	mental := float64(f.Mental.Chin+f.Mental.Heart+f.Mental.KillerInstinct) / 3
	technical := float64(f.Technical.Accuracy+f.Technical.FightIQ+f.Technical.RingGeneralship) / 3
	return power*0.25 + speed*0.2 + defense*0.15 + mental*0.15 + technical*0.25
}

// FormModifier scores recent results: wins over higher-ranked opponents
// boost rating, losses (especially bad ones) downgrade it.
func FormModifier(history []HistoryEntry) float64 {
	mod := 0.0
	n := 0
	for _, h := range history {
		if n >= 5 {
			break
		}
		switch {
		case h.Won:
			mod += 3
		case h.Drew:
			mod += 0.5
		default:
			mod -= 4
		}
		n++
	}
	return mod
}

// RankingScore computes a fighter's score within one (body, division)
// ranking: base rating + recent-form modifier + the body's stable bias.
func RankingScore(t tunables.Table, f *fighter.Fighter, history []HistoryEntry, bodyBias float64) float64 {
	base := BaseRating(f) * t.RankingBaseWeight
	form := FormModifier(history) * t.RankingFormWeight * 10
	return base + form + bodyBias*t.RankingBodyBiasSpread
}

// RecomputeDivision rebuilds every body's ranking for one division from
// scratch over its active roster. Called after each fight involving a
// fighter in that division.
func RecomputeDivision(u *Universe, division string, rng *rand.Rand) {
	active := u.ActiveFighters(division)

	for _, body := range u.Bodies {
		dr := body.Rankings[division]
		dr.list = newRankList(rng)

		for _, f := range active {
			if dr.IsChampion(f.ID) {
				dr.list.Remove(f.ID.String())
				continue
			}
			score := RankingScore(u.Tunables, f, u.History[f.ID], dr.bodyBias)
			dr.list.Insert(f.ID.String(), score)
		}

		top := dr.list.Top(MaxContenders)
		contenders := make([]uuid.UUID, 0, len(top))
		for _, e := range top {
			id, err := uuid.Parse(e.Key)
			if err != nil {
				continue
			}
			contenders = append(contenders, id)
		}
		dr.Contenders = contenders
	}
}

// RecomputeAll rebuilds rankings for every division -- used after bulk
// operations like retirement sweeps where many fighters' eligibility
// changed at once.
func RecomputeAll(u *Universe, rng *rand.Rand) {
	for _, div := range DivisionNames {
		RecomputeDivision(u, div, rng)
	}
}
