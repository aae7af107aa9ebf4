package universe

import "github.com/google/uuid"

// UpdateTitle applies a title bout's result to a division ranking: the
// winner becomes (or retains) champion; a champion who loses passes the
// belt to the winner, and a vacant belt goes to the winner.
func UpdateTitle(dr *DivisionRanking, winnerID, loserID uuid.UUID, wasChampionFight bool) {
	if !wasChampionFight {
		return
	}
	if dr.Champion != nil && *dr.Champion == loserID {
		id := winnerID
		dr.Champion = &id
		return
	}
	if dr.Champion == nil {
		id := winnerID
		dr.Champion = &id
	}
}

// Vacate clears a division's championship for a body, e.g. on the
// champion's retirement.
func Vacate(dr *DivisionRanking) {
	dr.Champion = nil
}
