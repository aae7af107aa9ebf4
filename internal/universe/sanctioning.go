package universe

import "github.com/google/uuid"

// DivisionNames enumerates the weight classes tracked by the simulator.
var DivisionNames = []string{
	"Heavyweight", "Cruiserweight", "Light Heavyweight", "Super Middleweight",
	"Middleweight", "Super Welterweight", "Welterweight", "Super Lightweight",
	"Lightweight", "Super Featherweight", "Featherweight", "Bantamweight",
	"Flyweight",
}

// Division is a weight-class roster view. Consensus rankings are not
// stored here; consensusTop15 derives them on demand from the four
// sanctioning bodies' independent lists.
type Division struct {
	Name      string
	RosterIDs []uuid.UUID
}

// BodyShortName is one of the four sanctioning-body identifiers.
type BodyShortName string

const (
	WBC BodyShortName = "WBC"
	WBA BodyShortName = "WBA"
	IBF BodyShortName = "IBF"
	WBO BodyShortName = "WBO"
)

// MaxContenders is the retained contender-list length per body per
// division.
const MaxContenders = 15

// DivisionRanking holds one body's champion and contender list for one
// division.
type DivisionRanking struct {
	Champion   *uuid.UUID
	Contenders []uuid.UUID // ordered best-to-worst, length <= MaxContenders
	list       *rankList   // internal ordering structure (ranklist.go)
	bodyBias   float64     // small, stable per (body, division) pair
}

// SanctioningBody maintains independent rankings and a champion per
// division.
type SanctioningBody struct {
	ShortName BodyShortName
	Rankings  map[string]*DivisionRanking // keyed by division name
}

// NewBodies constructs the four sanctioning bodies with empty rankings
// for every division, each seeded with a small stable per-body bias so
// the four rankings diverge plausibly.
func NewBodies() []*SanctioningBody {
	biasSeed := map[BodyShortName]float64{WBC: 1.0, WBA: -1.0, IBF: 0.5, WBO: -0.5}
	bodies := make([]*SanctioningBody, 0, 4)
	for _, name := range []BodyShortName{WBC, WBA, IBF, WBO} {
		b := &SanctioningBody{ShortName: name, Rankings: make(map[string]*DivisionRanking)}
		for _, div := range DivisionNames {
			b.Rankings[div] = &DivisionRanking{bodyBias: biasSeed[name]}
		}
		bodies = append(bodies, b)
	}
	return bodies
}

// IsChampion reports whether fighterID holds this division's title.
func (r *DivisionRanking) IsChampion(fighterID uuid.UUID) bool {
	return r.Champion != nil && *r.Champion == fighterID
}

// ContenderRank returns the 1-indexed contender rank, or 0 if unranked or
// champion.
func (r *DivisionRanking) ContenderRank(fighterID uuid.UUID) int {
	for i, id := range r.Contenders {
		if id == fighterID {
			return i + 1
		}
	}
	return 0
}
