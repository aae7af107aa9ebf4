// Package fighter defines the static Fighter model and the mutable
// in-fight state tracked for the duration of a single bout.
package fighter

import (
	"time"

	"github.com/google/uuid"
)

// Handedness is a fighter's stance.
type Handedness int

const (
	Orthodox Handedness = iota
	Southpaw
)

// PrimaryStyle enumerates the eight boxing styles a fighter can be built
// around.
type PrimaryStyle int

const (
	OutBoxer PrimaryStyle = iota
	Swarmer
	Slugger
	BoxerPuncher
	CounterPuncher
	InsideFighter
	VolumePuncher
	SwitchHitter
)

func (s PrimaryStyle) String() string {
	switch s {
	case OutBoxer:
		return "out-boxer"
	case Swarmer:
		return "swarmer"
	case Slugger:
		return "slugger"
	case BoxerPuncher:
		return "boxer-puncher"
	case CounterPuncher:
		return "counter-puncher"
	case InsideFighter:
		return "inside-fighter"
	case VolumePuncher:
		return "volume-puncher"
	case SwitchHitter:
		return "switch-hitter"
	default:
		return "unknown"
	}
}

// Style bundles the primary style with defensive/offensive sub-styles.
type Style struct {
	Primary   PrimaryStyle
	Defensive string // e.g. "peek-a-boo", "shoulder-roll"
	Offensive string // e.g. "body-snatcher", "headhunter"
}

// Power groups a fighter's punching-power attributes.
type Power struct {
	Left     int
	Right    int
	Knockout int
}

// Speed groups a fighter's speed attributes.
type Speed struct {
	Hand     int
	Foot     int
	Reflexes int
}

// Stamina groups a fighter's conditioning attributes.
type Stamina struct {
	Cardio   int
	Recovery int
}

// Defense groups a fighter's defensive attributes.
type Defense struct {
	HeadMovement int
	Blocking     int
}

// Mental groups a fighter's mental/intangible attributes.
type Mental struct {
	Chin           int
	Heart          int
	KillerInstinct int
}

// Technical groups a fighter's technical attributes.
type Technical struct {
	Accuracy        int
	FightIQ         int
	RingGeneralship int
}

// Record is a fighter's career win/loss ledger.
type Record struct {
	Wins, Losses, Draws, NoContests int
	WinsByKO, WinsByTKO             int
	LossesByKO, LossesByTKO         int
}

// Fighter is the static identity of a boxer: attributes fixed at creation
// (or drifting only via the universe's slow age/decay pass), independent of
// any single bout.
type Fighter struct {
	ID          uuid.UUID
	Name        string
	Nickname    string
	Stance      Handedness
	HeightCM    int
	WeightKG    int
	ReachCM     int
	DateOfBirth time.Time

	Power     Power
	Speed     Speed
	Stamina   Stamina
	Defense   Defense
	Mental    Mental
	Technical Technical
	Style     Style

	Record Record

	// PromoterID/TrainerID are opaque identifiers (no business-of-boxing
	// simulation) surfaced on fighter configuration and carried through to
	// fight history entries.
	PromoterID string
	TrainerID  string

	Division string

	Retired    bool
	RetiredAt  time.Time
	DivisionAt string // division held at retirement, for HOF bookkeeping
}

// Age returns the fighter's age in whole years as of t.
func (f *Fighter) Age(t time.Time) int {
	years := t.Year() - f.DateOfBirth.Year()
	if t.YearDay() < f.DateOfBirth.YearDay() {
		years--
	}
	return years
}

// New creates a Fighter with a freshly generated ID.
func New(name string) *Fighter {
	return &Fighter{
		ID:   uuid.New(),
		Name: name,
	}
}

// Clone returns a deep value copy of the fighter, suitable for embedding in
// a replay snapshot (see internal/replay) without risking later mutation of
// the live roster entry from bleeding into historical data.
func (f *Fighter) Clone() Fighter {
	clone := *f
	return clone
}
