// Package config loads and validates the two on-disk schemas the core
// consumes: a Fighter configuration file (direct-fight mode) and a Fight
// configuration block, plus the handful of process-level knobs that live
// outside either schema (autosave directory, default tick rate).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"boxingsim/internal/fighter"
)

// Error reports invalid configuration. It is surfaced to the caller
// unchanged, and no partial Fighter is ever constructed from a config that
// fails validation.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %s", e.Msg)
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// FighterDoc is the on-disk shape of a fighter configuration file,
// organized into the enumerated groups identity, physical, style, power,
// speed, stamina, defense, offense, technical, mental, tactics, record.
type FighterDoc struct {
	Identity struct {
		Name        string `json:"name"`
		Nickname    string `json:"nickname"`
		DateOfBirth string `json:"dateOfBirth"` // RFC3339 date, e.g. "1998-04-12"
		PromoterID  string `json:"promoterId"`
		TrainerID   string `json:"trainerId"`
	} `json:"identity"`

	Physical struct {
		HeightCM int    `json:"heightCm"`
		WeightKG int    `json:"weightKg"`
		ReachCM  int    `json:"reachCm"`
		Stance   string `json:"stance"` // "orthodox" | "southpaw"
	} `json:"physical"`

	Style struct {
		Primary   string `json:"primary"`
		Defensive string `json:"defensive"`
		Offensive string `json:"offensive"`
	} `json:"style"`

	Power   fighter.Power   `json:"power"`
	Speed   fighter.Speed   `json:"speed"`
	Stamina fighter.Stamina `json:"stamina"`

	Defense struct {
		HeadMovement int `json:"headMovement"`
		Blocking     int `json:"blocking"`
	} `json:"defense"`

	// Offense is accepted for schema completeness but maps onto the
	// Power/Technical groups already covering punch output; it carries no
	// additional fields of its own.
	Offense struct{} `json:"offense"`

	Technical struct {
		Accuracy        int `json:"accuracy"`
		FightIQ         int `json:"fightIq"`
		RingGeneralship int `json:"ringGeneralship"`
	} `json:"technical"`

	Mental struct {
		Chin           int `json:"chin"`
		Heart          int `json:"heart"`
		KillerInstinct int `json:"killerInstinct"`
	} `json:"mental"`

	Tactics struct {
		Division string `json:"division"`
	} `json:"tactics"`

	Record struct {
		Wins, Losses, Draws, NoContests int
		WinsByKO, WinsByTKO             int
		LossesByKO, LossesByTKO         int
	} `json:"record"`
}

var styleNames = map[string]fighter.PrimaryStyle{
	"out-boxer": fighter.OutBoxer, "swarmer": fighter.Swarmer, "slugger": fighter.Slugger,
	"boxer-puncher": fighter.BoxerPuncher, "counter-puncher": fighter.CounterPuncher,
	"inside-fighter": fighter.InsideFighter, "volume-puncher": fighter.VolumePuncher,
	"switch-hitter": fighter.SwitchHitter,
}

// LoadFighter reads and validates a fighter configuration file, returning
// a *fighter.Fighter only if every validation rule passes.
func LoadFighter(path string) (*fighter.Fighter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Msg: fmt.Sprintf("reading %s: %v", path, err)}
	}

	var doc FighterDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Msg: fmt.Sprintf("parsing %s: %v", path, err)}
	}

	return BuildFighter(doc)
}

// BuildFighter validates a decoded FighterDoc and constructs a Fighter.
func BuildFighter(doc FighterDoc) (*fighter.Fighter, error) {
	if doc.Identity.Name == "" {
		return nil, &Error{Field: "identity.name", Msg: "required"}
	}
	if doc.Physical.HeightCM < 150 || doc.Physical.HeightCM > 220 {
		return nil, &Error{Field: "physical.heightCm", Msg: "must be in [150,220]"}
	}
	if doc.Physical.WeightKG < 45 || doc.Physical.WeightKG > 150 {
		return nil, &Error{Field: "physical.weightKg", Msg: "must be in [45,150]"}
	}

	dob, err := time.Parse("2006-01-02", doc.Identity.DateOfBirth)
	if err != nil {
		return nil, &Error{Field: "identity.dateOfBirth", Msg: "must be YYYY-MM-DD"}
	}
	age := time.Now().Year() - dob.Year()
	if age < 18 || age > 50 {
		return nil, &Error{Field: "identity.dateOfBirth", Msg: "age must be in [18,50]"}
	}

	style, ok := styleNames[doc.Style.Primary]
	if !ok {
		return nil, &Error{Field: "style.primary", Msg: fmt.Sprintf("unknown style %q", doc.Style.Primary)}
	}

	attrs := map[string]int{
		"power.left": doc.Power.Left, "power.right": doc.Power.Right, "power.knockout": doc.Power.Knockout,
		"speed.hand": doc.Speed.Hand, "speed.foot": doc.Speed.Foot, "speed.reflexes": doc.Speed.Reflexes,
		"stamina.cardio": doc.Stamina.Cardio, "stamina.recovery": doc.Stamina.Recovery,
		"defense.headMovement": doc.Defense.HeadMovement, "defense.blocking": doc.Defense.Blocking,
		"technical.accuracy": doc.Technical.Accuracy, "technical.fightIq": doc.Technical.FightIQ,
		"technical.ringGeneralship": doc.Technical.RingGeneralship,
		"mental.chin":               doc.Mental.Chin, "mental.heart": doc.Mental.Heart,
		"mental.killerInstinct": doc.Mental.KillerInstinct,
	}
	for field, v := range attrs {
		if v < 1 || v > 100 {
			return nil, &Error{Field: field, Msg: "must be in [1,100]"}
		}
	}

	stance := fighter.Orthodox
	if doc.Physical.Stance == "southpaw" {
		stance = fighter.Southpaw
	}

	f := fighter.New(doc.Identity.Name)
	f.Nickname = doc.Identity.Nickname
	f.DateOfBirth = dob
	f.PromoterID = doc.Identity.PromoterID
	f.TrainerID = doc.Identity.TrainerID
	f.Stance = stance
	f.HeightCM = doc.Physical.HeightCM
	f.WeightKG = doc.Physical.WeightKG
	f.ReachCM = doc.Physical.ReachCM
	f.Style = fighter.Style{Primary: style, Defensive: doc.Style.Defensive, Offensive: doc.Style.Offensive}
	f.Power = doc.Power
	f.Speed = doc.Speed
	f.Stamina = doc.Stamina
	f.Defense = fighter.Defense{HeadMovement: doc.Defense.HeadMovement, Blocking: doc.Defense.Blocking}
	f.Technical = fighter.Technical{
		Accuracy: doc.Technical.Accuracy, FightIQ: doc.Technical.FightIQ, RingGeneralship: doc.Technical.RingGeneralship,
	}
	f.Mental = fighter.Mental{Chin: doc.Mental.Chin, Heart: doc.Mental.Heart, KillerInstinct: doc.Mental.KillerInstinct}
	f.Division = doc.Tactics.Division
	f.Record = fighter.Record(doc.Record)

	return f, nil
}

// FightType distinguishes how a fight configuration's stakes affect the
// schedule/billing.
type FightType string

const (
	FightTypeTitle        FightType = "title"
	FightTypeMainEvent    FightType = "main-event"
	FightTypeUndercard    FightType = "undercard"
	FightTypeChampionship FightType = "championship"
)

// FightDoc is the on-disk shape of a fight configuration.
type FightDoc struct {
	Rounds int       `json:"rounds"`
	Type   FightType `json:"type"`

	Simulation struct {
		TickRate        float64 `json:"tickRate"`
		SpeedMultiplier float64 `json:"speedMultiplier"`
		RealTime        bool    `json:"realTime"`
	} `json:"simulation"`
}

var validFightTypes = map[FightType]bool{
	FightTypeTitle: true, FightTypeMainEvent: true, FightTypeUndercard: true, FightTypeChampionship: true,
}

// ValidateFight checks a decoded FightDoc's ranges and enumerations.
func ValidateFight(doc FightDoc) error {
	if doc.Rounds < 1 || doc.Rounds > 15 {
		return &Error{Field: "rounds", Msg: "must be in [1,15]"}
	}
	if !validFightTypes[doc.Type] {
		return &Error{Field: "type", Msg: fmt.Sprintf("unknown type %q", doc.Type)}
	}
	if doc.Simulation.TickRate <= 0 {
		return &Error{Field: "simulation.tickRate", Msg: "must be positive"}
	}
	if doc.Simulation.SpeedMultiplier <= 0 {
		return &Error{Field: "simulation.speedMultiplier", Msg: "must be positive"}
	}
	return nil
}

// LoadFight reads and validates a fight configuration file.
func LoadFight(path string) (FightDoc, error) {
	var doc FightDoc
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, &Error{Msg: fmt.Sprintf("reading %s: %v", path, err)}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, &Error{Msg: fmt.Sprintf("parsing %s: %v", path, err)}
	}
	if err := ValidateFight(doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// ProcessConfig holds the process-level knobs that live outside the
// Fighter/Fight schema: where autosaves are written and the default
// simulation tick rate used when a fight configuration doesn't override it.
type ProcessConfig struct {
	AutosaveDir     string
	DefaultTickRate float64
}

// DefaultProcess returns the built-in process defaults.
func DefaultProcess() ProcessConfig {
	return ProcessConfig{
		AutosaveDir:     "./autosave",
		DefaultTickRate: 0.5,
	}
}

// FromEnv overlays environment variable overrides onto the process
// defaults.
func FromEnv() ProcessConfig {
	cfg := DefaultProcess()
	if dir := os.Getenv("BOXINGSIM_AUTOSAVE_DIR"); dir != "" {
		cfg.AutosaveDir = dir
	}
	if tr := os.Getenv("BOXINGSIM_TICK_RATE"); tr != "" {
		if v, err := strconv.ParseFloat(tr, 64); err == nil && v > 0 {
			cfg.DefaultTickRate = v
		}
	}
	return cfg
}
