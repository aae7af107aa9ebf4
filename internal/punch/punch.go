// Package punch defines the punch-type table used by the combat resolver
// and fighter controller: range, power weight, and stamina cost per type.
// Head damage scales jab < hook < cross < uppercut; body punches drain
// more stamina than they add head damage.
package punch

// Type enumerates the punches a fighter controller may throw.
type Type int

const (
	Jab Type = iota
	Cross
	Hook
	Uppercut
)

func (t Type) String() string {
	switch t {
	case Jab:
		return "jab"
	case Cross:
		return "cross"
	case Hook:
		return "hook"
	case Uppercut:
		return "uppercut"
	default:
		return "unknown"
	}
}

// IsPower reports whether a punch type counts as a "power punch" for
// stamina drain and fight-stat breakdowns.
func (t Type) IsPower() bool { return t != Jab }

// Location is the target area of a punch.
type Location int

const (
	Head Location = iota
	Body
)

func (l Location) String() string {
	if l == Head {
		return "head"
	}
	return "body"
}

// Profile describes a punch type's feasibility range and damage/stamina
// weighting.
type Profile struct {
	Type Type

	// MinRange/MaxRange bound the position-module distance at which this
	// punch is feasible: jabs reach farther, hooks/uppercuts require inside
	// distance.
	MinRange float64
	MaxRange float64

	// PowerWeight scales base damage; jab < hook < cross < uppercut for
	// head shots.
	PowerWeight float64

	// StaminaCost is the stamina fraction drained per throw (before the
	// tunables power-punch surcharge and cardio scaling).
	StaminaCost float64

	// BodyStaminaMultiplier extra-scales stamina drained on the defender
	// when this punch lands to the body; body damage primarily drains
	// stamina rather than accumulating toward a head knockout.
	BodyStaminaMultiplier float64
}

var profiles = map[Type]Profile{
	Jab: {
		Type: Jab, MinRange: 3.0, MaxRange: 9.0,
		PowerWeight: 0.6, StaminaCost: 0.002, BodyStaminaMultiplier: 1.1,
	},
	Cross: {
		Type: Cross, MinRange: 2.0, MaxRange: 7.0,
		PowerWeight: 1.1, StaminaCost: 0.004, BodyStaminaMultiplier: 1.3,
	},
	Hook: {
		Type: Hook, MinRange: 0.5, MaxRange: 4.5,
		PowerWeight: 0.95, StaminaCost: 0.0045, BodyStaminaMultiplier: 1.4,
	},
	Uppercut: {
		Type: Uppercut, MinRange: 0.0, MaxRange: 3.0,
		PowerWeight: 1.25, StaminaCost: 0.005, BodyStaminaMultiplier: 1.5,
	},
}

// Of returns the profile for a punch type.
func Of(t Type) Profile {
	return profiles[t]
}

// All returns every punch profile, ordered Jab..Uppercut.
func All() []Profile {
	return []Profile{profiles[Jab], profiles[Cross], profiles[Hook], profiles[Uppercut]}
}

// Feasible reports whether distance falls within this punch's range band.
func (p Profile) Feasible(distance float64) bool {
	return distance >= p.MinRange && distance <= p.MaxRange
}
