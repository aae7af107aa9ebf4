// Package effects models fighter buffs/debuffs as a closed enumeration
// with a pure metadata registry: all string formatting of a live instance
// belongs to a presentation layer, not here.
package effects

// Kind is the closed enumeration of effect kinds a fighter can carry.
type Kind int

const (
	Momentum Kind = iota
	Gassed
	HurtHands
	Staggered
	Cut
	Confidence
	Recovering // short post-knockdown grace window
)

// Meta describes fixed, non-positional information about an effect kind:
// display name, whether it is a buff or debuff, and its default stacking
// policy.
type Meta struct {
	Name         string
	IsDebuff     bool
	DefaultStack StackPolicy
}

// StackPolicy controls what happens when an effect of a kind already
// present is applied again.
type StackPolicy int

const (
	Replace StackPolicy = iota
	Refresh
	Additive
)

var registry = map[Kind]Meta{
	Momentum:   {Name: "Momentum", IsDebuff: false, DefaultStack: Refresh},
	Gassed:     {Name: "Gassed", IsDebuff: true, DefaultStack: Refresh},
	HurtHands:  {Name: "Hurt Hands", IsDebuff: true, DefaultStack: Additive},
	Staggered:  {Name: "Staggered", IsDebuff: true, DefaultStack: Refresh},
	Cut:        {Name: "Cut", IsDebuff: true, DefaultStack: Additive},
	Confidence: {Name: "Confidence", IsDebuff: false, DefaultStack: Refresh},
	Recovering: {Name: "Recovering", IsDebuff: false, DefaultStack: Replace},
}

// MetaOf returns the registry entry for a kind. Panics on an unregistered
// kind since Kind is a closed enumeration controlled entirely by this
// package.
func MetaOf(k Kind) Meta {
	m, ok := registry[k]
	if !ok {
		panic("effects: unregistered kind")
	}
	return m
}

// Effect is one active buff/debuff instance on a fighter.
type Effect struct {
	Kind           Kind
	Magnitude      float64
	RemainingTicks int
	Stack          StackPolicy
}

// EffectList is the bounded collection of active effects on one fighter.
type EffectList struct {
	items []Effect
}

// Apply adds or merges an effect according to its stacking policy.
func (l *EffectList) Apply(e Effect) {
	for i := range l.items {
		if l.items[i].Kind != e.Kind {
			continue
		}
		switch e.Stack {
		case Refresh:
			l.items[i].RemainingTicks = e.RemainingTicks
			if e.Magnitude > l.items[i].Magnitude {
				l.items[i].Magnitude = e.Magnitude
			}
		case Additive:
			l.items[i].Magnitude += e.Magnitude
			if e.RemainingTicks > l.items[i].RemainingTicks {
				l.items[i].RemainingTicks = e.RemainingTicks
			}
		case Replace:
			l.items[i] = e
		}
		return
	}
	l.items = append(l.items, e)
}

// Tick decrements every active effect's remaining duration by one tick and
// drops expired effects.
func (l *EffectList) Tick() {
	n := 0
	for _, e := range l.items {
		e.RemainingTicks--
		if e.RemainingTicks > 0 {
			l.items[n] = e
			n++
		}
	}
	l.items = l.items[:n]
}

// Has reports whether a kind is currently active.
func (l *EffectList) Has(k Kind) bool {
	_, ok := l.Get(k)
	return ok
}

// Get returns the active effect of a kind, if any.
func (l *EffectList) Get(k Kind) (Effect, bool) {
	for _, e := range l.items {
		if e.Kind == k {
			return e, true
		}
	}
	return Effect{}, false
}

// Remove clears all effects of a kind.
func (l *EffectList) Remove(k Kind) {
	n := 0
	for _, e := range l.items {
		if e.Kind != k {
			l.items[n] = e
			n++
		}
	}
	l.items = l.items[:n]
}

// All returns a copy of the active effect list, safe for a replay snapshot
// or read-only consumer.
func (l *EffectList) All() []Effect {
	out := make([]Effect, len(l.items))
	copy(out, l.items)
	return out
}
