package events

import (
	"sync"

	"golang.org/x/time/rate"
)

// BufferSize is each subscriber channel's capacity. A 12-round bout at a
// 0.5s tick rate publishes one tick event per tick (4,320 from the rounds
// alone) plus every action event, so a full-fight burst in instant mode can
// exceed the buffer; a subscriber that does not drain concurrently sees
// drops. The ordered history is unaffected.
const BufferSize = 4096

// MaxEventsPerActorPerSec bounds how many fan-out deliveries a single
// fighter's actions can trigger per wall-clock second. A single tick never
// legitimately emits more than a handful of events per fighter; a storm
// beyond this cap indicates a runaway subscriber load, not real fight
// traffic.
const MaxEventsPerActorPerSec = 200

// Bus is the single-writer (the engine), multi-reader (UI, logger,
// commentary generator) fight event bus. The ordered history is always
// recorded in full: sequence assignment and history appends are never rate
// limited, so two runs of the same bout log identical streams. Rate
// limiting applies only to live subscriber fan-out, which is a display
// concern.
type Bus struct {
	mu   sync.Mutex
	subs []chan Event

	history  []Event // full ordered log for the current bout
	sequence uint64

	globalLimiter *rate.Limiter
	actorLimiters map[string]*rate.Limiter

	dropped uint64
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		history:       make([]Event, 0, 256),
		globalLimiter: rate.NewLimiter(rate.Limit(BufferSize), BufferSize/4),
		actorLimiters: make(map[string]*rate.Limiter),
	}
}

// Subscribe returns a channel receiving every event published from this
// point forward. The core never reads from it.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, BufferSize)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish assigns the event its sequence number, appends it to the ordered
// history, and fans it out to live subscribers. History recording always
// succeeds; the return value reports whether fan-out was delivered or
// suppressed by rate limiting.
func (b *Bus) Publish(e Event) bool {
	b.mu.Lock()
	b.sequence++
	e.Sequence = b.sequence
	b.history = append(b.history, e)

	if len(b.subs) == 0 {
		b.mu.Unlock()
		return true
	}

	allowed := b.globalLimiter.Allow()
	if allowed && e.ActorID != "" {
		allowed = b.actorLimiterLocked(e.ActorID).Allow()
	}
	if !allowed {
		b.dropped++
		b.mu.Unlock()
		return false
	}

	subs := make([]chan Event, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
			// Slow subscriber: drop the delivery rather than block the
			// single writer's tick loop.
		}
	}
	return true
}

func (b *Bus) actorLimiterLocked(actorID string) *rate.Limiter {
	l, ok := b.actorLimiters[actorID]
	if !ok {
		l = rate.NewLimiter(MaxEventsPerActorPerSec, MaxEventsPerActorPerSec/10)
		b.actorLimiters[actorID] = l
	}
	return l
}

// History returns the complete ordered event log published so far.
func (b *Bus) History() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, len(b.history))
	copy(out, b.history)
	return out
}

// Dropped reports how many fan-out deliveries were suppressed by rate
// limiting.
func (b *Bus) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close closes every subscriber channel. Called once a bout's result is
// final.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
