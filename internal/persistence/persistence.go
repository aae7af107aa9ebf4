// Package persistence implements the autosave store: one Save(universe,
// slot) and one Load(slot) operation, atomic per call, serialized with
// msgpack.
package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"boxingsim/internal/fighter"
	"boxingsim/internal/tunables"
	"boxingsim/internal/universe"
)

// Document is the self-describing structured document persisted per
// autosave slot: the universe date, full fighter roster, all four bodies'
// rankings/champions per division, the rolling recent-results window, and
// the HOF register. Each fighter's HistoryEntry already embeds its own
// replayData (internal/replay.Snapshot), so no separate replay index is
// needed.
type Document struct {
	Version  int
	Date     universe.Date
	Tunables tunables.Table

	Fighters []DocFighter
	Bodies   []DocBody

	HallOfFame map[string]universe.Induction // key: fighter ID string

	RecentResults []universe.HistoryEntry
	History       map[string][]universe.HistoryEntry // key: fighter ID string
}

// DocFighter flattens the universe's map[uuid.UUID]*fighter.Fighter for
// stable msgpack round-tripping (maps keyed by non-string types don't
// round-trip predictably across msgpack implementations).
type DocFighter struct {
	ID   string
	Data fighter.Fighter
}

// DocBody mirrors universe.SanctioningBody in a msgpack-stable shape.
type DocBody struct {
	ShortName string
	Rankings  map[string]DocDivisionRanking // keyed by division name
}

// DocDivisionRanking mirrors universe.DivisionRanking minus its unexported
// internal rankList (rebuilt on load via universe.RecomputeAll).
type DocDivisionRanking struct {
	Champion   string // empty if vacant
	Contenders []string
}

const currentVersion = 1

// Store persists and restores Universe snapshots under a base directory,
// one file per slot.
type Store struct {
	BaseDir string
}

// NewStore returns a Store rooted at dir, creating it if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &Error{Op: "mkdir", Slot: dir, Err: err}
	}
	return &Store{BaseDir: dir}, nil
}

// Error reports a failed save or load. Autosave failures are surfaced to
// the caller for logging, but the in-memory universe remains authoritative
// regardless.
type Error struct {
	Op   string
	Slot string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("persistence: %s slot %q: %v", e.Op, e.Slot, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (s *Store) path(slot string) string {
	return filepath.Join(s.BaseDir, slot+".msgpack")
}

// Save encodes the universe and writes it atomically: encode to a temp
// file in the same directory, then rename over the slot's existing file,
// so a crash mid-write never corrupts the previous successful autosave.
func (s *Store) Save(u *universe.Universe, slot string) error {
	doc := toDocument(u)

	data, err := msgpack.Marshal(doc)
	if err != nil {
		return &Error{Op: "encode", Slot: slot, Err: err}
	}

	tmp := s.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &Error{Op: "write", Slot: slot, Err: err}
	}
	if err := os.Rename(tmp, s.path(slot)); err != nil {
		return &Error{Op: "rename", Slot: slot, Err: err}
	}
	return nil
}

// Load reads and decodes a slot back into a Universe, rebuilding the
// fighter map, division rosters, and ranking lists from the flattened
// document shape.
func (s *Store) Load(slot string) (*universe.Universe, error) {
	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		return nil, &Error{Op: "read", Slot: slot, Err: err}
	}

	var doc Document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Op: "decode", Slot: slot, Err: err}
	}

	return fromDocument(doc)
}
