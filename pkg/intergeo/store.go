package intergeo

import (
	"github.com/matzehuels/intergeo/pkg/board"
	"github.com/matzehuels/intergeo/pkg/errors"
)

// State is the lifecycle state of a store entry.
type State int

const (
	// StateRaw entries hold parsed coordinates not yet in the engine.
	StateRaw State = iota
	// StateRealized entries hold an engine element.
	StateRealized
)

func (s State) String() string {
	if s == StateRealized {
		return "realized"
	}
	return "raw"
}

// Record is a parsed element that has not been created in the engine.
type Record struct {
	ID   string
	Kind ElementKind
	// Coords is the canonical point coordinates, the line coefficients
	// [a, b, c] of a·x + b·y + c·z = 0, or the 9 entries of a circle's
	// quadratic form, row by row.
	Coords []float64
}

// Entry is one identifier's slot in the store. Raw is meaningful in
// StateRaw and Handle in StateRealized.
type Entry struct {
	State  State
	Raw    Record
	Handle board.Element
}

// Exists reports whether the entry has been created in the engine.
func (e *Entry) Exists() bool { return e.State == StateRealized }

// Store maps document identifiers to their entries. It is not safe for
// concurrent use.
type Store struct {
	entries map[string]*Entry
	order   []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// Put stores a raw record, replacing any raw record with the same ID.
func (s *Store) Put(rec Record) error {
	if e, ok := s.entries[rec.ID]; ok {
		if e.Exists() {
			return errors.New(errors.ErrCodeMalformedDocument, "%s is already realized", rec.ID).About(rec.ID)
		}
		e.Raw = rec
		return nil
	}
	s.entries[rec.ID] = &Entry{State: StateRaw, Raw: rec}
	s.order = append(s.order, rec.ID)
	return nil
}

// Get returns the entry for id.
func (s *Store) Get(id string) (*Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// MarkRealized moves id to StateRealized with handle h. Identifiers that
// were never ingested are added. Realizing an identifier twice fails.
func (s *Store) MarkRealized(id string, h board.Element) error {
	e, ok := s.entries[id]
	if !ok {
		s.entries[id] = &Entry{State: StateRealized, Handle: h}
		s.order = append(s.order, id)
		return nil
	}
	if e.Exists() {
		return errors.New(errors.ErrCodeMalformedDocument, "%s is already realized", id).About(id)
	}
	e.State = StateRealized
	e.Handle = h
	return nil
}

// Realized returns the engine element for id, failing when id is unknown or
// still raw.
func (s *Store) Realized(id string) (board.Element, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnresolvedReference, "unknown identifier %q", id).About(id)
	}
	if !e.Exists() {
		return nil, errors.New(errors.ErrCodeUnresolvedReference,
			"%q is still a raw %s, not realized", id, e.Raw.Kind).About(id)
	}
	return e.Handle, nil
}

// IDs returns every identifier in insertion order.
func (s *Store) IDs() []string { return s.order }

// Len returns the number of identifiers.
func (s *Store) Len() int { return len(s.order) }
