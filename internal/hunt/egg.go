// Package hunt implements the egg hunt game core: the numbered egg
// collection, the setup-mode placement gestures, and the sequential
// reveal progression a hunter plays through. It has no external
// dependencies; HTTP, storage and event delivery live in
// internal/server.
package hunt

import (
	"fmt"
	"sort"
	"time"
)

// EggID is an opaque unique identifier, assigned at creation and never
// reused.
type EggID string

// Egg is one placed marker. Number is 1-based and kept contiguous
// across the whole store by renumbering after every add/remove.
type Egg struct {
	ID          EggID     `json:"id"`
	Number      int       `json:"number"`
	Pos         Percent   `json:"pos"`
	Clue        string    `json:"clue"`
	JustCreated bool      `json:"justCreated"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ClueText returns the clue shown to the hunter. An empty clue falls
// back to a derived default; the default is never stored.
func (e Egg) ClueText() string {
	if e.Clue == "" {
		return fmt.Sprintf("Look for egg #%d", e.Number)
	}
	return e.Clue
}

// EggPatch carries the fields Update may change. Nil fields are left
// untouched. Number is deliberately absent: it is only ever derived by
// renumbering.
type EggPatch struct {
	Pos         *Percent
	Clue        *string
	JustCreated *bool
}

// EggStore owns the ordered egg collection and is its sole writer.
// It is not safe for concurrent use on its own; Session serializes
// access.
type EggStore struct {
	eggs []Egg
}

func NewEggStore() *EggStore {
	return &EggStore{}
}

// Add appends an egg and renumbers. The caller supplies ID, position
// and clue; Number is provisional and settles during renumbering (a
// fresh egg carrying NextNumber lands at the end without disturbing
// earlier eggs).
func (s *EggStore) Add(e Egg) {
	s.eggs = append(s.eggs, e)
	s.renumber()
}

// Update merges the patch into the egg with the given id. It reports
// whether the egg existed; an unknown id is non-fatal and callers log
// and continue. Updates never trigger renumbering.
func (s *EggStore) Update(id EggID, patch EggPatch) bool {
	for i := range s.eggs {
		if s.eggs[i].ID != id {
			continue
		}
		if patch.Pos != nil {
			s.eggs[i].Pos = *patch.Pos
		}
		if patch.Clue != nil {
			s.eggs[i].Clue = *patch.Clue
		}
		if patch.JustCreated != nil {
			s.eggs[i].JustCreated = *patch.JustCreated
		}
		return true
	}
	return false
}

// Remove deletes the egg with the given id and renumbers. Removing an
// unknown id is a no-op.
func (s *EggStore) Remove(id EggID) {
	kept := s.eggs[:0]
	for _, e := range s.eggs {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.eggs = kept
	s.renumber()
}

// Get returns the egg with the given id.
func (s *EggStore) Get(id EggID) (Egg, bool) {
	for _, e := range s.eggs {
		if e.ID == id {
			return e, true
		}
	}
	return Egg{}, false
}

// All returns a copy of the eggs sorted ascending by number. This is
// the canonical read path; nothing reads insertion order.
func (s *EggStore) All() []Egg {
	out := make([]Egg, len(s.eggs))
	copy(out, s.eggs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Len returns the number of eggs.
func (s *EggStore) Len() int {
	return len(s.eggs)
}

// NextNumber returns the number the next added egg will carry. Because
// renumbering keeps numbers exactly 1..len at all times this is len+1,
// not a search.
func (s *EggStore) NextNumber() int {
	return len(s.eggs) + 1
}

// Reset discards all eggs.
func (s *EggStore) Reset() {
	s.eggs = nil
}

// ClearJustCreated drops the highlight flag once the display window
// for a freshly placed egg has elapsed.
func (s *EggStore) ClearJustCreated(id EggID) {
	f := false
	s.Update(id, EggPatch{JustCreated: &f})
}

// renumber restores the contiguity invariant: sort by the existing
// number (stable, so insertion order breaks ties) and reassign 1..n.
// Eggs numbered above a removed egg shift down by one; eggs below it
// keep their numbers.
func (s *EggStore) renumber() {
	sort.SliceStable(s.eggs, func(i, j int) bool { return s.eggs[i].Number < s.eggs[j].Number })
	for i := range s.eggs {
		s.eggs[i].Number = i + 1
	}
}
