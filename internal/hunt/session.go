package hunt

import (
	"errors"
	"sync"
)

// ErrWrongPhase is returned when an operation is attempted outside the
// phase that allows it (egg edits outside Setup, finds outside Playing).
var ErrWrongPhase = errors.New("operation not allowed in current phase")

// ErrEggNotFound is the non-fatal miss for updates/removals by unknown
// id; callers log and continue.
var ErrEggNotFound = errors.New("egg not found")

// ErrNotInteractive rejects a find on any egg other than the current
// one. Inert eggs swallow clicks without advancing the hunt.
var ErrNotInteractive = errors.New("egg is not the current one")

// Phase is the session lifecycle: Start -> Setup -> Playing ->
// Completed -> (Setup | Start).
type Phase string

const (
	PhaseStart     Phase = "start"
	PhaseSetup     Phase = "setup"
	PhasePlaying   Phase = "playing"
	PhaseCompleted Phase = "completed"
)

// Snapshot is the read view handed to renderers.
type Snapshot struct {
	Phase       Phase
	FoundCount  int
	Total       int
	HintUsed    bool
	CurrentEgg  *Egg
	CurrentClue string
}

// Session owns one game's EggStore, Placer and Progress and gates
// which of them may mutate in which phase. All methods serialize on an
// internal mutex, matching the single-threaded event model the game
// logic assumes.
type Session struct {
	mu       sync.Mutex
	phase    Phase
	eggs     *EggStore
	placer   *Placer
	progress *Progress
}

// NewSession builds a session in the Start phase. Progression events
// are delivered to sink.
func NewSession(sink EventSink) *Session {
	eggs := NewEggStore()
	return &Session{
		phase:    PhaseStart,
		eggs:     eggs,
		placer:   NewPlacer(eggs),
		progress: NewProgress(sink),
	}
}

// BeginSetup moves Start -> Setup. Already being in Setup is a no-op.
func (s *Session) BeginSetup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseStart {
		s.phase = PhaseSetup
	}
}

// StartHunt moves Setup -> Playing, snapshotting the egg order into
// the progression engine. Starting with zero eggs fails with
// ErrEmptyHunt and the session stays in Setup.
func (s *Session) StartHunt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return ErrWrongPhase
	}
	if err := s.progress.Start(s.eggs.All()); err != nil {
		return err
	}
	s.phase = PhasePlaying
	return nil
}

// Reset returns to Setup after (or during) a hunt, clearing the
// progression but keeping the placed eggs so the host can replay the
// same hunt. Background and sound preferences are stored outside the
// session and also survive.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Reset()
	s.phase = PhaseSetup
}

// Restart returns to the Start phase and discards all eggs.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Reset()
	s.eggs.Reset()
	s.phase = PhaseStart
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Eggs returns the store's eggs sorted by number.
func (s *Session) Eggs() []Egg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eggs.All()
}

// EggCount returns the number of placed eggs.
func (s *Session) EggCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eggs.Len()
}

// PointerDown/PointerMove/PointerUp forward setup-surface gestures to
// the placer. Outside Setup they fail with ErrWrongPhase.

func (s *Session) PointerDown(pt Point, surf Surface, over EggID) (GestureResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return GestureResult{}, ErrWrongPhase
	}
	return s.placer.PointerDown(pt, surf, over)
}

func (s *Session) PointerMove(pt Point, surf Surface) (GestureResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return GestureResult{}, ErrWrongPhase
	}
	return s.placer.PointerMove(pt, surf)
}

func (s *Session) PointerUp() (GestureResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return GestureResult{}, ErrWrongPhase
	}
	return s.placer.PointerUp(), nil
}

// AddEgg places an egg via the Add Egg button, at pos when given or a
// random fallback spot otherwise.
func (s *Session) AddEgg(clue string, pos *Percent) (Egg, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return Egg{}, ErrWrongPhase
	}
	return s.placer.AddEgg(clue, pos), nil
}

// UpdateClue saves an edit-form clue change. Numbers are not editable;
// they only move through renumbering.
func (s *Session) UpdateClue(id EggID, clue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return ErrWrongPhase
	}
	if !s.eggs.Update(id, EggPatch{Clue: &clue}) {
		return ErrEggNotFound
	}
	return nil
}

// ClearJustCreated ends a fresh egg's highlight window.
func (s *Session) ClearJustCreated(id EggID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eggs.ClearJustCreated(id)
}

// RemoveEgg deletes an egg; the confirmation gate lives at the HTTP
// boundary. Removing an unknown id returns ErrEggNotFound.
func (s *Session) RemoveEgg(id EggID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSetup {
		return ErrWrongPhase
	}
	if _, ok := s.eggs.Get(id); !ok {
		return ErrEggNotFound
	}
	s.eggs.Remove(id)
	return nil
}

// FindEgg records the hunter clicking an egg. Only the current egg is
// interactive; anything else returns ErrNotInteractive and the hunt
// does not advance. Finding the last egg completes the session.
func (s *Session) FindEgg(id EggID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return ErrWrongPhase
	}
	if !s.progress.IsInteractive(id) {
		return ErrNotInteractive
	}
	if err := s.progress.MarkCurrentFound(); err != nil {
		return err
	}
	if s.progress.Phase() == ProgressCompleted {
		s.phase = PhaseCompleted
	}
	return nil
}

// RevealHint triggers the current egg's one-time hint. The bool
// reports whether this call revealed it (false on the idempotent
// repeat).
func (s *Session) RevealHint() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return false, ErrWrongPhase
	}
	return s.progress.RevealHint()
}

// IsInteractive reports whether the given egg may be found right now.
func (s *Session) IsInteractive(id EggID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhasePlaying && s.progress.IsInteractive(id)
}

// State returns the renderer's read view of the hunt.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:      s.phase,
		FoundCount: s.progress.FoundCount(),
		Total:      s.progress.Total(),
		HintUsed:   s.progress.HintUsed(),
	}
	if cur, ok := s.progress.CurrentEgg(); ok {
		snap.CurrentEgg = &cur
		snap.CurrentClue = cur.ClueText()
	}
	return snap
}

// FoundEggs returns the eggs already found this hunt, in hunt order.
func (s *Session) FoundEggs() []Egg {
	s.mu.Lock()
	defer s.mu.Unlock()
	ordered := s.progress.Ordered()
	if n := s.progress.FoundCount(); n < len(ordered) {
		ordered = ordered[:n]
	}
	return ordered
}
