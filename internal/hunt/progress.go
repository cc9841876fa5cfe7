package hunt

import "errors"

// ErrHuntNotActive is returned by progression calls outside InProgress.
var ErrHuntNotActive = errors.New("hunt is not in progress")

// ErrEmptyHunt rejects starting a hunt with no eggs placed. It is
// user-facing: callers must surface it rather than silently refusing.
var ErrEmptyHunt = errors.New("at least one egg must be placed before starting")

// ProgressPhase is the progression engine's state.
type ProgressPhase string

const (
	ProgressNotStarted ProgressPhase = "not_started"
	ProgressInProgress ProgressPhase = "in_progress"
	ProgressCompleted  ProgressPhase = "completed"
)

// EventType identifies a fire-and-forget notification to the audio and
// renderer collaborators.
type EventType string

const (
	EventEggFound      EventType = "egg_found"
	EventHintUsed      EventType = "hint_used"
	EventHuntCompleted EventType = "hunt_completed"
	EventNextClue      EventType = "next_clue"
)

// Event carries the kind plus the egg it concerns, when there is one.
type Event struct {
	Type EventType
	Egg  *Egg
}

// EventSink receives progression events. Delivery is fire-and-forget;
// sinks may ignore, queue or drop events and never feed back into the
// engine.
type EventSink func(Event)

// Progress sequences a hunt over a snapshot of the egg store. The
// snapshot is taken at Start and never re-sorted mid-hunt: numbering
// edits are only possible in the setup phase, which precedes Start.
type Progress struct {
	phase    ProgressPhase
	ordered  []Egg
	current  int // index into ordered; len(ordered) means complete
	found    int // equals current while InProgress
	hintUsed bool
	sink     EventSink
}

// NewProgress creates an engine delivering events to sink. A nil sink
// discards events.
func NewProgress(sink EventSink) *Progress {
	if sink == nil {
		sink = func(Event) {}
	}
	return &Progress{phase: ProgressNotStarted, sink: sink}
}

// Start snapshots the eggs (already sorted by number) as the hunt
// sequence and resets all counters.
func (p *Progress) Start(eggs []Egg) error {
	if len(eggs) == 0 {
		return ErrEmptyHunt
	}
	p.ordered = make([]Egg, len(eggs))
	copy(p.ordered, eggs)
	p.phase = ProgressInProgress
	p.current = 0
	p.found = 0
	p.hintUsed = false
	return nil
}

// CurrentEgg returns the one egg eligible to be found, or false once
// the hunt is complete or not started.
func (p *Progress) CurrentEgg() (Egg, bool) {
	if p.phase != ProgressInProgress || p.current >= len(p.ordered) {
		return Egg{}, false
	}
	return p.ordered[p.current], true
}

// IsInteractive reports whether the given egg is the current one. At
// most one egg is interactive at any instant; the input layer must
// consult this before forwarding a click as a find.
func (p *Progress) IsInteractive(id EggID) bool {
	cur, ok := p.CurrentEgg()
	return ok && cur.ID == id
}

// RevealHint marks the hint used for the current egg and emits
// EventHintUsed. Idempotent per egg: a second call before the egg is
// found does nothing and reports false.
func (p *Progress) RevealHint() (bool, error) {
	cur, ok := p.CurrentEgg()
	if !ok {
		return false, ErrHuntNotActive
	}
	if p.hintUsed {
		return false, nil
	}
	p.hintUsed = true
	p.sink(Event{Type: EventHintUsed, Egg: &cur})
	return true, nil
}

// MarkCurrentFound advances past the current egg: found count and
// index move together, the hint flag resets, and either the next clue
// or hunt completion is signalled.
func (p *Progress) MarkCurrentFound() error {
	cur, ok := p.CurrentEgg()
	if !ok {
		return ErrHuntNotActive
	}

	p.found++
	p.current++
	p.hintUsed = false
	p.sink(Event{Type: EventEggFound, Egg: &cur})

	if p.current == len(p.ordered) {
		p.phase = ProgressCompleted
		p.sink(Event{Type: EventHuntCompleted})
		return nil
	}

	next := p.ordered[p.current]
	p.sink(Event{Type: EventNextClue, Egg: &next})
	return nil
}

// Reset returns the engine to NotStarted, dropping the snapshot.
func (p *Progress) Reset() {
	p.phase = ProgressNotStarted
	p.ordered = nil
	p.current = 0
	p.found = 0
	p.hintUsed = false
}

func (p *Progress) Phase() ProgressPhase { return p.phase }
func (p *Progress) FoundCount() int      { return p.found }
func (p *Progress) Total() int           { return len(p.ordered) }
func (p *Progress) HintUsed() bool       { return p.hintUsed }

// Ordered returns the hunt sequence snapshot.
func (p *Progress) Ordered() []Egg {
	out := make([]Egg, len(p.ordered))
	copy(out, p.ordered)
	return out
}
