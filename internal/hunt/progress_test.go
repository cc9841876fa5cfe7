package hunt

import (
	"errors"
	"testing"
)

func threeEggs() []Egg {
	return []Egg{
		{ID: "a", Number: 1, Clue: "one"},
		{ID: "b", Number: 2, Clue: "two"},
		{ID: "c", Number: 3},
	}
}

func TestStartSnapshotsStoreOrder(t *testing.T) {
	p := NewProgress(nil)
	if err := p.Start(threeEggs()); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i, e := range p.Ordered() {
		if e.Number != i+1 {
			t.Errorf("ordered[%d].Number = %d, want %d", i, e.Number, i+1)
		}
	}
	cur, ok := p.CurrentEgg()
	if !ok || cur.ID != "a" {
		t.Errorf("current = %v %v, want egg a", cur.ID, ok)
	}
}

func TestStartRejectsEmptyHunt(t *testing.T) {
	p := NewProgress(nil)
	if err := p.Start(nil); !errors.Is(err, ErrEmptyHunt) {
		t.Errorf("err = %v, want ErrEmptyHunt", err)
	}
	if p.Phase() != ProgressNotStarted {
		t.Errorf("phase = %s, want not_started", p.Phase())
	}
}

func TestFoundCountTracksIndex(t *testing.T) {
	p := NewProgress(nil)
	p.Start(threeEggs())

	for i := 0; i < 3; i++ {
		if p.FoundCount() != i {
			t.Errorf("before find %d: foundCount = %d, want %d", i+1, p.FoundCount(), i)
		}
		if err := p.MarkCurrentFound(); err != nil {
			t.Fatalf("find %d: %v", i+1, err)
		}
	}

	if p.Phase() != ProgressCompleted {
		t.Errorf("phase = %s, want completed", p.Phase())
	}
	if p.FoundCount() != 3 {
		t.Errorf("foundCount = %d, want 3", p.FoundCount())
	}
	if _, ok := p.CurrentEgg(); ok {
		t.Error("completed hunt must have no current egg")
	}
	if err := p.MarkCurrentFound(); !errors.Is(err, ErrHuntNotActive) {
		t.Errorf("find after completion: err = %v, want ErrHuntNotActive", err)
	}
}

func TestInteractivityExclusivity(t *testing.T) {
	p := NewProgress(nil)
	eggs := threeEggs()
	p.Start(eggs)

	for step := 0; step < 3; step++ {
		interactive := 0
		for _, e := range eggs {
			if p.IsInteractive(e.ID) {
				interactive++
				if e.ID != eggs[step].ID {
					t.Errorf("step %d: egg %s interactive, want only %s", step, e.ID, eggs[step].ID)
				}
			}
		}
		if interactive != 1 {
			t.Errorf("step %d: %d interactive eggs, want exactly 1", step, interactive)
		}
		p.MarkCurrentFound()
	}
}

func TestHintIdempotentPerEgg(t *testing.T) {
	var events []Event
	p := NewProgress(func(e Event) { events = append(events, e) })
	p.Start(threeEggs())

	revealed, err := p.RevealHint()
	if err != nil || !revealed {
		t.Fatalf("first hint: revealed=%v err=%v, want true nil", revealed, err)
	}
	revealed, err = p.RevealHint()
	if err != nil || revealed {
		t.Fatalf("repeat hint: revealed=%v err=%v, want false nil", revealed, err)
	}

	hints := 0
	for _, e := range events {
		if e.Type == EventHintUsed {
			hints++
		}
	}
	if hints != 1 {
		t.Errorf("hint events = %d, want 1 (no double-trigger)", hints)
	}

	// Finding resets the flag for the next egg.
	p.MarkCurrentFound()
	if p.HintUsed() {
		t.Error("hintUsed must reset when the index advances")
	}
	if revealed, _ := p.RevealHint(); !revealed {
		t.Error("hint on next egg should reveal again")
	}
}

func TestEventSequence(t *testing.T) {
	var types []EventType
	p := NewProgress(func(e Event) { types = append(types, e.Type) })
	p.Start(threeEggs())

	p.MarkCurrentFound()
	p.MarkCurrentFound()
	p.MarkCurrentFound()

	want := []EventType{
		EventEggFound, EventNextClue,
		EventEggFound, EventNextClue,
		EventEggFound, EventHuntCompleted,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d events %v, want %d", len(types), types, len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestSnapshotDecoupledFromStore(t *testing.T) {
	store := NewEggStore()
	store.Add(Egg{ID: "a", Number: 1})
	store.Add(Egg{ID: "b", Number: 2})

	p := NewProgress(nil)
	p.Start(store.All())

	// Mid-hunt store edits (disallowed by phase gating, but the engine
	// must not observe them regardless).
	store.Remove("b")

	if p.Total() != 2 {
		t.Errorf("total = %d, want 2 (snapshot taken at start)", p.Total())
	}
	p.MarkCurrentFound()
	cur, ok := p.CurrentEgg()
	if !ok || cur.ID != "b" {
		t.Errorf("current = %v %v, want snapshot egg b", cur.ID, ok)
	}
}
