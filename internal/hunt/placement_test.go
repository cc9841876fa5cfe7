package hunt

import (
	"errors"
	"testing"
)

var testSurface = Surface{Width: 1000, Height: 500}

func TestPointerDownOnEmptySurfaceCreatesEgg(t *testing.T) {
	store := NewEggStore()
	p := NewPlacer(store)

	res, err := p.PointerDown(Point{X: 250, Y: 250}, testSurface, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Action != ActionCreated {
		t.Fatalf("action = %s, want created", res.Action)
	}
	if res.Egg.Number != 1 {
		t.Errorf("number = %d, want 1", res.Egg.Number)
	}
	if res.Egg.Pos.Left != 25 || res.Egg.Pos.Top != 50 {
		t.Errorf("pos = %+v, want {25 50}", res.Egg.Pos)
	}
	if !res.Egg.JustCreated {
		t.Error("fresh egg should carry JustCreated")
	}
	if store.Len() != 1 {
		t.Errorf("store len = %d, want 1", store.Len())
	}
	if p.Dragging() {
		t.Error("create must not start a drag")
	}
}

func TestPointerDownOnDegenerateSurfaceDiscardsGesture(t *testing.T) {
	store := NewEggStore()
	p := NewPlacer(store)

	_, err := p.PointerDown(Point{X: 10, Y: 10}, Surface{}, "")
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("err = %v, want ErrInvalidCoordinate", err)
	}
	if store.Len() != 0 {
		t.Error("discarded gesture must not write to the store")
	}
}

func TestDragCommitsEveryMove(t *testing.T) {
	store := NewEggStore()
	p := NewPlacer(store)

	created, _ := p.PointerDown(Point{X: 100, Y: 100}, testSurface, "")
	id := created.Egg.ID

	if _, err := p.PointerDown(Point{X: 100, Y: 100}, testSurface, id); err != nil {
		t.Fatalf("drag start: %v", err)
	}
	if !p.Dragging() {
		t.Fatal("expected dragging after pointer down on marker")
	}

	// Each move is persisted immediately; an interrupted drag leaves
	// the egg at its last-seen position.
	if _, err := p.PointerMove(Point{X: 500, Y: 250}, testSurface); err != nil {
		t.Fatalf("move: %v", err)
	}
	egg, _ := store.Get(id)
	if egg.Pos.Left != 50 || egg.Pos.Top != 50 {
		t.Errorf("pos after move = %+v, want {50 50}", egg.Pos)
	}

	if _, err := p.PointerMove(Point{X: 900, Y: 450}, testSurface); err != nil {
		t.Fatalf("second move: %v", err)
	}
	egg, _ = store.Get(id)
	if egg.Pos.Left != 90 || egg.Pos.Top != 90 {
		t.Errorf("pos after second move = %+v, want {90 90}", egg.Pos)
	}

	res := p.PointerUp()
	if res.Action != ActionDragEnd {
		t.Errorf("action = %s, want drag_end", res.Action)
	}
	// Release adds no further mutation.
	egg, _ = store.Get(id)
	if egg.Pos.Left != 90 || egg.Pos.Top != 90 {
		t.Errorf("pos after release = %+v, want {90 90}", egg.Pos)
	}
}

func TestInvalidMoveDiscardedWithoutWrite(t *testing.T) {
	store := NewEggStore()
	p := NewPlacer(store)

	created, _ := p.PointerDown(Point{X: 100, Y: 100}, testSurface, "")
	id := created.Egg.ID
	p.PointerDown(Point{X: 100, Y: 100}, testSurface, id)

	if _, err := p.PointerMove(Point{X: 500, Y: 250}, Surface{}); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("err = %v, want ErrInvalidCoordinate", err)
	}
	egg, _ := store.Get(id)
	if egg.Pos.Left != 10 || egg.Pos.Top != 20 {
		t.Errorf("pos = %+v, want original {10 20}", egg.Pos)
	}
}

func TestTapBelowThresholdOpensEdit(t *testing.T) {
	store := NewEggStore()
	p := NewPlacer(store)

	created, _ := p.PointerDown(Point{X: 100, Y: 100}, testSurface, "")
	id := created.Egg.ID

	p.PointerDown(Point{X: 100, Y: 100}, testSurface, id)
	p.PointerMove(Point{X: 103, Y: 104}, testSurface) // 5px travel, under threshold

	res := p.PointerUp()
	if res.Action != ActionTap {
		t.Errorf("action = %s, want tap", res.Action)
	}
	if res.Egg.ID != id {
		t.Errorf("tap egg = %s, want %s", res.Egg.ID, id)
	}
}

func TestTravelAccumulatesAcrossMoves(t *testing.T) {
	store := NewEggStore()
	p := NewPlacer(store)

	created, _ := p.PointerDown(Point{X: 100, Y: 100}, testSurface, "")
	id := created.Egg.ID

	// Four 4px moves: each under the threshold, together well past it.
	p.PointerDown(Point{X: 100, Y: 100}, testSurface, id)
	for i := 1; i <= 4; i++ {
		p.PointerMove(Point{X: 100 + float64(i*4), Y: 100}, testSurface)
	}

	if res := p.PointerUp(); res.Action != ActionDragEnd {
		t.Errorf("action = %s, want drag_end", res.Action)
	}
}

func TestPointerUpWithoutGesture(t *testing.T) {
	p := NewPlacer(NewEggStore())
	if res := p.PointerUp(); res.Action != ActionNone {
		t.Errorf("action = %s, want none", res.Action)
	}
}

func TestAddEggButtonUsesFallbackPosition(t *testing.T) {
	store := NewEggStore()
	p := NewPlacer(store)
	p.randPos = func() Percent { return Percent{Left: 33, Top: 44} }

	egg := p.AddEgg("under the rug", nil)
	if egg.Pos.Left != 33 || egg.Pos.Top != 44 {
		t.Errorf("pos = %+v, want fallback {33 44}", egg.Pos)
	}
	if egg.Clue != "under the rug" {
		t.Errorf("clue = %q", egg.Clue)
	}
	if egg.Number != 1 {
		t.Errorf("number = %d, want 1", egg.Number)
	}

	explicit := p.AddEgg("", &Percent{Left: 120, Top: -5})
	if explicit.Pos.Left != 100 || explicit.Pos.Top != 0 {
		t.Errorf("explicit pos = %+v, want clamped {100 0}", explicit.Pos)
	}
	if explicit.Number != 2 {
		t.Errorf("number = %d, want 2", explicit.Number)
	}
}
