package hunt

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// DragThreshold is the cumulative pointer travel, in pixels, below
// which a press-release on a marker counts as a tap rather than a drag.
const DragThreshold = 10

// GestureAction describes what a pointer event did.
type GestureAction string

const (
	// ActionCreated: pointer went down on empty surface; a new egg was
	// placed there and its edit form should open.
	ActionCreated GestureAction = "created"
	// ActionDragStart: pointer went down on an existing marker.
	ActionDragStart GestureAction = "drag_start"
	// ActionMoved: the dragged marker's position was committed.
	ActionMoved GestureAction = "moved"
	// ActionTap: pointer released without meaningful travel; the
	// marker's edit form should open.
	ActionTap GestureAction = "tap"
	// ActionDragEnd: pointer released after a drag.
	ActionDragEnd GestureAction = "drag_end"
	// ActionNone: the event had nothing to act on.
	ActionNone GestureAction = "none"
)

// GestureResult is returned from every pointer event so the caller can
// drive its view (open edit form, re-render marker) without reaching
// into placer state.
type GestureResult struct {
	Action GestureAction
	Egg    Egg
}

// Placer turns pointer gestures on the setup surface into EggStore
// mutations. One gesture at a time: Idle -> Dragging -> Idle. Drag
// state is a value-typed egg id, never a view handle.
type Placer struct {
	store *EggStore

	dragged EggID // zero when idle
	downAt  Point
	travel  float64

	newID   func() EggID
	randPos func() Percent
}

func NewPlacer(store *EggStore) *Placer {
	return &Placer{
		store:   store,
		newID:   randomEggID,
		randPos: randomPercent,
	}
}

// PointerDown begins a gesture. Over an existing marker it starts a
// drag; over empty surface it creates an egg at the pointer position
// with the next number's default clue left unset. Invalid surface
// geometry discards the gesture.
func (p *Placer) PointerDown(pt Point, s Surface, over EggID) (GestureResult, error) {
	if over != "" {
		if _, ok := p.store.Get(over); !ok {
			return GestureResult{Action: ActionNone}, nil
		}
		p.dragged = over
		p.downAt = pt
		p.travel = 0
		egg, _ := p.store.Get(over)
		return GestureResult{Action: ActionDragStart, Egg: egg}, nil
	}

	pos, err := PercentAt(pt, s)
	if err != nil {
		return GestureResult{}, err
	}

	egg := Egg{
		ID:          p.newID(),
		Number:      p.store.NextNumber(),
		Pos:         pos,
		JustCreated: true,
		CreatedAt:   time.Now().UTC(),
	}
	p.store.Add(egg)
	created, _ := p.store.Get(egg.ID)
	return GestureResult{Action: ActionCreated, Egg: created}, nil
}

// PointerMove commits the dragged marker's new position immediately,
// so an interrupted drag leaves the egg where it was last seen.
// Non-finite positions are discarded without touching the store.
func (p *Placer) PointerMove(pt Point, s Surface) (GestureResult, error) {
	if p.dragged == "" {
		return GestureResult{Action: ActionNone}, nil
	}

	pos, err := PercentAt(pt, s)
	if err != nil {
		return GestureResult{}, err
	}

	p.travel += Distance(p.downAt, pt)
	p.downAt = pt
	if !p.store.Update(p.dragged, EggPatch{Pos: &pos}) {
		p.dragged = ""
		return GestureResult{Action: ActionNone}, nil
	}
	egg, _ := p.store.Get(p.dragged)
	return GestureResult{Action: ActionMoved, Egg: egg}, nil
}

// PointerUp ends the gesture. Below the drag threshold the press was a
// tap and the marker's edit form should open; otherwise the drag is
// done (the position is already current from the last move).
func (p *Placer) PointerUp() GestureResult {
	if p.dragged == "" {
		return GestureResult{Action: ActionNone}
	}

	id := p.dragged
	travel := p.travel
	p.dragged = ""
	p.travel = 0

	egg, ok := p.store.Get(id)
	if !ok {
		return GestureResult{Action: ActionNone}
	}
	if travel < DragThreshold {
		return GestureResult{Action: ActionTap, Egg: egg}
	}
	return GestureResult{Action: ActionDragEnd, Egg: egg}
}

// Dragging reports whether a drag gesture is in flight.
func (p *Placer) Dragging() bool {
	return p.dragged != ""
}

// AddEgg places an egg without a canvas gesture (the "Add Egg" button
// path). A nil position falls back to a random spot on the surface.
func (p *Placer) AddEgg(clue string, pos *Percent) Egg {
	at := p.randPos()
	if pos != nil {
		at = Percent{Left: ClampPercent(pos.Left), Top: ClampPercent(pos.Top)}
	}
	egg := Egg{
		ID:          p.newID(),
		Number:      p.store.NextNumber(),
		Pos:         at,
		Clue:        clue,
		JustCreated: true,
		CreatedAt:   time.Now().UTC(),
	}
	p.store.Add(egg)
	created, _ := p.store.Get(egg.ID)
	return created
}

func randomEggID() EggID {
	b := make([]byte, 8)
	rand.Read(b)
	return EggID(hex.EncodeToString(b))
}

// randomPercent keeps fallback positions away from the extreme edges
// so the marker stays visible.
func randomPercent() Percent {
	b := make([]byte, 2)
	rand.Read(b)
	return Percent{
		Left: 10 + float64(b[0]%81),
		Top:  10 + float64(b[1]%81),
	}
}
