package server

import (
	"encoding/json"
	"sync"

	"github.com/hoppity/egghunt/internal/hunt"
)

// SSEEvent is the payload published to a hunt's subscribers. The same
// stream feeds the hunter's renderer and the audio layer; audio
// consumers key off Type alone and ignore the rest.
type SSEEvent struct {
	Type       string        `json:"type"`
	Number     int           `json:"number,omitempty"`
	Clue       string        `json:"clue,omitempty"`
	Pos        *hunt.Percent `json:"pos,omitempty"`
	HunterName string        `json:"hunterName,omitempty"`
}

// sseFromEvent maps a progression event onto the wire. The hint event
// carries the egg's position so the renderer can reveal the marker for
// its display window; the next-clue event carries only the clue text.
func sseFromEvent(ev hunt.Event) SSEEvent {
	se := SSEEvent{Type: string(ev.Type)}
	if ev.Egg == nil {
		return se
	}
	se.Number = ev.Egg.Number
	switch ev.Type {
	case hunt.EventHintUsed:
		pos := ev.Egg.Pos
		se.Pos = &pos
	case hunt.EventNextClue:
		se.Clue = ev.Egg.ClueText()
	}
	return se
}

// Broker is an in-process pub/sub for SSE events, keyed by hunt ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded SSE events
// for the given hunt.
func (b *Broker) Subscribe(huntID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[huntID] == nil {
		b.subs[huntID] = make(map[chan []byte]struct{})
	}
	b.subs[huntID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the hunt's subscribers.
func (b *Broker) Unsubscribe(huntID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[huntID], ch)
	if len(b.subs[huntID]) == 0 {
		delete(b.subs, huntID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given hunt.
func (b *Broker) Publish(huntID string, event SSEEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[huntID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
