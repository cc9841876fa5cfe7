package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/hoppity/egghunt/internal/hunt"
)

// LiveHunt is one in-memory hunt: the game session plus the host and
// hunter credentials attached to it. Egg records live only here for
// the duration of the session; the sqlite store keeps just the
// preference document.
type LiveHunt struct {
	ID        string
	Name      string
	JoinCode  string
	CreatedAt time.Time
	Session   *hunt.Session

	pinHash []byte

	mu         sync.Mutex
	hostTokens map[string]struct{}
	hunters    map[string]string // token -> hunter name
}

// IssueHostToken mints a new host bearer token.
func (h *LiveHunt) IssueHostToken() string {
	token := newToken()
	h.mu.Lock()
	h.hostTokens[token] = struct{}{}
	h.mu.Unlock()
	return token
}

// IsHostToken reports whether the token belongs to this hunt's host.
func (h *LiveHunt) IsHostToken(token string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.hostTokens[token]
	return ok
}

// Join registers a hunter and returns their bearer token.
func (h *LiveHunt) Join(name string) string {
	token := newToken()
	h.mu.Lock()
	h.hunters[token] = name
	h.mu.Unlock()
	return token
}

// HunterName resolves a hunter token.
func (h *LiveHunt) HunterName(token string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	name, ok := h.hunters[token]
	return name, ok
}

// KnownToken reports whether the token belongs to anyone in this hunt,
// host or hunter. Used for the shared SSE stream.
func (h *LiveHunt) KnownToken(token string) bool {
	if h.IsHostToken(token) {
		return true
	}
	_, ok := h.HunterName(token)
	return ok
}

// Registry holds all live hunts, keyed by hunt ID with a join-code
// index. Sessions are created here so every hunt gets an event sink
// wired to the broker.
type Registry struct {
	broker *Broker

	mu     sync.RWMutex
	hunts  map[string]*LiveHunt
	byCode map[string]string
}

func NewRegistry(broker *Broker) *Registry {
	return &Registry{
		broker: broker,
		hunts:  make(map[string]*LiveHunt),
		byCode: make(map[string]string),
	}
}

// Create builds a hunt in the Setup phase with a fresh join code. The
// progression engine's events fan out to the hunt's SSE subscribers.
func (r *Registry) Create(name string, pinHash []byte) *LiveHunt {
	id := newID()

	session := hunt.NewSession(func(ev hunt.Event) {
		r.broker.Publish(id, sseFromEvent(ev))
	})
	session.BeginSetup()

	h := &LiveHunt{
		ID:         id,
		Name:       name,
		JoinCode:   newJoinCode(),
		CreatedAt:  time.Now().UTC(),
		Session:    session,
		pinHash:    pinHash,
		hostTokens: make(map[string]struct{}),
		hunters:    make(map[string]string),
	}

	r.mu.Lock()
	r.hunts[id] = h
	r.byCode[h.JoinCode] = id
	r.mu.Unlock()
	return h
}

// Get returns a live hunt by ID.
func (r *Registry) Get(id string) (*LiveHunt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hunts[id]
	return h, ok
}

// ByJoinCode returns a live hunt by its join code.
func (r *Registry) ByJoinCode(code string) (*LiveHunt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCode[code]
	if !ok {
		return nil, false
	}
	h, ok := r.hunts[id]
	return h, ok
}

func newID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func newToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// newJoinCode returns a short code the host can read out loud, in the
// form egg-xxxx.
func newJoinCode() string {
	b := make([]byte, 2)
	rand.Read(b)
	return fmt.Sprintf("egg-%s", hex.EncodeToString(b))
}
