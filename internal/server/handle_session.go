package server

import (
	"errors"
	"net/http"

	"github.com/hoppity/egghunt/internal/hunt"
)

type StartHuntResponse struct {
	Phase     string `json:"phase"`
	Total     int    `json:"total"`
	FirstClue string `json:"firstClue"`
}

// handleStartHunt moves the hunt from setup to playing. Starting with
// no eggs is the one refusal that must be loudly surfaced, not
// silently swallowed.
func handleStartHunt(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := huntFrom(r)

		err := h.Session.StartHunt()
		if errors.Is(err, hunt.ErrEmptyHunt) {
			writeError(w, http.StatusConflict, "at least one egg must be placed before starting")
			return
		}
		if errors.Is(err, hunt.ErrWrongPhase) {
			writeError(w, http.StatusConflict, "hunt has already started")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		snap := h.Session.State()
		broker.Publish(h.ID, SSEEvent{Type: "hunt_started", Clue: snap.CurrentClue})

		writeJSON(w, http.StatusOK, StartHuntResponse{
			Phase:     string(snap.Phase),
			Total:     snap.Total,
			FirstClue: snap.CurrentClue,
		})
	}
}

type PhaseResponse struct {
	Phase string `json:"phase"`
}

// handleResetHunt returns to setup keeping the placed eggs, so the
// host can run the same hunt again. Prefs (background, sound) live in
// the store and are untouched.
func handleResetHunt(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := huntFrom(r)
		h.Session.Reset()
		broker.Publish(h.ID, SSEEvent{Type: "hunt_reset"})
		writeJSON(w, http.StatusOK, PhaseResponse{Phase: string(h.Session.Phase())})
	}
}

// handleBeginSetup moves from the start screen into setup. No
// preconditions; already being in setup is fine.
func handleBeginSetup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := huntFrom(r)
		h.Session.BeginSetup()
		writeJSON(w, http.StatusOK, PhaseResponse{Phase: string(h.Session.Phase())})
	}
}

// handleRestartHunt goes all the way back to the start screen,
// discarding the authored eggs.
func handleRestartHunt(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := huntFrom(r)
		h.Session.Restart()
		broker.Publish(h.ID, SSEEvent{Type: "hunt_reset"})
		writeJSON(w, http.StatusOK, PhaseResponse{Phase: string(h.Session.Phase())})
	}
}
