package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hoppity/egghunt/internal/hunt"
)

type JoinRequest struct {
	JoinCode   string `json:"joinCode"`
	HunterName string `json:"hunterName"`
}

type JoinResponse struct {
	Token    string `json:"token"`
	HuntName string `json:"huntName"`
	Phase    string `json:"phase"`
}

func handleJoin(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.HunterName = strings.TrimSpace(req.HunterName)
		if req.HunterName == "" || req.JoinCode == "" {
			writeError(w, http.StatusBadRequest, "joinCode and hunterName are required")
			return
		}

		h := huntFrom(r)
		if req.JoinCode != h.JoinCode {
			writeError(w, http.StatusNotFound, "hunt not found")
			return
		}

		token := h.Join(req.HunterName)
		broker.Publish(h.ID, SSEEvent{Type: "hunter_joined", HunterName: req.HunterName})

		writeJSON(w, http.StatusOK, JoinResponse{
			Token:    token,
			HuntName: h.Name,
			Phase:    string(h.Session.Phase()),
		})
	}
}

// FoundEggItem is a play-mode egg whose position may be shown: only
// found eggs ever reveal their spots to the hunter.
type FoundEggItem struct {
	ID     string       `json:"id"`
	Number int          `json:"number"`
	Pos    hunt.Percent `json:"pos"`
}

type HuntStateResponse struct {
	Phase        string         `json:"phase"`
	FoundCount   int            `json:"foundCount"`
	Total        int            `json:"total"`
	HintUsed     bool           `json:"hintUsed"`
	CurrentClue  string         `json:"currentClue,omitempty"`
	CurrentEggID string         `json:"currentEggId,omitempty"`
	FoundEggs    []FoundEggItem `json:"foundEggs"`
	Background   string         `json:"background,omitempty"`
	SoundEnabled bool           `json:"soundEnabled"`
}

// handleHuntState returns the hunter's view: progress counters, the
// current clue, found-egg positions, and the backdrop. Unfound egg
// positions stay server-side; the current egg's id is exposed so the
// client can forward a click as a find, its position only ever travels
// over the hint event.
func handleHuntState(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := huntFrom(r)
		snap := h.Session.State()

		resp := HuntStateResponse{
			Phase:      string(snap.Phase),
			FoundCount: snap.FoundCount,
			Total:      snap.Total,
			HintUsed:   snap.HintUsed,
			FoundEggs:  []FoundEggItem{},
		}
		if snap.CurrentEgg != nil {
			resp.CurrentClue = snap.CurrentClue
			resp.CurrentEggID = string(snap.CurrentEgg.ID)
		}
		for _, e := range h.Session.FoundEggs() {
			resp.FoundEggs = append(resp.FoundEggs, FoundEggItem{
				ID:     string(e.ID),
				Number: e.Number,
				Pos:    e.Pos,
			})
		}

		prefs, err := store.GetPrefs(r.Context(), h.ID)
		if err == nil {
			resp.Background = prefs.Background
			resp.SoundEnabled = prefs.SoundEnabled
		} else if !errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

type FindEggRequest struct {
	EggID string `json:"eggId"`
}

type FindEggResponse struct {
	Found        bool   `json:"found"`
	FoundCount   int    `json:"foundCount"`
	Total        int    `json:"total"`
	HuntComplete bool   `json:"huntComplete"`
	NextClue     string `json:"nextClue,omitempty"`
}

// handleFindEgg records a click on an egg. Only the current egg is
// interactive; clicks on any other egg are inert and the hunt does not
// advance. The egg_found / next_clue / hunt_completed events reach
// subscribers through the session's sink.
func handleFindEgg() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FindEggRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.EggID == "" {
			writeError(w, http.StatusBadRequest, "eggId is required")
			return
		}

		h := huntFrom(r)

		err := h.Session.FindEgg(hunt.EggID(req.EggID))
		if errors.Is(err, hunt.ErrNotInteractive) {
			writeError(w, http.StatusConflict, "that egg is not the one to find")
			return
		}
		if errors.Is(err, hunt.ErrWrongPhase) {
			writeError(w, http.StatusConflict, "hunt is not in progress")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		snap := h.Session.State()
		resp := FindEggResponse{
			Found:        true,
			FoundCount:   snap.FoundCount,
			Total:        snap.Total,
			HuntComplete: snap.Phase == hunt.PhaseCompleted,
			NextClue:     snap.CurrentClue,
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type HintResponse struct {
	Revealed bool          `json:"revealed"`
	Pos      *hunt.Percent `json:"pos,omitempty"`
}

// handleHint reveals the current egg's marker once per egg. The
// idempotent repeat responds with the same position but triggers no
// second reveal event.
func handleHint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := huntFrom(r)

		revealed, err := h.Session.RevealHint()
		if errors.Is(err, hunt.ErrWrongPhase) || errors.Is(err, hunt.ErrHuntNotActive) {
			writeError(w, http.StatusConflict, "hunt is not in progress")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := HintResponse{Revealed: revealed}
		if snap := h.Session.State(); snap.CurrentEgg != nil {
			pos := snap.CurrentEgg.Pos
			resp.Pos = &pos
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
