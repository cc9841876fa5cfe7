package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hoppity/egghunt/internal/hunt"
)

// EggItem is the setup-mode view of one egg.
type EggItem struct {
	ID          string       `json:"id"`
	Number      int          `json:"number"`
	Pos         hunt.Percent `json:"pos"`
	Clue        string       `json:"clue"`
	ClueText    string       `json:"clueText"`
	JustCreated bool         `json:"justCreated"`
}

func eggItem(e hunt.Egg) EggItem {
	return EggItem{
		ID:          string(e.ID),
		Number:      e.Number,
		Pos:         e.Pos,
		Clue:        e.Clue,
		ClueText:    e.ClueText(),
		JustCreated: e.JustCreated,
	}
}

func eggItems(eggs []hunt.Egg) []EggItem {
	items := make([]EggItem, len(eggs))
	for i, e := range eggs {
		items[i] = eggItem(e)
	}
	return items
}

type EggListResponse struct {
	Eggs       []EggItem `json:"eggs"`
	NextNumber int       `json:"nextNumber"`
}

func handleListEggs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := huntFrom(r)
		eggs := h.Session.Eggs()
		writeJSON(w, http.StatusOK, EggListResponse{
			Eggs:       eggItems(eggs),
			NextNumber: len(eggs) + 1,
		})
	}
}

type AddEggRequest struct {
	Clue string        `json:"clue"`
	Pos  *hunt.Percent `json:"pos"`
}

// handleAddEgg is the "Add Egg" button path: no canvas gesture, so a
// missing position falls back to a random spot.
func handleAddEgg(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddEggRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		h := huntFrom(r)
		egg, err := h.Session.AddEgg(strings.TrimSpace(req.Clue), req.Pos)
		if errors.Is(err, hunt.ErrWrongPhase) {
			writeError(w, http.StatusConflict, "eggs can only be placed during setup")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.Publish(h.ID, SSEEvent{Type: "egg_placed", Number: egg.Number})
		writeJSON(w, http.StatusCreated, eggItem(egg))
	}
}

type UpdateEggRequest struct {
	Clue *string `json:"clue"`
}

func handleUpdateEgg(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateEggRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Clue == nil {
			writeError(w, http.StatusBadRequest, "clue is required")
			return
		}

		h := huntFrom(r)
		id := hunt.EggID(chi.URLParam(r, "eggID"))

		err := h.Session.UpdateClue(id, strings.TrimSpace(*req.Clue))
		if errors.Is(err, hunt.ErrEggNotFound) {
			// Unknown ids are not fatal, the session goes on.
			logger.Warn("update for unknown egg", "hunt", h.ID, "egg", id)
			writeError(w, http.StatusNotFound, "egg not found")
			return
		}
		if errors.Is(err, hunt.ErrWrongPhase) {
			writeError(w, http.StatusConflict, "eggs can only be edited during setup")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		egg, _ := findEgg(h.Session.Eggs(), id)
		writeJSON(w, http.StatusOK, eggItem(egg))
	}
}

// handleRemoveEgg deletes an egg. Deletion is destructive, so the
// client must echo the confirmation it collected from the host.
func handleRemoveEgg(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("confirm") != "true" {
			writeError(w, http.StatusConflict, "removal requires confirmation")
			return
		}

		h := huntFrom(r)
		id := hunt.EggID(chi.URLParam(r, "eggID"))

		err := h.Session.RemoveEgg(id)
		if errors.Is(err, hunt.ErrEggNotFound) {
			logger.Warn("remove for unknown egg", "hunt", h.ID, "egg", id)
			writeError(w, http.StatusNotFound, "egg not found")
			return
		}
		if errors.Is(err, hunt.ErrWrongPhase) {
			writeError(w, http.StatusConflict, "eggs can only be removed during setup")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, EggListResponse{
			Eggs:       eggItems(h.Session.Eggs()),
			NextNumber: h.Session.EggCount() + 1,
		})
	}
}

type GestureRequest struct {
	Kind    string       `json:"kind"` // down, move, up
	Point   hunt.Point   `json:"point"`
	Surface hunt.Surface `json:"surface"`
	OverEgg string       `json:"overEgg,omitempty"`
}

type GestureResponse struct {
	Action string   `json:"action"`
	Egg    *EggItem `json:"egg,omitempty"`
}

// handleGesture feeds pointer events from the setup canvas into the
// placement controller. A down on empty surface creates an egg, a down
// on a marker starts a drag, moves commit positions live, and the up
// resolves to a tap or a drag end.
func handleGesture(logger *slog.Logger, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GestureRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		h := huntFrom(r)

		var res hunt.GestureResult
		var err error
		switch req.Kind {
		case "down":
			res, err = h.Session.PointerDown(req.Point, req.Surface, hunt.EggID(req.OverEgg))
		case "move":
			res, err = h.Session.PointerMove(req.Point, req.Surface)
		case "up":
			res, err = h.Session.PointerUp()
		default:
			writeError(w, http.StatusBadRequest, "kind must be down, move or up")
			return
		}

		if errors.Is(err, hunt.ErrInvalidCoordinate) {
			// Zero-dimension surface or non-finite point: the gesture
			// is discarded without touching any egg.
			logger.Warn("gesture discarded", "hunt", h.ID, "kind", req.Kind)
			writeError(w, http.StatusBadRequest, "invalid coordinates")
			return
		}
		if errors.Is(err, hunt.ErrWrongPhase) {
			writeError(w, http.StatusConflict, "gestures are only accepted during setup")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if res.Action == hunt.ActionCreated {
			broker.Publish(h.ID, SSEEvent{Type: "egg_placed", Number: res.Egg.Number})
		}

		resp := GestureResponse{Action: string(res.Action)}
		if res.Action != hunt.ActionNone {
			item := eggItem(res.Egg)
			resp.Egg = &item
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func findEgg(eggs []hunt.Egg, id hunt.EggID) (hunt.Egg, bool) {
	for _, e := range eggs {
		if e.ID == id {
			return e, true
		}
	}
	return hunt.Egg{}, false
}
