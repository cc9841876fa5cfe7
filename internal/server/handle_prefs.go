package server

import (
	"errors"
	"net/http"
	"strings"
)

// handleGetPrefs returns the hunt's preference document. A hunt that
// never saved prefs gets the defaults rather than a 404.
func handleGetPrefs(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := huntFrom(r)

		prefs, err := store.GetPrefs(r.Context(), h.ID)
		if errors.Is(err, ErrNotFound) {
			prefs = HuntPrefs{SoundEnabled: true}
		} else if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, prefs)
	}
}

// handleSavePrefs persists the backdrop reference and sound flag. The
// background is an opaque string (preset path, URL or data URI from a
// camera capture) and is never parsed here.
func handleSavePrefs(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var prefs HuntPrefs
		if err := readJSON(r, &prefs); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		prefs.Background = strings.TrimSpace(prefs.Background)

		h := huntFrom(r)
		if err := store.SavePrefs(r.Context(), h.ID, prefs); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, prefs)
	}
}

func handleListPresets(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presets, err := store.ListPresets(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if presets == nil {
			presets = []BackgroundPreset{}
		}
		writeJSON(w, http.StatusOK, presets)
	}
}
