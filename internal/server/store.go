package server

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// BackgroundPreset is one entry in the gallery the host can pick a
// hunt backdrop from. Image is an opaque reference (path, URL or data
// URI) passed through to the renderer unparsed.
type BackgroundPreset struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Image string `json:"image"`
}

// HuntPrefs is the per-hunt preference document. It survives hunt
// resets on purpose so a host can replay the same hunt with the same
// backdrop and sound setting.
type HuntPrefs struct {
	Background   string `json:"background"`
	SoundEnabled bool   `json:"soundEnabled"`
}

// Store persists the preset gallery and per-hunt preferences. Egg
// records are deliberately not stored: a hunt lives in memory for one
// session (see Registry).
type Store interface {
	ListPresets(ctx context.Context) ([]BackgroundPreset, error)
	SavePreset(ctx context.Context, p BackgroundPreset) error

	GetPrefs(ctx context.Context, huntID string) (HuntPrefs, error)
	SavePrefs(ctx context.Context, huntID string, prefs HuntPrefs) error
}
