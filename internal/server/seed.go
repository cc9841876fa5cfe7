package server

import (
	"context"
	"log/slog"
)

// defaultPresets is the built-in backdrop gallery. Image paths are
// opaque to the server; the web client resolves them.
var defaultPresets = []BackgroundPreset{
	{ID: "easter", Name: "Easter", Emoji: "🐰", Image: "/images/easter-background.png"},
	{ID: "treasure", Name: "Treasure", Emoji: "💰", Image: "/images/treasure-background.png"},
	{ID: "christmas", Name: "Christmas", Emoji: "🎄", Image: "/images/christmas-background.png"},
	{ID: "halloween", Name: "Halloween", Emoji: "🎃", Image: "/images/halloween-background.png"},
}

// SeedPresets installs the default backdrop gallery if the store is
// empty. Idempotent: an already-seeded store is left alone.
func SeedPresets(ctx context.Context, logger *slog.Logger, store Store) error {
	existing, err := store.ListPresets(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range defaultPresets {
		if err := store.SavePreset(ctx, p); err != nil {
			return err
		}
	}

	logger.Info("background presets seeded", "count", len(defaultPresets))
	return nil
}
