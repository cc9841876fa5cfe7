package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

// Deps bundles what the routes need; main wires it up.
type Deps struct {
	DB      *sql.DB
	Store   Store
	Hunts   *Registry
	Broker  *Broker
	BaseURL string
	SPADir  string
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Egg Hunt API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB))

	r.Post("/api/hunts", handleCreateHunt(deps.Hunts))
	r.Get("/api/hunts/code/{joinCode}", handleHuntLookup(deps.Hunts))

	r.Route("/api/hunts/{hunt}", func(r chi.Router) {
		r.Use(huntMiddleware(deps.Hunts))

		r.Post("/host/login", handleHostLogin())
		r.Post("/join", handleJoin(deps.Broker))
		r.Get("/qr", handleJoinQR(deps.BaseURL))
		r.Get("/events", handleEvents(deps.Broker))

		// Setup mode, host only.
		r.Group(func(r chi.Router) {
			r.Use(hostAuthMiddleware())

			r.Get("/eggs", handleListEggs())
			r.Post("/eggs", handleAddEgg(deps.Broker))
			r.Patch("/eggs/{eggID}", handleUpdateEgg(logger))
			r.Delete("/eggs/{eggID}", handleRemoveEgg(logger))
			r.Post("/gesture", handleGesture(logger, deps.Broker))

			r.Get("/prefs", handleGetPrefs(deps.Store))
			r.Put("/prefs", handleSavePrefs(deps.Store))
			r.Get("/presets", handleListPresets(deps.Store))

			r.Post("/setup", handleBeginSetup())
			r.Post("/start", handleStartHunt(deps.Broker))
			r.Post("/reset", handleResetHunt(deps.Broker))
			r.Post("/restart", handleRestartHunt(deps.Broker))
		})

		// Play mode, hunter token.
		r.Group(func(r chi.Router) {
			r.Use(hunterAuthMiddleware())

			r.Get("/state", handleHuntState(deps.Store))
			r.Post("/find", handleFindEgg())
			r.Post("/hint", handleHint())
		})
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
