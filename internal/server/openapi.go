package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Egg Hunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the egg hunt party game: a host places clue-bearing eggs in setup mode, a hunter finds them in sequence in play mode.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/hunts
	postHunts, _ := r.NewOperationContext(http.MethodPost, "/api/hunts")
	postHunts.SetSummary("Create a hunt")
	postHunts.SetDescription("Creates a hunt in setup mode and returns the host token and join code.")
	postHunts.AddReqStructure(CreateHuntRequest{})
	postHunts.AddRespStructure(CreateHuntResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postHunts.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postHunts)

	// GET /api/hunts/code/{joinCode}
	getLookup, _ := r.NewOperationContext(http.MethodGet, "/api/hunts/code/{joinCode}")
	getLookup.SetSummary("Look up a hunt")
	getLookup.SetDescription("Resolves a join code to a hunt before joining.")
	getLookup.AddRespStructure(HuntLookupResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getLookup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getLookup)

	// POST /api/hunts/{hunt}/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/hunts/{hunt}/join")
	postJoin.SetSummary("Join a hunt")
	postJoin.SetDescription("Hunter joins with the join code. Returns a session token.")
	postJoin.AddReqStructure(JoinRequest{})
	postJoin.AddRespStructure(JoinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postJoin)

	// GET /api/hunts/{hunt}/qr
	getQR, _ := r.NewOperationContext(http.MethodGet, "/api/hunts/{hunt}/qr")
	getQR.SetSummary("Join QR code")
	getQR.SetDescription("Renders the hunt's join URL as a PNG QR code.")
	getQR.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("image/png"))
	_ = r.AddOperation(getQR)

	// POST /api/hunts/{hunt}/gesture
	postGesture, _ := r.NewOperationContext(http.MethodPost, "/api/hunts/{hunt}/gesture")
	postGesture.SetSummary("Setup-canvas pointer gesture")
	postGesture.SetDescription("Feeds a pointer down/move/up event into the placement controller. Requires host token.")
	postGesture.AddReqStructure(GestureRequest{})
	postGesture.AddRespStructure(GestureResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGesture.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGesture.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postGesture)

	// GET /api/hunts/{hunt}/eggs
	getEggs, _ := r.NewOperationContext(http.MethodGet, "/api/hunts/{hunt}/eggs")
	getEggs.SetSummary("List eggs")
	getEggs.SetDescription("Returns the placed eggs in number order. Requires host token.")
	getEggs.AddRespStructure(EggListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getEggs.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getEggs)

	// POST /api/hunts/{hunt}/start
	postStart, _ := r.NewOperationContext(http.MethodPost, "/api/hunts/{hunt}/start")
	postStart.SetSummary("Start the hunt")
	postStart.SetDescription("Moves the hunt from setup to playing. Rejected when no eggs are placed.")
	postStart.AddRespStructure(StartHuntResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postStart)

	// GET /api/hunts/{hunt}/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/hunts/{hunt}/state")
	getState.SetSummary("Get hunt state")
	getState.SetDescription("Returns the hunter's view of the hunt. Requires Bearer token.")
	getState.AddRespStructure(HuntStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// POST /api/hunts/{hunt}/find
	postFind, _ := r.NewOperationContext(http.MethodPost, "/api/hunts/{hunt}/find")
	postFind.SetSummary("Find the current egg")
	postFind.SetDescription("Records a click on an egg; only the current egg is interactive. Requires Bearer token.")
	postFind.AddReqStructure(FindEggRequest{})
	postFind.AddRespStructure(FindEggResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postFind.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postFind.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postFind)

	// POST /api/hunts/{hunt}/hint
	postHint, _ := r.NewOperationContext(http.MethodPost, "/api/hunts/{hunt}/hint")
	postHint.SetSummary("Reveal a hint")
	postHint.SetDescription("Temporarily reveals the current egg's marker; idempotent per egg. Requires Bearer token.")
	postHint.AddRespStructure(HintResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postHint.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postHint)

	// GET /api/hunts/{hunt}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/hunts/{hunt}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream for real-time hunt updates. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
