package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hoppity/egghunt/internal/hunt"
)

// joinHunt walks the hunter's entry path: look up the hunt by join
// code, then join by name.
func joinHunt(t *testing.T, r *chi.Mux, joinCode, name string) (huntID, token string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/hunts/code/"+joinCode, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("lookup: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var lookup HuntLookupResponse
	json.NewDecoder(w.Body).Decode(&lookup)

	body, _ := json.Marshal(JoinRequest{JoinCode: joinCode, HunterName: name})
	req = httptest.NewRequest(http.MethodPost, "/api/hunts/"+lookup.HuntID+"/join", bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("join: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var join JoinResponse
	json.NewDecoder(w.Body).Decode(&join)
	if join.Token == "" {
		t.Fatal("join: expected a session token")
	}
	return lookup.HuntID, join.Token
}

// placeEggs adds n eggs through the host API and returns their ids in
// hunt order.
func placeEggs(t *testing.T, r *chi.Mux, huntID, hostToken string, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		pos := hunt.Percent{Left: float64(10 + 10*i), Top: 40}
		req := hostRequest(http.MethodPost, "/api/hunts/"+huntID+"/eggs", hostToken, AddEggRequest{Pos: &pos})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("place egg %d: expected 201, got %d: %s", i, w.Code, w.Body.String())
		}
		var item EggItem
		json.NewDecoder(w.Body).Decode(&item)
		ids[i] = item.ID
	}
	return ids
}

func startHunt(t *testing.T, r *chi.Mux, huntID, hostToken string) StartHuntResponse {
	t.Helper()
	req := hostRequest(http.MethodPost, "/api/hunts/"+huntID+"/start", hostToken, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp StartHuntResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

func TestStartRejectsEmptyHunt(t *testing.T) {
	r, _ := testRouter(t)
	huntID, token := createHunt(t, r)

	req := hostRequest(http.MethodPost, "/api/hunts/"+huntID+"/start", token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}

	// Still in setup: eggs can be placed and the hunt started after.
	placeEggs(t, r, huntID, token, 1)
	startHunt(t, r, huntID, token)
}

func TestFullHuntFlow(t *testing.T) {
	r, hunts := testRouter(t)
	huntID, hostToken := createHunt(t, r)
	h, _ := hunts.Get(huntID)

	eggs := placeEggs(t, r, huntID, hostToken, 3)

	started := startHunt(t, r, huntID, hostToken)
	if started.Phase != "playing" || started.Total != 3 {
		t.Fatalf("start = %+v", started)
	}
	if started.FirstClue != "Look for egg #1" {
		t.Errorf("firstClue = %q", started.FirstClue)
	}

	_, hunter := joinHunt(t, r, h.JoinCode, "Maggie")
	base := "/api/hunts/" + huntID

	// Initial state: nothing found, clue for egg 1, no positions leaked.
	var state HuntStateResponse
	getState := func() HuntStateResponse {
		req := hostRequest(http.MethodGet, base+"/state", hunter, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("state: expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var s HuntStateResponse
		json.NewDecoder(w.Body).Decode(&s)
		return s
	}
	state = getState()
	if state.FoundCount != 0 || state.Total != 3 || len(state.FoundEggs) != 0 {
		t.Fatalf("initial state = %+v", state)
	}
	if state.CurrentEggID != eggs[0] {
		t.Errorf("currentEggId = %s, want %s", state.CurrentEggID, eggs[0])
	}
	if !state.SoundEnabled {
		t.Error("default sound preference should be on")
	}

	find := func(eggID string) (*httptest.ResponseRecorder, FindEggResponse) {
		body, _ := json.Marshal(FindEggRequest{EggID: eggID})
		req := httptest.NewRequest(http.MethodPost, base+"/find", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+hunter)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var resp FindEggResponse
		json.NewDecoder(w.Body).Decode(&resp)
		return w, resp
	}

	// Clicking an egg out of order is inert.
	w, _ := find(eggs[2])
	if w.Code != http.StatusConflict {
		t.Fatalf("out-of-order find: expected 409, got %d", w.Code)
	}
	if state = getState(); state.FoundCount != 0 {
		t.Fatalf("inert click advanced the hunt: %+v", state)
	}

	// Find the first egg; the next clue comes back.
	w, res := find(eggs[0])
	if w.Code != http.StatusOK {
		t.Fatalf("find 1: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if res.FoundCount != 1 || res.HuntComplete || res.NextClue != "Look for egg #2" {
		t.Fatalf("find 1 = %+v", res)
	}

	// Hint on egg 2: first call reveals, repeat is idempotent.
	hint := func() HintResponse {
		req := hostRequest(http.MethodPost, base+"/hint", hunter, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("hint: expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp HintResponse
		json.NewDecoder(w.Body).Decode(&resp)
		return resp
	}
	first := hint()
	if !first.Revealed || first.Pos == nil {
		t.Fatalf("first hint = %+v", first)
	}
	repeat := hint()
	if repeat.Revealed {
		t.Error("repeat hint should not reveal again")
	}
	if repeat.Pos == nil || *repeat.Pos != *first.Pos {
		t.Errorf("repeat hint pos = %v, want %v", repeat.Pos, first.Pos)
	}
	if state = getState(); !state.HintUsed {
		t.Error("state should report the hint as used")
	}

	// Finding egg 2 clears the hint flag for egg 3.
	if _, res = find(eggs[1]); res.FoundCount != 2 {
		t.Fatalf("find 2 = %+v", res)
	}
	if state = getState(); state.HintUsed {
		t.Error("hint flag should reset when the hunt advances")
	}
	if len(state.FoundEggs) != 2 || state.FoundEggs[0].Number != 1 {
		t.Errorf("found eggs = %+v", state.FoundEggs)
	}

	// Last egg completes the hunt.
	if _, res = find(eggs[2]); !res.HuntComplete || res.FoundCount != 3 {
		t.Fatalf("find 3 = %+v", res)
	}
	if state = getState(); state.Phase != "completed" || len(state.FoundEggs) != 3 {
		t.Fatalf("final state = %+v", state)
	}

	// Reset keeps the eggs for a replay.
	req := hostRequest(http.MethodPost, base+"/reset", hostToken, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", w2.Code)
	}
	req = hostRequest(http.MethodGet, base+"/eggs", hostToken, nil)
	w2 = httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	var list EggListResponse
	json.NewDecoder(w2.Body).Decode(&list)
	if len(list.Eggs) != 3 {
		t.Errorf("after reset: %d eggs, want 3", len(list.Eggs))
	}

	// Restart discards them.
	req = hostRequest(http.MethodPost, base+"/restart", hostToken, nil)
	w2 = httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("restart: expected 200, got %d", w2.Code)
	}
	req = hostRequest(http.MethodPost, base+"/setup", hostToken, nil)
	w2 = httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	req = hostRequest(http.MethodGet, base+"/eggs", hostToken, nil)
	w2 = httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	json.NewDecoder(w2.Body).Decode(&list)
	if len(list.Eggs) != 0 || list.NextNumber != 1 {
		t.Errorf("after restart: %d eggs nextNumber %d", len(list.Eggs), list.NextNumber)
	}
}

func TestPlayRequiresSessionToken(t *testing.T) {
	r, _ := testRouter(t)
	huntID, hostToken := createHunt(t, r)
	placeEggs(t, r, huntID, hostToken, 1)
	startHunt(t, r, huntID, hostToken)

	req := httptest.NewRequest(http.MethodGet, "/api/hunts/"+huntID+"/state", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}
}

func TestJoinValidation(t *testing.T) {
	r, hunts := testRouter(t)
	huntID, _ := createHunt(t, r)
	h, _ := hunts.Get(huntID)

	// Wrong join code for this hunt id.
	body, _ := json.Marshal(JoinRequest{JoinCode: "egg-zzzz", HunterName: "Maggie"})
	req := httptest.NewRequest(http.MethodPost, "/api/hunts/"+huntID+"/join", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("wrong code: expected 404, got %d", w.Code)
	}

	// Name is required.
	body, _ = json.Marshal(JoinRequest{JoinCode: h.JoinCode})
	req = httptest.NewRequest(http.MethodPost, "/api/hunts/"+huntID+"/join", bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing name: expected 400, got %d", w.Code)
	}

	// Unknown hunt id entirely.
	body, _ = json.Marshal(JoinRequest{JoinCode: h.JoinCode, HunterName: "Maggie"})
	req = httptest.NewRequest(http.MethodPost, "/api/hunts/nope/join", bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown hunt: expected 404, got %d", w.Code)
	}
}
