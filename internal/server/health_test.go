package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealth(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var checks HealthResponse
	json.NewDecoder(w.Body).Decode(&checks)
	if checks["sqlite"].Status != "ok" {
		t.Errorf("sqlite check = %+v", checks["sqlite"])
	}
}
