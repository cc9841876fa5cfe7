package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
)

type CreateHuntRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

type CreateHuntResponse struct {
	HuntID    string `json:"huntId"`
	JoinCode  string `json:"joinCode"`
	HostToken string `json:"hostToken"`
}

func handleCreateHunt(hunts *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateHuntRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		if len(req.PIN) < 4 {
			writeError(w, http.StatusBadRequest, "pin must be at least 4 characters")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		h := hunts.Create(req.Name, hash)
		writeJSON(w, http.StatusCreated, CreateHuntResponse{
			HuntID:    h.ID,
			JoinCode:  h.JoinCode,
			HostToken: h.IssueHostToken(),
		})
	}
}

type HuntLookupResponse struct {
	HuntID string `json:"huntId"`
	Name   string `json:"name"`
	Phase  string `json:"phase"`
}

// handleHuntLookup resolves a join code before joining, so the
// hunter's client can show the hunt name and whether it has started.
func handleHuntLookup(hunts *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "joinCode")
		h, ok := hunts.ByJoinCode(code)
		if !ok {
			writeError(w, http.StatusNotFound, "hunt not found")
			return
		}

		writeJSON(w, http.StatusOK, HuntLookupResponse{
			HuntID: h.ID,
			Name:   h.Name,
			Phase:  string(h.Session.Phase()),
		})
	}
}

type HostLoginRequest struct {
	PIN string `json:"pin"`
}

type HostLoginResponse struct {
	HostToken string `json:"hostToken"`
}

// handleHostLogin re-issues a host token against the hunt's PIN, for
// when the host reloads or switches devices.
func handleHostLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HostLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		h := huntFrom(r)
		if err := bcrypt.CompareHashAndPassword(h.pinHash, []byte(req.PIN)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid pin")
			return
		}

		writeJSON(w, http.StatusOK, HostLoginResponse{HostToken: h.IssueHostToken()})
	}
}

// handleJoinQR renders the join URL as a PNG QR code so the host can
// hand the hunt to the hunter's device.
func handleJoinQR(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := huntFrom(r)
		url := fmt.Sprintf("%s/join/%s", strings.TrimRight(baseURL, "/"), h.JoinCode)

		png, err := qrcode.Encode(url, qrcode.Medium, 256)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	}
}
