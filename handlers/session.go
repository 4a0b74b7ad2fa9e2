// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/closet-vote/cliparse"
	"github.com/danielhkuo/closet-vote/middleware"
	"github.com/danielhkuo/closet-vote/models"
	"github.com/danielhkuo/closet-vote/voting"
)

type SessionHandler struct {
	state *voting.State
	cfg   cliparse.Config
}

func NewSessionHandler(state *voting.State, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{state: state, cfg: cfg}
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Open: h.state.IsOpen(),
	})
}

// OpenGate handles POST /session/open (organizer only, idempotent)
func (h *SessionHandler) OpenGate(w http.ResponseWriter, r *http.Request) {
	h.state.OpenGate()
	slog.Info("voting gate opened")
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{Open: true})
}

// CloseGate handles POST /session/close (organizer only, idempotent)
func (h *SessionHandler) CloseGate(w http.ResponseWriter, r *http.Request) {
	h.state.CloseGate()
	slog.Info("voting gate closed")
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{Open: false})
}

// Reset handles POST /reset (organizer only)
// Wipes the voter set and zeroes the ledger; with include_catalog the
// images go too. An empty body means ledger-only.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req models.ResetRequest
	if r.ContentLength > 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	if err := h.state.Reset(r.Context(), req.IncludeCatalog); err != nil {
		slog.Error("reset failed", "error", err, "include_catalog", req.IncludeCatalog)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset")
		return
	}

	slog.Info("voting data reset", "include_catalog", req.IncludeCatalog)

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Message:        "Voting data cleared",
		IncludeCatalog: req.IncludeCatalog,
	})
}
