// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/closet-vote/auth"
	"github.com/danielhkuo/closet-vote/cliparse"
	"github.com/danielhkuo/closet-vote/middleware"
	"github.com/danielhkuo/closet-vote/models"
	"github.com/danielhkuo/closet-vote/voting"
)

type VotingHandler struct {
	state *voting.State
	cfg   cliparse.Config
}

func NewVotingHandler(state *voting.State, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{state: state, cfg: cfg}
}

// CastBallot handles POST /ballots
// One ballot per voter name: the state manager enforces the precondition
// order (missing name, duplicate, empty selection, closed gate) and each
// case maps to a distinct error code for the renderer.
func (h *VotingHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.VoterName)
	result, err := h.state.CastVote(name, req.ImageIDs)
	if err != nil {
		switch {
		case errors.Is(err, voting.ErrMissingName):
			middleware.ErrorResponseCode(w, http.StatusBadRequest, models.CodeMissingName, "voter_name is required")
		case errors.Is(err, voting.ErrDuplicateVote):
			middleware.ErrorResponseCode(w, http.StatusConflict, models.CodeDuplicateVote, "You have already voted")
		case errors.Is(err, voting.ErrNoSelection):
			middleware.ErrorResponseCode(w, http.StatusBadRequest, models.CodeNoSelection, "Select at least one image")
		case errors.Is(err, voting.ErrGateClosed):
			middleware.ErrorResponseCode(w, http.StatusConflict, models.CodeGateClosed, "Voting is not open")
		default:
			slog.Error("cast vote failed", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		}
		return
	}

	// Privacy-preserving audit trail: hash, never the raw IP.
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.OrganizerSalt)
	slog.Info("ballot cast",
		"voter", name,
		"selections", len(result.Tallies),
		"ip_hash", ipHash,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CastBallotResponse{
		Message: "Ballot submitted successfully",
		Tallies: result.Tallies,
	})
}
