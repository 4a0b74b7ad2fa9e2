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

type ResultsHandler struct {
	state *voting.State
	cfg   cliparse.Config
}

func NewResultsHandler(state *voting.State, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{state: state, cfg: cfg}
}

// GetResults handles GET /results
// Tallies are readable at any time; the gate only blocks ballot
// submission, not the organizer's preview.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	view, err := h.state.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to read results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read results")
		return
	}

	tallies := make([]models.TallyEntry, 0, len(view.Items))
	total := 0
	for _, item := range view.Items {
		votes := view.Tallies[item.ID]
		total += votes
		tallies = append(tallies, models.TallyEntry{ID: item.ID, Votes: votes})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Tallies:    tallies,
		VoterCount: h.state.VoterCount(),
		TotalVotes: total,
	})
}

// ExportCSV handles GET /results/export
// Two columns, header row "item,votes", UTF-8.
func (h *ResultsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="results.csv"`)

	if err := h.state.WriteCSV(r.Context(), w); err != nil {
		// Headers are out the door; all we can do is log.
		slog.Error("csv export failed", "error", err)
	}
}
