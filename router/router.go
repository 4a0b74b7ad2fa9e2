// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/closet-vote/cliparse"
	"github.com/danielhkuo/closet-vote/handlers"
	"github.com/danielhkuo/closet-vote/middleware"
	"github.com/danielhkuo/closet-vote/voting"
)

func NewRouter(state *voting.State, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	imagesHandler := handlers.NewImagesHandler(state, cfg)
	votingHandler := handlers.NewVotingHandler(state, cfg)
	resultsHandler := handlers.NewResultsHandler(state, cfg)
	sessionHandler := handlers.NewSessionHandler(state, cfg)

	organizer := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireOrganizer(cfg.OrganizerSalt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := state.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("catalog backend unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Catalog (participant reads, organizer publish)
	mux.HandleFunc("GET /images", middleware.WithLogging(imagesHandler.List))
	mux.HandleFunc("GET /images/{id}", middleware.WithLogging(imagesHandler.GetImage))
	mux.HandleFunc("POST /images", organizer(imagesHandler.Publish))

	// Voting (public)
	mux.HandleFunc("POST /ballots", middleware.WithLogging(votingHandler.CastBallot))

	// Results (public; the gate only blocks ballots, never reads)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /results/export", middleware.WithLogging(resultsHandler.ExportCSV))

	// Session control (organizer)
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /session/open", organizer(sessionHandler.OpenGate))
	mux.HandleFunc("POST /session/close", organizer(sessionHandler.CloseGate))
	mux.HandleFunc("POST /reset", organizer(sessionHandler.Reset))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("closet-vote API v1"))
	})

	return mux
}
