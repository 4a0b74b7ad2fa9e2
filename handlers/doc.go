// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

# Handler Groups

  - ImagesHandler: catalog listing, image bytes, organizer publish
  - VotingHandler: ballot submission
  - ResultsHandler: tallies and CSV export
  - SessionHandler: gate toggles and data reset

Each handler holds the shared voting state and the config, injected by the
router. Handlers validate input, call one state-manager operation, map its
sentinel errors to HTTP statuses and error codes, and log at decision
points. All atomicity lives in the voting package; handlers never compose
multiple mutations.

# Error Mapping

	voting.ErrMissingName   → 400 missing_name
	voting.ErrNoSelection   → 400 no_selection
	voting.ErrDuplicateVote → 409 duplicate_vote
	voting.ErrGateClosed    → 409 gate_closed
	catalog.ErrNotFound     → 404
	every upload rejected   → 400 ingest_failed
	anything else           → 500
*/
package handlers
