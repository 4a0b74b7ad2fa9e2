// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and error types for the API.

# Request Types

Types for parsing incoming JSON:

  - CastBallotRequest: voter_name, image_ids
  - ResetRequest: include_catalog

# Response Types

Types for JSON responses:

  - CastBallotResponse: message, updated tallies
  - PublishResponse: mode, stored/failed counts, per-item ingest errors
  - ListImagesResponse: image entries with vote counts, gate state
  - ResultsResponse: tallies, voter_count, total_votes
  - SessionResponse: open
  - ResetResponse: message, include_catalog
  - ErrorResponse: error, code, message

# Constants

Publish modes:

	ModeReplace = "replace"
	ModeAppend  = "append"

Error codes returned in ErrorResponse.Code so the renderer can show the
right message without parsing prose:

	CodeMissingName   = "missing_name"
	CodeDuplicateVote = "duplicate_vote"
	CodeNoSelection   = "no_selection"
	CodeGateClosed    = "gate_closed"
	CodeIngestFailed  = "ingest_failed"
*/
package models
