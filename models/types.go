// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Publish modes
const (
	ModeReplace = "replace"
	ModeAppend  = "append"
)

// Machine-readable error codes for the renderer
const (
	CodeMissingName   = "missing_name"
	CodeDuplicateVote = "duplicate_vote"
	CodeNoSelection   = "no_selection"
	CodeGateClosed    = "gate_closed"
	CodeIngestFailed  = "ingest_failed"
)

// Request types

type CastBallotRequest struct {
	VoterName string   `json:"voter_name"`
	ImageIDs  []string `json:"image_ids"`
}

type ResetRequest struct {
	IncludeCatalog bool `json:"include_catalog"`
}

// Response types

type CastBallotResponse struct {
	Message string         `json:"message"`
	Tallies map[string]int `json:"tallies"`
}

type PublishResponse struct {
	Mode   string        `json:"mode"`
	Stored int           `json:"stored"`
	Failed int           `json:"failed"`
	IDs    []string      `json:"ids"`
	Errors []IngestError `json:"errors,omitempty"`
}

// IngestError is the JSON shape of one skipped upload.
type IngestError struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type ImageEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Size     int64  `json:"size"`
	Position int    `json:"position"`
	Votes    int    `json:"votes"`
}

type ListImagesResponse struct {
	Images     []ImageEntry `json:"images"`
	VotingOpen bool         `json:"voting_open"`
}

type TallyEntry struct {
	ID    string `json:"id"`
	Votes int    `json:"votes"`
}

type ResultsResponse struct {
	Tallies    []TallyEntry `json:"tallies"`
	VoterCount int          `json:"voter_count"`
	TotalVotes int          `json:"total_votes"`
}

type SessionResponse struct {
	Open bool `json:"open"`
}

type ResetResponse struct {
	Message        string `json:"message"`
	IncludeCatalog bool   `json:"include_catalog"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
