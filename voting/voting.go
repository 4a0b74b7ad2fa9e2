// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/danielhkuo/closet-vote/catalog"
)

// Ballot validation errors, in precondition order. These are expected
// conditions the HTTP layer turns into user-visible messages, never
// internal failures.
var (
	ErrMissingName   = errors.New("missing name")
	ErrDuplicateVote = errors.New("already voted")
	ErrNoSelection   = errors.New("no selection")
	ErrGateClosed    = errors.New("voting is closed")
)

type Options struct {
	// MaxImageWidth bounds ingested image width; wider uploads are
	// downscaled. <= 0 disables resizing.
	MaxImageWidth int
	// ResetClosesGate makes Reset also close the voting gate.
	ResetClosesGate bool
}

// State is the shared voting state: the image catalog, per-image tallies,
// the set of voters who have cast a ballot, and the open/closed gate.
// One instance exists per process and every request handler works against
// it by reference. A single RWMutex serializes all mutation sequences end
// to end; that guard is what keeps a concurrent reset from interleaving
// with the increments of a half-cast ballot.
type State struct {
	mu      sync.RWMutex
	backend catalog.Backend
	tallies map[string]int
	voters  map[string]struct{}
	open    bool
	opts    Options
}

func NewState(backend catalog.Backend, opts Options) *State {
	return &State{
		backend: backend,
		tallies: make(map[string]int),
		voters:  make(map[string]struct{}),
		opts:    opts,
	}
}

// View is one consistent snapshot of everything the renderer needs to draw
// the grid: items, their tallies, and the gate.
type View struct {
	Items   []catalog.Item
	Tallies map[string]int
	Open    bool
}

// CastResult carries the updated tallies for the selected items.
type CastResult struct {
	Tallies map[string]int
}

// PublishReport summarizes one ingest run. Ingestion is per-item: a bad
// upload is skipped and reported, the rest go through.
type PublishReport struct {
	Stored int
	Failed int
	IDs    []string
	Errors []*catalog.IngestError
}

// ListImages returns the current catalog in display order.
func (s *State) ListImages(ctx context.Context) ([]catalog.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend.List(ctx)
}

// ImageData returns the stored bytes for one item.
func (s *State) ImageData(ctx context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend.Get(ctx, id)
}

// Snapshot reads items, tallies, and gate state under one lock so the
// renderer never sees a tally for an image that is no longer there.
func (s *State) Snapshot(ctx context.Context) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.backend.List(ctx)
	if err != nil {
		return View{}, err
	}
	tallies := make(map[string]int, len(items))
	for _, item := range items {
		tallies[item.ID] = s.tallies[item.ID]
	}
	return View{Items: items, Tallies: tallies, Open: s.open}, nil
}

// Tally returns the current vote count for an item, 0 if unknown.
func (s *State) Tally(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tallies[id]
}

// Tallies returns a copy of the full ledger.
func (s *State) Tallies() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.tallies))
	for id, n := range s.tallies {
		out[id] = n
	}
	return out
}

func (s *State) VoterCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.voters)
}

// TotalVotes is the sum of all tallies, shown on the organizer panel.
func (s *State) TotalVotes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, n := range s.tallies {
		total += n
	}
	return total
}

func (s *State) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// OpenGate and CloseGate are idempotent.
func (s *State) OpenGate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

func (s *State) CloseGate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// CastVote records one voter's ballot. Preconditions short-circuit in a
// fixed order: missing name, then duplicate voter, then empty selection,
// then the gate. On success every selected ID is incremented and the voter
// is recorded, all inside one critical section - no other cast or reset can
// observe the increments without the voter, or the voter without the
// increments.
func (s *State) CastVote(name string, ids []string) (CastResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return CastResult{}, ErrMissingName
	}
	if _, voted := s.voters[name]; voted {
		return CastResult{}, ErrDuplicateVote
	}
	if len(ids) == 0 {
		return CastResult{}, ErrNoSelection
	}
	if !s.open {
		return CastResult{}, ErrGateClosed
	}

	// Duplicate IDs within one ballot count once.
	updated := make(map[string]int, len(ids))
	for _, id := range ids {
		if _, seen := updated[id]; seen {
			continue
		}
		// The catalog may have changed since the renderer drew the grid;
		// an absent entry starts at zero.
		s.tallies[id]++
		updated[id] = s.tallies[id]
	}
	s.voters[name] = struct{}{}

	return CastResult{Tallies: updated}, nil
}

// Publish ingests uploads. In replace mode the existing catalog and ledger
// are cleared first; in append mode name collisions get a -N suffix.
// Every stored ID gets a ledger entry initialized to zero. The whole run,
// decode and resize included, holds the write lock: publish is the slow
// mutation and callers should treat it that way.
func (s *State) Publish(ctx context.Context, uploads []catalog.Upload, replace bool) (PublishReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[string]bool)
	position := 0

	if replace {
		if err := s.backend.Clear(ctx); err != nil {
			return PublishReport{}, err
		}
		s.tallies = make(map[string]int)
	} else {
		existing, err := s.backend.List(ctx)
		if err != nil {
			return PublishReport{}, err
		}
		for _, item := range existing {
			taken[item.ID] = true
		}
		position = len(existing)
	}

	var report PublishReport
	for _, up := range uploads {
		name := catalog.SafeName(up.Name)
		if name == "" {
			report.Failed++
			report.Errors = append(report.Errors, &catalog.IngestError{
				Name: up.Name, Err: errors.New("empty filename"),
			})
			continue
		}
		name = catalog.UniqueName(name, taken)

		norm, err := catalog.Normalize(name, up.Data, s.opts.MaxImageWidth)
		if err != nil {
			report.Failed++
			var ingestErr *catalog.IngestError
			if errors.As(err, &ingestErr) {
				report.Errors = append(report.Errors, ingestErr)
			} else {
				report.Errors = append(report.Errors, &catalog.IngestError{Name: name, Err: err})
			}
			continue
		}

		item := catalog.Item{
			ID:       name,
			Name:     name,
			Width:    norm.Width,
			Height:   norm.Height,
			Size:     int64(len(norm.Data)),
			Position: position,
		}
		if err := s.backend.Put(ctx, item, norm.Data); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, &catalog.IngestError{Name: name, Err: err})
			continue
		}

		taken[name] = true
		position++
		if _, ok := s.tallies[name]; !ok {
			s.tallies[name] = 0
		}
		report.Stored++
		report.IDs = append(report.IDs, name)
	}

	return report, nil
}

// Reset clears the voter set and zeroes the ledger; with includeCatalog it
// wipes the catalog too. Entries for surviving catalog items are
// re-initialized to zero. Whether the gate also closes is configuration.
func (s *State) Reset(ctx context.Context, includeCatalog bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.voters = make(map[string]struct{})
	s.tallies = make(map[string]int)

	if includeCatalog {
		if err := s.backend.Clear(ctx); err != nil {
			return err
		}
	} else {
		items, err := s.backend.List(ctx)
		if err != nil {
			return err
		}
		for _, item := range items {
			s.tallies[item.ID] = 0
		}
	}

	if s.opts.ResetClosesGate {
		s.open = false
	}
	return nil
}

// WriteCSV exports the results as UTF-8 CSV with an "item,votes" header,
// one row per catalog item in display order. IDs the ledger knows but the
// catalog no longer lists are appended at the end so no cast vote silently
// vanishes from the export.
func (s *State) WriteCSV(ctx context.Context, w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.backend.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"item", "votes"}); err != nil {
		return err
	}

	listed := make(map[string]bool, len(items))
	for _, item := range items {
		listed[item.ID] = true
		if err := cw.Write([]string{item.ID, strconv.Itoa(s.tallies[item.ID])}); err != nil {
			return err
		}
	}

	var orphans []string
	for id := range s.tallies {
		if !listed[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		if err := cw.Write([]string{id, strconv.Itoa(s.tallies[id])}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Ping reports backend health for the liveness endpoint.
func (s *State) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
