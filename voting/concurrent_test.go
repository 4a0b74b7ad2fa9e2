// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

// TestConcurrentDistinctVoters verifies that simultaneous ballots from
// different voters all land: no lost updates on overlapping selections.
func TestConcurrentDistinctVoters(t *testing.T) {
	s := openStateWithImages(t, "a.jpg", "b.jpg", "c.jpg")

	numVoters := 50
	// Every voter selects a.jpg plus one rotating extra.
	extras := []string{"b.jpg", "c.jpg"}

	var wg sync.WaitGroup
	var failures atomic.Int32

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			name := fmt.Sprintf("Voter%03d", idx)
			ids := []string{"a.jpg", extras[idx%len(extras)]}
			if _, err := s.CastVote(name, ids); err != nil {
				failures.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Fatalf("%d concurrent votes failed", failures.Load())
	}

	if got := s.VoterCount(); got != numVoters {
		t.Errorf("VoterCount() = %d, want %d", got, numVoters)
	}
	if got := s.Tally("a.jpg"); got != numVoters {
		t.Errorf("Tally(a.jpg) = %d, want %d (lost updates)", got, numVoters)
	}
	if sum := s.Tally("b.jpg") + s.Tally("c.jpg"); sum != numVoters {
		t.Errorf("extra tallies sum = %d, want %d", sum, numVoters)
	}
	if got := s.TotalVotes(); got != 2*numVoters {
		t.Errorf("TotalVotes() = %d, want %d", got, 2*numVoters)
	}
}

// TestConcurrentSameVoter verifies that when one name races itself,
// exactly one ballot counts.
func TestConcurrentSameVoter(t *testing.T) {
	s := openStateWithImages(t, "a.jpg")

	attempts := 20
	var wg sync.WaitGroup
	var successes, duplicates atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := s.CastVote("Mallory", []string{"a.jpg"})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrDuplicateVote):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Errorf("successes = %d, want exactly 1", successes.Load())
	}
	if duplicates.Load() != int32(attempts-1) {
		t.Errorf("duplicates = %d, want %d", duplicates.Load(), attempts-1)
	}
	if got := s.Tally("a.jpg"); got != 1 {
		t.Errorf("Tally(a.jpg) = %d, want 1", got)
	}
}

// TestConcurrentVotesAndResets hammers casting and resetting together; the
// invariant is that after the dust settles every recorded voter's
// selections are tallied - never a voter without votes or votes without a
// voter for the final epoch.
func TestConcurrentVotesAndResets(t *testing.T) {
	s := openStateWithImages(t, "a.jpg", "b.jpg")

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			name := fmt.Sprintf("Racer%02d", idx)
			s.CastVote(name, []string{"a.jpg", "b.jpg"})
		}(i)
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Reset(context.Background(), false); err != nil {
				t.Errorf("Reset() error = %v", err)
			}
		}()
	}
	wg.Wait()

	// Every surviving ballot incremented both images by one, atomically
	// with its voter-set insertion.
	a, b := s.Tally("a.jpg"), s.Tally("b.jpg")
	if a != b {
		t.Errorf("torn ballot: Tally(a.jpg)=%d != Tally(b.jpg)=%d", a, b)
	}
	if got := s.VoterCount(); got != a {
		t.Errorf("VoterCount()=%d != per-image tally %d", got, a)
	}
}
