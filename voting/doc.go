// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting is the shared voting state manager.

One State instance holds the authoritative catalog reference, the ballot
ledger (image ID → vote count), the voter set, and the session gate. It is
constructed once in main and injected into every handler; all concurrent
request contexts mutate it through a single RWMutex so that a full mutation
sequence (validate → increment → record voter, or clear → re-ingest →
re-initialize ledger) is one indivisible unit.

# Invariants

  - A voter name appears in the voter set at most once; only the first
    CastVote for a name succeeds, the rest return ErrDuplicateVote.
  - A voter is recorded if and only if their selections were tallied.
  - Every catalog ID has a ledger entry (absent reads count as zero).
  - Counts only increase, except on explicit Reset.

# Gate

OpenGate/CloseGate toggle whether CastVote accepts ballots (ErrGateClosed
when closed). The gate never blocks reads: the organizer can preview images
and tallies while voting is closed.

# Errors

ErrMissingName, ErrDuplicateVote, ErrNoSelection, and ErrGateClosed are
expected, recoverable conditions. Publish reports per-item
catalog.IngestError values and keeps going; no error leaves the state
partially updated.
*/
package voting
