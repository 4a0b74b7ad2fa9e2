// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog owns the set of votable images.

# Backends

Four Backend implementations behind one interface, selected by config:

  - MemoryBackend: in-memory blobs, insertion order (default; used in tests)
  - DirBackend: directory scan on every List, lexicographic order
  - DBBackend: sqlite or postgres via database/sql
  - S3Backend: S3-compatible object storage via minio-go

The dir backend deliberately re-scans on every List so images dropped into
the directory out of band are picked up with no cache invalidation logic.

# Identity

An item's ID is its (sanitized) filename and is the key the ballot ledger
counts votes under. SafeName reduces arbitrary upload names to
filesystem-safe IDs; UniqueName resolves collisions with a -N suffix in
append mode.

# Ingest

Normalize decodes an upload and downscales anything wider than the
configured maximum (default 800px), preserving aspect ratio. Failures
surface as per-item *IngestError values; ingestion skips the bad item and
continues.

Backends do not lock. All mutation flows run under the voting state
manager's guard.
*/
package catalog
