// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the closet-vote API server.

Closet-vote is a small group-voting service: an organizer publishes a set
of clothing photos, participants tick the ones they like and submit one
ballot under their name, and the organizer watches tallies and exports a
CSV report.

# Starting the Server

The server needs an organizer key salt; everything else has defaults:

	ORGANIZER_KEY_SALT=secret go run .

Or with flags:

	go run . -p 3319 -b dir -i ./photos --organizer-salt secret

# Configuration

Required settings:

  - ORGANIZER_KEY_SALT (--organizer-salt): Secret for the organizer key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - CATALOG_BACKEND (-b): memory, dir, db, or s3 (default: memory)
  - IMAGE_DIR (-i): Image directory for the dir backend
  - DATABASE_URL (-d) / DATABASE_TYPE (-t): db backend connection
  - MAX_IMAGE_WIDTH (--max-width): Downscale threshold (default: 800)
  - RESET_CLOSES_GATE (--reset-closes-gate): Reset also closes voting

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voting: the shared state manager (ledger, voter set, gate, lock)
  - catalog: image store backends (memory, dir, db, s3) and ingest
  - handlers: HTTP request handlers (images, voting, results, session)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, organizer auth, JSON helpers
  - models: Request/response types
  - auth: Organizer key derivation and validation
  - db: Schema creation for the db catalog backend
  - cliparse: Configuration parsing

One voting.State instance is created at startup and injected into every
handler; votes and the voter roster live in memory for the process
lifetime, while the catalog can persist via the dir, db, or s3 backends.

See package documentation for each component.
*/
package main
