// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema for the db catalog backend.

# Schema

One table:

  - image: catalog items with their stored bytes, dimensions, and display
    position

Votes and the voter set are not stored here. Only the image catalog
survives a restart; the ledger lives in memory for the process lifetime.

# Usage

	dbConn, err := sql.Open("sqlite", cfg.DatabaseURL)
	// ...
	err = db.CreateSchema(dbConn)

CreateSchema is idempotent (IF NOT EXISTS) and works against both sqlite
(modernc.org/sqlite) and postgres (lib/pq).
*/
package db
