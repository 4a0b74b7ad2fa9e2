// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the table backing the database catalog backend.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL sticks to
// types both sqlite and postgres accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Catalog images. Votes are deliberately not persisted: the ledger and
-- voter set live in memory for the process lifetime.
CREATE TABLE IF NOT EXISTS image (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    data BYTEA NOT NULL,
    width INTEGER NOT NULL DEFAULT 0,
    height INTEGER NOT NULL DEFAULT 0,
    size BIGINT NOT NULL DEFAULT 0,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_image_position ON image(position);
`
