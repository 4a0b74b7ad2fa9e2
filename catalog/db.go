// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// DBBackend persists the catalog in a SQL database. It works against both
// sqlite and postgres through database/sql; the caller opens the connection
// and bootstraps the schema (see the db package). Votes stay in memory:
// only images survive a restart.
type DBBackend struct {
	db *sql.DB
}

func NewDB(db *sql.DB) *DBBackend {
	return &DBBackend{db: db}
}

func (b *DBBackend) List(ctx context.Context) ([]Item, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT name, width, height, size, position
		FROM image
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.Name, &it.Width, &it.Height, &it.Size, &it.Position); err != nil {
			return nil, err
		}
		it.ID = it.Name
		items = append(items, it)
	}
	return items, rows.Err()
}

func (b *DBBackend) Get(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, `
		SELECT data FROM image WHERE name = $1
	`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *DBBackend) Put(ctx context.Context, item Item, data []byte) error {
	// Replace-by-name keeps the filename as the stable catalog ID; the row
	// ID is only a surrogate key.
	if _, err := b.db.ExecContext(ctx, `DELETE FROM image WHERE name = $1`, item.ID); err != nil {
		return err
	}
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO image (id, name, data, width, height, size, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.NewString(), item.ID, data, item.Width, item.Height, int64(len(data)), item.Position)
	return err
}

func (b *DBBackend) Clear(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM image`)
	return err
}

func (b *DBBackend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}
