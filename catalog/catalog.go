// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("image not found")

// Item is one votable catalog entry. ID doubles as the ledger key and is
// derived from the uploaded filename, so it must stay filesystem-safe.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Size     int64  `json:"size"`
	Position int    `json:"position"`
}

// Upload is one incoming file prior to ingest.
type Upload struct {
	Name string
	Data []byte
}

// Backend stores and lists catalog items. Implementations do not
// synchronize multi-step flows; the voting state manager serializes all
// mutations under its own lock.
type Backend interface {
	// List returns the catalog in stable display order.
	List(ctx context.Context) ([]Item, error)
	// Get returns the stored bytes for an item.
	Get(ctx context.Context, id string) ([]byte, error)
	// Put stores an item, replacing any existing item with the same ID.
	Put(ctx context.Context, item Item, data []byte) error
	// Clear removes every item.
	Clear(ctx context.Context) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// IngestError reports a single upload that could not be ingested. Ingestion
// skips the failing item and continues with the rest.
type IngestError struct {
	Name string
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest %s: %v", e.Name, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// SafeName reduces an uploaded filename to a filesystem-safe ID: the base
// name with anything outside [a-zA-Z0-9._-] replaced by '-'.
func SafeName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == ".." || base == string(filepath.Separator) || base == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// UniqueName disambiguates a name against already-taken IDs by inserting a
// numeric suffix before the extension: photo.jpg, photo-1.jpg, photo-2.jpg.
func UniqueName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if !taken[candidate] {
			return candidate
		}
	}
}
