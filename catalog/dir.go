// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// imageExts are the file extensions the directory backend treats as
// catalog items; everything else in the directory is ignored.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// DirBackend serves the catalog from a directory on disk. Every List call
// re-scans the directory, so files added or removed out of band show up on
// the next call. No caching: repeated I/O is the price of never going
// stale. Item IDs are the filenames; order is lexicographic.
type DirBackend struct {
	dir string
}

func NewDir(dir string) (*DirBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirBackend{dir: dir}, nil
}

func (d *DirBackend) List(_ context.Context) ([]Item, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}

	// os.ReadDir returns entries sorted by filename.
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// File disappeared between the scan and the stat; skip it.
			continue
		}
		items = append(items, Item{
			ID:       entry.Name(),
			Name:     entry.Name(),
			Size:     info.Size(),
			Position: len(items),
		})
	}
	return items, nil
}

func (d *DirBackend) Get(_ context.Context, id string) ([]byte, error) {
	// IDs are bare filenames; reject anything trying to escape the dir.
	if id != filepath.Base(id) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(d.dir, id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (d *DirBackend) Put(_ context.Context, item Item, data []byte) error {
	if item.ID != filepath.Base(item.ID) {
		return errors.New("invalid item id")
	}
	return os.WriteFile(filepath.Join(d.dir, item.ID), data, 0o644)
}

func (d *DirBackend) Clear(ctx context.Context) error {
	items, err := d.List(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := os.Remove(filepath.Join(d.dir, item.ID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (d *DirBackend) Ping(_ context.Context) error {
	_, err := os.Stat(d.dir)
	return err
}
