// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDirBackend_ListScansEveryCall(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	d, err := NewDir(dir)
	if err != nil {
		t.Fatalf("NewDir() error = %v", err)
	}

	if err := d.Put(ctx, Item{ID: "b.jpg", Name: "b.jpg"}, []byte("b")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	items, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "b.jpg" {
		t.Fatalf("List() = %+v, want [b.jpg]", items)
	}

	// A file dropped into the directory out of band shows up on the very
	// next List - no cache.
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("a"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	items, _ = d.List(ctx)
	if len(items) != 2 {
		t.Fatalf("List() after external add = %d items, want 2", len(items))
	}
	// Lexicographic order
	if items[0].ID != "a.png" || items[1].ID != "b.jpg" {
		t.Errorf("List() order = [%s %s], want [a.png b.jpg]", items[0].ID, items[1].ID)
	}
}

func TestDirBackend_IgnoresNonImages(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	d, _ := NewDir(dir)

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "photo.JPG"), []byte("x"), 0o644)
	os.Mkdir(filepath.Join(dir, "sub.png"), 0o755)

	items, err := d.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "photo.JPG" {
		t.Errorf("List() = %+v, want only photo.JPG (case-insensitive ext, no dirs, no txt)", items)
	}
}

func TestDirBackend_GetRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	d, _ := NewDir(t.TempDir())

	for _, id := range []string{"../etc/passwd", "a/../../b.jpg", "sub/x.png"} {
		if _, err := d.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestDirBackend_Clear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	d, _ := NewDir(dir)

	d.Put(ctx, Item{ID: "a.jpg"}, []byte("a"))
	d.Put(ctx, Item{ID: "b.png"}, []byte("b"))
	// Non-image survives a catalog clear
	os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("k"), 0o644)

	if err := d.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	items, _ := d.List(ctx)
	if len(items) != 0 {
		t.Errorf("Clear() left %d catalog items", len(items))
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.txt")); err != nil {
		t.Errorf("Clear() removed non-catalog file: %v", err)
	}
}
