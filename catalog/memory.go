// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"sync"
)

// MemoryBackend keeps the catalog in process memory, in insertion order.
// State lives for the process lifetime only. It is the default backend and
// the one tests use.
type MemoryBackend struct {
	mu    sync.RWMutex
	order []string
	items map[string]memoryItem
}

type memoryItem struct {
	item Item
	data []byte
}

func NewMemory() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]memoryItem)}
}

func (m *MemoryBackend) List(_ context.Context) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]Item, 0, len(m.order))
	for i, id := range m.order {
		it := m.items[id].item
		it.Position = i
		items = append(items, it)
	}
	return items, nil
}

func (m *MemoryBackend) Get(_ context.Context, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry.data, nil
}

func (m *MemoryBackend) Put(_ context.Context, item Item, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[item.ID]; !exists {
		m.order = append(m.order, item.ID)
	}
	m.items[item.ID] = memoryItem{item: item, data: data}
	return nil
}

func (m *MemoryBackend) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = nil
	m.items = make(map[string]memoryItem)
	return nil
}

func (m *MemoryBackend) Ping(_ context.Context) error { return nil }
