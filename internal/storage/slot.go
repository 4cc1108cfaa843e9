// Package storage persists the planner's data graph in a durable
// key/value slot.
package storage

import (
	"context"
	"sync"
)

// Slot is a durable single-key record store.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// MemorySlot is an in-process Slot for tests and throwaway sessions.
type MemorySlot struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: map[string][]byte{}}
}

func (m *MemorySlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemorySlot) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemorySlot) Close() error { return nil }
