package store

import (
	"context"
	"iter"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory ContentStore for tests and small fixtures.
// Listing order is lexical, so enumeration is deterministic.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores an object, replacing any previous contents.
func (m *MemoryStore) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	m.objects[name] = copied
}

// PutString stores a string object. Convenience for test fixtures.
func (m *MemoryStore) PutString(name, data string) {
	m.Put(name, []byte(data))
}

// Open opens an object for reading.
func (m *MemoryStore) Open(_ context.Context, name string) (Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[name]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy so later Puts cannot mutate an open handle.
	copied := make([]byte, len(data))
	copy(copied, data)
	return &bytesObject{data: copied}, nil
}

// List yields object names under prefix in lexical order.
func (m *MemoryStore) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		m.mu.RLock()
		names := make([]string, 0, len(m.objects))
		for name := range m.objects {
			if strings.HasPrefix(name, prefix) {
				names = append(names, name)
			}
		}
		m.mu.RUnlock()
		sort.Strings(names)

		for _, name := range names {
			if ctx.Err() != nil {
				yield("", ctx.Err())
				return
			}
			if !yield(name, nil) {
				return
			}
		}
	}
}

// Stat reports whether an object exists.
func (m *MemoryStore) Stat(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[name]
	return ok, nil
}
