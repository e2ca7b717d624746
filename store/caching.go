package store

import (
	"context"
	"iter"
	"sync"
)

// CachingStore wraps a ContentStore and caches whole objects in memory.
//
// It assumes content is immutable for the cache's lifetime, which holds for
// the query engine's usage: a caching store is typically created per batch of
// queries over a network backend and discarded afterwards. Objects larger
// than the per-object limit bypass the cache.
type CachingStore struct {
	inner ContentStore

	maxObjectBytes int64

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewCachingStore creates a CachingStore.
// maxObjectBytes defaults to 1 MiB if <= 0.
func NewCachingStore(inner ContentStore, maxObjectBytes int64) *CachingStore {
	if maxObjectBytes <= 0 {
		maxObjectBytes = 1 << 20
	}
	return &CachingStore{
		inner:          inner,
		maxObjectBytes: maxObjectBytes,
		objects:        make(map[string][]byte),
	}
}

// Open returns the cached object when present, otherwise reads through.
func (s *CachingStore) Open(ctx context.Context, name string) (Object, error) {
	s.mu.RLock()
	data, ok := s.objects[name]
	s.mu.RUnlock()
	if ok {
		return &bytesObject{data: data}, nil
	}

	obj, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	if obj.Size() > s.maxObjectBytes {
		return obj, nil // too large, serve uncached
	}

	data, err = ReadAll(obj)
	closeErr := obj.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}

	s.mu.Lock()
	s.objects[name] = data
	s.mu.Unlock()

	return &bytesObject{data: data}, nil
}

// List passes through to the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) iter.Seq2[string, error] {
	return s.inner.List(ctx, prefix)
}

// Stat answers from cache when possible.
func (s *CachingStore) Stat(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	_, ok := s.objects[name]
	s.mu.RUnlock()
	if ok {
		return true, nil
	}
	return s.inner.Stat(ctx, name)
}

// Invalidate drops a cached object, or every object when name is empty.
func (s *CachingStore) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		s.objects = make(map[string][]byte)
		return
	}
	delete(s.objects, name)
}
