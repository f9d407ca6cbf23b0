package store

import (
	"context"
	"sync"

	"rumo/internal/interview"
)

// MemoryStore keeps the encoded record in memory. It round-trips through
// JSON like the other backends, so it behaves the same on odd data.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// SetRaw replaces the stored bytes verbatim.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.data = append([]byte(nil), data...)
	s.mu.Unlock()
}

// Describe implements Store.
func (s *MemoryStore) Describe() string { return "memory" }

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrNotFound
	}
	return decodeRecord(s.data)
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, p interview.Profile, completed bool) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec := newRecord(p, completed)
	data, err := encodeRecord(rec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return rec, nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
