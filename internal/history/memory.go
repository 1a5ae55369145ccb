// internal/history/memory.go
//
// In-memory implementation of the history Store interface.
// Used by tests and by embeddings that do not need durable history.
//
// Characteristics:
//   - Records keyed by date in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package history

import (
	"context"
	"sync"
)

// memory is a map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards records map
	records map[string]Record // keyed by Record.Date
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{records: make(map[string]Record)}
}

// Get looks up the record for a date.
func (m *memory) Get(ctx context.Context, date string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.records[date]; ok {
		return rec, nil
	}
	return Record{}, ErrNotFound
}

// Upsert inserts or replaces the record for rec.Date.
func (m *memory) Upsert(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Date] = rec
	return nil
}
