package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps match history in process memory. Used when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	matches []MatchRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) InsertMatch(ctx context.Context, rec MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches = append(m.matches, rec)
	return nil
}

// ListByUserID returns the newest matches first.
func (m *MemoryStore) ListByUserID(ctx context.Context, userID string, limit int) ([]MatchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []MatchRecord{}
	for i := len(m.matches) - 1; i >= 0; i-- {
		rec := m.matches[i]
		place := placeOf(rec, userID)
		if place == 0 {
			continue
		}
		rec.YourPlace = place
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) Close() {}
