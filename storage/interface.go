package storage

import "context"

// HistoryStore abstracts persistence of finished matches.
// Implementations can be swapped for testing (MemoryStore) or a Postgres backend (Store).
type HistoryStore interface {
	InsertMatch(ctx context.Context, rec MatchRecord) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]MatchRecord, error)
	Close()
}

// Ensure both stores implement HistoryStore at compile time.
var (
	_ HistoryStore = (*Store)(nil)
	_ HistoryStore = (*MemoryStore)(nil)
)
