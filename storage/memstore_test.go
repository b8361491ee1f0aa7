package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func match(id string, players ...MatchPlayer) MatchRecord {
	return MatchRecord{
		ID:        id,
		RoomCode:  "ABC123",
		StartedAt: time.Unix(100, 0).UTC(),
		EndedAt:   time.Unix(200, 0).UTC(),
		EndReason: EndCompleted,
		Players:   players,
	}
}

func TestMemoryStoreListByUserID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	alice := MatchPlayer{PlayerID: "p1", UserID: "user-a", Name: "Alice", Place: 1}
	bob := MatchPlayer{PlayerID: "p2", UserID: "user-b", Name: "Bob", Place: 2}
	bot := MatchPlayer{PlayerID: "bot:1", Name: "Morgana", Bot: true, Place: 3}

	require.NoError(t, s.InsertMatch(ctx, match("m1", alice, bob)))
	require.NoError(t, s.InsertMatch(ctx, match("m2", bob, bot)))
	require.NoError(t, s.InsertMatch(ctx, match("m3", alice, bot)))

	got, err := s.ListByUserID(ctx, "user-a", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m3", got[0].ID, "newest first")
	assert.Equal(t, "m1", got[1].ID)
	assert.Equal(t, 1, got[0].YourPlace)

	got, err = s.ListByUserID(ctx, "user-b", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m2", got[0].ID)
	assert.Equal(t, 2, got[0].YourPlace)

	got, err = s.ListByUserID(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, got, "bots and anonymous seats have no history")
}

func TestNilStoreIsNoop(t *testing.T) {
	var s *Store
	ctx := context.Background()
	assert.NoError(t, s.InsertMatch(ctx, match("m1")))
	got, err := s.ListByUserID(ctx, "user-a", 10)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NotPanics(t, s.Close)

	st, err := NewStore(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, st)
}
