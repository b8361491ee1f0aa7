package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// DefaultHistoryLimit caps ListByUserID when the caller passes no limit.
	DefaultHistoryLimit = 50
	// SaveTimeout bounds how long a finished table waits on the database.
	SaveTimeout = 5 * time.Second
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS match_history (
	id         UUID PRIMARY KEY,
	room_code  TEXT NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	ended_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	turns      INT NOT NULL,
	winner_id  TEXT,
	end_reason TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_match_history_ended_at ON match_history(ended_at DESC);
CREATE TABLE IF NOT EXISTS match_player (
	match_id  UUID NOT NULL REFERENCES match_history(id),
	player_id TEXT NOT NULL,
	user_id   TEXT,
	name      TEXT NOT NULL,
	bot       BOOLEAN NOT NULL DEFAULT false,
	place     SMALLINT NOT NULL,
	PRIMARY KEY (match_id, player_id)
);
CREATE INDEX IF NOT EXISTS idx_match_player_user_id ON match_player(user_id);
`

// Store persists and retrieves match history in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the history tables exist.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// InsertMatch records a finished match and its seats in one transaction.
func (s *Store) InsertMatch(ctx context.Context, rec MatchRecord) error {
	if s == nil || s.pool == nil {
		return nil
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var winner *string
		if rec.WinnerID != "" {
			winner = &rec.WinnerID
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO match_history (id, room_code, started_at, ended_at, turns, winner_id, end_reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rec.ID, rec.RoomCode, rec.StartedAt, rec.EndedAt, rec.Turns, winner, rec.EndReason)
		if err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for _, p := range rec.Players {
			var userID *string
			if p.UserID != "" {
				userID = &p.UserID
			}
			batch.Queue(`INSERT INTO match_player (match_id, player_id, user_id, name, bot, place) VALUES ($1, $2, $3, $4, $5, $6)`,
				rec.ID, p.PlayerID, userID, p.Name, p.Bot, p.Place)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

// ListByUserID returns the matches the user took part in, newest first.
// Each record has YourPlace set for the requesting user.
func (s *Store) ListByUserID(ctx context.Context, userID string, limit int) ([]MatchRecord, error) {
	if s == nil || s.pool == nil {
		return []MatchRecord{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT h.id, h.room_code, h.started_at, h.ended_at, h.turns, COALESCE(h.winner_id, ''), h.end_reason
		FROM match_history h
		WHERE EXISTS (SELECT 1 FROM match_player p WHERE p.match_id = h.id AND p.user_id = $1)
		ORDER BY h.ended_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (MatchRecord, error) {
		var r MatchRecord
		err := row.Scan(&r.ID, &r.RoomCode, &r.StartedAt, &r.EndedAt, &r.Turns, &r.WinnerID, &r.EndReason)
		r.StartedAt = r.StartedAt.UTC()
		r.EndedAt = r.EndedAt.UTC()
		return r, err
	})
	if err != nil {
		return nil, err
	}

	for i := range out {
		players, err := s.listPlayers(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Players = players
		out[i].YourPlace = placeOf(out[i], userID)
	}
	return out, nil
}

func (s *Store) listPlayers(ctx context.Context, matchID string) ([]MatchPlayer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT player_id, COALESCE(user_id, ''), name, bot, place
		FROM match_player
		WHERE match_id = $1
		ORDER BY place`,
		matchID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (MatchPlayer, error) {
		var p MatchPlayer
		err := row.Scan(&p.PlayerID, &p.UserID, &p.Name, &p.Bot, &p.Place)
		return p, err
	})
}
