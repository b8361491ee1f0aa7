package lobby

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"twilight-battle-server/config"
	"twilight-battle-server/game"
	"twilight-battle-server/roomerrors"
	"twilight-battle-server/storage"
)

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 6
)

// Registry is the directory of live tables keyed by room code.
type Registry struct {
	mu      sync.RWMutex
	tables  map[string]*Table
	cfg     *config.Config
	spells  game.SpellProvider
	history storage.HistoryStore
	rng     *rand.Rand
}

// NewRegistry creates an empty registry. history may be nil, in which case finished
// matches are not recorded.
func NewRegistry(cfg *config.Config, spells game.SpellProvider, history storage.HistoryStore) *Registry {
	return &Registry{
		tables:  make(map[string]*Table),
		cfg:     cfg,
		spells:  spells,
		history: history,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create opens a new table under a fresh code and starts its worker.
func (reg *Registry) Create() *Table {
	reg.mu.Lock()
	code := reg.randCode()
	for reg.tables[code] != nil {
		code = reg.randCode()
	}
	room := game.NewRoom(code, reg.cfg.Rules, game.WithSpells(reg.spells))
	t := NewTable(code, reg.cfg, room)
	t.OnFinish = reg.saveMatch
	reg.tables[code] = t
	reg.mu.Unlock()

	go t.Run()
	go func() {
		<-t.Done
		reg.remove(code)
	}()
	slog.Info("room created", "tag", "lobby", "room", code)
	return t
}

// randCode must be called with mu held; rng is not safe for concurrent use.
func (reg *Registry) randCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeLetters[reg.rng.Intn(len(codeLetters))]
	}
	return string(b)
}

// Get looks a table up by code, case-insensitively.
func (reg *Registry) Get(code string) (*Table, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	t, ok := reg.tables[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, roomerrors.ErrRoomNotFound
	}
	return t, nil
}

// List returns a summary of every live table, sorted by code.
func (reg *Registry) List() []RoomInfo {
	reg.mu.RLock()
	out := make([]RoomInfo, 0, len(reg.tables))
	for _, t := range reg.tables {
		out = append(out, t.Info())
	}
	reg.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (reg *Registry) remove(code string) {
	reg.mu.Lock()
	delete(reg.tables, code)
	reg.mu.Unlock()
	slog.Debug("room removed", "tag", "lobby", "room", code)
}

// Sweep closes tables still in the lobby that have been idle longer than maxIdle.
// Returns the number of tables closed.
func (reg *Registry) Sweep(now time.Time, maxIdle time.Duration) int {
	reg.mu.RLock()
	var stale []*Table
	for _, t := range reg.tables {
		if !t.Info().Started && now.Sub(t.LastActive()) > maxIdle {
			stale = append(stale, t)
		}
	}
	reg.mu.RUnlock()

	for _, t := range stale {
		slog.Info("closing idle room", "tag", "lobby", "room", t.Code)
		t.Close()
	}
	return len(stale)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (reg *Registry) RunSweeper(ctx context.Context, every time.Duration) {
	maxIdle := time.Duration(reg.cfg.RoomIdleTimeoutSec) * time.Second
	if every <= 0 || maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			reg.Sweep(now, maxIdle)
		}
	}
}

// Shutdown closes every table and waits for their workers to exit or ctx to end.
func (reg *Registry) Shutdown(ctx context.Context) {
	reg.mu.RLock()
	tables := make([]*Table, 0, len(reg.tables))
	for _, t := range reg.tables {
		tables = append(tables, t)
	}
	reg.mu.RUnlock()

	for _, t := range tables {
		t.Close()
	}
	for _, t := range tables {
		select {
		case <-t.Done:
		case <-ctx.Done():
			return
		}
	}
}

func (reg *Registry) saveMatch(rec storage.MatchRecord) {
	if reg.history == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storage.SaveTimeout)
		defer cancel()
		if err := reg.history.InsertMatch(ctx, rec); err != nil {
			slog.Error("saving match", "tag", "lobby", "room", rec.RoomCode, "err", err)
		}
	}()
}
