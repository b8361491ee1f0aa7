package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"twilight-battle-server/api"
	"twilight-battle-server/auth"
	"twilight-battle-server/config"
	"twilight-battle-server/lobby"
	"twilight-battle-server/loghandler"
	"twilight-battle-server/spell"
	"twilight-battle-server/storage"
	"twilight-battle-server/ws"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("LOG_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stderr, level)))

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; using environment variables", "tag", "main")
	}

	cfg := config.Load()
	slog.Info("configuration loaded", "tag", "main",
		"port", cfg.WSPort,
		"maxPlayers", cfg.Rules.MaxPlayers,
		"startingLife", cfg.Rules.StartingLife,
		"turnLimitSec", cfg.TurnLimitSec,
		"bots", len(cfg.BotProfiles))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	history := openHistory(ctx, cfg.DatabaseURL)
	defer history.Close()

	// Identity is optional; without it clients play anonymously and /api/history is closed.
	var hubIdentity ws.Identifier
	var apiIdentity api.Identifier
	if cfg.NeonAuthBaseURL == "" {
		slog.Info("NEON_AUTH_BASE_URL is not set; auth disabled", "tag", "main")
	} else if v, err := auth.NewVerifier(cfg.NeonAuthBaseURL); err != nil {
		slog.Error("auth disabled", "tag", "main", "err", err)
	} else {
		hubIdentity, apiIdentity = v, v
		slog.Info("auth configured", "tag", "main", "baseURL", cfg.NeonAuthBaseURL)
	}

	rooms := lobby.NewRegistry(cfg, spell.Default(), history)
	go rooms.RunSweeper(ctx, sweepInterval)

	hub := ws.NewHub(cfg, rooms, hubIdentity)
	go hub.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewHandler(cfg, rooms, history, apiIdentity), hub.ServeWS)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.WSPort),
		Handler: router,
	}
	go func() {
		slog.Info("Twilight Battle server listening", "tag", "main", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "tag", "main", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down", "tag", "main")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", "tag", "main", "err", err)
	}
	rooms.Shutdown(shutdownCtx)
}

// openHistory connects to Postgres when DATABASE_URL is set and falls back to memory.
func openHistory(ctx context.Context, databaseURL string) storage.HistoryStore {
	if databaseURL == "" {
		slog.Info("DATABASE_URL is not set; match history kept in memory", "tag", "storage")
		return storage.NewMemoryStore()
	}
	store, err := storage.NewStore(ctx, databaseURL)
	if err != nil {
		slog.Error("database unavailable; match history kept in memory", "tag", "storage", "err", err)
		return storage.NewMemoryStore()
	}
	slog.Info("match history stored in postgres", "tag", "storage")
	return store
}
