package config

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Rules.MaxPlayers != 6 {
		t.Errorf("expected MaxPlayers=6, got %d", cfg.Rules.MaxPlayers)
	}
	if cfg.Rules.MinPlayers != 2 {
		t.Errorf("expected MinPlayers=2, got %d", cfg.Rules.MinPlayers)
	}
	if cfg.Rules.StartingLife != 5000 {
		t.Errorf("expected StartingLife=5000, got %d", cfg.Rules.StartingLife)
	}
	if cfg.Rules.InitialHandSize != 5 {
		t.Errorf("expected InitialHandSize=5, got %d", cfg.Rules.InitialHandSize)
	}
	if cfg.Rules.DayNightPeriod != 24 {
		t.Errorf("expected DayNightPeriod=24, got %d", cfg.Rules.DayNightPeriod)
	}
	if cfg.WSPort != 8080 {
		t.Errorf("expected WSPort=8080, got %d", cfg.WSPort)
	}
	if cfg.MaxNameLength != 24 {
		t.Errorf("expected MaxNameLength=24, got %d", cfg.MaxNameLength)
	}
	if len(cfg.BotProfiles) == 0 {
		t.Error("expected at least one bot profile")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("WS_PORT", "9090")
	t.Setenv("MAX_PLAYERS", "4")
	t.Setenv("TURN_LIMIT_SEC", "30")
	t.Setenv("DATABASE_URL", "postgres://localhost/twilight")

	cfg := Load()

	if cfg.WSPort != 9090 {
		t.Errorf("expected WSPort=9090 after env override, got %d", cfg.WSPort)
	}
	if cfg.Rules.MaxPlayers != 4 {
		t.Errorf("expected MaxPlayers=4 after env override, got %d", cfg.Rules.MaxPlayers)
	}
	if cfg.TurnLimitSec != 30 {
		t.Errorf("expected TurnLimitSec=30 after env override, got %d", cfg.TurnLimitSec)
	}
	if cfg.DatabaseURL != "postgres://localhost/twilight" {
		t.Errorf("expected DatabaseURL override, got %q", cfg.DatabaseURL)
	}
	// Non-overridden fields should remain default
	if cfg.Rules.StartingLife != 5000 {
		t.Errorf("expected StartingLife=5000 (default), got %d", cfg.Rules.StartingLife)
	}
}

func TestLoadWithInvalidEnv(t *testing.T) {
	t.Setenv("STARTING_LIFE", "lots")

	cfg := Load()

	if cfg.Rules.StartingLife != 5000 {
		t.Errorf("expected StartingLife=5000 (default) with invalid env, got %d", cfg.Rules.StartingLife)
	}
}

func TestLoadClampsSeatLimits(t *testing.T) {
	t.Setenv("MAX_PLAYERS", "12")
	t.Setenv("MIN_PLAYERS", "1")

	cfg := Load()

	if cfg.Rules.MaxPlayers != 6 {
		t.Errorf("expected MaxPlayers clamped to 6, got %d", cfg.Rules.MaxPlayers)
	}
	if cfg.Rules.MinPlayers != 2 {
		t.Errorf("expected MinPlayers clamped to 2, got %d", cfg.Rules.MinPlayers)
	}
}
