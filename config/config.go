package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
)

// BotParams holds the parameters for one bot profile (name and pacing).
type BotParams struct {
	Name       string `json:"name"`
	DelayMinMS int    `json:"delay_min_ms"`
	DelayMaxMS int    `json:"delay_max_ms"`
	Aggression int    `json:"aggression"` // 0-100, probability to attack when allowed instead of only building the board
}

// RulesConfig holds the tunable numbers of the rules engine.
type RulesConfig struct {
	MaxPlayers      int `json:"max_players"`
	MinPlayers      int `json:"min_players"`
	StartingLife    int `json:"starting_life"`
	InitialHandSize int `json:"initial_hand_size"`
	// DayNightPeriod is the number of end_turn calls between day/night toggles.
	DayNightPeriod int `json:"day_night_period"`
}

// Config holds all configurable server parameters.
type Config struct {
	WSPort        int `json:"ws_port"`
	MaxNameLength int `json:"max_name_length"`

	// TurnLimitSec forces an end_turn after this many seconds of inactivity. 0 disables the clock.
	TurnLimitSec         int `json:"turn_limit_sec"`
	TurnCountdownShowSec int `json:"turn_countdown_show_sec"`
	// RoomIdleTimeoutSec removes lobby rooms nobody joined within this window. 0 disables the sweep.
	RoomIdleTimeoutSec int `json:"room_idle_timeout_sec"`

	Rules RulesConfig `json:"rules"`

	// BotProfiles lists available bot seats; one is chosen at random when a bot is added to a room.
	BotProfiles []BotParams `json:"bot_profiles"`

	DatabaseURL     string `json:"database_url"`
	NeonAuthBaseURL string `json:"neon_auth_base_url"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		WSPort:               8080,
		MaxNameLength:        24,
		TurnLimitSec:         90,
		TurnCountdownShowSec: 15,
		RoomIdleTimeoutSec:   1800,
		Rules: RulesConfig{
			MaxPlayers:      6,
			MinPlayers:      2,
			StartingLife:    5000,
			InitialHandSize: 5,
			DayNightPeriod:  24,
		},
		BotProfiles: []BotParams{
			{Name: "Morgana", DelayMinMS: 800, DelayMaxMS: 2000, Aggression: 80},
			{Name: "Tayler", DelayMinMS: 500, DelayMaxMS: 1200, Aggression: 50},
		},
	}
}

// Load reads configuration from an optional config.json file,
// then applies environment variable overrides. Fields not set
// in either source retain their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			slog.Warn("failed to parse config.json", "tag", "config", "err", err)
		}
	}

	overrideInt(&cfg.WSPort, "WS_PORT")
	overrideInt(&cfg.MaxNameLength, "MAX_NAME_LENGTH")
	overrideInt(&cfg.TurnLimitSec, "TURN_LIMIT_SEC")
	overrideInt(&cfg.TurnCountdownShowSec, "TURN_COUNTDOWN_SHOW_SEC")
	overrideInt(&cfg.RoomIdleTimeoutSec, "ROOM_IDLE_TIMEOUT_SEC")
	overrideInt(&cfg.Rules.MaxPlayers, "MAX_PLAYERS")
	overrideInt(&cfg.Rules.MinPlayers, "MIN_PLAYERS")
	overrideInt(&cfg.Rules.StartingLife, "STARTING_LIFE")
	overrideInt(&cfg.Rules.InitialHandSize, "INITIAL_HAND_SIZE")
	overrideInt(&cfg.Rules.DayNightPeriod, "DAY_NIGHT_PERIOD")
	if len(cfg.BotProfiles) > 0 {
		overrideString(&cfg.BotProfiles[0].Name, "BOT_NAME")
		overrideInt(&cfg.BotProfiles[0].DelayMinMS, "BOT_DELAY_MIN_MS")
		overrideInt(&cfg.BotProfiles[0].DelayMaxMS, "BOT_DELAY_MAX_MS")
	}
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.NeonAuthBaseURL, "NEON_AUTH_BASE_URL")

	cfg.Rules.clamp()
	return cfg
}

// clamp keeps seat limits inside the 2..6 range the table layout supports.
func (r *RulesConfig) clamp() {
	if r.MaxPlayers < 2 || r.MaxPlayers > 6 {
		slog.Warn("max_players out of range, using 6", "tag", "config", "value", r.MaxPlayers)
		r.MaxPlayers = 6
	}
	if r.MinPlayers < 2 || r.MinPlayers > r.MaxPlayers {
		r.MinPlayers = 2
	}
	if r.DayNightPeriod <= 0 {
		r.DayNightPeriod = 24
	}
	if r.StartingLife <= 0 {
		r.StartingLife = 5000
	}
	if r.InitialHandSize < 0 {
		r.InitialHandSize = 0
	}
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			slog.Warn("invalid environment value", "tag", "config", "key", envKey, "value", val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
