package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"dil-avcilari/internal/game"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// MigrationsDir is the repo-relative home of the SQL migration pairs,
// shared by cmd/migrate and cmd/migrate-create.
const MigrationsDir = "db/migrations"

type Config struct {
	TransitionMillis         int
	RevealMillis             int
	GraceMillis              int
	TimeoutDropMillis        int
	JokerRiskMillis          int
	TickMillis               int
	FetchTimeoutSeconds      int
	SocialDBPath             string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	GeminiAPIKey             string
	GeminiModel              string
	GeminiBaseURL            string
}

func Default() Config {
	return Config{
		TransitionMillis:         4000,
		RevealMillis:             1500,
		GraceMillis:              2000,
		TimeoutDropMillis:        2500,
		JokerRiskMillis:          1000,
		TickMillis:               1000,
		FetchTimeoutSeconds:      30,
		SocialDBPath:             "data/dilavcilar_db_users.json",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		GeminiModel:              "gemini-2.5-flash",
	}
}

func Load() Config {
	cfg := Default()
	loadInt(&cfg.TransitionMillis, "TRANSITION_MILLIS")
	loadInt(&cfg.RevealMillis, "REVEAL_MILLIS")
	loadInt(&cfg.GraceMillis, "GRACE_MILLIS")
	loadInt(&cfg.TimeoutDropMillis, "TIMEOUT_DROP_MILLIS")
	loadInt(&cfg.JokerRiskMillis, "JOKER_RISK_MILLIS")
	loadInt(&cfg.TickMillis, "TICK_MILLIS")
	loadInt(&cfg.FetchTimeoutSeconds, "FETCH_TIMEOUT_SECONDS")
	loadInt(&cfg.DBMaxOpenConns, "DB_MAX_OPEN_CONNS")
	loadInt(&cfg.DBMaxIdleConns, "DB_MAX_IDLE_CONNS")
	loadInt(&cfg.DBConnMaxLifetimeSeconds, "DB_CONN_MAX_LIFETIME_SECONDS")
	loadInt(&cfg.DBConnMaxIdleTimeSeconds, "DB_CONN_MAX_IDLE_SECONDS")
	if raw := os.Getenv("SOCIAL_DB_PATH"); raw != "" {
		cfg.SocialDBPath = raw
	}
	if raw := os.Getenv("GEMINI_API_KEY"); raw != "" {
		cfg.GeminiAPIKey = raw
	}
	if raw := os.Getenv("GEMINI_MODEL"); raw != "" {
		cfg.GeminiModel = raw
	}
	if raw := os.Getenv("GEMINI_BASE_URL"); raw != "" {
		cfg.GeminiBaseURL = raw
	}
	return cfg
}

func loadInt(dest *int, key string) {
	if raw := os.Getenv(key); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			*dest = value
		}
	}
}

// Timing converts the configured delays into the orchestrator's schedule.
func (c Config) Timing() game.Timing {
	return game.Timing{
		Transition:   time.Duration(c.TransitionMillis) * time.Millisecond,
		Reveal:       time.Duration(c.RevealMillis) * time.Millisecond,
		Grace:        time.Duration(c.GraceMillis) * time.Millisecond,
		TimeoutDrop:  time.Duration(c.TimeoutDropMillis) * time.Millisecond,
		JokerRisk:    time.Duration(c.JokerRiskMillis) * time.Millisecond,
		Tick:         time.Duration(c.TickMillis) * time.Millisecond,
		FetchTimeout: time.Duration(c.FetchTimeoutSeconds) * time.Second,
	}
}
