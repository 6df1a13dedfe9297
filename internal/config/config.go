// internal/config/config.go
//
// Process configuration read from the environment (and a .env file in
// development). Every value has a default, so an empty environment
// starts a working local server.
//
// Environment variables:
//   PORT=5175               LOG_LEVEL=info
//   PAIRS=6                 BOARD_SIZE=<2×PAIRS>
//   MISMATCH_DELAY_MS=1500  PREVIEW_DELAY_MS=1000
//   DB_PATH=./data/pairs.db SESSION_TTL_MIN=60
//   JWT_SECRET, JWT_EXPIRES_DAYS=14, COOKIE_NAME=pairs_token
//   CLIENT_ORIGIN=http://localhost:5173, DAILY_SALT, NODE_ENV

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/robalobadob/pairs/internal/game"
)

// Config holds the application's configuration values.
type Config struct {
	Port     string
	LogLevel string

	Pairs         int           // default board size in pairs
	BoardSize     int           // must be 2×Pairs
	MismatchDelay time.Duration // how long a mismatched pair stays visible
	PreviewDelay  time.Duration // opening reveal of the whole board

	DBPath     string
	SessionTTL time.Duration

	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	DailySalt      string
	Production     bool
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (Config, error) {
	pairs, err := envInt("PAIRS", 6)
	if err != nil {
		return Config{}, err
	}
	boardSize, err := envInt("BOARD_SIZE", 2*pairs)
	if err != nil {
		return Config{}, err
	}
	mismatchMs, err := envInt("MISMATCH_DELAY_MS", 1500)
	if err != nil {
		return Config{}, err
	}
	previewMs, err := envInt("PREVIEW_DELAY_MS", 1000)
	if err != nil {
		return Config{}, err
	}
	ttlMin, err := envInt("SESSION_TTL_MIN", 60)
	if err != nil {
		return Config{}, err
	}
	jwtDays, err := envInt("JWT_EXPIRES_DAYS", 14)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Pairs:          pairs,
		BoardSize:      boardSize,
		MismatchDelay:  time.Duration(mismatchMs) * time.Millisecond,
		PreviewDelay:   time.Duration(previewMs) * time.Millisecond,
		DBPath:         getEnv("DB_PATH", "./data/pairs.db"),
		SessionTTL:     time.Duration(ttlMin) * time.Minute,
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: jwtDays,
		CookieName:     getEnv("COOKIE_NAME", "pairs_token"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		Production:     os.Getenv("NODE_ENV") == "production",
	}
	return cfg, cfg.Validate()
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.Pairs < 1 {
		return fmt.Errorf("%w: PAIRS must be at least 1, got %d", game.ErrConfiguration, c.Pairs)
	}
	if c.BoardSize != 2*c.Pairs {
		return fmt.Errorf("%w: BOARD_SIZE %d must be twice PAIRS %d", game.ErrConfiguration, c.BoardSize, c.Pairs)
	}
	if c.MismatchDelay < 0 || c.PreviewDelay < 0 {
		return fmt.Errorf("%w: delays must not be negative", game.ErrConfiguration)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: SESSION_TTL_MIN must be positive", game.ErrConfiguration)
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %v", game.ErrConfiguration, k, err)
	}
	return n, nil
}
