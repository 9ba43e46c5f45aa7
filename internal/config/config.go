// internal/config/config.go
//
// Process configuration read from the environment (optionally seeded from
// a .env file by main via godotenv).
//
// Variables and defaults:
//   PORT=5175  LOG_LEVEL=info  CLIENT_ORIGIN=http://localhost:5173
//   NODE_ENV=production turns on Secure/SameSite=None cookies.
//   CONTENT_SOURCE=embedded|json|xlsx|sql  CONTENT_FILE
//   CONTENT_DB_DRIVER=sqlite3|postgres|mysql  CONTENT_DB_DSN  CONTENT_DB_SEED=true
//   SESSION_SECRET  SESSION_TTL=30m  SWEEP_EVERY=1m
//   SETTLE_ANSWER_MS=1500  SETTLE_PAIR_MS=1000  SETTLE_MATCH_MS=2000
//   SHUFFLE_SEED=0 (0 = time seeded)

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/wordquest/internal/content"
	"github.com/robalobadob/wordquest/internal/quiz"
)

const devSecret = "dev_secret_change_me"

type Config struct {
	Port         string
	LogLevel     string
	ClientOrigin string
	Production   bool

	Content content.Options

	SessionSecret string
	SessionTTL    time.Duration
	SweepEvery    time.Duration

	Timings     quiz.Timings
	ShuffleSeed int64
}

// Load reads the environment. Malformed numbers and durations are errors;
// unset variables fall back to defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:    os.Getenv("NODE_ENV") == "production",
		SessionSecret: getEnv("SESSION_SECRET", devSecret),
		Content: content.Options{
			Kind:   getEnv("CONTENT_SOURCE", "embedded"),
			File:   os.Getenv("CONTENT_FILE"),
			Driver: getEnv("CONTENT_DB_DRIVER", "sqlite3"),
			DSN:    getEnv("CONTENT_DB_DSN", "./data/content.db"),
		},
	}

	var errs []error
	var err error
	if cfg.Content.Seed, err = parseBool("CONTENT_DB_SEED", true); err != nil {
		errs = append(errs, err)
	}
	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", 30*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if cfg.SweepEvery, err = parseDuration("SWEEP_EVERY", time.Minute); err != nil {
		errs = append(errs, err)
	}
	if cfg.Timings.Answer, err = parseMillis("SETTLE_ANSWER_MS", quiz.DefaultTimings.Answer); err != nil {
		errs = append(errs, err)
	}
	if cfg.Timings.PairRemoval, err = parseMillis("SETTLE_PAIR_MS", quiz.DefaultTimings.PairRemoval); err != nil {
		errs = append(errs, err)
	}
	if cfg.Timings.MatchComplete, err = parseMillis("SETTLE_MATCH_MS", quiz.DefaultTimings.MatchComplete); err != nil {
		errs = append(errs, err)
	}
	if v := os.Getenv("SHUFFLE_SEED"); v != "" {
		if cfg.ShuffleSeed, err = strconv.ParseInt(v, 10, 64); err != nil {
			errs = append(errs, fmt.Errorf("SHUFFLE_SEED: %w", err))
		}
	}

	switch cfg.Content.Kind {
	case "json", "xlsx":
		if cfg.Content.File == "" {
			errs = append(errs, fmt.Errorf("CONTENT_FILE is required for CONTENT_SOURCE=%s", cfg.Content.Kind))
		}
	}
	if cfg.Production && cfg.SessionSecret == devSecret {
		errs = append(errs, errors.New("SESSION_SECRET must be set in production"))
	}
	return cfg, errors.Join(errs...)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}

func parseMillis(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def, fmt.Errorf("%s: want non-negative milliseconds, got %q", k, v)
	}
	return time.Duration(n) * time.Millisecond, nil
}

func parseBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
