package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ScoreMode selects which numeric field a card shows as the book's
// relevance indicator. Each mode maps to exactly one response field with a
// single fallback when that field is absent.
type ScoreMode string

const (
	ScoreStars  ScoreMode = "stars"
	ScorePct    ScoreMode = "score_pct"
	ScoreRelPct ScoreMode = "rel_pct"
	ScoreNone   ScoreMode = "none"
)

// ParseScoreMode normalizes a score mode string. Unknown values fall back
// to the default with ok=false so callers can warn.
func ParseScoreMode(raw string) (ScoreMode, bool) {
	switch ScoreMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ScoreStars:
		return ScoreStars, true
	case ScorePct:
		return ScorePct, true
	case ScoreRelPct:
		return ScoreRelPct, true
	case ScoreNone:
		return ScoreNone, true
	case "":
		return DefaultScoreMode, true
	}
	return DefaultScoreMode, false
}

// NextScoreMode cycles through the display modes in a fixed order.
func NextScoreMode(mode ScoreMode) ScoreMode {
	switch mode {
	case ScoreStars:
		return ScorePct
	case ScorePct:
		return ScoreRelPct
	case ScoreRelPct:
		return ScoreNone
	default:
		return ScoreStars
	}
}

// Config holds everything curio needs to reach the backend. It is built
// once in main and passed down; there is no package-level config.
type Config struct {
	BaseURL   string
	ScoreMode ScoreMode
	TopK      int
}

const (
	envBaseURL   = "CURIO_BASE_URL"
	envScoreMode = "CURIO_SCORE_MODE"
	envTopK      = "CURIO_TOP_K"

	defaultBaseURL = "http://localhost:8000"
	defaultTopK    = 5

	minTopK = 1
	maxTopK = 20
)

// DefaultScoreMode is used when no mode is configured or the configured
// value is unknown.
const DefaultScoreMode = ScoreStars

// Load reads configuration from the process environment, optionally
// preloaded from a .env file. A missing default .env is fine; variables
// already set in the process win over file values.
func Load(dotenvPath string, getenv func(string) string) (Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := Config{
		BaseURL:   defaultBaseURL,
		ScoreMode: DefaultScoreMode,
		TopK:      defaultTopK,
	}

	if base := strings.TrimSpace(getenv(envBaseURL)); base != "" {
		cfg.BaseURL = base
	}

	if raw := getenv(envScoreMode); strings.TrimSpace(raw) != "" {
		mode, ok := ParseScoreMode(raw)
		if !ok {
			log.Printf("unknown %s %q, using %q", envScoreMode, raw, DefaultScoreMode)
		}
		cfg.ScoreMode = mode
	}

	if raw := strings.TrimSpace(getenv(envTopK)); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s %q: %w", envTopK, raw, err)
		}
		cfg.TopK = clampTopK(k)
	}

	return cfg, nil
}

func clampTopK(k int) int {
	if k < minTopK {
		return minTopK
	}
	if k > maxTopK {
		return maxTopK
	}
	return k
}
