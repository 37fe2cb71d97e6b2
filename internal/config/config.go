// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultTitles is the compiled-in set of form titles this tool pulls.
// It is carried on Cfg so components receive the title set explicitly
// rather than reaching for a package-level constant.
var DefaultTitles = []string{"Dogs & Children Survey"}

// Cfg holds all runtime configuration loaded from environment variables.
type Cfg struct {
	// APIKey is the Typeform personal access token (TYPEFORM_API_KEY).
	APIKey string

	// BaseURL overrides the Typeform API endpoint (TYPEFORM_BASE_URL).
	// Empty means the public API.
	BaseURL string

	// FormsDir receives form definition files (FORMS_DIR, default "forms").
	FormsDir string
	// DataDir receives sanitized response files (DATA_DIR, default "data").
	DataDir string

	// LogLevel is parsed from LOG_LEVEL (debug|info|warn|error).
	LogLevel slog.Level

	// Titles is the target form set.
	Titles []string
}

// Load reads .env (if present) then environment variables and returns Cfg.
// A missing TYPEFORM_API_KEY fails here, before any network call is made.
func Load() (*Cfg, error) {
	// Best-effort: load .env from current directory
	_ = godotenv.Load()

	key := strings.TrimSpace(os.Getenv("TYPEFORM_API_KEY"))
	if key == "" {
		return nil, fmt.Errorf("TYPEFORM_API_KEY must be set")
	}

	baseURL := strings.TrimSpace(os.Getenv("TYPEFORM_BASE_URL"))
	baseURL = strings.TrimRight(baseURL, "/")

	formsDir := strings.TrimSpace(os.Getenv("FORMS_DIR"))
	if formsDir == "" {
		formsDir = "forms"
	}
	dataDir := strings.TrimSpace(os.Getenv("DATA_DIR"))
	if dataDir == "" {
		dataDir = "data"
	}

	return &Cfg{
		APIKey:   key,
		BaseURL:  baseURL,
		FormsDir: formsDir,
		DataDir:  dataDir,
		LogLevel: parseLevel(os.Getenv("LOG_LEVEL")),
		Titles:   DefaultTitles,
	}, nil
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
