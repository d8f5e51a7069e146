package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docmeta/internal/logfields"
)

// EnvLogLevel overrides logging.level when set.
const EnvLogLevel = "DOCMETA_LOG_LEVEL"

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local from dir. Variables already present
// in the process environment are never overwritten.
func loadEnvFiles(dir string) error {
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		slog.Debug("Loaded environment file", logfields.Path(p))
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Logging.Level = LogLevel(lvl)
	}
}
