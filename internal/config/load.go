package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is wrapped by Load when a required file is missing.
var ErrNotFound = errors.New("configuration file not found")

// Load reads the configuration at configPath. Environment files next to it
// are loaded first so ${VAR} references resolve. A missing file yields the
// defaults unless required is set. found reports whether a file was read.
func Load(configPath string, required bool) (cfg *Config, found bool, err error) {
	if err := loadEnvFiles(filepath.Dir(configPath)); err != nil {
		return nil, false, err
	}

	cfg = &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if required {
			return nil, false, fmt.Errorf("%w: %s", ErrNotFound, configPath)
		}
	case err != nil:
		return nil, false, fmt.Errorf("failed to read config file: %w", err)
	default:
		found = true
		if err := Parse(data, cfg); err != nil {
			return nil, true, err
		}
	}

	applyEnvOverrides(cfg)
	if err := NewDefaultApplier().ApplyDefaults(cfg); err != nil {
		return nil, found, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, found, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, found, nil
}

// Parse expands ${VAR} references in data and decodes it into cfg.
func Parse(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

const exampleHeader = `# docmeta configuration. Every key is optional; shown values are defaults.
# ${VAR} references are expanded from the environment and .env files.
`

// exampleComments documents the enumerated keys of the example file.
func exampleComments() string {
	return exampleHeader +
		"# build.last_modified: " + strings.Join(lastModifiedNormalizer.ValidKeys(), ", ") + "\n" +
		"# logging.level: " + strings.Join(logLevelNormalizer.ValidKeys(), ", ") + "\n" +
		"# logging.format: " + strings.Join(logFormatNormalizer.ValidKeys(), ", ") + "\n"
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Default()
	example.Sources.ProjectFiles[0] = FileSource{Path: "README.md", Name: "Overview", Description: "Project introduction."}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, append([]byte(exampleComments()), data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
