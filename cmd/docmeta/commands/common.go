// Package commands implements the docmeta CLI commands.
package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docmeta/internal/config"
	derrors "git.home.luguber.info/inful/docmeta/internal/foundation/errors"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: <root>/docmeta.yaml, optional)"`
	Root    string           `short:"r" help:"Project root containing the documentation sources" default:"." type:"existingdir"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" default:"1" help:"Build the normalized docs tree and metadata.json (default)"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
	Search SearchCmd `cmd:"" help:"Search a built metadata.json"`
}

// AfterApply runs after flag parsing; set up logging once. Commands that load
// a configuration refine it with ConfigureLogging.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// ConfigPath resolves the configuration file. An explicit --config must exist.
func (c *CLI) ConfigPath() (path string, required bool) {
	if c.Config != "" {
		return c.Config, true
	}
	return filepath.Join(c.Root, config.DefaultFile), false
}

// LoadConfig loads the configuration, classifying failures for exit codes.
func (c *CLI) LoadConfig() (*config.Config, error) {
	path, required := c.ConfigPath()
	cfg, found, err := config.Load(path, required)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, derrors.ConfigError("configuration file not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil, derrors.ConfigError("invalid configuration").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	if !found {
		slog.Debug("No configuration file, using defaults", "path", path)
	}
	return cfg, nil
}

// ConfigureLogging installs the default logger for cfg. --verbose always wins
// over the configured level.
func ConfigureLogging(cfg *config.Config, verbose bool, w io.Writer) *slog.Logger {
	level := config.NormalizeLogLevel(string(cfg.Logging.Level)).SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if config.NormalizeLogFormat(string(cfg.Logging.Format)) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
