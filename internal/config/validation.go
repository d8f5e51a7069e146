package config

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const maxWorkers = 64

// ValidateConfig checks a configuration after defaults have been applied.
func ValidateConfig(cfg *Config) error {
	if cfg.Version != CurrentVersion {
		return fmt.Errorf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)
	}
	if err := validateSources(&cfg.Sources); err != nil {
		return err
	}
	if err := validateOutput(&cfg.Output); err != nil {
		return err
	}
	if err := validateBuild(&cfg.Build); err != nil {
		return err
	}
	return validateLogging(&cfg.Logging)
}

func validateSources(s *SourcesConfig) error {
	for field, p := range map[string]string{
		"sources.components_dir": s.ComponentsDir,
		"sources.milestones_dir": s.MilestonesDir,
	} {
		if err := relativePath(field, p); err != nil {
			return err
		}
	}
	if !doublestar.ValidatePattern(s.MilestonePattern) {
		return fmt.Errorf("sources.milestone_pattern: invalid glob %q", s.MilestonePattern)
	}
	if strings.Contains(s.IgnoreFile, "/") {
		return fmt.Errorf("sources.ignore_file must be a file name, got %q", s.IgnoreFile)
	}
	for i, f := range append(append([]FileSource(nil), s.ProjectFiles...), s.ReportFiles...) {
		if strings.TrimSpace(f.Path) == "" {
			return fmt.Errorf("sources: file entry %d has no path", i)
		}
		if err := relativePath("sources file "+f.Path, f.Path); err != nil {
			return err
		}
	}
	return nil
}

func validateOutput(o *OutputConfig) error {
	if strings.TrimSpace(o.Directory) == "" {
		return errors.New("output.directory must not be empty")
	}
	if strings.Contains(o.URLPrefix, "..") {
		return fmt.Errorf("output.url_prefix must not contain '..': %q", o.URLPrefix)
	}
	return nil
}

func validateBuild(b *BuildConfig) error {
	if b.Workers < 1 || b.Workers > maxWorkers {
		return fmt.Errorf("build.workers must be between 1 and %d, got %d", maxWorkers, b.Workers)
	}
	lm, err := lastModifiedNormalizer.NormalizeWithError(string(b.LastModified))
	if err != nil {
		return fmt.Errorf("build.last_modified: %w", err)
	}
	b.LastModified = lm
	return nil
}

func validateLogging(l *LoggingConfig) error {
	level, err := logLevelNormalizer.NormalizeWithError(string(l.Level))
	if err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	format, err := logFormatNormalizer.NormalizeWithError(string(l.Format))
	if err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}
	l.Level, l.Format = level, format
	return nil
}

// relativePath rejects absolute paths and paths escaping the project root.
func relativePath(field, p string) error {
	slashed := strings.ReplaceAll(p, "\\", "/")
	if path.IsAbs(slashed) {
		return fmt.Errorf("%s must be relative to the project root: %q", field, p)
	}
	if c := path.Clean(slashed); c == ".." || strings.HasPrefix(c, "../") {
		return fmt.Errorf("%s escapes the project root: %q", field, p)
	}
	return nil
}
