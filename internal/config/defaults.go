package config

import (
	"fmt"
	"path"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// Default source locations.
var (
	DefaultProjectFiles = []FileSource{
		{Path: "README.md"},
		{Path: "docs/IMPLEMENTATION_PLAN.md"},
		{Path: "docs/ARCHITECTURE.md"},
		{Path: "CONTRIBUTING.md"},
		{Path: "CHANGELOG.md"},
	}
	DefaultReportFiles = []FileSource{
		{Path: "docs/PROJECT_STATUS.md"},
		{Path: "docs/TEST_REPORT.md"},
		{Path: "docs/COVERAGE_REPORT.md"},
		{Path: "docs/ACCESSIBILITY_REPORT.md"},
	}
)

const defaultWorkers = 4

// SourcesDefaultApplier handles source location defaults.
type SourcesDefaultApplier struct{}

func (s *SourcesDefaultApplier) Domain() string { return "sources" }

func (s *SourcesDefaultApplier) ApplyDefaults(cfg *Config) error {
	src := &cfg.Sources
	if src.ComponentsDir == "" {
		src.ComponentsDir = "nebula/components"
	}
	if src.MilestonesDir == "" {
		src.MilestonesDir = "docs"
	}
	if src.MilestonePattern == "" {
		src.MilestonePattern = "milestone-*"
	}
	if src.IgnoreFile == "" {
		src.IgnoreFile = ".docignore"
	}
	// nil means "not configured"; an explicit empty list disables the kind.
	if src.ProjectFiles == nil {
		src.ProjectFiles = append([]FileSource(nil), DefaultProjectFiles...)
	}
	if src.ReportFiles == nil {
		src.ReportFiles = append([]FileSource(nil), DefaultReportFiles...)
	}
	return nil
}

// OutputDefaultApplier handles output defaults.
type OutputDefaultApplier struct{}

func (o *OutputDefaultApplier) Domain() string { return "output" }

func (o *OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "public/docs"
	}
	if cfg.Output.MetadataFile == "" {
		cfg.Output.MetadataFile = path.Join(cfg.Output.Directory, "metadata.json")
	}
	if cfg.Output.URLPrefix == "" {
		cfg.Output.URLPrefix = "docs"
	}
	return nil
}

// BuildDefaultApplier handles build defaults.
type BuildDefaultApplier struct{}

func (b *BuildDefaultApplier) Domain() string { return "build" }

func (b *BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Build.Workers <= 0 {
		cfg.Build.Workers = defaultWorkers
	}
	if cfg.Build.LastModified == "" {
		cfg.Build.LastModified = LastModifiedMtime
	}
	return nil
}

// LoggingDefaultApplier handles logging defaults.
type LoggingDefaultApplier struct{}

func (l *LoggingDefaultApplier) Domain() string { return "logging" }

// ApplyDefaults fills empty values and canonicalizes recognized ones.
// Unrecognized values are kept for ValidateConfig to report.
func (l *LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if lvl, ok := logLevelNormalizer.Lookup(string(cfg.Logging.Level)); ok || cfg.Logging.Level == "" {
		cfg.Logging.Level = NormalizeLogLevel(string(lvl))
	}
	if f, ok := logFormatNormalizer.Lookup(string(cfg.Logging.Format)); ok || cfg.Logging.Format == "" {
		cfg.Logging.Format = NormalizeLogFormat(string(f))
	}
	return nil
}

// CompositeDefaultApplier applies defaults across all configuration domains.
type CompositeDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []DefaultApplier{
			&SourcesDefaultApplier{},
			&OutputDefaultApplier{},
			&BuildDefaultApplier{},
			&LoggingDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains.
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = NewDefaultApplier().ApplyDefaults(cfg)
	return cfg
}
