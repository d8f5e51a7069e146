// Package config loads docmeta.yaml. Every field is optional: defaults are
// applied per domain after the file (if any) is decoded.
package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the configuration format version written by Init.
const CurrentVersion = "1.0"

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "docmeta.yaml"

// Config is the root configuration.
type Config struct {
	Version string        `yaml:"version"`
	Sources SourcesConfig `yaml:"sources"`
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourcesConfig locates the documentation sources, relative to the project
// root.
type SourcesConfig struct {
	ComponentsDir    string       `yaml:"components_dir"`
	MilestonesDir    string       `yaml:"milestones_dir"`
	MilestonePattern string       `yaml:"milestone_pattern"`
	IgnoreFile       string       `yaml:"ignore_file"`
	ProjectFiles     []FileSource `yaml:"project_files"`
	ReportFiles      []FileSource `yaml:"report_files"`
}

// FileSource is a fixed project or report document. In YAML it is either a
// plain path or a mapping with path, name and description.
type FileSource struct {
	Path        string `yaml:"path"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// UnmarshalYAML accepts the scalar shorthand.
func (f *FileSource) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.Path = value.Value
		return nil
	}
	type plain FileSource
	var p plain
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("file source: %w", err)
	}
	*f = FileSource(p)
	return nil
}

// OutputConfig locates the build output, relative to the project root.
type OutputConfig struct {
	Directory    string `yaml:"directory"`
	MetadataFile string `yaml:"metadata_file"`
	URLPrefix    string `yaml:"url_prefix"`
	Clean        bool   `yaml:"clean"`
}

// BuildConfig tunes the pipeline.
type BuildConfig struct {
	Workers              int                `yaml:"workers"`
	WriteBackSynthesized bool               `yaml:"write_back_synthesized"`
	LastModified         LastModifiedSource `yaml:"last_modified"`
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// OutputDir resolves the output directory against root.
func (c *Config) OutputDir(root string) string {
	return resolve(root, c.Output.Directory)
}

// MetadataPath resolves the metadata JSON path against root.
func (c *Config) MetadataPath(root string) string {
	return resolve(root, c.Output.MetadataFile)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
