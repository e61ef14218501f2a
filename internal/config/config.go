// rubychanges - Ruby changelog scraper and report generator
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/rubychanges

// Package config provides hierarchical configuration management for rubychanges using koanf.
// Configuration is loaded with priority: environment variables > project config (.rubychanges.yml)
// > user config (~/.config/rubychanges/config.yml) > defaults. Command-line flags are applied on
// top by the cli package. A JSON project config (.rubychanges.json) is read when no YAML one exists.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/rubychanges/internal/change"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "RUBYCHANGES_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the rubychanges configuration
type Configuration struct {
	// SourceDir holds the per-release markdown documents.
	SourceDir string `koanf:"source_dir" yaml:"source_dir" validate:"required"`
	// Database is the canonical YAML store.
	Database string `koanf:"database" yaml:"database" validate:"required"`
	// BaseRelease is the oldest release reports compare against. It has no
	// records of its own.
	BaseRelease string `koanf:"base_release" yaml:"base_release" validate:"required,release"`
	Output      string `koanf:"output" yaml:"output" validate:"required"`
	// DefaultLevel is the minimum importance of reports and listings.
	// Can be set via RUBYCHANGES_DEFAULT_LEVEL env var.
	DefaultLevel int `koanf:"default_level" yaml:"default_level" validate:"min=1,max=3"`
	// Sections are shown next to Language and Core.
	Sections []string `koanf:"sections" yaml:"sections"`
	Verbose  bool     `koanf:"verbose" yaml:"verbose"`

	// Sources records which layer set each key. Not serialized.
	Sources map[string]ConfigSource `koanf:"-" yaml:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .rubychanges.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: XDG config dir)
	UserConfigPath string
	// WarningWriter receives legacy config warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses legacy config warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	sources := make(map[string]ConfigSource)
	warningWriter := getWarningWriter(opts.WarningWriter)

	before := snapshot(k)
	loadDefaults(k)
	before = attribute(k, before, sources, SourceDefault)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}
	before = attribute(k, before, sources, SourceUser)

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	before = attribute(k, before, sources, SourceProject)

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}
	attribute(k, before, sources, SourceEnv)

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

func snapshot(k *koanf.Koanf) map[string]string {
	values := make(map[string]string)
	for _, key := range k.Keys() {
		values[key] = fmt.Sprint(k.Get(key))
	}
	return values
}

// attribute credits src with every key whose value changed since before and
// returns the new snapshot.
func attribute(k *koanf.Koanf, before map[string]string, sources map[string]ConfigSource, src ConfigSource) map[string]string {
	after := snapshot(k)
	for key, v := range after {
		if prev, ok := before[key]; !ok || prev != v {
			sources[key] = src
		}
	}
	return after
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config when it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	userYAMLPath := customPath
	if userYAMLPath == "" {
		userYAMLPath, _ = UserConfigPath()
	}
	if !fileExists(userYAMLPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userYAMLPath, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, JSON supported).
// Supports custom path override (for testing). Warns if both exist.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	legacyProjectPath := LegacyProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
		legacyProjectPath = filepath.Join(filepath.Dir(customPath), LegacyProjectConfigPath())
	}

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyProjectPath, projectYAMLPath, legacyProjectExists, skipWarnings)
	} else if legacyProjectExists {
		if err := loadLegacyJSONConfig(k, legacyProjectPath, "project", warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading project JSON config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads a JSON config and suggests moving to YAML
func loadLegacyJSONConfig(k *koanf.Koanf, path, configType string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'rubychanges config init' to create %s instead.\n\n", ProjectConfigPath())
	}
	return nil
}

// warnLegacyExists warns if the JSON config exists alongside the YAML one
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: JSON config found at %s (ignored, using %s)\n\n", legacyPath, yamlPath)
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.SourceDir = expandHomePath(cfg.SourceDir)
	cfg.Database = expandHomePath(cfg.Database)
	cfg.Output = expandHomePath(cfg.Output)

	return &cfg, nil
}

// BaseReleaseValue returns the parsed base release. Load has already
// validated it.
func (c *Configuration) BaseReleaseValue() change.Release {
	return change.Release(c.BaseRelease)
}

// ExtraSections returns Sections as section values.
func (c *Configuration) ExtraSections() []change.Section {
	out := make([]change.Section, 0, len(c.Sections))
	for _, s := range c.Sections {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, change.Section(s))
		}
	}
	return out
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RUBYCHANGES_DEFAULT_LEVEL -> default_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
