// changelog - Conventional Commits changelog generator
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/changelog

// Package config provides layered configuration for changelog using koanf.
// Configuration is loaded with priority: environment variables (CHANGELOG_*)
// > project config (.changelog.yml) > defaults. With neither a file nor
// environment variables the defaults reproduce the tool's built-in behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CHANGELOG_"

// ProjectConfigFile is the project config file name, relative to the project directory.
const ProjectConfigFile = ".changelog.yml"

// Configuration represents the changelog CLI configuration
type Configuration struct {
	// Output is the changelog path, relative to the project directory.
	Output string `koanf:"output" validate:"required"`
	// TagPattern is the glob selecting release tags.
	TagPattern string `koanf:"tag_pattern" validate:"required"`
	// Remotes is the lookup order of the git remote extractor. Only the first
	// remote that exists is used.
	// Can be set via CHANGELOG_REMOTES as a comma-separated list.
	Remotes []string `koanf:"remotes" validate:"min=1,dive,required"`
	// Debug enables trace output on stderr.
	Debug bool `koanf:"debug"`
}

// GetDefaults returns the default configuration values keyed by config key.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"output":      "CHANGELOG.md",
		"tag_pattern": "v*",
		"remotes":     []string{"upstream", "origin"},
		"debug":       false,
	}
}

// ProjectConfigPath returns the project config path inside projectDir.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ProjectConfigFile)
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectDir is the directory holding .changelog.yml (default: current directory)
	ProjectDir string
	// ProjectConfigPath overrides the project config path (for testing)
	ProjectConfigPath string
}

// Load loads configuration for the project in projectDir.
// Priority: Environment variables > Project config > Defaults
func Load(projectDir string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectDir: projectDir})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadProjectConfig(k, opts); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads .changelog.yml when it exists. A missing file is not an error.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions) error {
	path := opts.ProjectConfigPath
	if path == "" {
		path = ProjectConfigPath(opts.ProjectDir)
	}
	if !fileExists(path) {
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for project config: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, ProjectConfigFile); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the path exists and is not a directory
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// envTransform converts environment variables to config keys and values.
// Example: CHANGELOG_TAG_PATTERN -> tag_pattern. CHANGELOG_REMOTES is split
// on commas.
func envTransform(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key != "remotes" {
		return key, value
	}

	var remotes []string
	for _, r := range strings.Split(value, ",") {
		if r = strings.TrimSpace(r); r != "" {
			remotes = append(remotes, r)
		}
	}
	return key, remotes
}
