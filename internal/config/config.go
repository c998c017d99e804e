// Package config provides hierarchical configuration for debcatalog using koanf.
// Configuration is loaded with priority: environment variables (DEBCATALOG_*) >
// project config (.debcatalog.yml, or .debcatalog.json) > user config
// (~/.config/debcatalog/config.yml) > defaults.
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
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "DEBCATALOG_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Maintainer identifies who signs new changelog entries. Empty fields are
// filled from git config by the CLI.
type Maintainer struct {
	Name  string `koanf:"name"`
	Email string `koanf:"email" validate:"omitempty,email"`
}

// Configuration represents the debcatalog configuration
type Configuration struct {
	// Root is the catalog repository root. Empty means the enclosing git
	// repository, or the working directory outside of one.
	Root string `koanf:"root"`

	// StoreID selects the store document store/<store_id>.yaml.
	StoreID string `koanf:"store_id" validate:"required"`
	// StorePackage is the Debian package name written into changelog headers.
	StorePackage string `koanf:"store_package" validate:"required"`

	ChangelogPath   string `koanf:"changelog_path" validate:"required"`
	VersionFile     string `koanf:"version_file" validate:"required"`
	AppsDir         string `koanf:"apps_dir" validate:"required"`
	StoreDir        string `koanf:"store_dir" validate:"required"`
	BumpversionFile string `koanf:"bumpversion_file"`

	Distribution string `koanf:"distribution" validate:"required"`
	Urgency      string `koanf:"urgency" validate:"oneof=low medium high critical"`

	Maintainer Maintainer `koanf:"maintainer"`

	LogLevel string `koanf:"log_level" validate:"oneof=trace debug info warn error"`

	// Sources lists the files and providers that contributed, in load order.
	Sources []ConfigSource `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .debcatalog.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path
	UserConfigPath string
	// SkipUserConfig ignores the user config entirely
	SkipUserConfig bool
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)
	sources := []ConfigSource{SourceDefault}

	loadDefaults(k)

	if !opts.SkipUserConfig {
		loaded, err := loadUserConfig(k, opts.UserConfigPath)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, SourceUser)
		}
	}

	loaded, err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings)
	if err != nil {
		return nil, err
	}
	if loaded {
		sources = append(sources, SourceProject)
	}

	if hasEnvOverrides() {
		sources = append(sources, SourceEnv)
	}
	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
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
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config when it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) (bool, error) {
	userPath := customPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if !fileExists(userPath) {
		return false, nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return false, fmt.Errorf("loading user config: %w", err)
	}
	return true, nil
}

// loadProjectConfig loads the project-level config. YAML is preferred; the
// JSON form is read only when no YAML file exists.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) (bool, error) {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		if strings.HasSuffix(customPath, ".json") {
			return true, loadJSONConfig(k, customPath, "project")
		}
		yamlPath = customPath
	}
	jsonPath := ProjectJSONConfigPath()

	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, yamlPath, "project"); err != nil {
			return false, fmt.Errorf("loading project config: %w", err)
		}
		if jsonExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: %s ignored, using %s\n", jsonPath, yamlPath)
		}
		return true, nil
	case jsonExists:
		if err := loadJSONConfig(k, jsonPath, "project"); err != nil {
			return false, fmt.Errorf("loading project config: %w", err)
		}
		return true, nil
	case customPath != "":
		return false, fmt.Errorf("config file %s not found", customPath)
	}
	return false, nil
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

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

func hasEnvOverrides() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix) {
			return true
		}
	}
	return false
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Root = expandHomePath(cfg.Root)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
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
// Example: DEBCATALOG_STORE_ID -> store_id, DEBCATALOG_MAINTAINER_EMAIL -> maintainer.email
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "maintainer_"); ok {
		return "maintainer." + rest
	}
	return key
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
