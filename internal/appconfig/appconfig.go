// Package appconfig loads and validates the apps configuration file.
// Malformed input is rejected here so the scanner only ever sees clean,
// fully expanded application definitions.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFileName = "apps_config.json"

// ErrInvalid marks any configuration problem. Configuration errors are
// fatal to the whole run and are raised before any scanning begins.
var ErrInvalid = errors.New("invalid configuration")

// App is one configured application. Immutable once loaded; the scanner
// consumes it read-only.
type App struct {
	Name                string   `mapstructure:"name"`
	AdditionalLocations []string `mapstructure:"additional_locations"`
	InstallationPath    string   `mapstructure:"installation_path"`
	DeepHomeSearch      bool     `mapstructure:"deep_home_search"`
	Patterns            []string `mapstructure:"patterns"`
}

// Config is the full apps configuration.
type Config struct {
	Apps []App `mapstructure:"apps"`
}

// AppNames returns the configured application names, in order.
func (c Config) AppNames() []string {
	names := make([]string, 0, len(c.Apps))
	for _, app := range c.Apps {
		names = append(names, app.Name)
	}
	return names
}

// Load reads one configuration file (JSON or YAML, by extension) and
// returns the validated, path-expanded configuration.
func Load(path string) (Config, error) {
	expanded := expandUser(path)
	if _, err := os.Stat(expanded); err != nil {
		return Config{}, fmt.Errorf("%w: configuration file not found: %s", ErrInvalid, expanded)
	}

	v := viper.New()
	v.SetConfigFile(expanded)
	if configType := typeForExtension(expanded); configType != "" {
		v.SetConfigType(configType)
	}
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%w: cannot parse %s: %v", ErrInvalid, expanded, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: malformed schema in %s: %v", ErrInvalid, expanded, err)
	}

	baseDir := filepath.Dir(expanded)
	for i := range cfg.Apps {
		normalized, err := normalizeApp(cfg.Apps[i], baseDir, i)
		if err != nil {
			return Config{}, err
		}
		cfg.Apps[i] = normalized
	}
	return cfg, nil
}

// LoadAll reads and merges multiple configuration files in order.
func LoadAll(paths []string) (Config, error) {
	var merged Config
	for _, path := range paths {
		cfg, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		merged.Apps = append(merged.Apps, cfg.Apps...)
	}
	return merged, nil
}

// normalizeApp validates required fields and expands every path against
// the environment, the home directory and the config file location.
func normalizeApp(app App, baseDir string, index int) (App, error) {
	app.Name = strings.TrimSpace(app.Name)
	if app.Name == "" {
		return App{}, fmt.Errorf("%w: app entry %d needs a non-empty name", ErrInvalid, index)
	}

	locations := make([]string, 0, len(app.AdditionalLocations))
	for _, location := range app.AdditionalLocations {
		if strings.TrimSpace(location) == "" {
			return App{}, fmt.Errorf("%w: app %q has an empty additional location", ErrInvalid, app.Name)
		}
		locations = append(locations, normalizePath(location, baseDir))
	}
	app.AdditionalLocations = locations

	if app.InstallationPath != "" {
		app.InstallationPath = normalizePath(app.InstallationPath, baseDir)
	}

	patterns := make([]string, 0, len(app.Patterns))
	for _, pattern := range app.Patterns {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	app.Patterns = patterns

	return app, nil
}

// normalizePath expands env vars and ~, then anchors relative paths at the
// configuration file's directory.
func normalizePath(path, baseDir string) string {
	expanded := expandUser(os.ExpandEnv(path))
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(baseDir, expanded)
	}
	return expanded
}

func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			if path == "~" {
				return home
			}
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func typeForExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return ""
	}
}
