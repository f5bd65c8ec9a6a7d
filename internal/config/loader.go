// Package config provides configuration management for next-version.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// EnvPrefix is the prefix for environment overrides, e.g. NEXT_VERSION_GIT_REMOTE.
const EnvPrefix = "NEXT_VERSION"

var (
	// envVarPattern matches ${VAR} or ${VAR:-default} syntax
	envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)
	// simpleEnvVarPattern matches $VAR syntax
	simpleEnvVarPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// Loader handles configuration loading and merging.
type Loader struct {
	v           *viper.Viper
	configPath  string
	searchPaths []string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{
		v:           v,
		searchPaths: []string{"."},
	}
}

// WithConfigPath sets an explicit config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithSearchPaths adds directories to search for config files.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = append(l.searchPaths, paths...)
	return l
}

// Load loads the configuration: defaults, then the config file, then the
// environment.
func (l *Loader) Load() (*Config, error) {
	const op = "config.Load"

	l.setDefaults()

	if err := l.loadConfigFile(); err != nil {
		return nil, rperrors.ConfigWrap(err, op, "failed to load config file")
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, rperrors.ConfigWrap(err, op, "failed to unmarshal config")
	}

	expandEnvVars(cfg)

	return cfg, nil
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("git.path", defaults.Git.Path)
	l.v.SetDefault("git.backend", defaults.Git.Backend)
	l.v.SetDefault("git.remote", defaults.Git.Remote)
	l.v.SetDefault("git.branch", defaults.Git.Branch)

	l.v.SetDefault("sync.enabled", defaults.Sync.Enabled)

	l.v.SetDefault("versioning.presets", defaults.Versioning.Presets)
	l.v.SetDefault("versioning.manifest", defaults.Versioning.Manifest)
	l.v.SetDefault("versioning.placeholder", defaults.Versioning.Placeholder)

	l.v.SetDefault("output.path", defaults.Output.Path)
	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.log_level", defaults.Output.LogLevel)
	l.v.SetDefault("output.color", defaults.Output.Color)
	l.v.SetDefault("output.verbose", defaults.Output.Verbose)
}

func (l *Loader) loadConfigFile() error {
	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", l.configPath, err)
		}
		return nil
	}

	configFile, ok := findConfigFile(l.searchPaths)
	if !ok {
		// Defaults only.
		return nil
	}
	l.v.SetConfigFile(configFile)
	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", configFile, err)
	}
	return nil
}

func findConfigFile(searchPaths []string) (string, bool) {
	for _, searchPath := range searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if info, err := os.Stat(configFile); err == nil && !info.IsDir() {
					return configFile, true
				}
			}
		}
	}
	return "", false
}

// expandEnvVars expands environment variables in path-like fields.
func expandEnvVars(cfg *Config) {
	cfg.Git.Path = expandEnvVar(cfg.Git.Path)
	cfg.Git.Remote = expandEnvVar(cfg.Git.Remote)
	cfg.Git.Branch = expandEnvVar(cfg.Git.Branch)
	cfg.Versioning.Manifest = expandEnvVar(cfg.Versioning.Manifest)
	cfg.Output.Path = expandEnvVar(cfg.Output.Path)
}

// expandEnvVar expands environment variables in a string.
// Supports both ${VAR} and $VAR syntax.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		varName := submatch[1]
		defaultValue := ""
		if len(submatch) > 2 {
			defaultValue = submatch[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})

	// Unset $VAR references are left as written.
	result = simpleEnvVarPattern.ReplaceAllStringFunc(result, func(match string) string {
		if value := os.Getenv(match[1:]); value != "" {
			return value
		}
		return match
	})

	return result
}

// GetConfigPath returns the path to the loaded config file, if any.
func (l *Loader) GetConfigPath() string {
	return l.v.ConfigFileUsed()
}

// MergeConfig sets explicit values, typically from command-line flags.
// They take precedence over the file and the environment.
func (l *Loader) MergeConfig(values map[string]any) {
	for key, value := range values {
		l.v.Set(key, value)
	}
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	return NewLoader().WithConfigPath(path).Load()
}

// LoadFromDirectory loads configuration from a directory.
func LoadFromDirectory(dir string) (*Config, error) {
	return NewLoader().WithSearchPaths(dir).Load()
}

// FindConfigFile searches for a config file and returns its path.
func FindConfigFile(searchPaths ...string) (string, error) {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}

	if configFile, ok := findConfigFile(searchPaths); ok {
		return configFile, nil
	}
	return "", rperrors.New(rperrors.KindNotFound, "no config file found")
}
