// Package config provides configuration management for next-version.
package config

import "github.com/relicta-tech/cursor-rules/internal/domain/changes"

// Config is the root configuration for next-version.
type Config struct {
	// Git configures repository access.
	Git GitConfig `mapstructure:"git" json:"git"`
	// Sync configures the best-effort remote refresh.
	Sync SyncConfig `mapstructure:"sync" json:"sync"`
	// Versioning configures baseline resolution and classification.
	Versioning VersioningConfig `mapstructure:"versioning" json:"versioning"`
	// Output configures result and log output.
	Output OutputConfig `mapstructure:"output" json:"output"`
}

// GitConfig configures repository access.
type GitConfig struct {
	// Path is the repository working directory (default: ".").
	Path string `mapstructure:"path" json:"path"`
	// Backend selects the git implementation: "gogit" (default) or "cli".
	Backend string `mapstructure:"backend" json:"backend"`
	// Remote is the remote refreshed before resolution (default: "origin").
	Remote string `mapstructure:"remote" json:"remote"`
	// Branch is the branch refreshed before resolution (default: "main").
	Branch string `mapstructure:"branch" json:"branch"`
}

// SyncConfig configures the remote refresh.
type SyncConfig struct {
	// Enabled fetches tags and the branch before resolving (default: true).
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// VersioningConfig configures baseline resolution and classification.
type VersioningConfig struct {
	// Presets are tried in order; the default rules are always tried last.
	Presets []string `mapstructure:"presets" json:"presets"`
	// Manifest is the metadata descriptor read when no version tag exists.
	Manifest string `mapstructure:"manifest" json:"manifest"`
	// Placeholder is emitted as the next version when no release is needed.
	// Empty selects the built-in placeholder.
	Placeholder string `mapstructure:"placeholder" json:"placeholder,omitempty"`
	// CustomPresets defines additional commit conventions.
	CustomPresets []PresetConfig `mapstructure:"custom_presets" json:"custom_presets,omitempty"`
}

// PresetConfig defines a commit convention.
type PresetConfig struct {
	Name           string   `mapstructure:"name" json:"name"`
	MinorTypes     []string `mapstructure:"minor_types" json:"minor_types"`
	PatchTypes     []string `mapstructure:"patch_types" json:"patch_types"`
	BreakingMarker bool     `mapstructure:"breaking_marker" json:"breaking_marker"`
	BreakingFooter bool     `mapstructure:"breaking_footer" json:"breaking_footer"`
}

// ToPreset converts the configuration into a domain preset.
func (p PresetConfig) ToPreset() changes.Preset {
	return changes.Preset{
		Name:           p.Name,
		MinorTypes:     toCommitTypes(p.MinorTypes),
		PatchTypes:     toCommitTypes(p.PatchTypes),
		BreakingMarker: p.BreakingMarker,
		BreakingFooter: p.BreakingFooter,
	}
}

func toCommitTypes(names []string) []changes.CommitType {
	types := make([]changes.CommitType, 0, len(names))
	for _, n := range names {
		types = append(types, changes.NewCommitType(n))
	}
	return types
}

// Registry returns the built-in presets plus the custom ones.
func (v VersioningConfig) Registry() *changes.PresetRegistry {
	custom := make([]changes.Preset, 0, len(v.CustomPresets))
	for _, p := range v.CustomPresets {
		custom = append(custom, p.ToPreset())
	}
	return changes.NewPresetRegistry(custom...)
}

// OutputConfig configures result and log output.
type OutputConfig struct {
	// Path is the CI output channel file. Empty falls back to GITHUB_OUTPUT.
	Path string `mapstructure:"path" json:"path,omitempty"`
	// Format is the log format: "text" (default) or "json".
	Format string `mapstructure:"format" json:"format"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	// Color enables styled terminal output.
	Color bool `mapstructure:"color" json:"color"`
	// Verbose is shorthand for debug logging.
	Verbose bool `mapstructure:"verbose" json:"verbose"`
}

// ConfigFileNames are the base names searched for a config file.
var ConfigFileNames = []string{".next-version", "next-version"}

// ConfigFileExtensions are the extensions searched for a config file.
var ConfigFileExtensions = []string{"yaml", "yml", "json", "toml"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Path:    ".",
			Backend: "gogit",
			Remote:  "origin",
			Branch:  "main",
		},
		Sync: SyncConfig{
			Enabled: true,
		},
		Versioning: VersioningConfig{
			Presets:  []string{changes.PresetConventionalCommits},
			Manifest: "package.json",
		},
		Output: OutputConfig{
			Format:   "text",
			LogLevel: "info",
			Color:    true,
		},
	}
}
