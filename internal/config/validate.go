// Package config provides configuration management for next-version.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/relicta-tech/cursor-rules/internal/domain/version"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

var (
	validBackends   = []string{"gogit", "cli"}
	validLogFormats = []string{"text", "json"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
)

// ValidationError contains all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if len(e.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("Errors:\n  - %s", strings.Join(e.Errors, "\n  - ")))
	}

	if len(e.Warnings) > 0 {
		parts = append(parts, fmt.Sprintf("Warnings:\n  - %s", strings.Join(e.Warnings, "\n  - ")))
	}

	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(parts, "\n"))
}

// HasErrors returns true if there are validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// HasWarnings returns true if there are validation warnings.
func (e *ValidationError) HasWarnings() bool {
	return len(e.Warnings) > 0
}

// Addf adds a formatted error to the validation error.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Warnf adds a formatted warning to the validation error.
func (e *ValidationError) Warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Validator validates configuration.
type Validator struct {
	errors *ValidationError
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: &ValidationError{},
	}
}

// Warnings returns the warnings collected by the last Validate call.
func (v *Validator) Warnings() []string {
	return v.errors.Warnings
}

// Validate validates the configuration. Warnings never fail validation.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = &ValidationError{}

	v.validateGit(cfg.Git, cfg.Sync)
	v.validateVersioning(cfg.Versioning)
	v.validateOutput(cfg.Output)

	if v.errors.HasErrors() {
		return rperrors.Validation("config.Validate", v.errors.Error())
	}
	return nil
}

func (v *Validator) validateGit(cfg GitConfig, sync SyncConfig) {
	if !slices.Contains(validBackends, cfg.Backend) {
		v.errors.Addf("git.backend: must be one of %v, got %q", validBackends, cfg.Backend)
	}

	if strings.TrimSpace(cfg.Path) == "" {
		v.errors.Addf("git.path: must not be empty")
	}

	// Remote and branch end up as git arguments.
	if strings.HasPrefix(cfg.Remote, "-") {
		v.errors.Addf("git.remote: must not start with '-', got %q", cfg.Remote)
	}
	if strings.HasPrefix(cfg.Branch, "-") {
		v.errors.Addf("git.branch: must not start with '-', got %q", cfg.Branch)
	}
	if sync.Enabled && cfg.Remote == "" {
		v.errors.Addf("git.remote: required when sync.enabled is true")
	}
	if sync.Enabled && cfg.Branch == "" {
		v.errors.Warnf("git.branch: empty, only tags will be fetched")
	}
}

func (v *Validator) validateVersioning(cfg VersioningConfig) {
	if strings.TrimSpace(cfg.Manifest) == "" {
		v.errors.Addf("versioning.manifest: must not be empty")
	}

	if cfg.Placeholder != "" && version.Valid(cfg.Placeholder) {
		v.errors.Addf("versioning.placeholder: %q parses as a version", cfg.Placeholder)
	}

	seen := make(map[string]bool)
	for i, p := range cfg.CustomPresets {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			v.errors.Addf("versioning.custom_presets[%d].name: required", i)
			continue
		}
		if seen[name] {
			v.errors.Addf("versioning.custom_presets[%d].name: duplicate preset %q", i, p.Name)
		}
		seen[name] = true
		if err := p.ToPreset().Validate(); err != nil {
			v.errors.Addf("versioning.custom_presets[%d]: %v", i, err)
		}
	}

	registry := cfg.Registry()
	for i, name := range cfg.Presets {
		if _, err := registry.Load(name); err != nil {
			v.errors.Warnf("versioning.presets[%d]: %v; the default rules will be used", i, err)
		}
	}
}

func (v *Validator) validateOutput(cfg OutputConfig) {
	if !slices.Contains(validLogFormats, cfg.Format) {
		v.errors.Addf("output.format: must be one of %v, got %q", validLogFormats, cfg.Format)
	}

	if !slices.Contains(validLogLevels, strings.ToLower(cfg.LogLevel)) {
		v.errors.Addf("output.log_level: must be one of %v, got %q", validLogLevels, cfg.LogLevel)
	}
}
