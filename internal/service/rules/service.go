// Package rules installs categorized Cursor rule files into a project.
package rules

import (
	"context"
	"errors"
)

// RuleExt is the extension of rule files.
const RuleExt = ".mdc"

// Categories are the installable rule categories, in install order.
var Categories = []string{"frontend", "backend", "react", "typescript", "general"}

// ErrUnknownCategory indicates a category outside Categories.
var ErrUnknownCategory = errors.New("unknown rule category")

// Service defines rule tree operations.
type Service interface {
	// List counts the rule files in every directory of the rules tree.
	List(ctx context.Context) ([]CategorySummary, error)

	// Install copies the rule files of the given categories into the target.
	Install(ctx context.Context, categories []string, opts InstallOptions) (*InstallReport, error)
}

// CategorySummary describes one directory of the rules tree.
type CategorySummary struct {
	Name  string
	Rules int
}

// InstallOptions configures an install run.
type InstallOptions struct {
	// Force overwrites existing destination files.
	Force bool
	// DryRun reports what would be copied without writing.
	DryRun bool
	// Progress is called for every file, before it is written.
	Progress func(FileOutcome)
}

// FileOutcome is the result for a single rule file.
type FileOutcome struct {
	Category string
	File     string
	// Destination is the target path as displayed to the user.
	Destination string
	// Skipped is set when the destination exists and Force is off.
	Skipped bool
	DryRun  bool
}

// InstallReport summarizes an install run.
type InstallReport struct {
	Files []FileOutcome
}

// Copied returns the number of files copied, or that would be with DryRun.
func (r *InstallReport) Copied() int {
	n := 0
	for _, f := range r.Files {
		if !f.Skipped {
			n++
		}
	}
	return n
}

// Skipped returns the number of files left untouched.
func (r *InstallReport) Skipped() int {
	return len(r.Files) - r.Copied()
}
