// Package rules installs categorized Cursor rule files into a project.
package rules

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
	"github.com/relicta-tech/cursor-rules/internal/fileutil"
)

const (
	// maxRuleSize bounds a single rule file.
	maxRuleSize = 1 << 20
	// listConcurrency bounds concurrent directory scans.
	listConcurrency = 4

	rulePerm = 0o644
	dirPerm  = 0o755
)

// Ensure ServiceImpl implements Service.
var _ Service = (*ServiceImpl)(nil)

// ServiceImpl reads rules from a source tree and writes them to a target directory.
type ServiceImpl struct {
	source string
	target string
}

// NewService creates a rules service.
func NewService(source, target string) *ServiceImpl {
	return &ServiceImpl{source: source, target: target}
}

// Source returns the rules tree path.
func (s *ServiceImpl) Source() string {
	return s.source
}

// List implements Service. Directories are scanned concurrently and
// returned in name order.
func (s *ServiceImpl) List(ctx context.Context) ([]CategorySummary, error) {
	const op = "rules.List"

	entries, err := os.ReadDir(s.source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rperrors.NotFoundWrap(err, op, "rules directory not found")
		}
		return nil, rperrors.IOWrap(err, op, "failed to read rules directory")
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)

	summaries := make([]CategorySummary, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files, err := ruleFiles(filepath.Join(s.source, dir))
			if err != nil {
				return err
			}
			summaries[i] = CategorySummary{Name: dir, Rules: len(files)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, rperrors.CanceledWrap(ctx.Err(), op)
		}
		return nil, rperrors.IOWrap(err, op, "failed to scan rules directory")
	}
	return summaries, nil
}

// Install implements Service. Categories are processed in the given order.
func (s *ServiceImpl) Install(ctx context.Context, categories []string, opts InstallOptions) (*InstallReport, error) {
	const op = "rules.Install"

	for _, cat := range categories {
		if !slices.Contains(Categories, cat) {
			return nil, rperrors.Wrapf(ErrUnknownCategory, rperrors.KindValidation, op, "category %q", cat)
		}
	}

	if !opts.DryRun {
		if err := os.MkdirAll(s.target, dirPerm); err != nil {
			return nil, rperrors.IOWrap(err, op, "failed to create target directory")
		}
	}

	report := &InstallReport{}
	for _, cat := range categories {
		srcDir := filepath.Join(s.source, cat)
		files, err := ruleFiles(srcDir)
		if err != nil {
			if os.IsNotExist(err) {
				return report, rperrors.NotFoundWrap(err, op, "rules for "+cat+" not found")
			}
			return report, rperrors.IOWrap(err, op, "failed to read rules for "+cat)
		}

		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return report, rperrors.CanceledWrap(err, op)
			}

			outcome, err := s.installFile(cat, f, opts)
			if err != nil {
				return report, err
			}
			report.Files = append(report.Files, outcome)
		}
	}
	return report, nil
}

func (s *ServiceImpl) installFile(cat, file string, opts InstallOptions) (FileOutcome, error) {
	const op = "rules.installFile"

	dst := filepath.Join(s.target, file)
	outcome := FileOutcome{
		Category:    cat,
		File:        file,
		Destination: filepath.ToSlash(dst),
		DryRun:      opts.DryRun,
	}

	if !opts.Force {
		if _, err := os.Stat(dst); err == nil {
			outcome.Skipped = true
			notify(opts, outcome)
			return outcome, nil
		}
	}

	notify(opts, outcome)
	if opts.DryRun {
		return outcome, nil
	}

	data, err := fileutil.ReadFileLimited(filepath.Join(s.source, cat, file), maxRuleSize)
	if err != nil {
		return outcome, rperrors.IOWrap(err, op, "failed to read "+cat+"/"+file)
	}
	if err := fileutil.AtomicWriteFile(dst, data, rulePerm); err != nil {
		return outcome, rperrors.IOWrap(err, op, "failed to write "+outcome.Destination)
	}
	return outcome, nil
}

func notify(opts InstallOptions, outcome FileOutcome) {
	if opts.Progress != nil {
		opts.Progress(outcome)
	}
}

// ruleFiles returns the rule file names in dir, sorted.
func ruleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() || e.Type()&fs.ModeSymlink != 0 {
			if strings.HasSuffix(e.Name(), RuleExt) {
				files = append(files, e.Name())
			}
		}
	}
	return files, nil
}
