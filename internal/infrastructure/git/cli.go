package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// Ensure CLIRepository implements the domain port.
var _ sourcecontrol.Repository = (*CLIRepository)(nil)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// CLIRepository implements sourcecontrol.Repository by running the git binary.
type CLIRepository struct {
	dir     string
	gitPath string
}

// OpenCLI checks that path is inside a work tree and that git is installed.
func OpenCLI(ctx context.Context, path string) (*CLIRepository, error) {
	const op = "git.OpenCLI"

	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, rperrors.GitWrap(err, op, "git executable not found")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, rperrors.GitWrap(err, op, "failed to get absolute path")
	}

	r := &CLIRepository{dir: absPath, gitPath: gitPath}

	ctx, cancel := withLocalTimeout(ctx)
	defer cancel()
	if _, err := r.run(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, rperrors.GitWrap(fmt.Errorf("%w: %w", sourcecontrol.ErrNotARepository, err), op, "failed to open repository")
	}

	return r, nil
}

func (r *CLIRepository) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.gitPath, args...) // #nosec G204 -- fixed subcommands, user values passed as separate args
	cmd.Dir = r.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

// ListTags lists tags sorted by version refname, highest first.
func (r *CLIRepository) ListTags(ctx context.Context) (sourcecontrol.TagList, error) {
	const op = "git.ListTags"

	ctx, cancel := withLocalTimeout(ctx)
	defer cancel()

	out, err := r.run(ctx, "for-each-ref", "--sort=-v:refname",
		"--format=%(refname:strip=2)"+fieldSep+"%(objectname)"+fieldSep+"%(*objectname)",
		"refs/tags")
	if err != nil {
		return nil, rperrors.GitWrap(err, op, "failed to list tags")
	}

	return parseTagRefs(out), nil
}

func parseTagRefs(out string) sourcecontrol.TagList {
	var tags sourcecontrol.TagList
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, fieldSep)
		if len(fields) < 2 {
			continue
		}
		hash := fields[1]
		// Annotated tags report the peeled commit in the third field.
		if len(fields) > 2 && fields[2] != "" {
			hash = fields[2]
		}
		tags = append(tags, sourcecontrol.NewTag(fields[0], sourcecontrol.CommitHash(hash)))
	}
	return tags
}

// FetchTags runs git fetch --tags for the remote and branch.
func (r *CLIRepository) FetchTags(ctx context.Context, remote, branch string) error {
	const op = "git.FetchTags"

	ctx, cancel := withRemoteTimeout(ctx)
	defer cancel()

	args := []string{"fetch", "--tags", remote}
	if branch != "" {
		args = append(args, branch)
	}
	if _, err := r.run(ctx, args...); err != nil {
		return rperrors.GitWrapSafe(fmt.Errorf("%w: %w", sourcecontrol.ErrFetchFailed, err), op, "failed to fetch")
	}
	return nil
}

// CommitsSinceLastRelease reads git log from HEAD until the most recent
// commit carrying a version tag.
func (r *CLIRepository) CommitsSinceLastRelease(ctx context.Context) (sourcecontrol.History, error) {
	const op = "git.CommitsSinceLastRelease"

	tags, err := r.ListTags(ctx)
	if err != nil {
		return sourcecontrol.History{}, err
	}

	ctx, cancel := withLocalTimeout(ctx)
	defer cancel()

	if _, err := r.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD"); err != nil {
		if ctx.Err() != nil {
			return sourcecontrol.History{}, rperrors.GitWrap(ctx.Err(), op, "operation canceled")
		}
		// Unborn branch: nothing committed yet.
		return sourcecontrol.History{}, nil
	}

	out, err := r.run(ctx, "log",
		"--format=%H"+fieldSep+"%B"+recordSep,
		"HEAD")
	if err != nil {
		return sourcecontrol.History{}, rperrors.GitWrap(err, op, "failed to read log")
	}

	collector := newHistoryCollector(tags)
	for _, c := range parseLog(out) {
		if err := collector.add(c); errors.Is(err, errStopIteration) {
			break
		}
	}
	return collector.history, nil
}

func parseLog(out string) []*sourcecontrol.Commit {
	var commits []*sourcecontrol.Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}
		hash, message, ok := strings.Cut(record, fieldSep)
		if !ok {
			continue
		}
		commits = append(commits, sourcecontrol.NewCommit(
			sourcecontrol.CommitHash(hash),
			strings.TrimRight(message, "\n"),
		))
	}
	return commits
}
