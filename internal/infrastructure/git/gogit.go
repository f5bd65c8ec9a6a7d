package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// Ensure GoGitRepository implements the domain port.
var _ sourcecontrol.Repository = (*GoGitRepository)(nil)

// GoGitRepository is the go-git implementation of sourcecontrol.Repository.
type GoGitRepository struct {
	path string
	repo *git.Repository
}

// OpenGoGit opens the repository containing path.
func OpenGoGit(path string) (*GoGitRepository, error) {
	const op = "git.OpenGoGit"

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, rperrors.GitWrap(err, op, "failed to get absolute path")
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			err = fmt.Errorf("%w: %s", sourcecontrol.ErrNotARepository, absPath)
		}
		return nil, rperrors.GitWrap(err, op, "failed to open repository")
	}

	return &GoGitRepository{path: absPath, repo: repo}, nil
}

// ListTags returns all tags with the commit each one points to.
func (r *GoGitRepository) ListTags(ctx context.Context) (sourcecontrol.TagList, error) {
	const op = "git.ListTags"

	ctx, cancel := withLocalTimeout(ctx)
	defer cancel()

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, rperrors.GitWrap(err, op, "failed to get tags iterator")
	}
	defer iter.Close()

	var tags sourcecontrol.TagList
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		tags = append(tags, sourcecontrol.NewTag(ref.Name().Short(), r.peel(ref.Hash())))
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, rperrors.GitWrap(ctx.Err(), op, "operation canceled")
		}
		return nil, rperrors.GitWrap(err, op, "failed to iterate tags")
	}

	return tags, nil
}

// peel resolves annotated tag objects to the commit they point to.
func (r *GoGitRepository) peel(h plumbing.Hash) sourcecontrol.CommitHash {
	tagObj, err := r.repo.TagObject(h)
	if err != nil {
		// Lightweight tag
		return sourcecontrol.CommitHash(h.String())
	}
	commit, err := tagObj.Commit()
	if err != nil {
		return sourcecontrol.CommitHash(tagObj.Target.String())
	}
	return sourcecontrol.CommitHash(commit.Hash.String())
}

// FetchTags fetches all tags and the given branch from the remote.
func (r *GoGitRepository) FetchTags(ctx context.Context, remote, branch string) error {
	const op = "git.FetchTags"

	ctx, cancel := withRemoteTimeout(ctx)
	defer cancel()

	if _, err := r.repo.Remote(remote); err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			err = fmt.Errorf("%w: %s", sourcecontrol.ErrRemoteNotFound, remote)
		}
		return rperrors.GitWrap(err, op, "failed to resolve remote")
	}

	fetchOpts := &git.FetchOptions{
		RemoteName: remote,
		Tags:       git.AllTags,
	}
	if branch != "" {
		fetchOpts.RefSpecs = []config.RefSpec{
			config.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remote, branch)),
		}
	}

	err := r.repo.FetchContext(ctx, fetchOpts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return rperrors.GitWrapSafe(fmt.Errorf("%w: %w", sourcecontrol.ErrFetchFailed, err), op, "failed to fetch")
	}

	return nil
}

// CommitsSinceLastRelease walks HEAD's history until the most recent commit
// carrying a version tag.
func (r *GoGitRepository) CommitsSinceLastRelease(ctx context.Context) (sourcecontrol.History, error) {
	const op = "git.CommitsSinceLastRelease"

	tags, err := r.ListTags(ctx)
	if err != nil {
		return sourcecontrol.History{}, err
	}

	ctx, cancel := withLocalTimeout(ctx)
	defer cancel()

	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Unborn branch: nothing committed yet.
			return sourcecontrol.History{}, nil
		}
		return sourcecontrol.History{}, rperrors.GitWrap(err, op, "failed to resolve HEAD")
	}

	iter, err := r.repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return sourcecontrol.History{}, rperrors.GitWrap(err, op, "failed to get log iterator")
	}
	defer iter.Close()

	collector := newHistoryCollector(tags)
	err = iter.ForEach(func(c *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return collector.add(convertCommit(c))
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		if ctx.Err() != nil {
			return sourcecontrol.History{}, rperrors.GitWrap(ctx.Err(), op, "operation canceled")
		}
		return sourcecontrol.History{}, rperrors.GitWrap(err, op, "failed to iterate commits")
	}

	return collector.history, nil
}

func convertCommit(c *object.Commit) *sourcecontrol.Commit {
	return sourcecontrol.NewCommit(sourcecontrol.CommitHash(c.Hash.String()), c.Message)
}
