package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/relicta-tech/cursor-rules/internal/version"
)

// testOptions returns Options writing to buffers with the given environment.
func testOptions(env map[string]string) (*Options, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	opts := &Options{
		Version: version.Info{Version: "v9.9.9", Commit: "abc1234", Date: "2024-05-01"},
		Logger:  log.New(&stderr),
		Styles:  DefaultStyles(),
		Stdout:  &stdout,
		Stderr:  &stderr,
		Getenv:  func(k string) string { return env[k] },
		Executable: func() (string, error) {
			return "/nonexistent/bin/cursor-rules", nil
		},
	}
	return opts, &stdout, &stderr
}

// initRepo creates a repository with one commit per message. A message of
// the form "tag:<name>" tags HEAD instead.
func initRepo(t *testing.T, steps ...string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Main},
	})
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	when := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	for i, step := range steps {
		if name, ok := strings.CutPrefix(step, "tag:"); ok {
			head, err := repo.Head()
			require.NoError(t, err)
			_, err = repo.CreateTag(name, head.Hash(), nil)
			require.NoError(t, err)
			continue
		}

		require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte(step), 0o644))
		_, err = wt.Add("file.txt")
		require.NoError(t, err)
		sig := &object.Signature{Name: "dev", Email: "dev@example.com", When: when.Add(time.Duration(i) * time.Minute)}
		_, err = wt.Commit(step, &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}
	return dir
}

