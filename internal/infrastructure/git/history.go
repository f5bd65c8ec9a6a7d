package git

import (
	"errors"

	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
)

// errStopIteration is a sentinel error used to signal early termination of commit iteration.
var errStopIteration = errors.New("stop iteration")

// releaseTagsByCommit maps each commit to the highest version tag pointing at it.
func releaseTagsByCommit(tags sourcecontrol.TagList) map[sourcecontrol.CommitHash]*sourcecontrol.Tag {
	byCommit := make(map[sourcecontrol.CommitHash]*sourcecontrol.Tag)
	for _, t := range tags.VersionTags() {
		current, ok := byCommit[t.Hash()]
		if !ok || t.Version().GreaterThan(*current.Version()) {
			byCommit[t.Hash()] = t
		}
	}
	return byCommit
}

// historyCollector accumulates commits newest first until it reaches a release commit.
type historyCollector struct {
	releases map[sourcecontrol.CommitHash]*sourcecontrol.Tag
	history  sourcecontrol.History
}

func newHistoryCollector(tags sourcecontrol.TagList) *historyCollector {
	return &historyCollector{releases: releaseTagsByCommit(tags)}
}

// add records a commit. It returns errStopIteration once the last release is reached.
func (h *historyCollector) add(c *sourcecontrol.Commit) error {
	if tag, ok := h.releases[c.Hash()]; ok {
		h.history.LastRelease = tag
		return errStopIteration
	}
	h.history.Commits = append(h.history.Commits, c)
	return nil
}
