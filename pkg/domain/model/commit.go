package model

import (
	"strings"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/types"
)

// Commit is one node of the per-repository commit graph. Immutable once
// stored; parent links live in CommitEdge.
type Commit struct {
	SHA        types.CommitSHA
	RepoID     types.RepoID
	Author     string
	Message    string
	AuthoredAt time.Time
}

// CommitEdge is a parent link of the commit graph, pointing from child to
// ancestor within one repository. A commit has zero edges (root), one
// (normal) or two and more (merge).
type CommitEdge struct {
	RepoID    types.RepoID
	ChildSHA  types.CommitSHA
	ParentSHA types.CommitSHA
}

var mergeMessagePrefixes = []string{
	"merge pull request",
	"merge branch",
	"merge remote-tracking branch",
}

// HasMergeMessage reports whether the commit message starts with a common
// merge phrasing. This is one of two independent merge heuristics; the other
// is a parent count of two or more.
func (x *Commit) HasMergeMessage() bool {
	msg := strings.ToLower(x.Message)
	for _, prefix := range mergeMessagePrefixes {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

// IsMergeCommit reports whether the commit should be excluded from raw commit
// counts. Either heuristic alone is sufficient.
func (x *Commit) IsMergeCommit(parentCount int) bool {
	return parentCount >= 2 || x.HasMergeMessage()
}
