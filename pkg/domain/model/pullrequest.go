package model

import (
	"time"

	"github.com/k-morita/deployscope/pkg/domain/types"
)

// PullRequest mirrors a pull request from the source-control API. A pull
// request is relevant to a commit set when its first commit, or any
// descendant of it, intersects the set.
type PullRequest struct {
	ID             int64
	RepoID         types.RepoID
	Title          string
	State          string
	FirstCommitSHA types.CommitSHA
	MergedAt       *time.Time
}

// Merged reports whether the pull request was merged, not just closed.
func (x *PullRequest) Merged() bool {
	return x.State == "closed" && x.MergedAt != nil
}

// Open reports whether the pull request is still open.
func (x *PullRequest) Open() bool {
	return x.State == "open"
}
