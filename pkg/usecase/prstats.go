package usecase

import (
	"context"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// pullRequestStats counts the pull requests relevant to the scoped commits. A
// pull request is relevant when its first commit, or any descendant of it,
// is one of the scoped commits; descendants matter because the author's work
// may continue on top of a rebased or squashed base.
func (x *UseCase) pullRequestStats(ctx context.Context, commits []*model.Commit, edges []*model.CommitEdge) (model.PullRequestStats, error) {
	var stats model.PullRequestStats

	prs, err := x.clients.Store().ListPullRequests(ctx)
	if err != nil {
		return stats, goerr.Wrap(err, "failed to list pull requests")
	}
	if len(prs) == 0 {
		return stats, nil
	}

	scoped := map[types.RepoID]map[types.CommitSHA]struct{}{}
	for _, c := range commits {
		if scoped[c.RepoID] == nil {
			scoped[c.RepoID] = map[types.CommitSHA]struct{}{}
		}
		scoped[c.RepoID][c.SHA] = struct{}{}
	}

	children := map[types.RepoID]map[types.CommitSHA][]types.CommitSHA{}
	for _, e := range edges {
		if children[e.RepoID] == nil {
			children[e.RepoID] = map[types.CommitSHA][]types.CommitSHA{}
		}
		children[e.RepoID][e.ParentSHA] = append(children[e.RepoID][e.ParentSHA], e.ChildSHA)
	}

	for _, pr := range prs {
		if pr.FirstCommitSHA == "" {
			continue
		}
		if !descendantIntersects(pr.FirstCommitSHA, scoped[pr.RepoID], children[pr.RepoID]) {
			continue
		}

		stats.Total++
		if pr.Merged() {
			stats.Merged++
		}
		if pr.Open() {
			stats.Open++
		}
	}

	return stats, nil
}

// descendantIntersects walks forward from the given commit over child edges
// and reports whether any reached commit is in the scoped set.
func descendantIntersects(start types.CommitSHA, scoped map[types.CommitSHA]struct{}, children map[types.CommitSHA][]types.CommitSHA) bool {
	if len(scoped) == 0 {
		return false
	}

	visited := map[types.CommitSHA]struct{}{}
	queue := []types.CommitSHA{start}

	for len(queue) > 0 {
		sha := queue[0]
		queue = queue[1:]

		if _, ok := visited[sha]; ok {
			continue
		}
		visited[sha] = struct{}{}

		if _, ok := scoped[sha]; ok {
			return true
		}
		queue = append(queue, children[sha]...)
	}

	return false
}
