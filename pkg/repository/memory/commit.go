package memory

import (
	"context"
	"strings"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

func (r *metricsRepository) SaveCommit(ctx context.Context, commit *model.Commit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	repoCommits, ok := r.commits[commit.RepoID]
	if !ok {
		repoCommits = make(map[types.CommitSHA]*model.Commit)
		r.commits[commit.RepoID] = repoCommits
	}

	// Commits are immutable once stored
	if _, exists := repoCommits[commit.SHA]; exists {
		return nil
	}
	repoCommits[commit.SHA] = copyCommit(commit)

	return nil
}

func (r *metricsRepository) SaveCommitEdge(ctx context.Context, edge *model.CommitEdge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	repoParents, ok := r.parents[edge.RepoID]
	if !ok {
		repoParents = make(map[types.CommitSHA][]types.CommitSHA)
		r.parents[edge.RepoID] = repoParents
	}

	for _, p := range repoParents[edge.ChildSHA] {
		if p == edge.ParentSHA {
			return nil
		}
	}
	repoParents[edge.ChildSHA] = append(repoParents[edge.ChildSHA], edge.ParentSHA)
	cp := *edge
	r.edges = append(r.edges, &cp)

	return nil
}

func (r *metricsRepository) GetCommit(ctx context.Context, repoID types.RepoID, sha types.CommitSHA) (*model.Commit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if repoCommits, ok := r.commits[repoID]; ok {
		if c, ok := repoCommits[sha]; ok {
			return copyCommit(c), nil
		}
	}

	return nil, goerr.Wrap(repository.ErrNotFound, "commit not found",
		goerr.V("repoID", repoID),
		goerr.V("sha", sha),
	)
}

func (r *metricsRepository) ListParents(ctx context.Context, repoID types.RepoID, sha types.CommitSHA) ([]types.CommitSHA, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	repoParents, ok := r.parents[repoID]
	if !ok {
		return nil, nil
	}

	parents := repoParents[sha]
	out := make([]types.CommitSHA, len(parents))
	copy(out, parents)

	return out, nil
}

func (r *metricsRepository) ListCommitEdges(ctx context.Context) ([]*model.CommitEdge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.CommitEdge, 0, len(r.edges))
	for _, e := range r.edges {
		cp := *e
		out = append(out, &cp)
	}

	return out, nil
}

func (r *metricsRepository) ListCommitsByAuthors(ctx context.Context, authors []string) ([]*model.Commit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match := func(author string) bool {
		if len(authors) == 0 {
			return true
		}
		for _, a := range authors {
			if strings.EqualFold(a, author) {
				return true
			}
		}
		return false
	}

	var out []*model.Commit
	for _, repoCommits := range r.commits {
		for _, c := range repoCommits {
			if match(c.Author) {
				out = append(out, copyCommit(c))
			}
		}
	}

	return out, nil
}
