package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

func (r *metricsRepository) SaveDeployment(ctx context.Context, deployment *model.Deployment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := copyDeployment(deployment)
	if existing, ok := r.deployments[deployment.ID]; ok {
		// Updates never reset the idempotency flag
		cp.LeadTimeProcessed = existing.LeadTimeProcessed
	} else {
		cp.LeadTimeProcessed = false
	}
	r.deployments[deployment.ID] = cp

	return nil
}

func (r *metricsRepository) GetDeployment(ctx context.Context, id types.DeploymentID) (*model.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.deployments[id]
	if !ok {
		return nil, goerr.Wrap(repository.ErrNotFound, "deployment not found", goerr.V("id", id))
	}

	return copyDeployment(d), nil
}

func (r *metricsRepository) ListUnprocessedDeployments(ctx context.Context, env types.Environment) ([]*model.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Deployment
	for _, d := range r.deployments {
		if !d.LeadTimeProcessed && d.Environment == env {
			out = append(out, copyDeployment(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (r *metricsRepository) FindPreviousDeployment(ctx context.Context, repoID types.RepoID, env types.Environment, before time.Time) (*model.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var prev *model.Deployment
	for _, d := range r.deployments {
		if d.RepoID != repoID || d.Environment != env || !d.CreatedAt.Before(before) {
			continue
		}
		if prev == nil || d.CreatedAt.After(prev.CreatedAt) {
			prev = d
		}
	}
	if prev == nil {
		return nil, goerr.Wrap(repository.ErrNotFound, "no previous deployment",
			goerr.V("repoID", repoID),
			goerr.V("before", before),
		)
	}

	return copyDeployment(prev), nil
}

func (r *metricsRepository) ListDeployments(ctx context.Context, env types.Environment, start, end time.Time) ([]*model.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Deployment
	for _, d := range r.deployments {
		if d.Environment != env || d.CreatedAt.Before(start) || d.CreatedAt.After(end) {
			continue
		}
		out = append(out, copyDeployment(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (r *metricsRepository) CountDeployments(ctx context.Context, env types.Environment, start, end time.Time) (int64, error) {
	deployments, err := r.ListDeployments(ctx, env, start, end)
	if err != nil {
		return 0, err
	}
	return int64(len(deployments)), nil
}

func (r *metricsRepository) ListDeploymentsByIDs(ctx context.Context, ids []types.DeploymentID) ([]*model.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Deployment
	for _, id := range ids {
		if d, ok := r.deployments[id]; ok {
			out = append(out, copyDeployment(d))
		}
	}

	return out, nil
}

func factKey(commit types.CommitSHA, deployment types.DeploymentID) string {
	return fmt.Sprintf("%s@%s", commit, deployment)
}

func (r *metricsRepository) CompleteAttribution(ctx context.Context, id types.DeploymentID, facts []*model.LeadTimeFact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.deployments[id]
	if !ok {
		return goerr.Wrap(repository.ErrNotFound, "deployment not found", goerr.V("id", id))
	}

	for _, f := range facts {
		key := factKey(f.CommitSHA, f.DeploymentID)
		// At most one fact per (commit, deployment) pair
		if _, exists := r.factKeys[key]; exists {
			continue
		}
		r.factKeys[key] = struct{}{}
		r.facts = append(r.facts, copyFact(f))
	}
	d.LeadTimeProcessed = true

	return nil
}

func (r *metricsRepository) ListLeadTimeFacts(ctx context.Context, query *interfaces.LeadTimeFactQuery) ([]*model.LeadTimeFact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shas := make(map[types.CommitSHA]struct{}, len(query.SHAs))
	for _, sha := range query.SHAs {
		shas[sha] = struct{}{}
	}

	var out []*model.LeadTimeFact
	for _, f := range r.facts {
		if _, ok := shas[f.CommitSHA]; !ok {
			continue
		}
		deployedDate := model.DateOf(f.DeployedAt)
		if query.Start != nil && deployedDate.Before(model.DateOf(*query.Start)) {
			continue
		}
		if query.End != nil && deployedDate.After(model.DateOf(*query.End)) {
			continue
		}
		if len(query.RepoIDs) > 0 && !containsRepo(query.RepoIDs, f.RepoID) {
			continue
		}
		out = append(out, copyFact(f))
	}

	return out, nil
}

func containsRepo(ids []types.RepoID, id types.RepoID) bool {
	for _, r := range ids {
		if r == id {
			return true
		}
	}
	return false
}
