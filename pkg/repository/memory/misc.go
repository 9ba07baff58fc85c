package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
)

func prKey(pr *model.PullRequest) string {
	return fmt.Sprintf("%s#%d", pr.RepoID, pr.ID)
}

func (r *metricsRepository) SavePullRequest(ctx context.Context, pr *model.PullRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pullRequests[prKey(pr)] = copyPullRequest(pr)

	return nil
}

func (r *metricsRepository) ListPullRequests(ctx context.Context) ([]*model.PullRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.PullRequest, 0, len(r.pullRequests))
	for _, pr := range r.pullRequests {
		out = append(out, copyPullRequest(pr))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RepoID != out[j].RepoID {
			return out[i].RepoID < out[j].RepoID
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *metricsRepository) SaveRepositoryConfig(ctx context.Context, cfg *model.RepositoryConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.configs[cfg.ID] = copyConfig(cfg)

	return nil
}

func (r *metricsRepository) ListRepositoryConfigs(ctx context.Context) ([]*model.RepositoryConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.RepositoryConfig, 0, len(r.configs))
	for _, cfg := range r.configs {
		out = append(out, copyConfig(cfg))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *metricsRepository) GetWatermark(ctx context.Context, job types.SyncJob) (*model.SyncWatermark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lastRun, ok := r.watermarks[job]
	if !ok {
		return nil, goerr.Wrap(repository.ErrNotFound, "watermark not found", goerr.V("job", job))
	}

	return &model.SyncWatermark{Job: job, LastSuccessfulRun: lastRun}, nil
}

func (r *metricsRepository) SetWatermark(ctx context.Context, job types.SyncJob, lastRun time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.watermarks[job] = lastRun

	return nil
}
