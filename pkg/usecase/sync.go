package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// firstRunLookback bounds the initial fetch when a sync job has no watermark
// yet.
const firstRunLookback = 30 * 24 * time.Hour

// SyncAll mirrors every configured repository and its incident service into
// the store, then runs the attribution pass over the newly arrived
// deployments. A repository whose URL does not parse is skipped, and a failed
// upstream fetch skips only that job; both leave the rest of the run intact.
func (x *UseCase) SyncAll(ctx context.Context) error {
	configs, err := x.clients.Store().ListRepositoryConfigs(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list repository configs")
	}

	services := map[string]types.RepoID{}
	for _, cfg := range configs {
		owner, repo, err := cfg.OwnerRepo()
		if err != nil {
			logging.From(ctx).Warn("Skipping repository with malformed URL",
				slog.Any("repoID", cfg.ID),
				slog.String("url", cfg.URL),
				slog.Any("error", err),
			)
			continue
		}

		if err := x.syncCommits(ctx, cfg, owner, repo); err != nil {
			logging.From(ctx).Error("Commit sync failed", slog.Any("repoID", cfg.ID), slog.Any("error", err))
		}
		if err := x.syncDeployments(ctx, cfg, owner, repo); err != nil {
			logging.From(ctx).Error("Deployment sync failed", slog.Any("repoID", cfg.ID), slog.Any("error", err))
		}
		if err := x.syncPullRequests(ctx, cfg, owner, repo); err != nil {
			logging.From(ctx).Error("Pull request sync failed", slog.Any("repoID", cfg.ID), slog.Any("error", err))
		}

		if cfg.ServiceName != "" {
			if _, ok := services[cfg.ServiceName]; !ok {
				services[cfg.ServiceName] = cfg.ID
			}
		}
	}

	if x.clients.IncidentSource() == nil && len(services) > 0 {
		logging.From(ctx).Warn("No incident source configured, skipping incident sync")
		services = nil
	}

	for service, repoID := range services {
		if err := x.syncIncidents(ctx, service, repoID); err != nil {
			logging.From(ctx).Error("Incident sync failed", slog.String("service", service), slog.Any("error", err))
		}
	}

	if err := x.CalculateLeadTimes(ctx); err != nil {
		return goerr.Wrap(err, "failed to calculate lead times after sync")
	}

	return nil
}

// sinceFor resolves the lower bound of a sync job: the stored watermark, or
// the fixed lookback on first run.
func (x *UseCase) sinceFor(ctx context.Context, job types.SyncJob) (time.Time, error) {
	wm, err := x.clients.Store().GetWatermark(ctx, job)
	if errors.Is(err, repository.ErrNotFound) {
		return logging.CtxTime(ctx).Add(-firstRunLookback), nil
	}
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to get watermark", goerr.V("job", job))
	}

	return wm.LastSuccessfulRun, nil
}

// advance moves the watermark to the time the pass started. Record-level
// persistence failures do not hold it back; the next run refetches nothing
// and the failed records surface in the error log.
func (x *UseCase) advance(ctx context.Context, job types.SyncJob, runAt time.Time) error {
	if err := x.clients.Store().SetWatermark(ctx, job, runAt); err != nil {
		return goerr.Wrap(err, "failed to set watermark", goerr.V("job", job))
	}
	return nil
}

func (x *UseCase) syncCommits(ctx context.Context, cfg *model.RepositoryConfig, owner, repo string) error {
	job := types.SyncJob("commit-sync:" + string(cfg.ID))
	since, err := x.sinceFor(ctx, job)
	if err != nil {
		return err
	}
	runAt := logging.CtxTime(ctx)

	commits, edges, err := x.clients.CommitSource().FetchCommits(ctx, owner, repo, since)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch commits", goerr.V("repoID", cfg.ID))
	}

	store := x.clients.Store()
	var failures int
	for _, c := range commits {
		if err := store.SaveCommit(ctx, c); err != nil {
			failures++
			logging.From(ctx).Error("Failed to save commit", slog.Any("sha", c.SHA), slog.Any("error", err))
		}
	}
	for _, e := range edges {
		if err := store.SaveCommitEdge(ctx, e); err != nil {
			failures++
			logging.From(ctx).Error("Failed to save commit edge", slog.Any("child", e.ChildSHA), slog.Any("error", err))
		}
	}

	logging.From(ctx).Info("Synced commits",
		slog.Any("repoID", cfg.ID),
		slog.Int("commits", len(commits)),
		slog.Int("edges", len(edges)),
		slog.Int("failures", failures),
	)

	return x.advance(ctx, job, runAt)
}

func (x *UseCase) syncDeployments(ctx context.Context, cfg *model.RepositoryConfig, owner, repo string) error {
	job := types.SyncJob("deployment-sync:" + string(cfg.ID))
	since, err := x.sinceFor(ctx, job)
	if err != nil {
		return err
	}
	runAt := logging.CtxTime(ctx)

	deployments, err := x.clients.DeploymentSource().FetchDeployments(ctx, owner, repo, cfg.WorkflowFile, since)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch deployments", goerr.V("repoID", cfg.ID))
	}

	store := x.clients.Store()
	var failures int
	for _, d := range deployments {
		// The service name rides on the config, not the workflow run
		d.ServiceName = cfg.ServiceName
		if err := store.SaveDeployment(ctx, d); err != nil {
			failures++
			logging.From(ctx).Error("Failed to save deployment", slog.Any("id", d.ID), slog.Any("error", err))
		}
	}

	logging.From(ctx).Info("Synced deployments",
		slog.Any("repoID", cfg.ID),
		slog.Int("count", len(deployments)),
		slog.Int("failures", failures),
	)

	return x.advance(ctx, job, runAt)
}

func (x *UseCase) syncPullRequests(ctx context.Context, cfg *model.RepositoryConfig, owner, repo string) error {
	job := types.SyncJob("pr-sync:" + string(cfg.ID))
	since, err := x.sinceFor(ctx, job)
	if err != nil {
		return err
	}
	runAt := logging.CtxTime(ctx)

	prs, err := x.clients.PullRequestSource().FetchPullRequests(ctx, owner, repo, since)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch pull requests", goerr.V("repoID", cfg.ID))
	}

	store := x.clients.Store()
	var failures int
	for _, pr := range prs {
		if err := store.SavePullRequest(ctx, pr); err != nil {
			failures++
			logging.From(ctx).Error("Failed to save pull request", slog.Int64("id", pr.ID), slog.Any("error", err))
		}
	}

	logging.From(ctx).Info("Synced pull requests",
		slog.Any("repoID", cfg.ID),
		slog.Int("count", len(prs)),
		slog.Int("failures", failures),
	)

	return x.advance(ctx, job, runAt)
}

func (x *UseCase) syncIncidents(ctx context.Context, serviceName string, repoID types.RepoID) error {
	job := types.SyncJob("incident-sync:" + serviceName)
	since, err := x.sinceFor(ctx, job)
	if err != nil {
		return err
	}
	runAt := logging.CtxTime(ctx)

	incidents, err := x.clients.IncidentSource().FetchIncidents(ctx, serviceName, since)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch incidents", goerr.V("service", serviceName))
	}

	store := x.clients.Store()
	var failures int
	for _, i := range incidents {
		// Incidents arrive tagged with a service, not a repository; the
		// config that declared the service provides the mapping
		if i.RepoID == "" {
			i.RepoID = repoID
		}
		if err := store.SaveIncident(ctx, i); err != nil {
			failures++
			logging.From(ctx).Error("Failed to save incident", slog.Any("id", i.ID), slog.Any("error", err))
		}
	}

	logging.From(ctx).Info("Synced incidents",
		slog.String("service", serviceName),
		slog.Int("count", len(incidents)),
		slog.Int("failures", failures),
	)

	return x.advance(ctx, job, runAt)
}
