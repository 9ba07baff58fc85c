package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/mock"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/infra"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func emptyCommitSource() *mock.CommitSourceMock {
	return &mock.CommitSourceMock{
		FetchCommitsFunc: func(ctx context.Context, owner, repo string, since time.Time) ([]*model.Commit, []*model.CommitEdge, error) {
			return nil, nil, nil
		},
	}
}

func emptyDeploymentSource() *mock.DeploymentSourceMock {
	return &mock.DeploymentSourceMock{
		FetchDeploymentsFunc: func(ctx context.Context, owner, repo, workflowFile string, since time.Time) ([]*model.Deployment, error) {
			return nil, nil
		},
	}
}

func emptyPullRequestSource() *mock.PullRequestSourceMock {
	return &mock.PullRequestSourceMock{
		FetchPullRequestsFunc: func(ctx context.Context, owner, repo string, since time.Time) ([]*model.PullRequest, error) {
			return nil, nil
		},
	}
}

func saveConfig(t *testing.T, store interfaces.MetricsRepository, url, service string) {
	t.Helper()
	gt.NoError(t, store.SaveRepositoryConfig(context.Background(), &model.RepositoryConfig{
		ID:           testRepoID,
		URL:          url,
		ServiceName:  service,
		WorkflowFile: "deploy.yml",
	}))
}

func fixedClock(now time.Time) logging.TimeFunc {
	return func() time.Time { return now }
}

func TestSyncAllFirstRun(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), fixedClock(now))

	authoredAt := now.Add(-2 * time.Hour)
	commitSrc := &mock.CommitSourceMock{
		FetchCommitsFunc: func(ctx context.Context, owner, repo string, since time.Time) ([]*model.Commit, []*model.CommitEdge, error) {
			return []*model.Commit{
				{SHA: "c1", RepoID: testRepoID, Author: "alice", AuthoredAt: authoredAt},
			}, nil, nil
		},
	}
	deploySrc := &mock.DeploymentSourceMock{
		FetchDeploymentsFunc: func(ctx context.Context, owner, repo, workflowFile string, since time.Time) ([]*model.Deployment, error) {
			return []*model.Deployment{
				{ID: "d1", RepoID: testRepoID, SHA: "c1", Environment: types.EnvProduction, CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	incidentSrc := &mock.IncidentSourceMock{
		FetchIncidentsFunc: func(ctx context.Context, serviceName string, since time.Time) ([]*model.Incident, error) {
			return []*model.Incident{
				{ID: "i1", Title: "checkout down", State: types.IncidentActive, ServiceName: "checkout", StartedAt: now.Add(-30 * time.Minute)},
			}, nil
		},
	}
	prSrc := emptyPullRequestSource()

	uc, store := newTestUseCase(
		infra.WithCommitSource(commitSrc),
		infra.WithDeploymentSource(deploySrc),
		infra.WithIncidentSource(incidentSrc),
		infra.WithPullRequestSource(prSrc),
	)
	saveConfig(t, store, "https://github.com/acme/widget", "checkout")

	gt.NoError(t, uc.SyncAll(ctx))

	// Without a watermark every job looks back the fixed 30 days
	wantSince := now.Add(-30 * 24 * time.Hour)
	commitCalls := commitSrc.FetchCommitsCalls()
	gt.A(t, commitCalls).Length(1)
	gt.V(t, commitCalls[0].Owner).Equal("acme")
	gt.V(t, commitCalls[0].Repo).Equal("widget")
	gt.True(t, commitCalls[0].Since.Equal(wantSince))

	deployCalls := deploySrc.FetchDeploymentsCalls()
	gt.A(t, deployCalls).Length(1)
	gt.V(t, deployCalls[0].WorkflowFile).Equal("deploy.yml")

	gt.A(t, prSrc.FetchPullRequestsCalls()).Length(1)

	incidentCalls := incidentSrc.FetchIncidentsCalls()
	gt.A(t, incidentCalls).Length(1)
	gt.V(t, incidentCalls[0].ServiceName).Equal("checkout")

	// The deployment picked up the config's service name and went through
	// attribution in the same pass
	d, err := store.GetDeployment(ctx, "d1")
	gt.NoError(t, err)
	gt.V(t, d.ServiceName).Equal("checkout")
	gt.V(t, d.LeadTimeProcessed).Equal(true)
	gt.A(t, listFacts(t, store, "c1")).Length(1)

	// The incident was stamped with the repository that declared the service
	incidents, err := store.ListIncidents(ctx, &interfaces.IncidentQuery{ServiceName: "checkout"})
	gt.NoError(t, err)
	gt.A(t, incidents).Length(1).At(0, func(t testing.TB, i *model.Incident) {
		gt.V(t, i.RepoID).Equal(testRepoID)
	})

	for _, job := range []types.SyncJob{
		"commit-sync:acme/widget",
		"deployment-sync:acme/widget",
		"pr-sync:acme/widget",
		"incident-sync:checkout",
	} {
		wm, err := store.GetWatermark(ctx, job)
		gt.NoError(t, err)
		gt.True(t, wm.LastSuccessfulRun.Equal(now))
	}
}

func TestSyncUsesWatermark(t *testing.T) {
	lastRun := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	now := lastRun.Add(6 * time.Hour)
	ctx := logging.CtxWithTime(context.Background(), fixedClock(now))

	commitSrc := emptyCommitSource()
	uc, store := newTestUseCase(
		infra.WithCommitSource(commitSrc),
		infra.WithDeploymentSource(emptyDeploymentSource()),
		infra.WithPullRequestSource(emptyPullRequestSource()),
	)
	saveConfig(t, store, "https://github.com/acme/widget", "")
	gt.NoError(t, store.SetWatermark(ctx, "commit-sync:acme/widget", lastRun))

	gt.NoError(t, uc.SyncAll(ctx))

	calls := commitSrc.FetchCommitsCalls()
	gt.A(t, calls).Length(1)
	gt.True(t, calls[0].Since.Equal(lastRun))

	wm, err := store.GetWatermark(ctx, "commit-sync:acme/widget")
	gt.NoError(t, err)
	gt.True(t, wm.LastSuccessfulRun.Equal(now))
}

func TestSyncFetchFailureKeepsWatermark(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), fixedClock(now))

	deploySrc := &mock.DeploymentSourceMock{
		FetchDeploymentsFunc: func(ctx context.Context, owner, repo, workflowFile string, since time.Time) ([]*model.Deployment, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	uc, store := newTestUseCase(
		infra.WithCommitSource(emptyCommitSource()),
		infra.WithDeploymentSource(deploySrc),
		infra.WithPullRequestSource(emptyPullRequestSource()),
	)
	saveConfig(t, store, "https://github.com/acme/widget", "")

	// A failed fetch is logged, not propagated
	gt.NoError(t, uc.SyncAll(ctx))

	// The failed job keeps no watermark and retries the full window next run
	_, err := store.GetWatermark(ctx, "deployment-sync:acme/widget")
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	// The healthy jobs still advanced
	wm, err := store.GetWatermark(ctx, "commit-sync:acme/widget")
	gt.NoError(t, err)
	gt.True(t, wm.LastSuccessfulRun.Equal(now))
}

func TestSyncSkipsMalformedURL(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), fixedClock(now))

	commitSrc := emptyCommitSource()
	uc, store := newTestUseCase(
		infra.WithCommitSource(commitSrc),
		infra.WithDeploymentSource(emptyDeploymentSource()),
		infra.WithPullRequestSource(emptyPullRequestSource()),
	)
	gt.NoError(t, store.SaveRepositoryConfig(ctx, &model.RepositoryConfig{
		ID:  "broken",
		URL: "https://example.com/not/a/repo",
	}))

	gt.NoError(t, uc.SyncAll(ctx))
	gt.A(t, commitSrc.FetchCommitsCalls()).Length(0)
}

func TestSyncWithoutIncidentSource(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), fixedClock(now))

	uc, store := newTestUseCase(
		infra.WithCommitSource(emptyCommitSource()),
		infra.WithDeploymentSource(emptyDeploymentSource()),
		infra.WithPullRequestSource(emptyPullRequestSource()),
	)
	// The config names a service but no incident source is wired
	saveConfig(t, store, "https://github.com/acme/widget", "checkout")

	gt.NoError(t, uc.SyncAll(ctx))

	_, err := store.GetWatermark(ctx, "incident-sync:checkout")
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}
