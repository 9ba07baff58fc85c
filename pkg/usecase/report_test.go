package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func saveAuthoredCommit(t *testing.T, store interfaces.MetricsRepository, sha types.CommitSHA, author string, authoredAt time.Time, parents ...types.CommitSHA) {
	t.Helper()
	gt.NoError(t, store.SaveCommit(context.Background(), &model.Commit{
		SHA:        sha,
		RepoID:     testRepoID,
		Author:     author,
		Message:    "change " + string(sha),
		AuthoredAt: authoredAt,
	}))
	for _, p := range parents {
		gt.NoError(t, store.SaveCommitEdge(context.Background(), &model.CommitEdge{
			RepoID:    testRepoID,
			ChildSHA:  sha,
			ParentSHA: p,
		}))
	}
}

// seedShippedWork builds a small repository history with one production
// deployment, a correlated incident and a merged pull request, all authored by
// alice.
func seedShippedWork(t *testing.T, uc *usecase.UseCase, store interfaces.MetricsRepository) time.Time {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	saveAuthoredCommit(t, store, "c1", "alice", base)
	saveAuthoredCommit(t, store, "c2", "alice", base.Add(time.Hour), "c1")
	// Merge commit: two parents, excluded from individual attribution
	saveAuthoredCommit(t, store, "x1", "bob", base.Add(30*time.Minute), "c1")
	saveAuthoredCommit(t, store, "m1", "alice", base.Add(2*time.Hour), "c2", "x1")

	saveDeployment(t, store, "d1", "m1", base.Add(3*time.Hour))
	gt.NoError(t, uc.CalculateLeadTimes(ctx))

	durationSeconds := int64(7200)
	resolvedAt := base.Add(6 * time.Hour)
	gt.NoError(t, store.SaveIncident(ctx, &model.Incident{
		ID:              "i1",
		RepoID:          testRepoID,
		State:           types.IncidentResolved,
		Severity:        types.SeveritySEV2,
		StartedAt:       base.Add(4 * time.Hour),
		ResolvedAt:      &resolvedAt,
		DurationSeconds: &durationSeconds,
	}))

	mergedAt := base.Add(90 * time.Minute)
	gt.NoError(t, store.SavePullRequest(ctx, &model.PullRequest{
		ID:             7,
		RepoID:         testRepoID,
		Title:          "ship the widget",
		State:          "closed",
		FirstCommitSHA: "c1",
		MergedAt:       &mergedAt,
	}))

	return base
}

func TestBuildReportDeveloper(t *testing.T) {
	uc, store := newTestUseCase()
	seedShippedWork(t, uc, store)

	report, err := uc.BuildReport(context.Background(), &model.ReportScope{Authors: []string{"alice"}})
	gt.NoError(t, err)

	// m1 is a merge commit and does not count as alice's work
	gt.V(t, report.Commits.TotalCommits).Equal(int64(2))
	gt.V(t, report.Commits.RepositoryCount).Equal(int64(1))
	gt.A(t, report.Repositories).Length(1).At(0, func(t testing.TB, r model.RepositoryStats) {
		gt.V(t, r.RepoID).Equal(testRepoID)
		gt.V(t, r.CommitCount).Equal(int64(2))
	})

	gt.V(t, report.PullRequests.Total).Equal(int64(1))
	gt.V(t, report.PullRequests.Merged).Equal(int64(1))
	gt.V(t, report.PullRequests.Open).Equal(int64(0))

	dora := report.DORA
	gt.V(t, dora.AttributedCommits).Equal(int64(2))
	gt.V(t, dora.TotalDeployments).Equal(int64(1))
	gt.V(t, dora.FailedDeployments).Equal(int64(1))
	gt.True(t, dora.ChangeFailureRate != nil)
	gt.V(t, *dora.ChangeFailureRate).Equal(100.0)

	// c1 shipped 3h after authoring, c2 after 2h
	gt.True(t, dora.AvgLeadTimeHours != nil)
	gt.V(t, *dora.AvgLeadTimeHours).Equal(2.5)
	gt.V(t, *dora.MinLeadTimeHours).Equal(2.0)
	gt.V(t, *dora.MaxLeadTimeHours).Equal(3.0)

	gt.V(t, dora.ResolvedIncidents).Equal(int64(1))
	gt.True(t, dora.AvgMTTRHours != nil)
	gt.V(t, *dora.AvgMTTRHours).Equal(2.0)

	gt.A(t, dora.Daily).Length(1).At(0, func(t testing.TB, d model.DailyMetric) {
		gt.V(t, d.Date).Equal(model.Date(2025, time.June, 2))
		gt.V(t, d.Commits).Equal(int64(2))
		gt.V(t, d.Deployments).Equal(int64(1))
		gt.V(t, d.FailedDeployments).Equal(int64(1))
		gt.V(t, d.ResolvedIncidents).Equal(int64(1))
	})
}

func TestBuildReportOrganization(t *testing.T) {
	uc, store := newTestUseCase()
	seedShippedWork(t, uc, store)

	// No author filter: bob's branch commit joins the stats
	report, err := uc.BuildReport(context.Background(), &model.ReportScope{})
	gt.NoError(t, err)

	gt.V(t, report.Commits.TotalCommits).Equal(int64(3))
	gt.V(t, report.DORA.AttributedCommits).Equal(int64(3))
	gt.V(t, report.DORA.TotalDeployments).Equal(int64(1))
}

func TestBuildReportUnknownAuthor(t *testing.T) {
	uc, store := newTestUseCase()
	seedShippedWork(t, uc, store)

	report, err := uc.BuildReport(context.Background(), &model.ReportScope{Authors: []string{"nobody"}})
	gt.NoError(t, err)

	gt.V(t, report.Commits.TotalCommits).Equal(int64(0))
	gt.V(t, report.DORA.AttributedCommits).Equal(int64(0))
	gt.V(t, report.DORA.AvgLeadTimeHours).Equal(nil)
	gt.V(t, report.DORA.ChangeFailureRate).Equal(nil)
}

func TestBuildReportDateFilterNarrowsCommits(t *testing.T) {
	uc, store := newTestUseCase()
	base := seedShippedWork(t, uc, store)

	// The window ends the day before the deployment, so nothing shipped in scope
	end := model.DateOf(base).AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -7)
	report, err := uc.BuildReport(context.Background(), &model.ReportScope{
		Authors: []string{"alice"},
		Start:   &start,
		End:     &end,
	})
	gt.NoError(t, err)

	gt.V(t, report.Commits.TotalCommits).Equal(int64(0))
	gt.V(t, report.DORA.AttributedCommits).Equal(int64(0))
	gt.V(t, report.DORA.AvgLeadTimeHours).Equal(nil)
}

func TestBuildReportIncidentOutsideDateRange(t *testing.T) {
	uc, store := newTestUseCase()
	ctx := context.Background()

	authoredAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	saveAuthoredCommit(t, store, "c1", "alice", authoredAt)
	saveDeployment(t, store, "d1", "c1", authoredAt.Add(2*time.Hour))
	gt.NoError(t, uc.CalculateLeadTimes(ctx))

	// Resolved long after the reporting window closes
	durationSeconds := int64(7200)
	startedAt := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	resolvedAt := startedAt.Add(2 * time.Hour)
	gt.NoError(t, store.SaveIncident(ctx, &model.Incident{
		ID:              "i-late",
		RepoID:          testRepoID,
		State:           types.IncidentResolved,
		Severity:        types.SeveritySEV3,
		StartedAt:       startedAt,
		ResolvedAt:      &resolvedAt,
		DurationSeconds: &durationSeconds,
	}))

	start := model.Date(2025, time.June, 1)
	end := model.Date(2025, time.June, 30)
	report, err := uc.BuildReport(ctx, &model.ReportScope{
		Authors: []string{"alice"},
		Start:   &start,
		End:     &end,
	})
	gt.NoError(t, err)

	gt.V(t, report.DORA.AttributedCommits).Equal(int64(1))
	gt.V(t, report.DORA.ResolvedIncidents).Equal(int64(0))
	gt.V(t, report.DORA.AvgMTTRHours).Equal(nil)
	gt.A(t, report.DORA.Daily).Length(1).At(0, func(t testing.TB, d model.DailyMetric) {
		gt.V(t, d.Date).Equal(model.Date(2025, time.June, 1))
		gt.V(t, d.ResolvedIncidents).Equal(int64(0))
	})
}

func TestBuildReportMTTRScopedToDeployedRepos(t *testing.T) {
	uc, store := newTestUseCase()
	ctx := context.Background()
	base := seedShippedWork(t, uc, store)

	// alice also commits to a repository that never deploys; its incidents
	// stay out of the aggregate
	otherRepo := types.RepoID("acme/lib")
	gt.NoError(t, store.SaveCommit(ctx, &model.Commit{
		SHA:        "l1",
		RepoID:     otherRepo,
		Author:     "alice",
		Message:    "change l1",
		AuthoredAt: base,
	}))

	durationSeconds := int64(3600)
	resolvedAt := base.Add(5 * time.Hour)
	gt.NoError(t, store.SaveIncident(ctx, &model.Incident{
		ID:              "i-lib",
		RepoID:          otherRepo,
		State:           types.IncidentResolved,
		Severity:        types.SeveritySEV3,
		StartedAt:       base.Add(4 * time.Hour),
		ResolvedAt:      &resolvedAt,
		DurationSeconds: &durationSeconds,
	}))

	report, err := uc.BuildReport(ctx, &model.ReportScope{Authors: []string{"alice"}})
	gt.NoError(t, err)

	gt.V(t, report.DORA.ResolvedIncidents).Equal(int64(1))
	gt.True(t, report.DORA.AvgMTTRHours != nil)
	gt.V(t, *report.DORA.AvgMTTRHours).Equal(2.0)
}

func TestBuildReportRepoFilter(t *testing.T) {
	uc, store := newTestUseCase()
	seedShippedWork(t, uc, store)

	report, err := uc.BuildReport(context.Background(), &model.ReportScope{
		Authors: []string{"alice"},
		RepoIDs: []types.RepoID{"acme/other"},
	})
	gt.NoError(t, err)

	gt.V(t, report.Commits.TotalCommits).Equal(int64(0))
	gt.V(t, report.DORA.AttributedCommits).Equal(int64(0))
}
