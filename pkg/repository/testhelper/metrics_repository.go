package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/repository"
	"github.com/m-mizutani/gt"
)

// TestAll runs all test cases for MetricsRepository
// This is the main entry point for testing any MetricsRepository implementation
func TestAll(t *testing.T, repo interfaces.MetricsRepository) {
	t.Run("CommitGraph", func(t *testing.T) {
		TestCommitGraph(t, repo)
	})
	t.Run("DeploymentUpsert", func(t *testing.T) {
		TestDeploymentUpsert(t, repo)
	})
	t.Run("DeploymentQueries", func(t *testing.T) {
		TestDeploymentQueries(t, repo)
	})
	t.Run("CompleteAttribution", func(t *testing.T) {
		TestCompleteAttribution(t, repo)
	})
	t.Run("LeadTimeFactQueries", func(t *testing.T) {
		TestLeadTimeFactQueries(t, repo)
	})
	t.Run("IncidentUpsert", func(t *testing.T) {
		TestIncidentUpsert(t, repo)
	})
	t.Run("PullRequestCRUD", func(t *testing.T) {
		TestPullRequestCRUD(t, repo)
	})
	t.Run("RepositoryConfigCRUD", func(t *testing.T) {
		TestRepositoryConfigCRUD(t, repo)
	})
	t.Run("Watermark", func(t *testing.T) {
		TestWatermark(t, repo)
	})
}

func newRepoID() types.RepoID {
	return types.RepoID(fmt.Sprintf("owner-%s/repo-%s", uuid.New().String()[:8], uuid.New().String()[:8]))
}

func newSHA() types.CommitSHA {
	return types.CommitSHA(uuid.New().String())
}

// TestCommitGraph tests append-only commit and edge storage plus parent lookup
func TestCommitGraph(t *testing.T, repo interfaces.MetricsRepository) {
	ctx := context.Background()
	repoID := newRepoID()

	now := time.Now()
	parent := newSHA()
	child := newSHA()

	author := fmt.Sprintf("dev-%s", uuid.New().String()[:8])
	commits := []*model.Commit{
		{SHA: parent, RepoID: repoID, Author: author, Message: "initial commit", AuthoredAt: now.Add(-2 * time.Hour)},
		{SHA: child, RepoID: repoID, Author: author, Message: "add feature", AuthoredAt: now.Add(-time.Hour)},
	}
	for _, c := range commits {
		gt.NoError(t, repo.SaveCommit(ctx, c))
	}

	// Re-saving with a different message must not overwrite the original
	gt.NoError(t, repo.SaveCommit(ctx, &model.Commit{
		SHA: parent, RepoID: repoID, Author: "someone-else", Message: "rewritten", AuthoredAt: now,
	}))
	retrieved, err := repo.GetCommit(ctx, repoID, parent)
	gt.NoError(t, err)
	gt.V(t, retrieved.Author).Equal(author)
	gt.V(t, retrieved.Message).Equal("initial commit")

	edge := &model.CommitEdge{RepoID: repoID, ChildSHA: child, ParentSHA: parent}
	gt.NoError(t, repo.SaveCommitEdge(ctx, edge))
	// Duplicate edges are a no-op
	gt.NoError(t, repo.SaveCommitEdge(ctx, edge))

	parents, err := repo.ListParents(ctx, repoID, child)
	gt.NoError(t, err)
	gt.A(t, parents).Length(1).At(0, func(t testing.TB, v types.CommitSHA) {
		gt.V(t, v).Equal(parent)
	})

	// Root commit has no parents
	parents, err = repo.ListParents(ctx, repoID, parent)
	gt.NoError(t, err)
	gt.V(t, len(parents)).Equal(0)

	// Author filter is case-insensitive, empty filter returns everything
	byAuthor, err := repo.ListCommitsByAuthors(ctx, []string{author})
	gt.NoError(t, err)
	gt.V(t, len(byAuthor)).Equal(2)

	upper, err := repo.ListCommitsByAuthors(ctx, []string{fmt.Sprintf("DEV-%s", author[4:])})
	gt.NoError(t, err)
	gt.V(t, len(upper)).Equal(2)

	_, err = repo.GetCommit(ctx, repoID, newSHA())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestDeploymentUpsert tests that updates never reset the processed flag
func TestDeploymentUpsert(t *testing.T, repo interfaces.MetricsRepository) {
	ctx := context.Background()
	repoID := newRepoID()
	deployID := types.DeploymentID(fmt.Sprintf("deploy-%s", uuid.New().String()[:8]))

	now := time.Now()
	deploy := &model.Deployment{
		ID:          deployID,
		RepoID:      repoID,
		SHA:         newSHA(),
		Environment: types.EnvProduction,
		ServiceName: "checkout",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	gt.NoError(t, repo.SaveDeployment(ctx, deploy))

	retrieved, err := repo.GetDeployment(ctx, deployID)
	gt.NoError(t, err)
	gt.V(t, retrieved.LeadTimeProcessed).Equal(false)
	gt.V(t, retrieved.ServiceName).Equal("checkout")

	// Mark as processed, then upsert the same record again
	gt.NoError(t, repo.CompleteAttribution(ctx, deployID, nil))

	deploy.ServiceName = "checkout-v2"
	gt.NoError(t, repo.SaveDeployment(ctx, deploy))

	retrieved, err = repo.GetDeployment(ctx, deployID)
	gt.NoError(t, err)
	gt.V(t, retrieved.ServiceName).Equal("checkout-v2")
	gt.V(t, retrieved.LeadTimeProcessed).Equal(true)

	_, err = repo.GetDeployment(ctx, types.DeploymentID(uuid.New().String()))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestDeploymentQueries tests unprocessed listing order and previous-deployment lookup
func TestDeploymentQueries(t *testing.T, repo interfaces.MetricsRepository) {
	ctx := context.Background()
	repoID := newRepoID()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var ids []types.DeploymentID
	for i := 0; i < 3; i++ {
		id := types.DeploymentID(fmt.Sprintf("deploy-%s-%d", uuid.New().String()[:8], i))
		ids = append(ids, id)
		gt.NoError(t, repo.SaveDeployment(ctx, &model.Deployment{
			ID:          id,
			RepoID:      repoID,
			SHA:         newSHA(),
			Environment: types.EnvProduction,
			CreatedAt:   base.Add(time.Duration(i) * 24 * time.Hour),
			UpdatedAt:   base.Add(time.Duration(i) * 24 * time.Hour),
		}))
	}

	unprocessed, err := repo.ListUnprocessedDeployments(ctx, types.EnvProduction)
	gt.NoError(t, err)
	var mine []*model.Deployment
	for _, d := range unprocessed {
		if d.RepoID == repoID {
			mine = append(mine, d)
		}
	}
	gt.V(t, len(mine)).Equal(3)
	// Oldest first
	gt.V(t, mine[0].ID).Equal(ids[0])
	gt.V(t, mine[2].ID).Equal(ids[2])

	// Previous deployment is the latest strictly before the reference time
	prev, err := repo.FindPreviousDeployment(ctx, repoID, types.EnvProduction, base.Add(2*24*time.Hour))
	gt.NoError(t, err)
	gt.V(t, prev.ID).Equal(ids[1])

	_, err = repo.FindPreviousDeployment(ctx, repoID, types.EnvProduction, base)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	count, err := repo.CountDeployments(ctx, types.EnvProduction, base, base.Add(24*time.Hour))
	gt.NoError(t, err)
	gt.True(t, count >= 2)

	byIDs, err := repo.ListDeploymentsByIDs(ctx, []types.DeploymentID{ids[0], ids[2]})
	gt.NoError(t, err)
	gt.V(t, len(byIDs)).Equal(2)
}

// TestCompleteAttribution tests the atomic fact-persist-and-flag write
func TestCompleteAttribution(t *testing.T, repo interfaces.MetricsRepository) {
	ctx := context.Background()
	repoID := newRepoID()
	deployID := types.DeploymentID(fmt.Sprintf("deploy-%s", uuid.New().String()[:8]))

	deployedAt := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	sha := newSHA()
	gt.NoError(t, repo.SaveDeployment(ctx, &model.Deployment{
		ID:          deployID,
		RepoID:      repoID,
		SHA:         sha,
		Environment: types.EnvProduction,
		CreatedAt:   deployedAt,
		UpdatedAt:   deployedAt,
	}))

	fact := &model.LeadTimeFact{
		CommitSHA:       sha,
		DeploymentID:    deployID,
		RepoID:          repoID,
		LeadTimeSeconds: 7200,
		DeployedAt:      deployedAt,
	}
	gt.NoError(t, repo.CompleteAttribution(ctx, deployID, []*model.LeadTimeFact{fact}))

	d, err := repo.GetDeployment(ctx, deployID)
	gt.NoError(t, err)
	gt.V(t, d.LeadTimeProcessed).Equal(true)

	// Replaying the same facts must not duplicate them
	gt.NoError(t, repo.CompleteAttribution(ctx, deployID, []*model.LeadTimeFact{fact}))

	facts, err := repo.ListLeadTimeFacts(ctx, &interfaces.LeadTimeFactQuery{SHAs: []types.CommitSHA{sha}})
	gt.NoError(t, err)
	gt.A(t, facts).Length(1).At(0, func(t testing.TB, f *model.LeadTimeFact) {
		gt.V(t, f.LeadTimeSeconds).Equal(int64(7200))
	})

	err = repo.CompleteAttribution(ctx, types.DeploymentID(uuid.New().String()), nil)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestLeadTimeFactQueries tests the SHA set, date range and repo filters
func TestLeadTimeFactQueries(t *testing.T, repo interfaces.MetricsRepository) {
	ctx := context.Background()
	repoID := newRepoID()
	deployID := types.DeploymentID(fmt.Sprintf("deploy-%s", uuid.New().String()[:8]))

	deployedAt := time.Date(2025, 7, 15, 23, 30, 0, 0, time.UTC)
	sha1 := newSHA()
	sha2 := newSHA()
	gt.NoError(t, repo.SaveDeployment(ctx, &model.Deployment{
		ID:          deployID,
		RepoID:      repoID,
		SHA:         sha2,
		Environment: types.EnvProduction,
		CreatedAt:   deployedAt,
		UpdatedAt:   deployedAt,
	}))
	gt.NoError(t, repo.CompleteAttribution(ctx, deployID, []*model.LeadTimeFact{
		{CommitSHA: sha1, DeploymentID: deployID, RepoID: repoID, LeadTimeSeconds: 3600, DeployedAt: deployedAt},
		{CommitSHA: sha2, DeploymentID: deployID, RepoID: repoID, LeadTimeSeconds: 1800, DeployedAt: deployedAt},
	}))

	// Empty SHA set matches nothing
	facts, err := repo.ListLeadTimeFacts(ctx, &interfaces.LeadTimeFactQuery{})
	gt.NoError(t, err)
	gt.V(t, len(facts)).Equal(0)

	facts, err = repo.ListLeadTimeFacts(ctx, &interfaces.LeadTimeFactQuery{
		SHAs: []types.CommitSHA{sha1, sha2},
	})
	gt.NoError(t, err)
	gt.V(t, len(facts)).Equal(2)

	// Date bounds are inclusive calendar days
	sameDay := time.Date(2025, 7, 15, 0, 0, 1, 0, time.UTC)
	facts, err = repo.ListLeadTimeFacts(ctx, &interfaces.LeadTimeFactQuery{
		SHAs:  []types.CommitSHA{sha1, sha2},
		Start: &sameDay,
		End:   &sameDay,
	})
	gt.NoError(t, err)
	gt.V(t, len(facts)).Equal(2)

	dayAfter := time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)
	facts, err = repo.ListLeadTimeFacts(ctx, &interfaces.LeadTimeFactQuery{
		SHAs:  []types.CommitSHA{sha1, sha2},
		Start: &dayAfter,
	})
	gt.NoError(t, err)
	gt.V(t, len(facts)).Equal(0)

	facts, err = repo.ListLeadTimeFacts(ctx, &interfaces.LeadTimeFactQuery{
		SHAs:    []types.CommitSHA{sha1, sha2},
		RepoIDs: []types.RepoID{newRepoID()},
	})
	gt.NoError(t, err)
	gt.V(t, len(facts)).Equal(0)
}

// TestIncidentUpsert tests in-place updates as an incident evolves
func TestIncidentUpsert(t *testing.T, repo interfaces.MetricsRepository) {
	ctx := context.Background()
	incidentID := types.IncidentID(fmt.Sprintf("incident-%s", uuid.New().String()[:8]))
	service := fmt.Sprintf("svc-%s", uuid.New().String()[:8])

	startedAt := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	incident := &model.Incident{
		ID:          incidentID,
		Title:       "checkout latency spike",
		State:       types.IncidentActive,
		Severity:    types.SeveritySEV2,
		ServiceName: service,
		StartedAt:   startedAt,
	}
	gt.NoError(t, repo.SaveIncident(ctx, incident))

	listed, err := repo.ListIncidents(ctx, &interfaces.IncidentQuery{ServiceName: service})
	gt.NoError(t, err)
	gt.A(t, listed).Length(1).At(0, func(t testing.TB, i *model.Incident) {
		gt.V(t, i.State).Equal(types.IncidentActive)
		gt.V(t, i.ResolvedAt).Equal(nil)
	})

	resolvedAt := startedAt.Add(90 * time.Minute)
	duration := int64(90 * 60)
	incident.State = types.IncidentResolved
	incident.ResolvedAt = &resolvedAt
	incident.DurationSeconds = &duration
	gt.NoError(t, repo.SaveIncident(ctx, incident))

	listed, err = repo.ListIncidents(ctx, &interfaces.IncidentQuery{
		ServiceName: service,
		State:       types.IncidentResolved,
	})
	gt.NoError(t, err)
	gt.A(t, listed).Length(1).At(0, func(t testing.TB, i *model.Incident) {
		gt.V(t, *i.DurationSeconds).Equal(duration)
		gt.V(t, i.Resolved()).Equal(true)
	})

	count, err := repo.CountIncidents(ctx, service, startedAt.Add(-time.Hour), startedAt.Add(time.Hour))
	gt.NoError(t, err)
	gt.V(t, count).Equal(int64(1))

	count, err = repo.CountIncidents(ctx, service, startedAt.Add(time.Hour), startedAt.Add(2*time.Hour))
	gt.NoError(t, err)
	gt.V(t, count).Equal(int64(0))
}

// TestPullRequestCRUD tests pull request save and list
func TestPullRequestCRUD(t *testing.T, repo interfaces.MetricsRepository) {
	ctx := context.Background()
	repoID := newRepoID()

	mergedAt := time.Date(2025, 8, 5, 14, 0, 0, 0, time.UTC)
	pr := &model.PullRequest{
		ID:             42,
		RepoID:         repoID,
		Title:          "Add retry to payment client",
		State:          "open",
		FirstCommitSHA: newSHA(),
	}
	gt.NoError(t, repo.SavePullRequest(ctx, pr))

	// Merge the pull request and upsert
	pr.State = "closed"
	pr.MergedAt = &mergedAt
	gt.NoError(t, repo.SavePullRequest(ctx, pr))

	listed, err := repo.ListPullRequests(ctx)
	gt.NoError(t, err)

	var found *model.PullRequest
	for _, p := range listed {
		if p.RepoID == repoID && p.ID == 42 {
			found = p
		}
	}
	gt.V(t, found).NotEqual(nil)
	gt.True(t, found.Merged())
}

// TestRepositoryConfigCRUD tests the tracked-repository catalog
func TestRepositoryConfigCRUD(t *testing.T, repo interfaces.MetricsRepository) {
	ctx := context.Background()
	repoID := newRepoID()

	cfg := &model.RepositoryConfig{
		ID:           repoID,
		URL:          fmt.Sprintf("https://github.com/%s", repoID),
		ServiceName:  "checkout",
		WorkflowFile: "deploy.yml",
	}
	gt.NoError(t, repo.SaveRepositoryConfig(ctx, cfg))

	configs, err := repo.ListRepositoryConfigs(ctx)
	gt.NoError(t, err)

	var found *model.RepositoryConfig
	for _, c := range configs {
		if c.ID == repoID {
			found = c
		}
	}
	gt.V(t, found).NotEqual(nil)
	gt.V(t, found.ServiceName).Equal("checkout")
	gt.V(t, found.WorkflowFile).Equal("deploy.yml")
}

// TestWatermark tests sync watermark get/set
func TestWatermark(t *testing.T, repo interfaces.MetricsRepository) {
	ctx := context.Background()
	job := types.SyncJob(fmt.Sprintf("commit-sync:%s", newRepoID()))

	_, err := repo.GetWatermark(ctx, job)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))

	first := time.Date(2025, 8, 20, 6, 0, 0, 0, time.UTC)
	gt.NoError(t, repo.SetWatermark(ctx, job, first))

	wm, err := repo.GetWatermark(ctx, job)
	gt.NoError(t, err)
	gt.V(t, wm.Job).Equal(job)
	gt.True(t, wm.LastSuccessfulRun.Equal(first))

	second := first.Add(6 * time.Hour)
	gt.NoError(t, repo.SetWatermark(ctx, job, second))

	wm, err = repo.GetWatermark(ctx, job)
	gt.NoError(t, err)
	gt.True(t, wm.LastSuccessfulRun.Equal(second))
}
