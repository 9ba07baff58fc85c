package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// BuildReport assembles the dashboard payload for one scope. The same
// aggregation serves the individual, team and organization views; they differ
// only in the author set of the scope.
func (x *UseCase) BuildReport(ctx context.Context, scope *model.ReportScope) (*model.Report, error) {
	store := x.clients.Store()

	report := &model.Report{Scope: *scope}

	authored, err := store.ListCommitsByAuthors(ctx, scope.Authors)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commits by authors")
	}
	if len(authored) == 0 {
		return report, nil
	}

	edges, err := store.ListCommitEdges(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commit edges")
	}
	parentCount := map[types.RepoID]map[types.CommitSHA]int{}
	for _, e := range edges {
		if parentCount[e.RepoID] == nil {
			parentCount[e.RepoID] = map[types.CommitSHA]int{}
		}
		parentCount[e.RepoID][e.ChildSHA]++
	}

	// Merge commits are infrastructure noise for individual attribution
	var commits []*model.Commit
	for _, c := range authored {
		if c.IsMergeCommit(parentCount[c.RepoID][c.SHA]) {
			continue
		}
		if !scope.MatchesRepo(c.RepoID) {
			continue
		}
		commits = append(commits, c)
	}
	if len(commits) == 0 {
		return report, nil
	}

	shas := make([]types.CommitSHA, 0, len(commits))
	for _, c := range commits {
		shas = append(shas, c.SHA)
	}

	facts, err := store.ListLeadTimeFacts(ctx, &interfaces.LeadTimeFactQuery{
		SHAs:    shas,
		Start:   scope.Start,
		End:     scope.End,
		RepoIDs: scope.RepoIDs,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list lead time facts")
	}

	// With deployment filters active the commit statistics narrow to the
	// commits that actually shipped inside the scope
	statCommits := commits
	if scope.Filtered() {
		shipped := map[types.CommitSHA]struct{}{}
		for _, f := range facts {
			shipped[f.CommitSHA] = struct{}{}
		}
		statCommits = nil
		for _, c := range commits {
			if _, ok := shipped[c.SHA]; ok {
				statCommits = append(statCommits, c)
			}
		}
	}

	report.Commits, report.Repositories = commitStats(statCommits)

	if report.PullRequests, err = x.pullRequestStats(ctx, commits, edges); err != nil {
		return nil, err
	}

	dora, err := x.doraStats(ctx, scope, facts)
	if err != nil {
		return nil, err
	}
	report.DORA = *dora

	return report, nil
}

func commitStats(commits []*model.Commit) (model.CommitStats, []model.RepositoryStats) {
	var stats model.CommitStats
	perRepo := map[types.RepoID]int64{}

	for _, c := range commits {
		stats.TotalCommits++
		perRepo[c.RepoID]++

		t := c.AuthoredAt
		if stats.FirstCommitAt == nil || t.Before(*stats.FirstCommitAt) {
			first := t
			stats.FirstCommitAt = &first
		}
		if stats.LastCommitAt == nil || t.After(*stats.LastCommitAt) {
			last := t
			stats.LastCommitAt = &last
		}
	}
	stats.RepositoryCount = int64(len(perRepo))

	repos := make([]model.RepositoryStats, 0, len(perRepo))
	for id, count := range perRepo {
		repos = append(repos, model.RepositoryStats{RepoID: id, CommitCount: count})
	}
	sort.Slice(repos, func(i, j int) bool {
		if repos[i].CommitCount != repos[j].CommitCount {
			return repos[i].CommitCount > repos[j].CommitCount
		}
		return repos[i].RepoID < repos[j].RepoID
	})

	return stats, repos
}

func (x *UseCase) doraStats(ctx context.Context, scope *model.ReportScope, facts []*model.LeadTimeFact) (*model.DORAStats, error) {
	store := x.clients.Store()
	stats := &model.DORAStats{}

	if len(facts) == 0 {
		return stats, nil
	}

	stats.AttributedCommits = int64(len(facts))

	var sum, min, max float64
	deploymentIDs := map[types.DeploymentID]struct{}{}
	for i, f := range facts {
		h := f.LeadTimeHours()
		sum += h
		if i == 0 || h < min {
			min = h
		}
		if i == 0 || h > max {
			max = h
		}
		deploymentIDs[f.DeploymentID] = struct{}{}
	}
	avg := sum / float64(len(facts))
	stats.AvgLeadTimeHours = &avg
	stats.MinLeadTimeHours = &min
	stats.MaxLeadTimeHours = &max
	stats.TotalDeployments = int64(len(deploymentIDs))

	ids := make([]types.DeploymentID, 0, len(deploymentIDs))
	for id := range deploymentIDs {
		ids = append(ids, id)
	}
	deployments, err := store.ListDeploymentsByIDs(ctx, ids)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list deployments by IDs")
	}

	incidents, err := store.ListIncidents(ctx, &interfaces.IncidentQuery{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}

	failed := identifyFailedDeployments(deployments, incidents)
	stats.FailedDeployments = int64(len(failed))
	if stats.TotalDeployments > 0 {
		cfr := float64(stats.FailedDeployments) / float64(stats.TotalDeployments) * 100
		stats.ChangeFailureRate = &cfr
	}

	// MTTR covers the repositories the scoped deployments touch, not only the
	// failed ones
	relevantRepos := map[types.RepoID]struct{}{}
	if len(scope.RepoIDs) > 0 {
		for _, id := range scope.RepoIDs {
			relevantRepos[id] = struct{}{}
		}
	} else {
		for _, d := range deployments {
			relevantRepos[d.RepoID] = struct{}{}
		}
	}

	var resolved []*model.Incident
	for _, i := range incidents {
		if !i.Resolved() {
			continue
		}
		if _, ok := relevantRepos[i.RepoID]; !ok {
			continue
		}
		if !scope.MatchesDate(i.StartedAt) {
			continue
		}
		resolved = append(resolved, i)
	}

	if len(resolved) > 0 {
		var mttrSum, mttrMin, mttrMax float64
		for i, inc := range resolved {
			h := inc.DurationHours()
			mttrSum += h
			if i == 0 || h < mttrMin {
				mttrMin = h
			}
			if i == 0 || h > mttrMax {
				mttrMax = h
			}
		}
		mttrAvg := mttrSum / float64(len(resolved))
		stats.AvgMTTRHours = &mttrAvg
		stats.MinMTTRHours = &mttrMin
		stats.MaxMTTRHours = &mttrMax
		stats.ResolvedIncidents = int64(len(resolved))
	}

	stats.Daily = buildDailySeries(facts, deployments, failed, resolved)

	return stats, nil
}

// buildDailySeries merges the lead-time view and the incident view into one
// time series. A date appears when either side has data.
func buildDailySeries(facts []*model.LeadTimeFact, deployments []*model.Deployment, failed map[types.DeploymentID]struct{}, resolved []*model.Incident) []model.DailyMetric {
	type dayAgg struct {
		leadSum     float64
		commits     int64
		deployments map[types.DeploymentID]struct{}
		failedCount int64
		mttrSum     float64
		incidents   int64
	}

	days := map[time.Time]*dayAgg{}
	dayOf := func(t time.Time) *dayAgg {
		d := model.DateOf(t)
		agg, ok := days[d]
		if !ok {
			agg = &dayAgg{deployments: map[types.DeploymentID]struct{}{}}
			days[d] = agg
		}
		return agg
	}

	for _, f := range facts {
		agg := dayOf(f.DeployedAt)
		agg.leadSum += f.LeadTimeHours()
		agg.commits++
	}
	for _, d := range deployments {
		agg := dayOf(d.CreatedAt)
		agg.deployments[d.ID] = struct{}{}
		if _, ok := failed[d.ID]; ok {
			agg.failedCount++
		}
	}
	for _, i := range resolved {
		agg := dayOf(i.StartedAt)
		agg.mttrSum += i.DurationHours()
		agg.incidents++
	}

	out := make([]model.DailyMetric, 0, len(days))
	for date, agg := range days {
		metric := model.DailyMetric{
			Date:              date,
			Commits:           agg.commits,
			Deployments:       int64(len(agg.deployments)),
			FailedDeployments: agg.failedCount,
			ResolvedIncidents: agg.incidents,
		}
		if agg.commits > 0 {
			avg := agg.leadSum / float64(agg.commits)
			metric.AvgLeadTimeHours = &avg
		}
		if agg.incidents > 0 {
			avg := agg.mttrSum / float64(agg.incidents)
			metric.AvgMTTRHours = &avg
		}
		out = append(out, metric)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out
}
