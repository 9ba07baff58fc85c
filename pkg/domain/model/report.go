package model

import (
	"time"

	"github.com/k-morita/deployscope/pkg/domain/types"
)

// ReportScope selects the commits a dashboard report aggregates over. An
// empty author set means the whole organization; one author is an individual
// view; a team is its member set. Start and End bound the shipping
// deployment's date; RepoIDs restricts to the given repositories. All fields
// are optional.
type ReportScope struct {
	Authors []string
	Start   *time.Time
	End     *time.Time
	RepoIDs []types.RepoID
}

// MatchesDate checks a deployment date against the scope bounds.
func (x *ReportScope) MatchesDate(t time.Time) bool {
	d := DateOf(t)
	if x.Start != nil && d.Before(DateOf(*x.Start)) {
		return false
	}
	if x.End != nil && d.After(DateOf(*x.End)) {
		return false
	}
	return true
}

// MatchesRepo checks a repository against the scope's repository filter.
func (x *ReportScope) MatchesRepo(id types.RepoID) bool {
	if len(x.RepoIDs) == 0 {
		return true
	}
	for _, r := range x.RepoIDs {
		if r == id {
			return true
		}
	}
	return false
}

// Filtered reports whether any deployment-level filter is set. With no
// filters, commit statistics cover every authored commit, not only the ones
// already shipped.
func (x *ReportScope) Filtered() bool {
	return x.Start != nil || x.End != nil || len(x.RepoIDs) > 0
}

// CommitStats summarizes the scoped commits.
type CommitStats struct {
	TotalCommits    int64
	RepositoryCount int64
	FirstCommitAt   *time.Time
	LastCommitAt    *time.Time
}

// RepositoryStats is the per-repository commit count of the scoped commits.
type RepositoryStats struct {
	RepoID      types.RepoID
	CommitCount int64
}

// PullRequestStats counts the pull requests relevant to the scoped commits.
type PullRequestStats struct {
	Total  int64
	Merged int64
	Open   int64
}

// DORAStats is the dashboard-scoped DORA aggregate. Pointer fields are nil
// when there is no data to average: nil lead time distinguishes "no shipped
// commits" from an instantaneous lead time, and nil CFR means no deployments
// to fail.
type DORAStats struct {
	AvgLeadTimeHours *float64
	MinLeadTimeHours *float64
	MaxLeadTimeHours *float64

	TotalDeployments  int64
	AttributedCommits int64

	ChangeFailureRate *float64
	FailedDeployments int64

	AvgMTTRHours      *float64
	MinMTTRHours      *float64
	MaxMTTRHours      *float64
	ResolvedIncidents int64

	Daily []DailyMetric
}

// DailyMetric is one row of the daily time series. A date appears when it has
// lead-time data, incident data, or both; the absent side stays nil/zero.
type DailyMetric struct {
	Date              time.Time
	AvgLeadTimeHours  *float64
	Deployments       int64
	Commits           int64
	FailedDeployments int64
	AvgMTTRHours      *float64
	ResolvedIncidents int64
}

// Report is the full dashboard payload for one scope.
type Report struct {
	Scope        ReportScope
	Repositories []RepositoryStats
	Commits      CommitStats
	PullRequests PullRequestStats
	DORA         DORAStats
}
