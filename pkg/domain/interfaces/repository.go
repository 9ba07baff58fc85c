package interfaces

import (
	"context"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
)

// LeadTimeFactQuery filters lead-time facts. SHAs is required; Start/End
// bound the shipping deployment's date (inclusive calendar days); RepoIDs
// restricts to the given repositories.
type LeadTimeFactQuery struct {
	SHAs    []types.CommitSHA
	Start   *time.Time
	End     *time.Time
	RepoIDs []types.RepoID
}

// IncidentQuery filters incidents. Zero-valued fields are not applied.
type IncidentQuery struct {
	ServiceName string
	State       types.IncidentState
	Start       *time.Time
	End         *time.Time
}

// MetricsRepository is the persistence contract of the metrics engine. Only
// query shapes are specified here; the backing technology is a collaborator
// concern.
type MetricsRepository interface {
	// Commit graph. Commits and edges are append-only; saving an existing
	// commit or edge is a no-op.
	SaveCommit(ctx context.Context, commit *model.Commit) error
	SaveCommitEdge(ctx context.Context, edge *model.CommitEdge) error
	GetCommit(ctx context.Context, repoID types.RepoID, sha types.CommitSHA) (*model.Commit, error)
	ListParents(ctx context.Context, repoID types.RepoID, sha types.CommitSHA) ([]types.CommitSHA, error)
	ListCommitEdges(ctx context.Context) ([]*model.CommitEdge, error)
	// ListCommitsByAuthors returns commits authored by any of the given
	// names (case-insensitive). An empty author set returns all commits.
	ListCommitsByAuthors(ctx context.Context, authors []string) ([]*model.Commit, error)

	// Deployments. SaveDeployment upserts by external ID; creation starts
	// with LeadTimeProcessed=false and updates never reset the flag.
	SaveDeployment(ctx context.Context, deployment *model.Deployment) error
	GetDeployment(ctx context.Context, id types.DeploymentID) (*model.Deployment, error)
	ListUnprocessedDeployments(ctx context.Context, env types.Environment) ([]*model.Deployment, error)
	FindPreviousDeployment(ctx context.Context, repoID types.RepoID, env types.Environment, before time.Time) (*model.Deployment, error)
	ListDeployments(ctx context.Context, env types.Environment, start, end time.Time) ([]*model.Deployment, error)
	CountDeployments(ctx context.Context, env types.Environment, start, end time.Time) (int64, error)
	ListDeploymentsByIDs(ctx context.Context, ids []types.DeploymentID) ([]*model.Deployment, error)

	// CompleteAttribution persists the deployment's lead-time facts and
	// flips LeadTimeProcessed in one write, so a crash in between cannot
	// duplicate-process the deployment.
	CompleteAttribution(ctx context.Context, id types.DeploymentID, facts []*model.LeadTimeFact) error
	ListLeadTimeFacts(ctx context.Context, query *LeadTimeFactQuery) ([]*model.LeadTimeFact, error)

	// Incidents. SaveIncident upserts by external ID, updating state,
	// resolution time and duration in place as the incident evolves.
	SaveIncident(ctx context.Context, incident *model.Incident) error
	ListIncidents(ctx context.Context, query *IncidentQuery) ([]*model.Incident, error)
	CountIncidents(ctx context.Context, serviceName string, start, end time.Time) (int64, error)

	// Pull requests.
	SavePullRequest(ctx context.Context, pr *model.PullRequest) error
	ListPullRequests(ctx context.Context) ([]*model.PullRequest, error)

	// Repository configuration.
	SaveRepositoryConfig(ctx context.Context, cfg *model.RepositoryConfig) error
	ListRepositoryConfigs(ctx context.Context) ([]*model.RepositoryConfig, error)

	// Sync watermarks.
	GetWatermark(ctx context.Context, job types.SyncJob) (*model.SyncWatermark, error)
	SetWatermark(ctx context.Context, job types.SyncJob, lastRun time.Time) error
}
