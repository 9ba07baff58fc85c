package memory

import (
	"sync"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
)

// New creates a new in-memory repository
func New() interfaces.MetricsRepository {
	return &metricsRepository{
		commits:      make(map[types.RepoID]map[types.CommitSHA]*model.Commit),
		parents:      make(map[types.RepoID]map[types.CommitSHA][]types.CommitSHA),
		deployments:  make(map[types.DeploymentID]*model.Deployment),
		factKeys:     make(map[string]struct{}),
		incidents:    make(map[types.IncidentID]*model.Incident),
		pullRequests: make(map[string]*model.PullRequest),
		configs:      make(map[types.RepoID]*model.RepositoryConfig),
		watermarks:   make(map[types.SyncJob]time.Time),
	}
}

type metricsRepository struct {
	mu sync.RWMutex

	commits      map[types.RepoID]map[types.CommitSHA]*model.Commit
	parents      map[types.RepoID]map[types.CommitSHA][]types.CommitSHA
	edges        []*model.CommitEdge
	deployments  map[types.DeploymentID]*model.Deployment
	facts        []*model.LeadTimeFact
	factKeys     map[string]struct{}
	incidents    map[types.IncidentID]*model.Incident
	pullRequests map[string]*model.PullRequest
	configs      map[types.RepoID]*model.RepositoryConfig
	watermarks   map[types.SyncJob]time.Time
}

func copyCommit(c *model.Commit) *model.Commit {
	cp := *c
	return &cp
}

func copyDeployment(d *model.Deployment) *model.Deployment {
	cp := *d
	return &cp
}

func copyFact(f *model.LeadTimeFact) *model.LeadTimeFact {
	cp := *f
	return &cp
}

func copyIncident(i *model.Incident) *model.Incident {
	cp := *i
	if i.ResolvedAt != nil {
		t := *i.ResolvedAt
		cp.ResolvedAt = &t
	}
	if i.DurationSeconds != nil {
		d := *i.DurationSeconds
		cp.DurationSeconds = &d
	}
	return &cp
}

func copyPullRequest(pr *model.PullRequest) *model.PullRequest {
	cp := *pr
	if pr.MergedAt != nil {
		t := *pr.MergedAt
		cp.MergedAt = &t
	}
	return &cp
}

func copyConfig(c *model.RepositoryConfig) *model.RepositoryConfig {
	cp := *c
	return &cp
}
