package interfaces

//go:generate moq -out ../mock/sources.go -pkg mock . CommitSource DeploymentSource IncidentSource PullRequestSource

import (
	"context"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/model"
)

// The source interfaces are the contract boundary toward the out-of-scope
// collaborators that mirror external systems into the store. Pagination,
// retries and rate limiting live behind these interfaces.

type CommitSource interface {
	// FetchCommits returns commits authored since the given time, together
	// with their parent edges. Edges may reference commits outside the
	// returned window; the graph store tolerates dangling parents.
	FetchCommits(ctx context.Context, owner, repo string, since time.Time) ([]*model.Commit, []*model.CommitEdge, error)
}

type DeploymentSource interface {
	// FetchDeployments returns successful deployment events created since
	// the given time.
	FetchDeployments(ctx context.Context, owner, repo, workflowFile string, since time.Time) ([]*model.Deployment, error)
}

type IncidentSource interface {
	// FetchIncidents returns incidents of the given service created or
	// modified since the given time.
	FetchIncidents(ctx context.Context, serviceName string, since time.Time) ([]*model.Incident, error)
}

type PullRequestSource interface {
	FetchPullRequests(ctx context.Context, owner, repo string, since time.Time) ([]*model.PullRequest, error)
}
