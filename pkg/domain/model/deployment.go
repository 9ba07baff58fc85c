package model

import (
	"time"

	"github.com/k-morita/deployscope/pkg/domain/types"
)

// Deployment is one release event to an environment. LeadTimeProcessed is the
// idempotency marker of the attribution pass: it transitions false to true
// exactly once and is never reverted.
type Deployment struct {
	ID                types.DeploymentID
	RepoID            types.RepoID
	SHA               types.CommitSHA
	Environment       types.Environment
	ServiceName       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	LeadTimeProcessed bool
}

// LeadTimeFact associates an attributed commit with the deployment that first
// shipped it. Created at most once per (commit, deployment) pair. DeployedAt
// is denormalized from the deployment for date filtering.
type LeadTimeFact struct {
	CommitSHA       types.CommitSHA
	DeploymentID    types.DeploymentID
	RepoID          types.RepoID
	LeadTimeSeconds int64
	DeployedAt      time.Time
}

// LeadTimeHours converts the stored seconds to hours for reporting.
func (x *LeadTimeFact) LeadTimeHours() float64 {
	return float64(x.LeadTimeSeconds) / 3600.0
}
