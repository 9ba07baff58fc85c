package model

import (
	"strings"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RepositoryConfig is one repository under observation. URL points at the
// GitHub repository; ServiceName is the incident-management service tag used
// for incident correlation; WorkflowFile names the deployment workflow whose
// successful runs count as deployments.
type RepositoryConfig struct {
	ID           types.RepoID
	URL          string
	ServiceName  string
	WorkflowFile string
}

// OwnerRepo parses the configured URL into owner and repository name.
// Supports "https://github.com/owner/repo(.git)" and
// "git@github.com:owner/repo(.git)". A URL that does not parse makes the
// repository ineligible for sync; callers skip it rather than fail the pass.
func (x *RepositoryConfig) OwnerRepo() (string, string, error) {
	path := x.URL
	switch {
	case strings.HasPrefix(path, "git@github.com:"):
		path = strings.TrimPrefix(path, "git@github.com:")
	case strings.Contains(path, "github.com/"):
		parts := strings.SplitN(path, "github.com/", 2)
		path = parts[1]
	default:
		return "", "", goerr.Wrap(types.ErrValidationFailed, "repository URL is not a GitHub URL", goerr.V("url", x.URL))
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", goerr.Wrap(types.ErrValidationFailed, "failed to parse owner/repo from repository URL", goerr.V("url", x.URL))
	}

	return parts[0], parts[1], nil
}

// SyncWatermark records the last successful completion of a named sync job.
// It bounds "since" queries to upstream collaborators so repeated runs do not
// refetch history.
type SyncWatermark struct {
	Job               types.SyncJob
	LastSuccessfulRun time.Time
}
