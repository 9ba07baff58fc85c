package usecase

import (
	"time"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
)

// failureWindow is how long after a deployment an incident start still counts
// as caused by that deployment.
const failureWindow = 48 * time.Hour

// incidentMatchesDeployment checks the correlation predicate: the incident
// started inside [deploy, deploy+48h) and belongs to the same service. When
// either side has no service name, repository identity is the fallback.
func incidentMatchesDeployment(incident *model.Incident, deployment *model.Deployment) bool {
	start := incident.StartedAt
	deployTime := deployment.CreatedAt
	if start.Before(deployTime) || !start.Before(deployTime.Add(failureWindow)) {
		return false
	}

	if incident.ServiceName != "" && deployment.ServiceName != "" {
		return incident.ServiceName == deployment.ServiceName
	}
	return incident.RepoID == deployment.RepoID
}

// identifyFailedDeployments returns the IDs of deployments with at least one
// correlated incident.
func identifyFailedDeployments(deployments []*model.Deployment, incidents []*model.Incident) map[types.DeploymentID]struct{} {
	failed := map[types.DeploymentID]struct{}{}
	for _, d := range deployments {
		for _, i := range incidents {
			if incidentMatchesDeployment(i, d) {
				failed[d.ID] = struct{}{}
				break
			}
		}
	}

	return failed
}
