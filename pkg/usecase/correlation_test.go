package usecase

import (
	"testing"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestIncidentMatchesDeploymentWindow(t *testing.T) {
	deployedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deployment := &model.Deployment{
		ID:        "d1",
		RepoID:    "acme/widget",
		CreatedAt: deployedAt,
	}

	cases := []struct {
		name      string
		startedAt time.Time
		want      bool
	}{
		{"at deployment time", deployedAt, true},
		{"one hour after", deployedAt.Add(time.Hour), true},
		{"just inside the window", deployedAt.Add(48*time.Hour - time.Second), true},
		{"exactly at the window edge", deployedAt.Add(48 * time.Hour), false},
		{"before the deployment", deployedAt.Add(-time.Minute), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			incident := &model.Incident{
				ID:        "i1",
				RepoID:    "acme/widget",
				StartedAt: tc.startedAt,
			}
			gt.V(t, incidentMatchesDeployment(incident, deployment)).Equal(tc.want)
		})
	}
}

func TestIncidentMatchesDeploymentService(t *testing.T) {
	deployedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	startedAt := deployedAt.Add(time.Hour)

	cases := []struct {
		name            string
		incidentService string
		incidentRepo    types.RepoID
		deployService   string
		deployRepo      types.RepoID
		want            bool
	}{
		{"same service", "checkout", "acme/widget", "checkout", "acme/widget", true},
		{"different service same repo", "checkout", "acme/widget", "billing", "acme/widget", false},
		{"incident without service falls back to repo", "", "acme/widget", "checkout", "acme/widget", true},
		{"deployment without service falls back to repo", "checkout", "acme/widget", "", "acme/widget", true},
		{"no service and different repo", "", "acme/widget", "", "acme/gadget", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			incident := &model.Incident{
				ID:          "i1",
				RepoID:      tc.incidentRepo,
				ServiceName: tc.incidentService,
				StartedAt:   startedAt,
			}
			deployment := &model.Deployment{
				ID:          "d1",
				RepoID:      tc.deployRepo,
				ServiceName: tc.deployService,
				CreatedAt:   deployedAt,
			}
			gt.V(t, incidentMatchesDeployment(incident, deployment)).Equal(tc.want)
		})
	}
}

func TestIdentifyFailedDeployments(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deployments := []*model.Deployment{
		{ID: "d1", RepoID: "acme/widget", CreatedAt: base},
		{ID: "d2", RepoID: "acme/widget", CreatedAt: base.Add(72 * time.Hour)},
		{ID: "d3", RepoID: "acme/gadget", CreatedAt: base},
	}
	incidents := []*model.Incident{
		// Inside d1's window only
		{ID: "i1", RepoID: "acme/widget", StartedAt: base.Add(time.Hour)},
		// Inside d2's window, and a second hit on the same deployment
		{ID: "i2", RepoID: "acme/widget", StartedAt: base.Add(73 * time.Hour)},
		{ID: "i3", RepoID: "acme/widget", StartedAt: base.Add(74 * time.Hour)},
	}

	failed := identifyFailedDeployments(deployments, incidents)
	gt.V(t, len(failed)).Equal(2)

	_, ok := failed["d1"]
	gt.True(t, ok)
	_, ok = failed["d2"]
	gt.True(t, ok)
	_, ok = failed["d3"]
	gt.V(t, ok).Equal(false)
}
