package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func saveIncident(t *testing.T, store interfaces.MetricsRepository, id types.IncidentID, service string, startedAt time.Time, durationSeconds int64) {
	t.Helper()
	resolvedAt := startedAt.Add(time.Duration(durationSeconds) * time.Second)
	gt.NoError(t, store.SaveIncident(context.Background(), &model.Incident{
		ID:              id,
		RepoID:          testRepoID,
		Title:           "outage " + string(id),
		State:           types.IncidentResolved,
		Severity:        types.SeveritySEV2,
		ServiceName:     service,
		StartedAt:       startedAt,
		ResolvedAt:      &resolvedAt,
		DurationSeconds: &durationSeconds,
	}))
}

func TestDeploymentFrequency(t *testing.T) {
	uc, store := newTestUseCase()
	ctx := context.Background()

	// Week of Monday 2025-11-03: three deployments. Following week: one.
	week1 := model.Date(2025, time.November, 3)
	saveDeployment(t, store, "d1", "c1", week1.Add(10*time.Hour))
	saveDeployment(t, store, "d2", "c2", week1.Add(2*24*time.Hour))
	saveDeployment(t, store, "d3", "c3", week1.Add(6*24*time.Hour+23*time.Hour))
	saveDeployment(t, store, "d4", "c4", week1.Add(8*24*time.Hour))

	out, err := uc.DeploymentFrequency(ctx, types.EnvProduction, week1, model.Date(2025, time.November, 16), types.Weekly)
	gt.NoError(t, err)

	gt.A(t, out).Length(2)
	gt.V(t, out[0].Count).Equal(int64(3))
	gt.V(t, out[1].Count).Equal(int64(1))
}

func TestChangeFailureRate(t *testing.T) {
	uc, store := newTestUseCase()
	ctx := context.Background()

	week1 := model.Date(2025, time.November, 3)
	for i, id := range []types.DeploymentID{"d1", "d2", "d3", "d4", "d5"} {
		saveDeployment(t, store, id, types.CommitSHA(id), week1.Add(time.Duration(i)*time.Hour))
	}
	for i, id := range []types.IncidentID{"i1", "i2", "i3", "i4", "i5", "i6", "i7", "i8"} {
		saveIncident(t, store, id, "checkout", week1.Add(time.Duration(i+1)*time.Hour), 600)
	}

	out, err := uc.ChangeFailureRate(ctx, "", types.EnvProduction, week1, model.Date(2025, time.November, 9), types.Weekly)
	gt.NoError(t, err)

	// More incidents than deployments pushes the ratio past 100%
	gt.A(t, out).Length(1).At(0, func(t testing.TB, m *model.CFRMetric) {
		gt.V(t, m.DeploymentCount).Equal(int64(5))
		gt.V(t, m.IncidentCount).Equal(int64(8))
		gt.V(t, m.Rate).Equal(160.0)
		gt.V(t, m.Level).Equal(types.LevelLow)
	})
}

func TestChangeFailureRateNoDeployments(t *testing.T) {
	uc, store := newTestUseCase()
	ctx := context.Background()

	week1 := model.Date(2025, time.November, 3)
	saveIncident(t, store, "i1", "checkout", week1.Add(time.Hour), 600)

	out, err := uc.ChangeFailureRate(ctx, "", types.EnvProduction, week1, model.Date(2025, time.November, 9), types.Weekly)
	gt.NoError(t, err)

	gt.A(t, out).Length(1).At(0, func(t testing.TB, m *model.CFRMetric) {
		gt.V(t, m.DeploymentCount).Equal(int64(0))
		gt.V(t, m.IncidentCount).Equal(int64(1))
		gt.V(t, m.Rate).Equal(0.0)
		gt.V(t, m.Level).Equal(types.LevelElite)
	})
}

func TestMeanTimeToRecovery(t *testing.T) {
	uc, store := newTestUseCase()
	ctx := context.Background()

	week1 := model.Date(2025, time.November, 3)
	saveIncident(t, store, "i1", "checkout", week1.Add(time.Hour), 100)
	saveIncident(t, store, "i2", "checkout", week1.Add(2*time.Hour), 101)
	// Still active: no duration, must not count
	gt.NoError(t, store.SaveIncident(ctx, &model.Incident{
		ID:          "i3",
		RepoID:      testRepoID,
		State:       types.IncidentActive,
		ServiceName: "checkout",
		StartedAt:   week1.Add(3 * time.Hour),
	}))

	out, err := uc.MeanTimeToRecovery(ctx, "checkout", week1, model.Date(2025, time.November, 9), types.Weekly)
	gt.NoError(t, err)

	// (100 + 101) / 2 truncates to 100
	gt.A(t, out).Length(1).At(0, func(t testing.TB, m *model.MTTRMetric) {
		gt.V(t, m.ResolvedIncidentCount).Equal(int64(2))
		gt.V(t, m.AverageSeconds).Equal(int64(100))
	})
}

func TestMeanTimeToRecoveryEmptyPeriod(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	week1 := model.Date(2025, time.November, 3)
	out, err := uc.MeanTimeToRecovery(ctx, "checkout", week1, model.Date(2025, time.November, 9), types.Weekly)
	gt.NoError(t, err)

	gt.A(t, out).Length(1).At(0, func(t testing.TB, m *model.MTTRMetric) {
		gt.V(t, m.ResolvedIncidentCount).Equal(int64(0))
		gt.V(t, m.AverageSeconds).Equal(int64(0))
	})
}
