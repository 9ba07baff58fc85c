package usecase

import (
	"context"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DeploymentFrequency counts deployments per period bucket.
func (x *UseCase) DeploymentFrequency(ctx context.Context, env types.Environment, start, end time.Time, g types.Granularity) ([]*model.DeploymentFrequency, error) {
	store := x.clients.Store()

	var out []*model.DeploymentFrequency
	for _, period := range model.SplitPeriods(g, start, end) {
		count, err := store.CountDeployments(ctx, env, period.Start, model.EndOfDay(period.End))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count deployments", goerr.V("period", period))
		}
		out = append(out, &model.DeploymentFrequency{Period: period, Count: count})
	}

	return out, nil
}

// ChangeFailureRate computes the portfolio-level failure rate per period
// bucket: incidents observed over deployments observed. A bucket with no
// deployments reports a zero rate.
func (x *UseCase) ChangeFailureRate(ctx context.Context, serviceName string, env types.Environment, start, end time.Time, g types.Granularity) ([]*model.CFRMetric, error) {
	store := x.clients.Store()

	var out []*model.CFRMetric
	for _, period := range model.SplitPeriods(g, start, end) {
		periodEnd := model.EndOfDay(period.End)

		deployments, err := store.CountDeployments(ctx, env, period.Start, periodEnd)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count deployments", goerr.V("period", period))
		}
		incidents, err := store.CountIncidents(ctx, serviceName, period.Start, periodEnd)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count incidents", goerr.V("period", period))
		}

		rate := 0.0
		if deployments > 0 {
			rate = float64(incidents) / float64(deployments) * 100
		}

		out = append(out, &model.CFRMetric{
			Period:          period,
			DeploymentCount: deployments,
			IncidentCount:   incidents,
			Rate:            rate,
			Level:           model.CFRLevel(rate),
		})
	}

	return out, nil
}

// MeanTimeToRecovery averages the resolution duration of resolved incidents
// per period bucket, keyed by incident start time.
func (x *UseCase) MeanTimeToRecovery(ctx context.Context, serviceName string, start, end time.Time, g types.Granularity) ([]*model.MTTRMetric, error) {
	store := x.clients.Store()

	var out []*model.MTTRMetric
	for _, period := range model.SplitPeriods(g, start, end) {
		periodStart := period.Start
		periodEnd := model.EndOfDay(period.End)

		incidents, err := store.ListIncidents(ctx, &interfaces.IncidentQuery{
			ServiceName: serviceName,
			State:       types.IncidentResolved,
			Start:       &periodStart,
			End:         &periodEnd,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list incidents", goerr.V("period", period))
		}

		var count, total int64
		for _, i := range incidents {
			if !i.Resolved() {
				continue
			}
			count++
			total += *i.DurationSeconds
		}

		var avg int64
		if count > 0 {
			avg = total / count
		}

		out = append(out, &model.MTTRMetric{
			Period:                period,
			ResolvedIncidentCount: count,
			AverageSeconds:        avg,
		})
	}

	return out, nil
}
