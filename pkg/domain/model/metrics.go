package model

import "github.com/k-morita/deployscope/pkg/domain/types"

// DeploymentFrequency is the deployment count of one period bucket.
type DeploymentFrequency struct {
	Period
	Count int64
}

// CFRMetric is the portfolio-level change failure rate of one period bucket:
// incidents observed over deployments observed, with no per-deployment
// correlation. Rate is 0 when the bucket has no deployments.
type CFRMetric struct {
	Period
	DeploymentCount int64
	IncidentCount   int64
	Rate            float64
	Level           types.DORALevel
}

// MTTRMetric is the mean time to recovery of one period bucket, averaged over
// resolved incidents whose start time falls in the bucket. Zero incidents
// yields a zero average, not null.
type MTTRMetric struct {
	Period
	ResolvedIncidentCount int64
	AverageSeconds        int64
}

// CFRLevel bands a CFR percentage into the informational DORA performance
// level. Band upper bounds are inclusive.
func CFRLevel(percentage float64) types.DORALevel {
	switch {
	case percentage <= 15:
		return types.LevelElite
	case percentage <= 30:
		return types.LevelHigh
	case percentage <= 45:
		return types.LevelMedium
	default:
		return types.LevelLow
	}
}
