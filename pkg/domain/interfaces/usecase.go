package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
)

// UseCase is the surface the HTTP layer depends on. Everything here is
// read-only except the sync and attribution passes, which the scheduler
// drives.
type UseCase interface {
	CalculateLeadTimes(ctx context.Context) error
	SyncAll(ctx context.Context) error

	DeploymentFrequency(ctx context.Context, env types.Environment, start, end time.Time, g types.Granularity) ([]*model.DeploymentFrequency, error)
	ChangeFailureRate(ctx context.Context, serviceName string, env types.Environment, start, end time.Time, g types.Granularity) ([]*model.CFRMetric, error)
	MeanTimeToRecovery(ctx context.Context, serviceName string, start, end time.Time, g types.Granularity) ([]*model.MTTRMetric, error)
	BuildReport(ctx context.Context, scope *model.ReportScope) (*model.Report, error)
}
