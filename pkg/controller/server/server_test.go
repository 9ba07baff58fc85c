package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/k-morita/deployscope/pkg/controller/server"
	"github.com/k-morita/deployscope/pkg/domain/mock"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/infra"
	"github.com/k-morita/deployscope/pkg/repository/memory"
	"github.com/k-morita/deployscope/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestRouterSmokeTests(t *testing.T) {
	t.Run("GET /health returns 200", func(t *testing.T) {
		clients := infra.New(infra.WithStore(memory.New()))
		uc := usecase.New(clients)
		srv := server.New(uc)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("ok")
	})

	t.Run("unknown route returns 404", func(t *testing.T) {
		clients := infra.New(infra.WithStore(memory.New()))
		srv := server.New(usecase.New(clients))

		req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestMetricEndpoints(t *testing.T) {
	t.Run("GET /api/metrics/deployment-frequency passes parsed params", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			DeploymentFrequencyFunc: func(ctx context.Context, env types.Environment, start, end time.Time, g types.Granularity) ([]*model.DeploymentFrequency, error) {
				return []*model.DeploymentFrequency{
					{Period: model.Period{Start: start, End: end}, Count: 3},
				}, nil
			},
		}
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/metrics/deployment-frequency?start=2025-06-01&end=2025-06-30&granularity=monthly", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)

		calls := mockUC.DeploymentFrequencyCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].Env).Equal(types.EnvProduction)
		gt.V(t, calls[0].G).Equal(types.Monthly)
		gt.V(t, calls[0].Start).Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	})

	t.Run("missing dates return 400", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{}
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/metrics/deployment-frequency", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
		gt.A(t, mockUC.DeploymentFrequencyCalls()).Length(0)
	})

	t.Run("end before start returns 400", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{}
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/metrics/change-failure-rate?start=2025-06-30&end=2025-06-01", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("GET /api/metrics/mttr forwards the service filter", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			MeanTimeToRecoveryFunc: func(ctx context.Context, serviceName string, start, end time.Time, g types.Granularity) ([]*model.MTTRMetric, error) {
				return nil, nil
			},
		}
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/metrics/mttr?start=2025-06-01&end=2025-06-30&service=checkout", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)

		calls := mockUC.MeanTimeToRecoveryCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].ServiceName).Equal("checkout")
	})
}

func TestDashboardEndpoints(t *testing.T) {
	t.Run("developer view scopes to the username", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			BuildReportFunc: func(ctx context.Context, scope *model.ReportScope) (*model.Report, error) {
				return &model.Report{Scope: *scope}, nil
			},
		}
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/developer/alice?repos=acme/widget", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)

		calls := mockUC.BuildReportCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].Scope.Authors).Equal([]string{"alice"})
		gt.V(t, calls[0].Scope.RepoIDs).Equal([]types.RepoID{"acme/widget"})
	})

	t.Run("team view requires members", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{}
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/team", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("team view splits the member list", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			BuildReportFunc: func(ctx context.Context, scope *model.ReportScope) (*model.Report, error) {
				return &model.Report{Scope: *scope}, nil
			},
		}
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/team?members=alice,%20bob", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)

		calls := mockUC.BuildReportCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].Scope.Authors).Equal([]string{"alice", "bob"})
	})

	t.Run("org view carries date filters", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{
			BuildReportFunc: func(ctx context.Context, scope *model.ReportScope) (*model.Report, error) {
				return &model.Report{Scope: *scope}, nil
			},
		}
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/org?start=2025-06-01&end=2025-06-30", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)

		var report model.Report
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

		calls := mockUC.BuildReportCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].Scope.Authors).Equal(nil)
		gt.True(t, calls[0].Scope.Start.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("invalid date returns 400", func(t *testing.T) {
		mockUC := &mock.UseCaseMock{}
		srv := server.New(mockUC)

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/org?start=June-1st", nil)
		rec := httptest.NewRecorder()

		srv.Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestSyncEndpoint(t *testing.T) {
	done := make(chan struct{})
	mockUC := &mock.UseCaseMock{
		SyncAllFunc: func(ctx context.Context) error {
			close(done)
			return nil
		},
	}
	srv := server.New(mockUC)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	rec := httptest.NewRecorder()

	srv.Mux().ServeHTTP(rec, req)

	gt.V(t, rec.Code).Equal(http.StatusAccepted)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sync pass did not start")
	}
}
