package server

import (
	"net/http"
	"time"

	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// metricParams are the query parameters shared by the period-bucketed metric
// endpoints.
type metricParams struct {
	start       time.Time
	end         time.Time
	granularity types.Granularity
	environment types.Environment
	service     string
}

func parseMetricParams(r *http.Request) (*metricParams, error) {
	q := r.URL.Query()

	start, err := time.Parse("2006-01-02", q.Get("start"))
	if err != nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "invalid or missing start date", goerr.V("start", q.Get("start")))
	}
	end, err := time.Parse("2006-01-02", q.Get("end"))
	if err != nil {
		return nil, goerr.Wrap(types.ErrValidationFailed, "invalid or missing end date", goerr.V("end", q.Get("end")))
	}
	if end.Before(start) {
		return nil, goerr.Wrap(types.ErrValidationFailed, "end date before start date")
	}

	params := &metricParams{
		start:       start,
		end:         end,
		granularity: types.Granularity(q.Get("granularity")),
		environment: types.Environment(q.Get("environment")),
		service:     q.Get("service"),
	}
	if params.granularity == "" {
		params.granularity = types.Weekly
	}
	if params.environment == "" {
		params.environment = types.EnvProduction
	}

	return params, nil
}

func handleDeploymentFrequency(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseMetricParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		metrics, err := uc.DeploymentFrequency(r.Context(), params.environment, params.start, params.end, params.granularity)
		if err != nil {
			errutil.HandleError(r.Context(), "fail to compute deployment frequency", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	}
}

func handleChangeFailureRate(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseMetricParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		metrics, err := uc.ChangeFailureRate(r.Context(), params.service, params.environment, params.start, params.end, params.granularity)
		if err != nil {
			errutil.HandleError(r.Context(), "fail to compute change failure rate", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	}
}

func handleMTTR(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseMetricParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		metrics, err := uc.MeanTimeToRecovery(r.Context(), params.service, params.start, params.end, params.granularity)
		if err != nil {
			errutil.HandleError(r.Context(), "fail to compute MTTR", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	}
}
