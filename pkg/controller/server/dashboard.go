package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/domain/model"
	"github.com/k-morita/deployscope/pkg/domain/types"
	"github.com/k-morita/deployscope/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// parseScope reads the optional deployment filters shared by the dashboard
// views: start, end (dates) and repos (comma-separated owner/name list).
func parseScope(r *http.Request) (*model.ReportScope, error) {
	q := r.URL.Query()
	scope := &model.ReportScope{}

	if raw := q.Get("start"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, goerr.Wrap(types.ErrValidationFailed, "invalid start date", goerr.V("start", raw))
		}
		scope.Start = &t
	}
	if raw := q.Get("end"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, goerr.Wrap(types.ErrValidationFailed, "invalid end date", goerr.V("end", raw))
		}
		scope.End = &t
	}
	if raw := q.Get("repos"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				scope.RepoIDs = append(scope.RepoIDs, types.RepoID(id))
			}
		}
	}

	return scope, nil
}

func serveReport(uc interfaces.UseCase, w http.ResponseWriter, r *http.Request, scope *model.ReportScope) {
	report, err := uc.BuildReport(r.Context(), scope)
	if err != nil {
		errutil.HandleError(r.Context(), "fail to build report", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func handleDeveloperDashboard(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}

		scope, err := parseScope(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		scope.Authors = []string{username}

		serveReport(uc, w, r, scope)
	}
}

func handleTeamDashboard(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := parseScope(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		for _, member := range strings.Split(r.URL.Query().Get("members"), ",") {
			if member = strings.TrimSpace(member); member != "" {
				scope.Authors = append(scope.Authors, member)
			}
		}
		if len(scope.Authors) == 0 {
			writeError(w, http.StatusBadRequest, "members is required")
			return
		}

		serveReport(uc, w, r, scope)
	}
}

// The org view is the unfiltered aggregation: every author, every repository.
func handleOrgDashboard(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := parseScope(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		serveReport(uc, w, r, scope)
	}
}
