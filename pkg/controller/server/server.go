package server

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/k-morita/deployscope/pkg/domain/interfaces"
	"github.com/k-morita/deployscope/pkg/utils/errutil"
	"github.com/k-morita/deployscope/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func New(uc interfaces.UseCase) *Server {
	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/metrics", func(r chi.Router) {
			r.Get("/deployment-frequency", handleDeploymentFrequency(uc))
			r.Get("/change-failure-rate", handleChangeFailureRate(uc))
			r.Get("/mttr", handleMTTR(uc))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/developer/{username}", handleDeveloperDashboard(uc))
			r.Get("/team", handleTeamDashboard(uc))
			r.Get("/org", handleOrgDashboard(uc))
		})

		r.Post("/sync", func(w http.ResponseWriter, r *http.Request) {
			// The response returns before the sync finishes; the request
			// context dies with the response, so the pass runs detached
			bgCtx := DetachContext(r.Context())
			go func() {
				if err := uc.SyncAll(bgCtx); err != nil {
					errutil.HandleError(bgCtx, "fail to run sync pass", err)
				}
			}()

			writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
		})
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
