// Package adapthttp is the driving HTTP adapter: a JSON API over the
// application services, for external dashboards and renderers.
package adapthttp

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weightlog/internal/app"
)

// Server routes requests to application services.
type Server struct {
	obs     *app.ObservationService
	goals   *app.GoalService
	reports *app.ReportService
}

// New creates a Server wired to the given application services.
func New(obs *app.ObservationService, goals *app.GoalService, reports *app.ReportService) *Server {
	return &Server{obs: obs, goals: goals, reports: reports}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(loggingMiddleware, metricsMiddleware)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	api.HandleFunc("/weight", s.handleRecordWeight).Methods(http.MethodPut)
	api.HandleFunc("/weight/latest", s.handleLatestWeight).Methods(http.MethodGet)
	api.HandleFunc("/weight/range", s.handleWeightRange).Methods(http.MethodGet)

	api.HandleFunc("/goal", s.handleGetGoal).Methods(http.MethodGet)
	api.HandleFunc("/goal", s.handleSetGoal).Methods(http.MethodPut)

	api.HandleFunc("/summaries", s.handleSummaries).Methods(http.MethodGet)
	api.HandleFunc("/projection", s.handleProjection).Methods(http.MethodGet)
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)

	return r
}
