package adapthttp

import (
	"net/http"
	"time"

	"weightlog/internal/domain"
)

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	g := domain.Granularity(r.URL.Query().Get("granularity"))
	if g == "" {
		g = domain.Weekly
	}
	if g != domain.Weekly && g != domain.Monthly {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "granularity must be \"week\" or \"month\""})
		return
	}

	fallback := 8
	if g == domain.Monthly {
		fallback = 12
	}
	buckets := intQuery(r, "buckets", fallback)

	items, err := s.reports.Summaries(r.Context(), g, buckets)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"granularity": g, "items": items})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	p, err := s.reports.Projection(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projection": p})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.Build(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	reportsBuilt.Inc()
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.goals.Current(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goal": g})
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TargetWeight float64 `json:"targetWeight"`
		TargetDate   string  `json:"targetDate"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var targetDate *time.Time
	if body.TargetDate != "" {
		d, err := time.Parse("2006-01-02", body.TargetDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		targetDate = &d
	}

	saved, err := s.goals.Set(r.Context(), body.TargetWeight, targetDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goal": saved})
}
