package adapthttp

import (
	"net/http"
	"time"

	"weightlog/internal/domain"
)

func (s *Server) handleRecordWeight(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date   string  `json:"date"` // optional, defaults to today
		Weight float64 `json:"weight"`
		Height float64 `json:"height"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	date := time.Now()
	if body.Date != "" {
		var err error
		if date, err = time.Parse("2006-01-02", body.Date); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	obs, err := s.obs.Record(r.Context(), date, body.Weight, body.Height)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"observation": obs})
}

func (s *Server) handleLatestWeight(w http.ResponseWriter, r *http.Request) {
	unit, err := s.unitOr400(w, r)
	if err != nil {
		return
	}
	obs, err := s.obs.Latest(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"observation": obs,
		"display":     displayWeight(obs.Weight, unit),
	})
}

func (s *Server) handleWeightRange(w http.ResponseWriter, r *http.Request) {
	start, err := dateQuery(r, "start", time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := dateQuery(r, "end", time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items, err := s.obs.Range(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (s *Server) unitOr400(w http.ResponseWriter, r *http.Request) (string, error) {
	unit, err := unitQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
	}
	return unit, err
}

type weightDisplay struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func displayWeight(kg float64, unit string) weightDisplay {
	return weightDisplay{Value: domain.ConvertWeight(kg, "kg", unit), Unit: unit}
}
