package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"weightlog/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeDomainError maps core sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidObservation):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrNoObservations),
		errors.Is(err, domain.ErrNoGoal),
		errors.Is(err, domain.ErrIncompleteReport):
		writeError(w, http.StatusNotFound, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func dateQuery(r *http.Request, key string, fallback time.Time) (time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// unitQuery returns the display unit, "kg" (default) or "lb".
func unitQuery(r *http.Request) (string, error) {
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = "kg"
	}
	if unit != "kg" && unit != "lb" {
		return "", fmt.Errorf("unit must be \"kg\" or \"lb\", got %q", unit)
	}
	return unit, nil
}
