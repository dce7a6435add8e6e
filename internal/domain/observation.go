// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the analytics core. Derived-metric failures
// (ErrMissingHeight, ErrInsufficientData) are surfaced as "unavailable"
// markers in a Report rather than aborting it; only ErrIncompleteReport
// is fatal to report generation.
var (
	ErrInvalidObservation = errors.New("invalid observation")
	ErrNoObservations     = errors.New("no observations")
	ErrMissingHeight      = errors.New("height not set")
	ErrInsufficientData   = errors.New("insufficient data")
	ErrIncompleteReport   = errors.New("cannot build report from empty store")
	ErrNoGoal             = errors.New("no goal set")
)

// Observation is a single dated weight measurement. Dates are normalized to
// midnight UTC and unique: a later entry for the same day supersedes the
// earlier one. Weight is kilograms; Height is meters and optional (0 = unset).
type Observation struct {
	Date       time.Time `json:"date"`
	Weight     float64   `json:"weight"`
	Height     float64   `json:"height,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Day returns the observation date as a YYYY-MM-DD string.
func (o Observation) Day() string {
	return o.Date.Format("2006-01-02")
}

// NormalizeDate truncates t to midnight UTC, the canonical observation key.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Goal is the active weight target. At most one goal is active at a time.
type Goal struct {
	TargetWeight float64    `json:"targetWeight"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
}

// ObservationRepository is the port for the canonical observation sequence.
// The repository exclusively owns the sequence; everything else in the core
// is a read-only view computed from it. Range results are fresh slices
// ordered by date ascending, so callers may iterate them any number of times
// without affecting the store.
type ObservationRepository interface {
	// Upsert inserts the observation or replaces an existing one on the
	// same date (supersession).
	Upsert(ctx context.Context, obs Observation) error
	// Range returns observations with start <= date <= end, ascending.
	Range(ctx context.Context, start, end time.Time) ([]Observation, error)
	// Latest returns the most recent observation, or ErrNoObservations.
	Latest(ctx context.Context) (Observation, error)
	// First returns the earliest observation, or ErrNoObservations.
	First(ctx context.Context) (Observation, error)
	// Before returns the last observation strictly before date, or
	// ErrNoObservations. Used as the net-change baseline for the earliest
	// bucket of an aggregation window.
	Before(ctx context.Context, date time.Time) (Observation, error)
	// LastKnownHeight returns the most recent non-zero height, or 0 when
	// no observation carries one. Height is typically set once and reused.
	LastKnownHeight(ctx context.Context) (float64, error)
}

// GoalRepository is the port for goal persistence.
type GoalRepository interface {
	// LoadGoal returns the active goal, or ErrNoGoal.
	LoadGoal(ctx context.Context) (Goal, error)
	// SaveGoal replaces the active goal.
	SaveGoal(ctx context.Context, g Goal) error
}

// ObservationLoader and ObservationSaver form the persistence port for
// snapshot-style backends (e.g. a CSV log). Round-tripping Save then Load
// must preserve the observation set exactly (date, weight, height).
type ObservationLoader interface {
	Load(ctx context.Context) ([]Observation, error)
}

// ObservationSaver persists a full observation sequence.
type ObservationSaver interface {
	Save(ctx context.Context, obs []Observation) error
}
