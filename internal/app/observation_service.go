package app

import (
	"context"
	"fmt"
	"time"

	"weightlog/internal/domain"
)

// DefaultFutureTolerance is how far past "now" an observation date may lie
// before it is rejected. A day absorbs timezone skew between the caller's
// wall clock and UTC normalization.
const DefaultFutureTolerance = 24 * time.Hour

// ObservationService encapsulates observation-recording use cases: boundary
// validation, date normalization and same-day supersession policy.
type ObservationService struct {
	repo      domain.ObservationRepository
	tolerance time.Duration
	now       func() time.Time
}

// NewObservationService creates an ObservationService backed by the given
// repository.
func NewObservationService(repo domain.ObservationRepository) *ObservationService {
	return &ObservationService{
		repo:      repo,
		tolerance: DefaultFutureTolerance,
		now:       time.Now,
	}
}

// WithFutureTolerance overrides the future-date tolerance.
func (s *ObservationService) WithFutureTolerance(d time.Duration) *ObservationService {
	s.tolerance = d
	return s
}

// WithClock overrides the time source, for tests.
func (s *ObservationService) WithClock(now func() time.Time) *ObservationService {
	s.now = now
	return s
}

// Record validates and stores a weight measurement. Weight is kilograms,
// height is meters and optional (0 = unset). The date is normalized to
// midnight UTC; recording twice on the same date keeps only the later entry.
func (s *ObservationService) Record(ctx context.Context, date time.Time, weightKg, heightM float64) (domain.Observation, error) {
	if weightKg <= 0 {
		return domain.Observation{}, fmt.Errorf("%w: weight must be > 0, got %.2f", domain.ErrInvalidObservation, weightKg)
	}
	if heightM < 0 {
		return domain.Observation{}, fmt.Errorf("%w: height must be >= 0, got %.2f", domain.ErrInvalidObservation, heightM)
	}
	now := s.now()
	if date.After(now.Add(s.tolerance)) {
		return domain.Observation{}, fmt.Errorf("%w: date %s is in the future", domain.ErrInvalidObservation, date.Format("2006-01-02"))
	}

	obs := domain.Observation{
		Date:       domain.NormalizeDate(date),
		Weight:     weightKg,
		Height:     heightM,
		RecordedAt: now.UTC(),
	}
	if err := s.repo.Upsert(ctx, obs); err != nil {
		return domain.Observation{}, fmt.Errorf("store observation: %w", err)
	}
	return obs, nil
}

// Latest returns the most recent observation, or domain.ErrNoObservations.
func (s *ObservationService) Latest(ctx context.Context) (domain.Observation, error) {
	return s.repo.Latest(ctx)
}

// Range returns observations between start and end inclusive, ascending.
func (s *ObservationService) Range(ctx context.Context, start, end time.Time) ([]domain.Observation, error) {
	return s.repo.Range(ctx, start, end)
}

// TrailingWindow returns the observations from the last `days` days ending at
// the most recent observation, the trend projector's input.
func (s *ObservationService) TrailingWindow(ctx context.Context, days int) ([]domain.Observation, error) {
	latest, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Range(ctx, latest.Date.AddDate(0, 0, -(days-1)), latest.Date)
}

// DaysSinceLast returns whole days elapsed since the most recent observation
// date. Callers use it to decide whether a reminder is due.
func (s *ObservationService) DaysSinceLast(ctx context.Context) (int, error) {
	latest, err := s.repo.Latest(ctx)
	if err != nil {
		return 0, err
	}
	elapsed := domain.NormalizeDate(s.now()).Sub(latest.Date)
	return int(elapsed.Hours() / 24), nil
}
