package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"weightlog/internal/domain"
)

// ReportConfig tunes report assembly.
type ReportConfig struct {
	// WindowDays is the trailing window fed to the trend projector.
	WindowDays int
	// WeeklyBuckets / MonthlyBuckets are how many trailing period
	// summaries a report carries.
	WeeklyBuckets  int
	MonthlyBuckets int
	// SmoothingDays is the moving-average window for the chart series.
	SmoothingDays int
	// DefaultHeightM is used for BMI when no observation carries a height.
	DefaultHeightM float64
}

// DefaultReportConfig mirrors the defaults of the original tracker: a 30-day
// projection window, 8 weekly and 12 monthly buckets, 7-day smoothing.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		WindowDays:     30,
		WeeklyBuckets:  8,
		MonthlyBuckets: 12,
		SmoothingDays:  7,
	}
}

// ReportService assembles immutable report snapshots from the observation
// and goal ports. Every derived metric that cannot be computed is embedded
// as an unavailable marker; only an empty store aborts assembly.
type ReportService struct {
	obs   domain.ObservationRepository
	goals domain.GoalRepository
	cfg   ReportConfig
}

// NewReportService creates a ReportService backed by the given repositories.
func NewReportService(obs domain.ObservationRepository, goals domain.GoalRepository, cfg ReportConfig) *ReportService {
	if cfg.WindowDays <= 0 {
		cfg = DefaultReportConfig()
	}
	return &ReportService{obs: obs, goals: goals, cfg: cfg}
}

// Build produces a report as of the store's most recent observation.
// Returns domain.ErrIncompleteReport when the store is empty.
func (s *ReportService) Build(ctx context.Context) (*domain.Report, error) {
	latest, err := s.obs.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoObservations) {
			return nil, domain.ErrIncompleteReport
		}
		return nil, fmt.Errorf("load latest observation: %w", err)
	}
	first, err := s.obs.First(ctx)
	if err != nil {
		return nil, fmt.Errorf("load first observation: %w", err)
	}

	r := &domain.Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		First:       first,
		Latest:      latest,
	}
	if d, err := domain.Delta(&first, &latest); err == nil {
		r.TotalChange = d
	}

	r.BMI = s.currentBMI(ctx, latest)

	if g, err := s.goals.LoadGoal(ctx); err == nil {
		goal := g
		r.Goal = &goal
	}

	window, err := s.obs.Range(ctx, latest.Date.AddDate(0, 0, -(s.cfg.WindowDays-1)), latest.Date)
	if err != nil {
		return nil, fmt.Errorf("load trailing window: %w", err)
	}
	r.Window = window

	weights := make([]float64, len(window))
	for i, o := range window {
		weights[i] = o.Weight
	}
	r.Smoothed = domain.MovingAverage(weights, s.cfg.SmoothingDays)

	if r.Goal != nil {
		r.Projection = domain.Project(window, r.Goal.TargetWeight)
	} else {
		r.Projection = domain.Projection{Outcome: domain.OutcomeNoGoal}
	}

	if r.Weekly, err = s.summaries(ctx, latest.Date, domain.Weekly, s.cfg.WeeklyBuckets); err != nil {
		return nil, err
	}
	if r.Monthly, err = s.summaries(ctx, latest.Date, domain.Monthly, s.cfg.MonthlyBuckets); err != nil {
		return nil, err
	}
	return r, nil
}

// Summaries computes the trailing `buckets` period summaries ending at the
// most recent observation.
func (s *ReportService) Summaries(ctx context.Context, g domain.Granularity, buckets int) ([]domain.PeriodSummary, error) {
	latest, err := s.obs.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, latest.Date, g, buckets)
}

// Projection runs the trend projector over the configured trailing window
// against the active goal.
func (s *ReportService) Projection(ctx context.Context) (domain.Projection, error) {
	latest, err := s.obs.Latest(ctx)
	if err != nil {
		return domain.Projection{}, err
	}
	goal, err := s.goals.LoadGoal(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoGoal) {
			return domain.Projection{Outcome: domain.OutcomeNoGoal}, nil
		}
		return domain.Projection{}, err
	}
	window, err := s.obs.Range(ctx, latest.Date.AddDate(0, 0, -(s.cfg.WindowDays-1)), latest.Date)
	if err != nil {
		return domain.Projection{}, err
	}
	return domain.Project(window, goal.TargetWeight), nil
}

func (s *ReportService) summaries(ctx context.Context, asOf time.Time, g domain.Granularity, buckets int) ([]domain.PeriodSummary, error) {
	if buckets <= 0 {
		buckets = 1
	}
	from := domain.BucketStart(asOf, g)
	if g == domain.Monthly {
		from = from.AddDate(0, -(buckets - 1), 0)
	} else {
		from = from.AddDate(0, 0, -7*(buckets-1))
	}

	obs, err := s.obs.Range(ctx, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("load aggregation range: %w", err)
	}

	var baseline *domain.Observation
	if b, err := s.obs.Before(ctx, from); err == nil {
		baseline = &b
	}
	return domain.Summarize(obs, baseline, g, from, asOf), nil
}

// currentBMI resolves the height to use for BMI: the latest observation's
// own height, else the last height recorded anywhere, else the configured
// default. Nil means BMI is unavailable.
func (s *ReportService) currentBMI(ctx context.Context, latest domain.Observation) *domain.BMIReading {
	height := latest.Height
	if height <= 0 {
		if h, err := s.obs.LastKnownHeight(ctx); err == nil && h > 0 {
			height = h
		}
	}
	if height <= 0 {
		height = s.cfg.DefaultHeightM
	}
	value, err := domain.BMI(latest.Weight, height)
	if err != nil {
		return nil
	}
	return &domain.BMIReading{Value: value, Category: domain.ClassifyBMI(value)}
}
