package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

type mockObsRepo struct {
	upsertFn func(ctx context.Context, obs domain.Observation) error
	rangeFn  func(ctx context.Context, start, end time.Time) ([]domain.Observation, error)
	latestFn func(ctx context.Context) (domain.Observation, error)
	firstFn  func(ctx context.Context) (domain.Observation, error)
	beforeFn func(ctx context.Context, date time.Time) (domain.Observation, error)
	heightFn func(ctx context.Context) (float64, error)
}

func (m *mockObsRepo) Upsert(ctx context.Context, obs domain.Observation) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, obs)
	}
	return nil
}

func (m *mockObsRepo) Range(ctx context.Context, start, end time.Time) ([]domain.Observation, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, start, end)
	}
	return nil, nil
}

func (m *mockObsRepo) Latest(ctx context.Context) (domain.Observation, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx)
	}
	return domain.Observation{}, domain.ErrNoObservations
}

func (m *mockObsRepo) First(ctx context.Context) (domain.Observation, error) {
	if m.firstFn != nil {
		return m.firstFn(ctx)
	}
	return domain.Observation{}, domain.ErrNoObservations
}

func (m *mockObsRepo) Before(ctx context.Context, date time.Time) (domain.Observation, error) {
	if m.beforeFn != nil {
		return m.beforeFn(ctx, date)
	}
	return domain.Observation{}, domain.ErrNoObservations
}

func (m *mockObsRepo) LastKnownHeight(ctx context.Context) (float64, error) {
	if m.heightFn != nil {
		return m.heightFn(ctx)
	}
	return 0, nil
}

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newService(repo *mockObsRepo) *app.ObservationService {
	return app.NewObservationService(repo).WithClock(func() time.Time { return fixedNow })
}

func TestRecord_Validation(t *testing.T) {
	svc := newService(&mockObsRepo{})

	tests := []struct {
		name   string
		date   time.Time
		weight float64
		height float64
	}{
		{"zero weight", fixedNow, 0, 0},
		{"negative weight", fixedNow, -5, 0},
		{"negative height", fixedNow, 80, -1.8},
		{"far future date", fixedNow.AddDate(0, 0, 3), 80, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.date, tc.weight, tc.height)
			if !errors.Is(err, domain.ErrInvalidObservation) {
				t.Fatalf("expected ErrInvalidObservation, got %v", err)
			}
		})
	}
}

func TestRecord_NormalizesDate(t *testing.T) {
	var stored domain.Observation
	repo := &mockObsRepo{
		upsertFn: func(_ context.Context, obs domain.Observation) error {
			stored = obs
			return nil
		},
	}
	svc := newService(repo)

	in := time.Date(2024, 6, 14, 23, 45, 1, 0, time.UTC)
	got, err := svc.Record(context.Background(), in, 81.4, 1.83)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) || !stored.Date.Equal(want) {
		t.Fatalf("date not normalized: got %s stored %s", got.Date, stored.Date)
	}
	if stored.Weight != 81.4 || stored.Height != 1.83 {
		t.Fatalf("unexpected stored observation: %+v", stored)
	}
}

func TestRecord_TomorrowWithinTolerance(t *testing.T) {
	svc := newService(&mockObsRepo{})
	_, err := svc.Record(context.Background(), fixedNow.Add(20*time.Hour), 80, 0)
	if err != nil {
		t.Fatalf("date within tolerance rejected: %v", err)
	}
}

func TestRecord_RepoError(t *testing.T) {
	repo := &mockObsRepo{
		upsertFn: func(_ context.Context, _ domain.Observation) error {
			return errors.New("disk full")
		},
	}
	svc := newService(repo)
	if _, err := svc.Record(context.Background(), fixedNow, 80, 0); err == nil {
		t.Fatal("expected error from repo")
	}
}

func TestTrailingWindow(t *testing.T) {
	latest := domain.Observation{Date: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), Weight: 80}
	var gotStart, gotEnd time.Time
	repo := &mockObsRepo{
		latestFn: func(_ context.Context) (domain.Observation, error) { return latest, nil },
		rangeFn: func(_ context.Context, start, end time.Time) ([]domain.Observation, error) {
			gotStart, gotEnd = start, end
			return []domain.Observation{latest}, nil
		},
	}
	svc := newService(repo)

	window, err := svc.TrailingWindow(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(window) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(window))
	}
	if !gotEnd.Equal(latest.Date) {
		t.Errorf("window end = %s, want %s", gotEnd, latest.Date)
	}
	if want := latest.Date.AddDate(0, 0, -29); !gotStart.Equal(want) {
		t.Errorf("window start = %s, want %s", gotStart, want)
	}
}

func TestDaysSinceLast(t *testing.T) {
	repo := &mockObsRepo{
		latestFn: func(_ context.Context) (domain.Observation, error) {
			return domain.Observation{Date: time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), Weight: 80}, nil
		},
	}
	svc := newService(repo)

	days, err := svc.DaysSinceLast(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 8 {
		t.Fatalf("expected 8 days, got %d", days)
	}
}

func TestDaysSinceLast_Empty(t *testing.T) {
	svc := newService(&mockObsRepo{})
	if _, err := svc.DaysSinceLast(context.Background()); !errors.Is(err, domain.ErrNoObservations) {
		t.Fatalf("expected ErrNoObservations, got %v", err)
	}
}
