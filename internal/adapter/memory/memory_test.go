package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"weightlog/internal/domain"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUpsert_Supersession(t *testing.T) {
	db := New()
	ctx := context.Background()

	// Two entries on the same date: only the later one survives.
	if err := db.Upsert(ctx, domain.Observation{Date: date("2024-06-01"), Weight: 81.0}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := db.Upsert(ctx, domain.Observation{Date: date("2024-06-01"), Weight: 80.4}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	all, err := db.Range(ctx, date("2024-01-01"), date("2024-12-31"))
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 observation after supersession, got %d", len(all))
	}
	if all[0].Weight != 80.4 {
		t.Errorf("expected later entry to win, got %f", all[0].Weight)
	}
}

func TestRange_PartitionEquivalence(t *testing.T) {
	db := New()
	ctx := context.Background()

	days := []string{"2024-06-01", "2024-06-03", "2024-06-07", "2024-06-12", "2024-06-20"}
	for i, d := range days {
		if err := db.Upsert(ctx, domain.Observation{Date: date(d), Weight: 80 - float64(i)}); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	full, _ := db.Range(ctx, date("2024-06-01"), date("2024-06-30"))

	// Split into contiguous sub-intervals; concatenation must equal the
	// full range.
	a, _ := db.Range(ctx, date("2024-06-01"), date("2024-06-07"))
	b, _ := db.Range(ctx, date("2024-06-08"), date("2024-06-15"))
	c, _ := db.Range(ctx, date("2024-06-16"), date("2024-06-30"))

	joined := append(append(a, b...), c...)
	if len(joined) != len(full) {
		t.Fatalf("partition lengths differ: %d vs %d", len(joined), len(full))
	}
	for i := range full {
		if !joined[i].Date.Equal(full[i].Date) || joined[i].Weight != full[i].Weight {
			t.Errorf("partition mismatch at %d: %+v vs %+v", i, joined[i], full[i])
		}
	}
}

func TestRange_InclusiveBoundsAndRestart(t *testing.T) {
	db := New()
	ctx := context.Background()
	_ = db.Upsert(ctx, domain.Observation{Date: date("2024-06-01"), Weight: 80})
	_ = db.Upsert(ctx, domain.Observation{Date: date("2024-06-05"), Weight: 79})

	got, _ := db.Range(ctx, date("2024-06-01"), date("2024-06-05"))
	if len(got) != 2 {
		t.Fatalf("bounds should be inclusive, got %d observations", len(got))
	}

	// Mutating the returned slice must not affect the store.
	got[0].Weight = 0
	again, _ := db.Range(ctx, date("2024-06-01"), date("2024-06-05"))
	if again[0].Weight != 80 {
		t.Error("Range must return copies")
	}
}

func TestLatestFirstBefore(t *testing.T) {
	db := New()
	ctx := context.Background()

	if _, err := db.Latest(ctx); !errors.Is(err, domain.ErrNoObservations) {
		t.Fatalf("expected ErrNoObservations, got %v", err)
	}

	// Insert out of order; the store keeps the sequence sorted.
	_ = db.Upsert(ctx, domain.Observation{Date: date("2024-06-10"), Weight: 79})
	_ = db.Upsert(ctx, domain.Observation{Date: date("2024-06-01"), Weight: 81})
	_ = db.Upsert(ctx, domain.Observation{Date: date("2024-06-05"), Weight: 80})

	latest, err := db.Latest(ctx)
	if err != nil || latest.Weight != 79 {
		t.Fatalf("Latest = %+v, %v", latest, err)
	}
	first, err := db.First(ctx)
	if err != nil || first.Weight != 81 {
		t.Fatalf("First = %+v, %v", first, err)
	}

	before, err := db.Before(ctx, date("2024-06-05"))
	if err != nil || !before.Date.Equal(date("2024-06-01")) {
		t.Fatalf("Before = %+v, %v", before, err)
	}
	if _, err := db.Before(ctx, date("2024-06-01")); !errors.Is(err, domain.ErrNoObservations) {
		t.Fatalf("expected ErrNoObservations before earliest, got %v", err)
	}
}

func TestLastKnownHeight(t *testing.T) {
	db := New()
	ctx := context.Background()

	h, err := db.LastKnownHeight(ctx)
	if err != nil || h != 0 {
		t.Fatalf("expected 0 height on empty store, got %f, %v", h, err)
	}

	_ = db.Upsert(ctx, domain.Observation{Date: date("2024-06-01"), Weight: 81, Height: 1.83})
	_ = db.Upsert(ctx, domain.Observation{Date: date("2024-06-02"), Weight: 80.5})

	h, err = db.LastKnownHeight(ctx)
	if err != nil || h != 1.83 {
		t.Fatalf("expected height 1.83 carried forward, got %f, %v", h, err)
	}
}

func TestGoalRoundTrip(t *testing.T) {
	db := New()
	ctx := context.Background()

	if _, err := db.LoadGoal(ctx); !errors.Is(err, domain.ErrNoGoal) {
		t.Fatalf("expected ErrNoGoal, got %v", err)
	}

	want := domain.Goal{TargetWeight: 78.5}
	if err := db.SaveGoal(ctx, want); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}
	got, err := db.LoadGoal(ctx)
	if err != nil || got.TargetWeight != 78.5 {
		t.Fatalf("LoadGoal = %+v, %v", got, err)
	}
}

func TestSeed_AppliesSupersession(t *testing.T) {
	db := New()
	db.Seed([]domain.Observation{
		{Date: date("2024-06-02"), Weight: 80},
		{Date: date("2024-06-01"), Weight: 82},
		{Date: date("2024-06-02"), Weight: 79.5},
	})

	snap := db.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(snap))
	}
	if snap[1].Weight != 79.5 {
		t.Errorf("later same-date entry should win, got %f", snap[1].Weight)
	}
}
