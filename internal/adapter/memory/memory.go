// Package memory implements in-memory repositories for development and
// testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"weightlog/internal/domain"
)

// DB implements the observation and goal repositories on in-memory slices.
// A sync.RWMutex guards all access and every read returns copies, so a read
// started after a completed write always observes that write and report
// generation effectively works on a snapshot.
type DB struct {
	mu   sync.RWMutex
	obs  []domain.Observation // ordered by Date ascending, unique dates
	goal *domain.Goal
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.ObservationRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)

// Seed replaces the whole observation sequence, applying same-date
// supersession (later entries win). Used when hydrating from a snapshot
// backend.
func (db *DB) Seed(obs []domain.Observation) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.obs = db.obs[:0]
	for _, o := range obs {
		o.Date = domain.NormalizeDate(o.Date)
		db.upsertLocked(o)
	}
}

// Snapshot returns a copy of the full observation sequence.
func (db *DB) Snapshot() []domain.Observation {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]domain.Observation, len(db.obs))
	copy(out, db.obs)
	return out
}

// --- ObservationRepository ---

// Upsert inserts the observation, replacing any entry on the same date.
func (db *DB) Upsert(ctx context.Context, obs domain.Observation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	obs.Date = domain.NormalizeDate(obs.Date)
	db.upsertLocked(obs)
	return nil
}

func (db *DB) upsertLocked(obs domain.Observation) {
	i := sort.Search(len(db.obs), func(i int) bool {
		return !db.obs[i].Date.Before(obs.Date)
	})
	if i < len(db.obs) && db.obs[i].Date.Equal(obs.Date) {
		db.obs[i] = obs
		return
	}
	db.obs = append(db.obs, domain.Observation{})
	copy(db.obs[i+1:], db.obs[i:])
	db.obs[i] = obs
}

// Range returns observations with start <= date <= end, ascending.
func (db *DB) Range(ctx context.Context, start, end time.Time) ([]domain.Observation, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	start, end = domain.NormalizeDate(start), domain.NormalizeDate(end)
	lo := sort.Search(len(db.obs), func(i int) bool {
		return !db.obs[i].Date.Before(start)
	})
	hi := sort.Search(len(db.obs), func(i int) bool {
		return db.obs[i].Date.After(end)
	})
	if lo >= hi {
		return nil, nil
	}
	out := make([]domain.Observation, hi-lo)
	copy(out, db.obs[lo:hi])
	return out, nil
}

// Latest returns the most recent observation.
func (db *DB) Latest(ctx context.Context) (domain.Observation, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.obs) == 0 {
		return domain.Observation{}, domain.ErrNoObservations
	}
	return db.obs[len(db.obs)-1], nil
}

// First returns the earliest observation.
func (db *DB) First(ctx context.Context) (domain.Observation, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.obs) == 0 {
		return domain.Observation{}, domain.ErrNoObservations
	}
	return db.obs[0], nil
}

// Before returns the last observation strictly before date.
func (db *DB) Before(ctx context.Context, date time.Time) (domain.Observation, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	date = domain.NormalizeDate(date)
	i := sort.Search(len(db.obs), func(i int) bool {
		return !db.obs[i].Date.Before(date)
	})
	if i == 0 {
		return domain.Observation{}, domain.ErrNoObservations
	}
	return db.obs[i-1], nil
}

// LastKnownHeight returns the most recent non-zero height, or 0.
func (db *DB) LastKnownHeight(ctx context.Context) (float64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for i := len(db.obs) - 1; i >= 0; i-- {
		if db.obs[i].Height > 0 {
			return db.obs[i].Height, nil
		}
	}
	return 0, nil
}

// --- GoalRepository ---

// LoadGoal returns the active goal.
func (db *DB) LoadGoal(ctx context.Context) (domain.Goal, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.goal == nil {
		return domain.Goal{}, domain.ErrNoGoal
	}
	return *db.goal, nil
}

// SaveGoal replaces the active goal.
func (db *DB) SaveGoal(ctx context.Context, g domain.Goal) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.goal = &g
	return nil
}
