package filestore

import (
	"context"
	"fmt"
	"time"

	"weightlog/internal/adapter/memory"
	"weightlog/internal/domain"
)

// Store is a file-backed observation repository: an in-memory index hydrated
// from the CSV log at open, written through to disk after every mutation the
// way the original tracker saved its log after each entry.
type Store struct {
	*memory.DB
	log   *Log
	goals *GoalFile
}

var _ domain.ObservationRepository = (*Store)(nil)
var _ domain.GoalRepository = (*Store)(nil)

// Open loads the CSV log (a missing file is an empty store) and returns a
// ready repository.
func Open(dataPath, goalPath string) (*Store, error) {
	s := &Store{
		DB:    memory.New(),
		log:   NewLog(dataPath),
		goals: NewGoalFile(goalPath),
	}
	obs, err := s.log.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("open observation log: %w", err)
	}
	s.DB.Seed(obs)
	return s, nil
}

// Upsert stores the observation and persists the full sequence.
func (s *Store) Upsert(ctx context.Context, obs domain.Observation) error {
	if err := s.DB.Upsert(ctx, obs); err != nil {
		return err
	}
	return s.log.Save(ctx, s.DB.Snapshot())
}

// LoadGoal reads the goal file.
func (s *Store) LoadGoal(ctx context.Context) (domain.Goal, error) {
	return s.goals.LoadGoal(ctx)
}

// SaveGoal writes the goal file.
func (s *Store) SaveGoal(ctx context.Context, g domain.Goal) error {
	return s.goals.SaveGoal(ctx, g)
}

// ExportTo writes the current sequence to another CSV file.
func (s *Store) ExportTo(ctx context.Context, path string) error {
	return NewLog(path).Save(ctx, s.DB.Snapshot())
}

// ImportFrom merges observations from another CSV file into the store,
// superseding same-date entries, and persists the result.
func (s *Store) ImportFrom(ctx context.Context, path string) (int, error) {
	obs, err := NewLog(path).Load(ctx)
	if err != nil {
		return 0, err
	}
	for _, o := range obs {
		if o.RecordedAt.IsZero() {
			o.RecordedAt = time.Now().UTC()
		}
		if err := s.DB.Upsert(ctx, o); err != nil {
			return 0, err
		}
	}
	if err := s.log.Save(ctx, s.DB.Snapshot()); err != nil {
		return 0, err
	}
	return len(obs), nil
}
