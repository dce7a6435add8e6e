package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weightlog/internal/domain"
)

// GoalService manages the single active weight goal.
type GoalService struct {
	repo domain.GoalRepository
}

// NewGoalService creates a GoalService backed by the given repository.
func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// Set validates and persists the goal, replacing any existing one.
func (s *GoalService) Set(ctx context.Context, targetWeight float64, targetDate *time.Time) (domain.Goal, error) {
	if targetWeight <= 0 {
		return domain.Goal{}, errors.New("target weight must be > 0")
	}
	g := domain.Goal{TargetWeight: targetWeight}
	if targetDate != nil {
		d := domain.NormalizeDate(*targetDate)
		g.TargetDate = &d
	}
	if err := s.repo.SaveGoal(ctx, g); err != nil {
		return domain.Goal{}, fmt.Errorf("save goal: %w", err)
	}
	return g, nil
}

// Current returns the active goal, or domain.ErrNoGoal.
func (s *GoalService) Current(ctx context.Context) (domain.Goal, error) {
	return s.repo.LoadGoal(ctx)
}
