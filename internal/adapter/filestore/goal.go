package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"weightlog/internal/domain"
)

// GoalFile stores the active goal as a small JSON document.
type GoalFile struct {
	path string
}

// NewGoalFile creates a GoalFile for the given file path.
func NewGoalFile(path string) *GoalFile {
	return &GoalFile{path: path}
}

var _ domain.GoalRepository = (*GoalFile)(nil)

// LoadGoal returns the stored goal; a missing file means no goal is set.
func (g *GoalFile) LoadGoal(ctx context.Context) (domain.Goal, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Goal{}, domain.ErrNoGoal
		}
		return domain.Goal{}, err
	}
	var goal domain.Goal
	if err := json.Unmarshal(data, &goal); err != nil {
		return domain.Goal{}, err
	}
	if goal.TargetWeight <= 0 {
		return domain.Goal{}, domain.ErrNoGoal
	}
	return goal, nil
}

// SaveGoal writes the goal, replacing any existing one.
func (g *GoalFile) SaveGoal(ctx context.Context, goal domain.Goal) error {
	data, err := json.MarshalIndent(goal, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(g.path, data, 0o644)
}
