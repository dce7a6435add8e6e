package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weightlog/internal/domain"
)

var _ domain.GoalRepository = (*DB)(nil)

// LoadGoal returns the active goal.
func (d *DB) LoadGoal(ctx context.Context) (domain.Goal, error) {
	var (
		g    domain.Goal
		date sql.NullTime
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT target_weight, target_date FROM goals WHERE id = 1;",
	).Scan(&g.TargetWeight, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, domain.ErrNoGoal
	}
	if err != nil {
		return domain.Goal{}, err
	}
	if date.Valid {
		t := domain.NormalizeDate(date.Time)
		g.TargetDate = &t
	}
	return g, nil
}

// SaveGoal replaces the active goal.
func (d *DB) SaveGoal(ctx context.Context, g domain.Goal) error {
	var date sql.NullTime
	if g.TargetDate != nil {
		date = sql.NullTime{Time: *g.TargetDate, Valid: true}
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO goals(id, target_weight, target_date, updated_at) VALUES(1, $1, $2, $3) "+
			"ON CONFLICT (id) DO UPDATE SET target_weight = EXCLUDED.target_weight, target_date = EXCLUDED.target_date, updated_at = EXCLUDED.updated_at;",
		g.TargetWeight, date, time.Now().UTC(),
	)
	return err
}
