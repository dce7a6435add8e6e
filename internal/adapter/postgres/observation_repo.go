package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weightlog/internal/domain"
)

var _ domain.ObservationRepository = (*DB)(nil)

// Upsert inserts the observation, replacing an existing entry on the same
// date (supersession).
func (d *DB) Upsert(ctx context.Context, obs domain.Observation) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO observations(day, weight, height, recorded_at) VALUES($1, $2, $3, $4) "+
			"ON CONFLICT (day) DO UPDATE SET weight = EXCLUDED.weight, height = EXCLUDED.height, recorded_at = EXCLUDED.recorded_at;",
		domain.NormalizeDate(obs.Date), obs.Weight, nullHeight(obs.Height), obs.RecordedAt.UTC(),
	)
	return err
}

// Range returns observations with start <= day <= end, ascending.
func (d *DB) Range(ctx context.Context, start, end time.Time) ([]domain.Observation, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT day, weight, height, recorded_at FROM observations WHERE day >= $1 AND day <= $2 ORDER BY day ASC;",
		domain.NormalizeDate(start), domain.NormalizeDate(end),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Observation
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Latest returns the most recent observation.
func (d *DB) Latest(ctx context.Context) (domain.Observation, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT day, weight, height, recorded_at FROM observations ORDER BY day DESC LIMIT 1;")
	return scanObservationRow(row)
}

// First returns the earliest observation.
func (d *DB) First(ctx context.Context) (domain.Observation, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT day, weight, height, recorded_at FROM observations ORDER BY day ASC LIMIT 1;")
	return scanObservationRow(row)
}

// Before returns the last observation strictly before date.
func (d *DB) Before(ctx context.Context, date time.Time) (domain.Observation, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT day, weight, height, recorded_at FROM observations WHERE day < $1 ORDER BY day DESC LIMIT 1;",
		domain.NormalizeDate(date),
	)
	return scanObservationRow(row)
}

// LastKnownHeight returns the most recent non-null height, or 0.
func (d *DB) LastKnownHeight(ctx context.Context) (float64, error) {
	var h float64
	err := d.sql.QueryRowContext(ctx,
		"SELECT height FROM observations WHERE height IS NOT NULL AND height > 0 ORDER BY day DESC LIMIT 1;",
	).Scan(&h)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return h, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObservation(r rowScanner) (domain.Observation, error) {
	var (
		o      domain.Observation
		height sql.NullFloat64
	)
	if err := r.Scan(&o.Date, &o.Weight, &height, &o.RecordedAt); err != nil {
		return domain.Observation{}, err
	}
	o.Date = domain.NormalizeDate(o.Date)
	if height.Valid {
		o.Height = height.Float64
	}
	return o, nil
}

func scanObservationRow(row *sql.Row) (domain.Observation, error) {
	o, err := scanObservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Observation{}, domain.ErrNoObservations
	}
	return o, err
}

func nullHeight(h float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: h, Valid: h > 0}
}
