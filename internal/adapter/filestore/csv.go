// Package filestore persists observations in a CSV log and the goal in a
// JSON file, the snapshot-style persistence port. Round-tripping Save then
// Load preserves the observation set exactly (date, weight, height).
package filestore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"weightlog/internal/domain"
)

// Log reads and writes the observation CSV file. Columns are
// date,weight,height with height empty when unset.
type Log struct {
	path string
}

// NewLog creates a Log for the given file path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

var _ domain.ObservationLoader = (*Log)(nil)
var _ domain.ObservationSaver = (*Log)(nil)

// Load reads the full observation sequence, sorted by date ascending with
// same-date duplicates superseded (last row wins). A missing file is an
// empty store.
func (l *Log) Load(ctx context.Context) ([]domain.Observation, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}

	byDate := make(map[time.Time]domain.Observation)
	for i, rec := range records {
		if i == 0 && rec[0] == "date" {
			continue // header
		}
		obs, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.path, i+1, err)
		}
		byDate[obs.Date] = obs
	}

	out := make([]domain.Observation, 0, len(byDate))
	for _, o := range byDate {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// Save writes the full observation sequence, sorted by date, replacing the
// file atomically (write to a temp file, then rename).
func (l *Log) Save(ctx context.Context, obs []domain.Observation) error {
	sorted := make([]domain.Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".weights-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"date", "weight", "height"}); err != nil {
		return err
	}
	for _, o := range sorted {
		height := ""
		if o.Height > 0 {
			height = strconv.FormatFloat(o.Height, 'f', -1, 64)
		}
		rec := []string{
			o.Day(),
			strconv.FormatFloat(o.Weight, 'f', -1, 64),
			height,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), l.path)
}

func parseRecord(rec []string) (domain.Observation, error) {
	if len(rec) < 2 {
		return domain.Observation{}, fmt.Errorf("want at least 2 fields, got %d", len(rec))
	}
	date, err := time.Parse("2006-01-02", rec[0])
	if err != nil {
		return domain.Observation{}, fmt.Errorf("bad date %q: %w", rec[0], err)
	}
	weight, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("bad weight %q: %w", rec[1], err)
	}
	obs := domain.Observation{
		Date:       domain.NormalizeDate(date),
		Weight:     weight,
		RecordedAt: domain.NormalizeDate(date),
	}
	if len(rec) > 2 && rec[2] != "" {
		h, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return domain.Observation{}, fmt.Errorf("bad height %q: %w", rec[2], err)
		}
		obs.Height = h
	}
	return obs, nil
}
