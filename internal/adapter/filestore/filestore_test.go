package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weightlog/internal/domain"
)

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLog_RoundTripExact(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "weights.csv")
	log := NewLog(path)

	in := []domain.Observation{
		{Date: date("2024-06-01"), Weight: 81.35, Height: 1.83},
		{Date: date("2024-06-02"), Weight: 80.9},
		{Date: date("2024-06-05"), Weight: 80.456789},
	}
	require.NoError(t, log.Save(ctx, in))

	out, err := log.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.True(t, out[i].Date.Equal(in[i].Date), "date %d", i)
		assert.Equal(t, in[i].Weight, out[i].Weight, "weight %d must round-trip exactly", i)
		assert.Equal(t, in[i].Height, out[i].Height, "height %d must round-trip exactly", i)
	}
}

func TestLog_MissingFileIsEmpty(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "absent.csv"))
	out, err := log.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLog_LoadSupersedesDuplicates(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.csv")
	log := NewLog(path)

	// Save twice through the store to get duplicate dates on disk is not
	// possible (Save rewrites the file), so hand the loader raw duplicates.
	require.NoError(t, writeRaw(path,
		"date,weight,height\n2024-06-01,81,\n2024-06-01,80.5,\n2024-06-02,80.1,\n"))

	out, err := log.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 80.5, out[0].Weight, "last row for a date wins")
}

func TestStore_WriteThrough(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "weights.csv")
	goalPath := filepath.Join(dir, "goal.json")

	store, err := Open(dataPath, goalPath)
	require.NoError(t, err)

	require.NoError(t, store.Upsert(ctx, domain.Observation{
		Date: date("2024-06-01"), Weight: 81.2, RecordedAt: time.Now(),
	}))

	// A fresh store sees the persisted observation.
	reopened, err := Open(dataPath, goalPath)
	require.NoError(t, err)
	latest, err := reopened.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 81.2, latest.Weight)
}

func TestStore_GoalFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "w.csv"), filepath.Join(dir, "goal.json"))
	require.NoError(t, err)

	_, err = store.LoadGoal(ctx)
	assert.True(t, errors.Is(err, domain.ErrNoGoal))

	target := date("2024-12-01")
	require.NoError(t, store.SaveGoal(ctx, domain.Goal{TargetWeight: 78, TargetDate: &target}))

	g, err := store.LoadGoal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 78.0, g.TargetWeight)
	require.NotNil(t, g.TargetDate)
	assert.True(t, g.TargetDate.Equal(target))
}

func TestStore_ImportExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "w.csv"), filepath.Join(dir, "goal.json"))
	require.NoError(t, err)

	_ = store.Upsert(ctx, domain.Observation{Date: date("2024-06-01"), Weight: 81})

	other := filepath.Join(dir, "other.csv")
	require.NoError(t, writeRaw(other, "date,weight,height\n2024-06-01,80.7,\n2024-06-03,80.2,\n"))

	n, err := store.ImportFrom(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	snap := store.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, 80.7, snap[0].Weight, "import supersedes same-date entry")

	exported := filepath.Join(dir, "export.csv")
	require.NoError(t, store.ExportTo(ctx, exported))
	out, err := NewLog(exported).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
