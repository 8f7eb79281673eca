package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"predstats/internal/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string, createdAt time.Time) Run {
	return Run{
		ID:     id,
		Source: "https://example.com/matches.csv",
		Team:   "PHI",
		Season: 2024,
		Status: StatusCompleted,
		Summary: &report.Summary{
			ID:      id,
			Source:  "https://example.com/matches.csv",
			Rows:    3,
			Columns: []string{"points_for", "margin"},
		},
		CreatedAt: createdAt,
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-1", time.Now())
	require.NoError(t, s.SaveRun(ctx, run))

	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, "PHI", got.Team)
	assert.Equal(t, 2024, got.Season)
	assert.Equal(t, StatusCompleted, got.Status)
	require.NotNil(t, got.Summary)
	assert.Equal(t, []string{"points_for", "margin"}, got.Summary.Columns)
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestStoreFailedRunWithoutSummary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := Run{
		ID:        "run-err",
		Source:    "https://example.com/matches.csv",
		Status:    StatusFailed,
		Error:     "fetch source: unexpected status 502",
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveRun(ctx, run))

	got, err := s.GetRun(ctx, "run-err")
	require.NoError(t, err)
	assert.Nil(t, got.Summary)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Contains(t, got.Error, "502")
}

func TestStoreListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.SaveRun(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// newest first
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestStoreDuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := sampleRun("dup", time.Now())
	require.NoError(t, s.SaveRun(ctx, run))
	assert.Error(t, s.SaveRun(ctx, run))
}
