package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/keydriver/internal/contract"
	"github.com/quantfold/keydriver/schema"
)

func newSQLiteStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

// TestRunStoreSQLiteRoundTrip tests the full record-and-read-back cycle
// against a real SQLite database.
func TestRunStoreSQLiteRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	start := time.Now().Add(-2 * time.Second).UTC()
	runID, err := store.BeginRun(start, map[string]any{
		"outcome": "satisfaction",
		"drivers": "price,quality",
	})
	require.NoError(t, err)
	assert.Positive(t, runID)

	rec := schema.ImportanceRecord{
		Driver:         "price",
		Label:          "Unit Price",
		Kind:           schema.NumericKind,
		ShapleyPct:     61.5,
		ShapleyValue:   0.42,
		RelWeightPct:   60.1,
		BetaPct:        58.8,
		BetaStd:        -0.48,
		Direction:      schema.NegativeDirection,
		Correlation:    -0.66,
		HasCorrelation: true,
		AvgRank:        1.0,
	}
	require.NoError(t, store.RecordImportance(runID, "satisfaction", rec))

	catRec := schema.ImportanceRecord{
		Driver:       "region",
		Label:        "Region",
		Kind:         schema.CategoricalKind,
		ShapleyPct:   38.5,
		ShapleyValue: 0.26,
		RelWeightPct: 39.9,
		BetaPct:      41.2,
		BetaStd:      0.22,
		Direction:    schema.MixedDirection,
		AvgRank:      2.0,
	}
	require.NoError(t, store.RecordImportance(runID, "satisfaction", catRec))

	end := start.Add(1500 * time.Millisecond)
	require.NoError(t, store.EndRun(runID, end, 2))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.EqualValues(t, 1, status.TotalRuns)
	assert.EqualValues(t, 2, status.TotalRecords)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.True(t, runs[0].StartTime.Equal(start))
	require.NotNil(t, runs[0].EndTime)
	assert.True(t, runs[0].EndTime.Equal(end))
	require.NotNil(t, runs[0].RunDurationMs)
	assert.Equal(t, int32(1500), *runs[0].RunDurationMs)
	assert.Equal(t, int32(2), runs[0].TotalDrivers)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "price,quality")

	imp, err := store.GetAllImportance()
	require.NoError(t, err)
	require.Len(t, imp, 2)
	// Ordered by descending Shapley share within the run.
	assert.Equal(t, "price", imp[0].Driver)
	require.NotNil(t, imp[0].Correlation)
	assert.InDelta(t, -0.66, *imp[0].Correlation, 1e-9)
	assert.Equal(t, "region", imp[1].Driver)
	assert.Nil(t, imp[1].Correlation)
	assert.Equal(t, string(schema.MixedDirection), imp[1].Direction)
}

// TestRunStoreSQLiteMultipleRuns tests run isolation and ordering.
func TestRunStoreSQLiteMultipleRuns(t *testing.T) {
	store := newSQLiteStore(t)

	first, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	second, err := store.BeginRun(time.Now().UTC(), nil)
	require.NoError(t, err)
	assert.Greater(t, second, first)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].RunID)
	assert.Equal(t, second, runs[1].RunID)

	// An unfinished run has no end time or duration yet.
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
}

// TestRunStoreNoneBackend tests that disabled tracking is a silent no-op.
func TestRunStoreNoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Zero(t, runID)

	require.NoError(t, store.RecordImportance(0, "y", schema.ImportanceRecord{Driver: "x"}))
	require.NoError(t, store.EndRun(0, time.Now(), 1))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.Zero(t, status.TotalRuns)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Nil(t, runs)
}

// TestRunStoreUnsupportedBackend tests rejection of unknown backends.
func TestRunStoreUnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

// TestQuoteTableName tests backend-specific identifier quoting.
func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`keydriver_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"keydriver_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"keydriver_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
}

// TestRunStoreManager tests guarded store retrieval.
func TestRunStoreManager(t *testing.T) {
	store := newSQLiteStore(t)
	mgr := &RunStoreManager{}
	assert.Nil(t, mgr.GetRunStore())

	mgr.Lock()
	mgr.runs = store
	mgr.Unlock()
	assert.Equal(t, contract.RunStore(store), mgr.GetRunStore())
}

// TestClearRunsSQLite tests database file removal, including the missing-file
// and empty-path cases.
func TestClearRunsSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.FileExists(t, dbPath)

	require.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))
	assert.NoFileExists(t, dbPath)

	// Clearing an already-absent file is not an error.
	require.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))

	err = ClearRuns(schema.SQLiteBackend, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}
