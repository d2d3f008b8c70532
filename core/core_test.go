package core

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/keydriver/internal/contract"
	"github.com/quantfold/keydriver/internal/iocache"
	"github.com/quantfold/keydriver/schema"
)

// writeSurveyCSV writes a 48-row file where satisfaction = 2*price + 3*quality
// with exactly orthogonal drivers.
func writeSurveyCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")

	content := "satisfaction,price,quality\n"
	for i := range 48 {
		price := 1.0
		if i%2 == 1 {
			price = -1.0
		}
		quality := 1.0
		if (i/2)%2 == 1 {
			quality = -1.0
		}
		content += fmt.Sprintf("%g,%g,%g\n", 2*price+3*quality, price, quality)
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func analysisConfig(t *testing.T) *contract.Config {
	return &contract.Config{
		DataFile:     writeSurveyCSV(t),
		Format:       schema.AutoFormat,
		Outcome:      "satisfaction",
		Drivers:      []string{"price", "quality"},
		Workers:      2,
		Precision:    1,
		Output:       schema.TextOut,
		StoreBackend: schema.SQLiteBackend,
	}
}

// TestGetImportanceResults tests the load-analyze-persist pipeline end to end
// with a mocked run store.
func TestGetImportanceResults(t *testing.T) {
	cfg := analysisConfig(t)

	store := &iocache.MockRunStore{}
	store.On("BeginRun", mock.AnythingOfType("time.Time"), mock.Anything).Return(int64(7), nil)
	store.On("RecordImportance", int64(7), "satisfaction", mock.Anything).Return(nil)
	store.On("EndRun", int64(7), mock.AnythingOfType("time.Time"), 2).Return(nil)

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetRunStore").Return(store)

	table, duration, err := GetImportanceResults(cfg, mgr)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Positive(t, duration)

	assert.Equal(t, "satisfaction", table.Outcome)
	assert.InDelta(t, 1.0, table.RSquared, 1e-9)
	require.Len(t, table.Records, 2)
	assert.Equal(t, "quality", table.Records[0].Driver)

	store.AssertNumberOfCalls(t, "RecordImportance", 2)
	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

// TestGetImportanceResultsStoreFailure tests that a broken store does not
// discard a successful analysis.
func TestGetImportanceResultsStoreFailure(t *testing.T) {
	cfg := analysisConfig(t)

	store := &iocache.MockRunStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), fmt.Errorf("connection lost"))

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetRunStore").Return(store)

	table, _, err := GetImportanceResults(cfg, mgr)
	require.NoError(t, err)
	require.NotNil(t, table)
	store.AssertNumberOfCalls(t, "RecordImportance", 0)
}

// TestGetImportanceResultsRefusedRun tests that no persistence happens when
// the engine refuses the run.
func TestGetImportanceResultsRefusedRun(t *testing.T) {
	cfg := analysisConfig(t)
	cfg.Drivers = []string{"price", "price"} // duplicate driver is refused

	mgr := &iocache.MockStoreManager{}

	table, _, err := GetImportanceResults(cfg, mgr)
	assert.Nil(t, table)
	require.Error(t, err)
	refusals := schema.AllRefusals(err)
	require.NotEmpty(t, refusals)
	assert.Equal(t, schema.InputValidationCode, refusals[0].Code)
	mgr.AssertNotCalled(t, "GetRunStore")
}

// TestGetImportanceResultsMissingFile tests the loader error path.
func TestGetImportanceResultsMissingFile(t *testing.T) {
	cfg := analysisConfig(t)
	cfg.DataFile = filepath.Join(t.TempDir(), "absent.csv")

	mgr := &iocache.MockStoreManager{}
	_, _, err := GetImportanceResults(cfg, mgr)
	require.Error(t, err)
	mgr.AssertNotCalled(t, "GetRunStore")
}

// TestExecuteStatus tests the status path with a mocked store.
func TestExecuteStatus(t *testing.T) {
	store := &iocache.MockRunStore{}
	store.On("GetStatus").Return(schema.RunStoreStatus{
		Backend:   schema.SQLiteBackend,
		Location:  "/tmp/runs.db",
		TotalRuns: 3,
	}, nil)

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetRunStore").Return(store)

	cfg := &contract.Config{Output: schema.JSONOut, Precision: 1}
	require.NoError(t, ExecuteStatus(cfg, mgr))
	store.AssertExpectations(t)
}

// TestExecuteStatusUninitialized tests the missing-store error.
func TestExecuteStatusUninitialized(t *testing.T) {
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetRunStore").Return(nil)

	err := ExecuteStatus(&contract.Config{}, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

// TestPersistRunTiming tests that the recorded window covers the analysis.
func TestPersistRunTiming(t *testing.T) {
	start := time.Now().Add(-time.Second)
	table := &schema.ImportanceTable{
		Outcome: "y",
		Records: []schema.ImportanceRecord{{Driver: "x"}},
	}

	store := &iocache.MockRunStore{}
	store.On("BeginRun", start, mock.Anything).Return(int64(1), nil)
	store.On("RecordImportance", int64(1), "y", mock.Anything).Return(nil)
	store.On("EndRun", int64(1), mock.MatchedBy(func(end time.Time) bool {
		return end.After(start)
	}), 1).Return(nil)

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetRunStore").Return(store)

	cfg := &contract.Config{Outcome: "y", Drivers: []string{"x"}}
	require.NoError(t, persistRun(cfg, mgr, table, start))
	store.AssertExpectations(t)
}
