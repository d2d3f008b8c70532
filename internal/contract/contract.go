// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/quantfold/keydriver/schema"
)

// RunStore records completed analysis runs and their importance records.
// This allows the persistence layer to be mocked for testing. The engine
// itself is stateless; stores only ever see finished tables.
type RunStore interface {
	// BeginRun creates a new analysis run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// RecordImportance stores one driver's importance record for a run.
	RecordImportance(runID int64, outcome string, rec schema.ImportanceRecord) error

	// EndRun updates the analysis run with completion data.
	EndRun(runID int64, endTime time.Time, totalDrivers int) error

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStoreStatus, error)

	// GetAllRuns retrieves all recorded runs, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllImportance retrieves all importance rows, grouped by run.
	GetAllImportance() ([]schema.ImportanceRowRecord, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the configured run store.
type StoreManager interface {
	GetRunStore() RunStore
}
