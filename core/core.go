// Package core has core logic for loading, decomposing and ranking driver
// importance.
package core

import (
	"fmt"
	"time"

	"github.com/quantfold/keydriver/internal/contract"
	"github.com/quantfold/keydriver/internal/loader"
	"github.com/quantfold/keydriver/internal/outwriter"
	"github.com/quantfold/keydriver/schema"
)

// GetImportanceResults loads the configured dataset, runs the full
// decomposition and persists the results to the run store. It returns the
// importance table and the wall-clock duration of the analysis.
//
// Persistence starts only after the analysis has succeeded, so a refused run
// never leaves a dangling half-recorded row behind.
func GetImportanceResults(cfg *contract.Config, mgr contract.StoreManager) (*schema.ImportanceTable, time.Duration, error) {
	start := time.Now()

	ds, err := loader.Load(cfg.DataFile, cfg.Format, cfg.Outcome, cfg.Drivers, cfg.Weight)
	if err != nil {
		return nil, 0, err
	}

	specs, err := DeriveSpecs(ds, cfg.Drivers, cfg.Labels)
	if err != nil {
		return nil, 0, err
	}

	table, err := Run(ds, specs, cfg.Outcome, Options{Workers: cfg.Workers})
	if err != nil {
		return nil, 0, err
	}

	duration := time.Since(start)

	if err := persistRun(cfg, mgr, table, start); err != nil {
		// The analysis itself succeeded; a broken store should not discard it.
		contract.LogWarn("Failed to persist analysis run", err)
	}

	return table, duration, nil
}

// persistRun records one completed analysis in the configured run store.
func persistRun(cfg *contract.Config, mgr contract.StoreManager, table *schema.ImportanceTable, start time.Time) error {
	store := mgr.GetRunStore()
	if store == nil {
		return nil
	}

	params := map[string]any{
		"data_file": cfg.DataFile,
		"outcome":   cfg.Outcome,
		"drivers":   cfg.Drivers,
		"weight":    cfg.Weight,
		"workers":   cfg.Workers,
	}

	runID, err := store.BeginRun(start, params)
	if err != nil {
		return fmt.Errorf("failed to begin run: %w", err)
	}

	for _, rec := range table.Records {
		if err := store.RecordImportance(runID, table.Outcome, rec); err != nil {
			return fmt.Errorf("failed to record importance for %s: %w", rec.Driver, err)
		}
	}

	if err := store.EndRun(runID, time.Now(), len(table.Records)); err != nil {
		return fmt.Errorf("failed to end run: %w", err)
	}

	return nil
}

// ExecuteAnalyze runs the decomposition and prints results to stdout.
// It serves as the main entry point for the 'analyze' mode.
func ExecuteAnalyze(cfg *contract.Config, mgr contract.StoreManager) error {
	table, duration, err := GetImportanceResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteImportance(table, cfg, duration)
}

// ExecuteMethods displays the formal definitions of all importance methods.
// This is a static display that does not require any data loading.
func ExecuteMethods(cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteMethods(cfg)
}

// ExecuteStatus displays the run store status.
func ExecuteStatus(cfg *contract.Config, mgr contract.StoreManager) error {
	store := mgr.GetRunStore()
	if store == nil {
		return fmt.Errorf("run store is not initialized")
	}
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run store status: %w", err)
	}
	return outwriter.NewOutWriter().WriteStoreStatus(status, cfg)
}
