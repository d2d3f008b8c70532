package iocache

import (
	"errors"
	"fmt"

	"github.com/quantfold/keydriver/internal/parquet"
)

// ExecuteRunExport performs the actual export of run data to Parquet files.
func ExecuteRunExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total importance records: %d\n", status.TotalRecords)

	// Retrieve all runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all importance rows
	importance, err := store.GetAllImportance()
	if err != nil {
		return fmt.Errorf("failed to retrieve importance rows: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetImportance := parquet.ConvertImportanceRowRecords(importance)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteImportanceRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write importance rows to Parquet
	importanceFile := outputFile + ".importance.parquet"
	if err := parquet.WriteImportanceRowsParquet(parquetImportance, importanceFile); err != nil {
		return fmt.Errorf("failed to write importance rows: %w", err)
	}
	fmt.Printf("Exported %d importance records to: %s\n", len(parquetImportance), importanceFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
