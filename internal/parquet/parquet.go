// Package parquet provides data structures and functions for exporting driver
// importance results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/quantfold/keydriver/schema"
)

// ImportanceRun represents a single analysis run with metadata.
// This struct maps to the keydriver_runs database table.
type ImportanceRun struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the analysis began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalDrivers is the number of drivers decomposed in this run
	TotalDrivers int32 `parquet:"total_drivers,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ImportanceRow represents one driver's importance record within a run.
// This struct maps to the keydriver_importance database table.
type ImportanceRow struct {
	// RunID references the parent analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// Outcome is the dependent column the run explained
	Outcome string `parquet:"outcome,snappy"`

	// Driver is the source column name
	Driver string `parquet:"driver,snappy"`

	// Label is the display label for the driver
	Label string `parquet:"label,snappy"`

	// Kind is numeric or categorical
	Kind string `parquet:"kind,snappy"`

	// ShapleyPct is the driver's share of explained variance
	ShapleyPct float64 `parquet:"shapley_pct,snappy"`

	// ShapleyValue is the unnormalized Shapley allocation of R-squared
	ShapleyValue float64 `parquet:"shapley_value,snappy"`

	// RelWeightPct is the Johnson relative weight share
	RelWeightPct float64 `parquet:"rel_weight_pct,snappy"`

	// BetaPct is the standardized beta weight share
	BetaPct float64 `parquet:"beta_pct,snappy"`

	// BetaStd is the signed standardized coefficient
	BetaStd float64 `parquet:"beta_std,snappy"`

	// Direction is the sign of the driver's association
	Direction string `parquet:"direction,snappy"`

	// Correlation is the Pearson correlation with the outcome (nullable,
	// absent for categorical drivers)
	Correlation *float64 `parquet:"correlation,optional,snappy"`

	// AvgRank is the average rank across available methods
	AvgRank float64 `parquet:"avg_rank,snappy"`
}

// WriteImportanceRunsParquet writes a slice of ImportanceRun structs to a Parquet file.
func WriteImportanceRunsParquet(data []ImportanceRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the ImportanceRun struct tags
	writer := parquet.NewGenericWriter[ImportanceRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteImportanceRowsParquet writes a slice of ImportanceRow structs to a Parquet file.
func WriteImportanceRowsParquet(data []ImportanceRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the ImportanceRow struct tags
	writer := parquet.NewGenericWriter[ImportanceRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to ImportanceRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ImportanceRun {
	result := make([]ImportanceRun, len(records))
	for i, record := range records {
		result[i] = ImportanceRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalDrivers:  record.TotalDrivers,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertImportanceRowRecords converts schema.ImportanceRowRecord to ImportanceRow for Parquet export.
func ConvertImportanceRowRecords(records []schema.ImportanceRowRecord) []ImportanceRow {
	result := make([]ImportanceRow, len(records))
	for i, record := range records {
		result[i] = ImportanceRow{
			RunID:        record.RunID,
			Outcome:      record.Outcome,
			Driver:       record.Driver,
			Label:        record.Label,
			Kind:         record.Kind,
			ShapleyPct:   record.ShapleyPct,
			ShapleyValue: record.ShapleyValue,
			RelWeightPct: record.RelWeightPct,
			BetaPct:      record.BetaPct,
			BetaStd:      record.BetaStd,
			Direction:    record.Direction,
			Correlation:  record.Correlation,
			AvgRank:      record.AvgRank,
		}
	}
	return result
}

// ConvertImportanceTable converts an in-memory importance table to parquet
// rows for export, without requiring a run store.
func ConvertImportanceTable(runID int64, table *schema.ImportanceTable) []ImportanceRow {
	result := make([]ImportanceRow, len(table.Records))
	for i, rec := range table.Records {
		row := ImportanceRow{
			RunID:        runID,
			Outcome:      table.Outcome,
			Driver:       rec.Driver,
			Label:        rec.Label,
			Kind:         string(rec.Kind),
			ShapleyPct:   rec.ShapleyPct,
			ShapleyValue: rec.ShapleyValue,
			RelWeightPct: rec.RelWeightPct,
			BetaPct:      rec.BetaPct,
			BetaStd:      rec.BetaStd,
			Direction:    string(rec.Direction),
			AvgRank:      rec.AvgRank,
		}
		if rec.HasCorrelation {
			corr := rec.Correlation
			row.Correlation = &corr
		}
		result[i] = row
	}
	return result
}
