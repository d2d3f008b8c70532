package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/quantfold/keydriver/internal/contract"
	"github.com/quantfold/keydriver/internal/parquet"
	"github.com/quantfold/keydriver/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteImportanceResults outputs the importance table, dispatching based on the output format configured.
func WriteImportanceResults(table *schema.ImportanceTable, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtRank := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeImportanceJSONResults(table, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeImportanceCSVResults(table, cfg, fmtFloat, fmtRank); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeImportanceParquetResults(table, cfg); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImportanceTable(table, cfg, fmtFloat, fmtRank, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeImportanceJSONResults handles opening the file and calling the JSON writer.
func writeImportanceJSONResults(table *schema.ImportanceTable, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForImportance(w, table)
	}, "Wrote JSON")
}

// writeImportanceCSVResults handles opening the file and calling the CSV writer.
func writeImportanceCSVResults(table *schema.ImportanceTable, cfg *contract.Config, fmtFloat, fmtRank func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForImportance(csvWriter, table, fmtFloat, fmtRank)
	}, "Wrote CSV")
}

// writeImportanceParquetResults exports the table via the parquet writer.
// Parquet is a binary columnar format, so an output file is mandatory.
func writeImportanceParquetResults(table *schema.ImportanceTable, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}
	rows := parquet.ConvertImportanceTable(0, table)
	return parquet.WriteImportanceRowsParquet(rows, cfg.OutputFile)
}

// writeImportanceTable generates and writes the human-readable table.
func writeImportanceTable(result *schema.ImportanceTable, cfg *contract.Config, fmtFloat, fmtRank func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Driver", "Kind", "Shapley", "RelWt", "Beta", "Corr", "Dir", "Tier", "AvgRank"}
	table.Header(headers)

	// 2. Configure alignment for the numeric columns
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxLabel := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for i, rec := range result.Records {
		corr := "-"
		if rec.HasCorrelation {
			corr = contract.FormatSigned(rec.Correlation)
		}
		tier := contract.GetPlainLabel(rec.ShapleyPct)
		dir := string(rec.Direction)
		if cfg.UseColors {
			tier = contract.GetColorLabel(rec.ShapleyPct)
			dir = contract.GetColorDirection(rec.Direction)
		}
		row := []string{
			strconv.Itoa(i + 1),                          // Rank
			contract.TruncateLabel(rec.Label, maxLabel),  // Driver
			string(rec.Kind),                             // Kind
			contract.FormatPct(rec.ShapleyPct, cfg.Precision),   // Shapley
			contract.FormatPct(rec.RelWeightPct, cfg.Precision), // RelWt
			contract.FormatPct(rec.BetaPct, cfg.Precision),      // Beta
			corr,                  // Corr
			dir,                   // Dir
			tier,                  // Tier
			fmtRank(rec.AvgRank),  // AvgRank
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary footer
	weighted := "unweighted"
	if result.Weighted {
		weighted = "weighted"
	}
	if _, err := fmt.Fprintf(writer, "Explained %s of '%s' variance (R²=%s) across %d drivers, n=%d %s rows\n",
		contract.FormatPct(result.RSquared*100, cfg.Precision), result.Outcome,
		fmtFloat(result.RSquared), len(result.Records), result.SampleSize, weighted); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n",
		duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForImportance writes the importance table in CSV format.
func writeCSVResultsForImportance(w *csv.Writer, result *schema.ImportanceTable, fmtFloat, fmtRank func(float64) string) error {
	// CSV header
	header := []string{
		"rank",
		"driver",
		"label",
		"kind",
		"shapley_pct",
		"shapley_value",
		"rel_weight_pct",
		"beta_pct",
		"beta_std",
		"direction",
		"correlation",
		"tier",
		"avg_rank",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, rec := range result.Records {
		corr := ""
		if rec.HasCorrelation {
			corr = contract.FormatSigned(rec.Correlation)
		}
		row := []string{
			strconv.Itoa(i + 1),                 // Rank
			rec.Driver,                          // Driver column name
			rec.Label,                           // Display label
			string(rec.Kind),                    // Kind
			fmtFloat(rec.ShapleyPct),            // Shapley share
			contract.FormatSigned(rec.ShapleyValue), // Raw Shapley value
			fmtFloat(rec.RelWeightPct),          // Relative weight share
			fmtFloat(rec.BetaPct),               // Beta share
			contract.FormatSigned(rec.BetaStd),  // Signed beta
			string(rec.Direction),               // Direction
			corr,                                // Correlation
			contract.GetPlainLabel(rec.ShapleyPct), // Tier
			fmtRank(rec.AvgRank),                // Average rank
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForImportance writes the importance table in JSON format.
func writeJSONResultsForImportance(w io.Writer, result *schema.ImportanceTable) error {
	// 1. Prepare the data structure for JSON with rank and tier added
	type JSONImportanceRecord struct {
		Rank int    `json:"rank"`
		Tier string `json:"tier"`
		schema.ImportanceRecord
	}
	type JSONImportanceTable struct {
		Outcome    string                 `json:"outcome"`
		RSquared   float64                `json:"r_squared"`
		SampleSize int                    `json:"sample_size"`
		Weighted   bool                   `json:"weighted"`
		Records    []JSONImportanceRecord `json:"records"`
	}

	output := JSONImportanceTable{
		Outcome:    result.Outcome,
		RSquared:   result.RSquared,
		SampleSize: result.SampleSize,
		Weighted:   result.Weighted,
		Records:    make([]JSONImportanceRecord, len(result.Records)),
	}
	for i, rec := range result.Records {
		output.Records[i] = JSONImportanceRecord{
			Rank:             i + 1,
			Tier:             contract.GetPlainLabel(rec.ShapleyPct),
			ImportanceRecord: rec,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
