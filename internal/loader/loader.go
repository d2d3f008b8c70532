// Package loader reads observation files into datasets. Both supported
// formats funnel through the same string table so coercion, missing-value
// handling and listwise deletion behave identically for CSV and parquet.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quantfold/keydriver/schema"
)

// missingMarkers are the cell values treated as absent, case-insensitive.
var missingMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
}

// rawTable is a column-major string table straight off disk.
type rawTable struct {
	headers []string
	columns map[string][]string
	rows    int
}

// Load reads the file at path into a dataset restricted to the outcome,
// driver and weight columns. Rows with a missing value in any of those
// columns are dropped entirely before the dataset is built.
func Load(path string, format schema.DataFormat, outcome string, drivers []string, weight string) (*schema.Dataset, error) {
	format, err := resolveFormat(path, format)
	if err != nil {
		return nil, err
	}

	var raw *rawTable
	switch format {
	case schema.CSVFormat:
		raw, err = readCSV(path)
	case schema.ParquetFormat:
		raw, err = readParquet(path)
	default:
		err = fmt.Errorf("unsupported data format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	needed := append([]string{outcome}, drivers...)
	if weight != "" {
		needed = append(needed, weight)
	}
	for _, name := range needed {
		if _, ok := raw.columns[name]; !ok {
			return nil, fmt.Errorf("column '%s' not found in %s (available: %s)",
				name, filepath.Base(path), strings.Join(raw.headers, ", "))
		}
	}

	kept := completeCases(raw, needed)
	return buildDataset(raw, needed, kept, weight)
}

// resolveFormat turns the auto format into a concrete one via file extension.
func resolveFormat(path string, format schema.DataFormat) (schema.DataFormat, error) {
	if format != schema.AutoFormat {
		return format, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return schema.CSVFormat, nil
	case ".parquet", ".pq":
		return schema.ParquetFormat, nil
	}
	return "", fmt.Errorf("cannot infer data format from '%s'. pass --format csv or --format parquet", filepath.Base(path))
}

func readCSV(path string) (*rawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("data file '%s' is empty", filepath.Base(path))
	}

	headers := records[0]
	raw := &rawTable{
		headers: headers,
		columns: make(map[string][]string, len(headers)),
		rows:    len(records) - 1,
	}
	for i, h := range headers {
		col := make([]string, raw.rows)
		for j, rec := range records[1:] {
			if i < len(rec) {
				col[j] = rec[i]
			}
		}
		raw.columns[h] = col
	}
	return raw, nil
}

// isMissing reports whether a raw cell counts as a missing value.
func isMissing(cell string) bool {
	_, ok := missingMarkers[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

// completeCases returns the indexes of rows with no missing value across the
// needed columns.
func completeCases(raw *rawTable, needed []string) []int {
	kept := make([]int, 0, raw.rows)
	for i := range raw.rows {
		ok := true
		for _, name := range needed {
			if isMissing(raw.columns[name][i]) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, i)
		}
	}
	return kept
}

// buildDataset coerces the kept rows of the needed columns into typed
// dataset columns. A column is numeric iff every kept cell parses as a
// float; otherwise it is categorical with the raw strings as levels.
func buildDataset(raw *rawTable, needed []string, kept []int, weight string) (*schema.Dataset, error) {
	ds := &schema.Dataset{Rows: len(kept)}
	seen := make(map[string]struct{}, len(needed))

	for _, name := range needed {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		cells := make([]string, len(kept))
		for j, idx := range kept {
			cells[j] = strings.TrimSpace(raw.columns[name][idx])
		}

		if name == weight {
			values, ok := parseNumeric(cells)
			if !ok {
				return nil, fmt.Errorf("weight column '%s' contains non-numeric values", name)
			}
			ds.Weights = values
			continue
		}

		if values, ok := parseNumeric(cells); ok {
			ds.Columns = append(ds.Columns, schema.Column{
				Name:   name,
				Kind:   schema.NumericKind,
				Values: values,
			})
		} else {
			ds.Columns = append(ds.Columns, schema.Column{
				Name:   name,
				Kind:   schema.CategoricalKind,
				Levels: cells,
			})
		}
	}
	return ds, nil
}

// parseNumeric parses every cell as a float64, reporting false on the first
// cell that does not parse.
func parseNumeric(cells []string) ([]float64, bool) {
	values := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}
