package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// readParquet reads an arbitrary-schema parquet file into the same string
// table shape as the CSV path. Values go through their textual form and are
// re-coerced later, so numeric detection works the same for both formats.
func readParquet(path string) (*rawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat data file: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to parse parquet file: %w", err)
	}

	fields := pf.Schema().Fields()
	raw := &rawTable{
		headers: make([]string, len(fields)),
		columns: make(map[string][]string, len(fields)),
	}
	for i, field := range fields {
		raw.headers[i] = field.Name()
	}
	for _, h := range raw.headers {
		raw.columns[h] = make([]string, 0, pf.NumRows())
	}

	buf := make([]parquet.Row, 128)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, readErr := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				raw.rows++
				for _, v := range row {
					col := int(v.Column())
					if col < 0 || col >= len(raw.headers) {
						continue
					}
					name := raw.headers[col]
					if v.IsNull() {
						raw.columns[name] = append(raw.columns[name], "")
					} else {
						raw.columns[name] = append(raw.columns[name], v.String())
					}
				}
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				_ = rows.Close()
				return nil, fmt.Errorf("failed to read parquet rows: %w", readErr)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("failed to close parquet row reader: %w", err)
		}
	}

	// Ragged columns only happen with repeated fields, which observation
	// tables do not have.
	for _, h := range raw.headers {
		if len(raw.columns[h]) != raw.rows {
			return nil, fmt.Errorf("column '%s' in %s has nested or repeated values, which are not supported",
				h, filepath.Base(path))
		}
	}
	return raw, nil
}
