package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/quantfold/keydriver/internal/contract"
	"github.com/quantfold/keydriver/schema"
)

// PrintStoreStatus displays run store status in the configured output format.
func PrintStoreStatus(status schema.RunStoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"backend", "location", "total_runs", "total_records"}, func(writer *csv.Writer) error {
				return writer.Write([]string{
					string(status.Backend),
					status.Location,
					strconv.FormatInt(status.TotalRuns, 10),
					strconv.FormatInt(status.TotalRecords, 10),
				})
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printStoreStatusText(w, status)
		}, "Wrote text")
	}
}

func printStoreStatusText(w io.Writer, status schema.RunStoreStatus) error {
	if _, err := fmt.Fprintf(w, "📊 Run Store Status\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "   Backend:  %s\n", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "   Location: %s\n", status.Location); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "   Runs:     %d\n", status.TotalRuns); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "   Records:  %d\n", status.TotalRecords); err != nil {
		return err
	}
	return nil
}
