// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/quantfold/keydriver/internal/contract"
	"github.com/quantfold/keydriver/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteImportance prints an importance table using the configured output format.
func (ow *OutWriter) WriteImportance(table *schema.ImportanceTable, cfg *contract.Config, duration time.Duration) error {
	return WriteImportanceResults(table, cfg, duration)
}

// WriteMethods prints the method definitions using the configured output format.
func (ow *OutWriter) WriteMethods(cfg *contract.Config) error {
	return PrintMethodDefinitions(cfg)
}

// WriteStoreStatus prints run store status using the configured output format.
func (ow *OutWriter) WriteStoreStatus(status schema.RunStoreStatus, cfg *contract.Config) error {
	return PrintStoreStatus(status, cfg)
}

// GetMaxTableLabelWidth calculates the maximum width for driver labels in
// table output based on terminal width and the fixed numeric columns.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Fixed columns: Rank + Kind + four method columns + Corr + Dir + AvgRank,
	// plus borders, separators and padding.
	baseWidth := 72

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 50 {
		return 50
	}
	return available
}
