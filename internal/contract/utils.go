package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"

	"github.com/quantfold/keydriver/schema"
)

// Importance tier label constants, keyed off a driver's Shapley share.
const (
	DominantValue = "Dominant" // Dominant value
	StrongValue   = "Strong"   // Strong value
	ModerateValue = "Moderate" // Moderate value
	MinorValue    = "Minor"    // Minor value
)

// Color variables for console output.
var (
	DominantColor = color.New(color.FgGreen, color.Bold) // dominantColor marks the drivers that move the outcome most.
	StrongColor   = color.New(color.FgCyan, color.Bold)  // strongColor marks clearly material drivers.
	ModerateColor = color.New(color.FgYellow)            // moderateColor marks middling drivers, not bold.
	MinorColor    = color.New(color.FgHiBlack)           // minorColor marks background noise.

	NegativeColor = color.New(color.FgRed) // negativeColor marks drivers pulling the outcome down.
)

// GetPlainLabel returns a plain text label indicating the importance tier
// based on the driver's Shapley percentage share. This is the core logic
// used for CSV, JSON, and table printing.
func GetPlainLabel(shapleyPct float64) string {
	switch {
	case shapleyPct >= 40:
		return DominantValue
	case shapleyPct >= 20:
		return StrongValue
	case shapleyPct >= 10:
		return ModerateValue
	default:
		return MinorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(shapleyPct float64) string {
	text := GetPlainLabel(shapleyPct)

	switch text {
	case DominantValue:
		return DominantColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Minor"
		return MinorColor.Sprint(text)
	}
}

// GetColorDirection colors a direction marker for console output. Negative
// association is the one readers most often misread in a percentage table,
// so it gets the loud color.
func GetColorDirection(dir schema.Direction) string {
	switch dir {
	case schema.NegativeDirection:
		return NegativeColor.Sprint(string(dir))
	case schema.MixedDirection:
		return ModerateColor.Sprint(string(dir))
	default:
		return string(dir)
	}
}

// FormatPct formats a percentage value at the configured precision.
func FormatPct(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64) + "%"
}

// FormatSigned formats a signed statistic (beta, correlation) with a fixed
// three decimals, enough to read sign and magnitude without drowning the table.
func FormatSigned(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".keydriver_runs.db"
	}
	return filepath.Join(homeDir, ".keydriver_runs.db")
}

// TruncateLabel truncates a driver label to a maximum width with an ellipsis
// suffix. Requires maxWidth > 3 so there is space for both "..." and at least
// one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}
