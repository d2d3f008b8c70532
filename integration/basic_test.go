//go:build basic

package integration

import (
	"encoding/csv"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalyzeCSVOutput runs a full analysis through the binary and checks the
// CSV shares against the known 4:9 construction.
func TestAnalyzeCSVOutput(t *testing.T) {
	dir := t.TempDir()
	dataPath, err := writeSurveyFixture(dir)
	require.NoError(t, err)

	out, err := runKeydriverCommand(t, dir, "analyze", dataPath,
		"--outcome", "satisfaction",
		"--drivers", "price,quality",
		"--output", "csv",
		"--precision", "2")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per driver")

	header := records[0]
	driverIdx := indexOf(t, header, "driver")
	shapleyIdx := indexOf(t, header, "shapley_pct")

	shares := make(map[string]float64, 2)
	var total float64
	for _, row := range records[1:] {
		pct, err := strconv.ParseFloat(row[shapleyIdx], 64)
		require.NoError(t, err)
		shares[row[driverIdx]] = pct
		total += pct
	}

	assert.InDelta(t, 100.0, total, 0.1)
	assert.InDelta(t, 900.0/13, shares["quality"], 0.1)
	assert.InDelta(t, 400.0/13, shares["price"], 0.1)
}

// TestRunsLifecycleSQLite exercises analyze, status, export and clear against
// a SQLite run store.
func TestRunsLifecycleSQLite(t *testing.T) {
	dir := t.TempDir()
	dataPath, err := writeSurveyFixture(dir)
	require.NoError(t, err)
	dbPath := filepath.Join(dir, "runs.db")

	storeArgs := []string{"--store-backend", "sqlite", "--store-db-connect", dbPath}

	_, err = runKeydriverCommand(t, dir, append([]string{
		"analyze", dataPath,
		"--outcome", "satisfaction",
		"--drivers", "price,quality",
	}, storeArgs...)...)
	require.NoError(t, err)

	out, err := runKeydriverCommand(t, dir, append([]string{"runs", "status"}, storeArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "1")

	exportBase := filepath.Join(dir, "export")
	_, err = runKeydriverCommand(t, dir, append([]string{
		"runs", "export", "--output-file", exportBase,
	}, storeArgs...)...)
	require.NoError(t, err)
	assert.FileExists(t, exportBase+".runs.parquet")
	assert.FileExists(t, exportBase+".importance.parquet")

	_, err = runKeydriverCommand(t, dir, append([]string{"runs", "clear"}, storeArgs...)...)
	require.NoError(t, err)
	assert.NoFileExists(t, dbPath)
}

// TestRefusalExitCode checks that a refused analysis fails loudly.
func TestRefusalExitCode(t *testing.T) {
	dir := t.TempDir()
	dataPath, err := writeSurveyFixture(dir)
	require.NoError(t, err)

	// The outcome used as its own driver must be refused.
	_, err = runKeydriverCommand(t, dir, "analyze", dataPath,
		"--outcome", "satisfaction",
		"--drivers", "satisfaction,price")
	assert.Error(t, err)
}

// TestMethodsAndVersion smoke-tests the data-free commands.
func TestMethodsAndVersion(t *testing.T) {
	dir := t.TempDir()

	out, err := runKeydriverCommand(t, dir, "methods")
	require.NoError(t, err)
	assert.Contains(t, out, "SHAPLEY")

	out, err = runKeydriverCommand(t, dir, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "keydriver CLI")
}

func indexOf(t *testing.T, header []string, name string) int {
	t.Helper()
	for i, h := range header {
		if h == name {
			return i
		}
	}
	t.Fatalf("column %q not found in header %v", name, header)
	return -1
}
