// Package main provides a performance benchmarking tool for the keydriver CLI.
// It measures analyze execution times across different dataset sizes and driver
// counts, running each scenario multiple times, treating the first successful
// run as cold and averaging the rest as warm, generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - keydriver binary installed and available in PATH
//
// Usage: go run benchmark/main.go
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkScenario describes one synthetic dataset shape to time.
type BenchmarkScenario struct {
	Name    string
	Rows    int
	Drivers int
}

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Scenario string
	Rows     int
	Drivers  int
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout   time.Duration
	Workers   int
	Runs      int
	Scenarios []BenchmarkScenario
}

func main() {
	config := BenchmarkConfig{
		Timeout: 5 * time.Minute,
		Workers: 8,
		Runs:    4,
		Scenarios: []BenchmarkScenario{
			{Name: "small", Rows: 500, Drivers: 5},
			{Name: "medium", Rows: 5000, Drivers: 8},
			{Name: "wide", Rows: 2000, Drivers: 12},
			{Name: "large", Rows: 50000, Drivers: 10},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	dataDir, err := os.MkdirTemp("", "keydriver_benchmark")
	if err != nil {
		fmt.Printf("Failed to create data directory: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(dataDir) }()

	results := runBenchmarks(config, dataDir)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the keydriver binary exists
func checkPrerequisites() error {
	if _, err := exec.LookPath("keydriver"); err != nil {
		return fmt.Errorf("keydriver binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark scenarios
func runBenchmarks(config BenchmarkConfig, dataDir string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d scenarios, %v timeout, %d workers, %d runs each\n",
		len(config.Scenarios), config.Timeout, config.Workers, config.Runs)

	for _, scenario := range config.Scenarios {
		fmt.Printf("Benchmarking %s (%d rows, %d drivers)\n", scenario.Name, scenario.Rows, scenario.Drivers)

		dataPath := filepath.Join(dataDir, scenario.Name+".csv")
		if err := writeSyntheticDataset(dataPath, scenario.Rows, scenario.Drivers); err != nil {
			fmt.Printf("  Failed to generate dataset: %v\n", err)
			continue
		}

		results = append(results, runScenario(config, scenario, dataPath))
	}

	return results
}

// runScenario times repeated analyze runs over one dataset
func runScenario(config BenchmarkConfig, scenario BenchmarkScenario, dataPath string) BenchmarkResult {
	drivers := make([]string, scenario.Drivers)
	for i := range drivers {
		drivers[i] = fmt.Sprintf("x%d", i+1)
	}

	args := []string{
		"analyze", dataPath,
		"--outcome", "y",
		"--drivers", strings.Join(drivers, ","),
		"--workers", fmt.Sprintf("%d", config.Workers),
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("keydriver", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	coldTime := "TIMEOUT"
	warmTime := "TIMEOUT"
	if len(times) > 0 {
		coldTime = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		warmTime = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTime, warmTime)

	return BenchmarkResult{
		Scenario: scenario.Name,
		Rows:     scenario.Rows,
		Drivers:  scenario.Drivers,
		ColdTime: coldTime,
		WarmTime: warmTime,
	}
}

// writeSyntheticDataset generates a numeric survey-like CSV with a known
// linear signal plus noise so the analysis always has something to explain.
func writeSyntheticDataset(path string, rows, drivers int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	rng := rand.New(rand.NewSource(42))

	header := make([]string, 0, drivers+1)
	header = append(header, "y")
	for i := 1; i <= drivers; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, drivers+1)
	for r := 0; r < rows; r++ {
		var y float64
		for i := 1; i <= drivers; i++ {
			x := rng.NormFloat64()
			y += float64(i) * x
			record[i] = fmt.Sprintf("%.6f", x)
		}
		y += rng.NormFloat64()
		record[0] = fmt.Sprintf("%.6f", y)
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// isSuccess checks if command output indicates a completed analysis
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Explained") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/keydriver_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"scenario", "rows", "drivers", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		record := []string{
			result.Scenario,
			fmt.Sprintf("%d", result.Rows),
			fmt.Sprintf("%d", result.Drivers),
			result.ColdTime,
			result.WarmTime,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s (%6d rows, %2d drivers): Cold: %s, Warm: %s\n",
			result.Scenario, result.Rows, result.Drivers, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
