//go:build basic || database

// Package integration contains end-to-end tests for the keydriver CLI.
// These tests are excluded from normal test runs due to build tags.
// To run them: go test -tags basic ./integration
// Database backends additionally need Docker: go test -tags database ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedKeydriverPath holds the path to a shared keydriver binary built once for all tests.
	sharedKeydriverPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getKeydriverBinary returns the path to the keydriver binary, building it once if needed.
func getKeydriverBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "keydriver-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "keydriver")
		buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/keydriver")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build keydriver: %v\n%s", err, out))
		}

		sharedKeydriverPath = binPath
	})

	return sharedKeydriverPath
}

// runKeydriverCommand runs the built binary with the given args from dir.
func runKeydriverCommand(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getKeydriverBinary(), args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}

// writeSurveyFixture writes a survey file where satisfaction = 2*price + 3*quality
// over exactly orthogonal drivers, so the expected shares are 4/13 and 9/13.
func writeSurveyFixture(dir string) (string, error) {
	path := filepath.Join(dir, "survey.csv")
	content := "satisfaction,price,quality\n"
	for i := range 48 {
		price := 1.0
		if i%2 == 1 {
			price = -1.0
		}
		quality := 1.0
		if (i/2)%2 == 1 {
			quality = -1.0
		}
		content += fmt.Sprintf("%g,%g,%g\n", 2*price+3*quality, price, quality)
	}
	return path, os.WriteFile(path, []byte(content), 0o644)
}
