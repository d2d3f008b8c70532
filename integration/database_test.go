//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestKeydriverWithMySQL tests the keydriver CLI with a MySQL run store.
func TestKeydriverWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "keydriver",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/keydriver?parseTime=true", host, port.Port())
	runStoreLifecycle(t, "mysql", connStr)
}

// TestKeydriverWithPostgres tests the keydriver CLI with a PostgreSQL run store.
func TestKeydriverWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runStoreLifecycle(t, "postgresql", connStr)
}

// runStoreLifecycle runs the analyze/status/clear cycle against a SQL backend
// configured through environment variables.
func runStoreLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()

	_ = os.Setenv("KEYDRIVER_STORE_BACKEND", backend)
	_ = os.Setenv("KEYDRIVER_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("KEYDRIVER_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("KEYDRIVER_STORE_DB_CONNECT") }()

	dir := t.TempDir()
	dataPath, err := writeSurveyFixture(dir)
	require.NoError(t, err)

	// Start clean
	_, err = runKeydriverCommand(t, dir, "runs", "clear")
	require.NoError(t, err)

	// Migrations must apply on a fresh database
	_, err = runKeydriverCommand(t, dir, "runs", "migrate")
	require.NoError(t, err)

	// A tracked analysis run
	_, err = runKeydriverCommand(t, dir, "analyze", dataPath,
		"--outcome", "satisfaction",
		"--drivers", "price,quality")
	require.NoError(t, err)

	// Status must see the recorded run
	out, err := runKeydriverCommand(t, dir, "runs", "status")
	require.NoError(t, err)
	require.Contains(t, out, backend)

	// And clear must succeed
	_, err = runKeydriverCommand(t, dir, "runs", "clear")
	require.NoError(t, err)
}
