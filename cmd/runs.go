package cmd

import (
	"fmt"

	"github.com/quantfold/keydriver/core"
	"github.com/quantfold/keydriver/internal/contract"
	"github.com/quantfold/keydriver/internal/iocache"
	"github.com/quantfold/keydriver/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads minimal configuration needed for run store operations.
// This is used by commands that need store access without full shared setup.
func runsSetup() error {
	if err := lightSetup(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be none, sqlite, mysql, postgresql", backendStr)
	}

	// Initialize the store with the loaded config
	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}
	storeManager = iocache.Manager

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be none, sqlite, mysql, postgresql", backendStr)
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on run data management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by the analyze command. This avoids dataset
// validation and complex config processing for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage historical analysis runs and exports",
	Long: `Manage historical run data used for trend tracking and reporting.

When enabled, keydriver tracks every analysis run, storing:
- Run metadata (timestamp, configuration, duration)
- Per-driver importance across all four methods

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracked run data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  keydriver runs status --store-backend sqlite

  # Export for analysis in pandas/DuckDB
  keydriver runs export --store-backend sqlite --output-file run-data.parquet`,
}

// runsClearCmd clears the run data.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical run data",
	Long: `Delete all stored analysis runs and importance history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  keydriver runs export --store-backend sqlite --output-file backup.parquet
  keydriver runs clear --store-backend sqlite`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearRuns(cfg.StoreBackend, contract.GetRunDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear run data", err)
		}
		fmt.Println("Run data cleared successfully.")
	},
}

// runsStatusCmd shows run store status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about historical run tracking.

Displays:
- Backend type and storage location
- Total number of analysis runs stored
- Total importance records stored

Examples:
  # Check run tracking status
  keydriver runs status --store-backend sqlite`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStatus(cfg, storeManager); err != nil {
			contract.LogFatal("Failed to get run store status", err)
		}
	},
}

// runsExportCmd exports run data to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical data to Parquet for BI tools and analytics",
	Long: `Export all stored run data to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata about each analysis execution
- Importance - per-driver importance readings per run

Requires: --output-file parameter

Examples:
  # Export all data
  keydriver runs export --store-backend sqlite --output-file keydriver-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('keydriver-data.importance.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteRunExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run data", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  keydriver runs migrate --store-backend sqlite

  # Migrate to specific version
  keydriver runs migrate --store-backend sqlite --target-version 1

  # Rollback to initial state
  keydriver runs migrate --store-backend sqlite --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateRuns(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
