package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/buildpulse/internal/contract"
	"github.com/huangsam/buildpulse/internal/history"
	"github.com/huangsam/buildpulse/internal/outwriter"
	"github.com/huangsam/buildpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need store access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(strings.ToLower(backendStr))
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the store with the loaded config
	if err := history.InitStore(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(strings.ToLower(backendStr))
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd groups commands for the recorded-run store.
//
// Note: History subcommands use minimal initialization (historySetup)
// instead of the full sharedSetup, since they operate on the store alone
// and take no report path.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded build runs",
	Long: `Manage the build runs recorded by past analyses.

Every analysis stores one row per build, keyed by the derived start
timestamp:
- Start time and total duration
- First crate to compile and final target
- Total blocked time and the associated build command

This enables comparing builds over time and exporting timing data for
further analysis.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show all recorded runs
  status  - Show history store statistics
  export  - Export runs to Parquet, CSV, or JSON
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Show recorded runs
  buildpulse history list

  # Export for analysis in pandas/DuckDB
  buildpulse history export --output-file runs.parquet`,
}

// historyListCmd lists all recorded runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all recorded build runs",
	Long: `List every recorded build run, ordered by start time.

Honors the --output flag, so runs can be rendered as a table (default),
CSV, or JSON.

Examples:
  # Table of all runs
  buildpulse history list

  # Machine-readable dump
  buildpulse history list --output json`,
	PreRunE: historySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		store := history.ActiveStore()
		if store == nil {
			return fmt.Errorf("history tracking is disabled")
		}
		runs, err := store.ListRuns()
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		return outwriter.WriteHistoryResults(runs, cfg)
	},
}

// historyStatusCmd shows history store status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history store statistics and connection details",
	Long: `Show information about the history store.

Displays:
- Backend type and connection status
- Total number of recorded runs
- Start and recording timestamps of the most recent run

Examples:
  # Check history store status
  buildpulse history status`,
	PreRunE: historySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		store := history.ActiveStore()
		if store == nil {
			return fmt.Errorf("history tracking is disabled")
		}
		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get history status: %w", err)
		}
		outwriter.PrintHistoryStatus(os.Stdout, status)
		return nil
	},
}

// historyClearCmd clears the recorded runs.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded build runs",
	Long: `Delete every recorded build run from the history store.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  buildpulse history export --output-file backup.parquet
  buildpulse history clear`,
	PreRunE: historySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		store := history.ActiveStore()
		if store == nil {
			return fmt.Errorf("history tracking is disabled")
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("History cleared successfully.")
		return nil
	},
}

// historyExportCmd exports recorded runs for analytics tooling.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet, CSV, or JSON",
	Long: `Export all recorded build runs to a file for analytics tools.

Parquet (default) enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression

Requires: --output-file parameter

Examples:
  # Export all runs
  buildpulse history export --output-file runs.parquet

  # CSV for spreadsheets
  buildpulse history export --format csv --output-file runs.csv

  # Use with DuckDB for analysis
  buildpulse history export --output-file runs.parquet
  duckdb -c "SELECT * FROM read_parquet('runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		format := schema.ExportFormat(strings.ToLower(viper.GetString("format")))
		if _, ok := schema.ValidExportFormats[format]; !ok {
			return fmt.Errorf("invalid export format '%s'. must be parquet, csv, json", format)
		}
		return history.ExecuteHistoryExport(history.ActiveStore(), format, viper.GetString("output-file"))
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  buildpulse history migrate

  # Rollback to initial state
  buildpulse history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	},
}
