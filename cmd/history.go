package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/internal/iostore"
	"github.com/huangsam/gitbloat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConfig reads the history backend settings without touching git.
func historyConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseDatabaseBackend(viper.GetString("history-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetup loads minimal configuration and opens the history store.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	if err := iostore.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize scan history: %w", err)
	}
	return nil
}

// historyMigrateSetup loads configuration without opening the store, so that
// migrations run against a database whose tables do not exist yet.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect == "" {
		cfg.HistoryDBConnect = contract.GetHistoryDBFilePath()
	}
	return nil
}

// historyCmd focused on scan history management.
//
// Note: History subcommands use minimal initialization instead of the full
// sharedSetup, so they never need a Git repository.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded scan history and exports",
	Long: `Manage the optional record of past scans.

When --history-backend is set, every 'gitbloat objects' run stores:
- Run metadata (timestamp, repository, configuration, duration)
- Object counters (listed, sized, skipped) and the manifest digest
- The ranked objects that were reported

Comparing manifest digests across runs tells you whether history changed
between two scans.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded scans
  migrate - Run database schema migrations

Examples:
  # Check recorded scans
  gitbloat history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  gitbloat history export --history-backend sqlite --output-file scans`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display scan history statistics and connection details",
	Long: `Show detailed information about recorded scans.

Displays:
- Backend type and connection status
- Total number of scans stored
- Last and oldest scan timestamps
- Total objects listed across all scans
- Database table sizes`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iostore.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", fmt.Errorf("no history backend configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iostore.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyClearCmd clears the scan history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded scan history",
	Long: `Delete all recorded scans from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  gitbloat history export --history-backend sqlite --output-file backup
  gitbloat history clear --history-backend sqlite`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historyConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := cfg.HistoryDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetHistoryDBFilePath()
		}
		if err := iostore.ClearHistory(cfg.HistoryBackend, dbFilePath, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear scan history", err)
		}
		fmt.Println("Scan history cleared successfully.")
	},
}

// historyExportCmd exports scan history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scan history to Parquet for BI tools and analytics",
	Long: `Export all recorded scans to Parquet format.

Writes two datasets next to --output-file:
- <output-file>.scan_runs.parquet - one row per scan
- <output-file>.scan_objects.parquet - one row per reported object

Requires: --output-file parameter

Examples:
  gitbloat history export --history-backend sqlite --output-file scans
  duckdb -c "SELECT object_hash, max(size_bytes) FROM 'scans.scan_objects.parquet' GROUP BY 1"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export scan history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the scan history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gitbloat history migrate --history-backend sqlite

  # Migrate to specific version
  gitbloat history migrate --history-backend sqlite --target-version 1

  # Rollback to the initial state
  gitbloat history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
