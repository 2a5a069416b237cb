package cmd

import (
	"fmt"
	"os"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/internal/outwriter"
	"github.com/oncolens/tumorscore/internal/runlog"
	"github.com/oncolens/tumorscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup validates the full config and opens the run ledger.
// Used by the subcommands that read recorded runs.
func historySetup(cmd *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	input.InputFileArg = ""
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	if cfg.RunBackend == schema.NoneBackend {
		return fmt.Errorf("run ledger is disabled (run-backend is none); nothing to %s", cmd.Name())
	}
	if err := runlog.InitRunLog(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return err
	}
	runManager = runlog.Manager
	return nil
}

// historyMaintenanceSetup loads only the ledger backend settings.
// It does NOT open the store, so migrations can run on a fresh database
// and clear can remove a ledger that no longer opens.
func historyMaintenanceSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseBackend(viper.GetString("run-backend"))
	if err != nil {
		return fmt.Errorf("run ledger: %w", err)
	}
	connStr := viper.GetString("run-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = runlog.GetDBFilePath()
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	return nil
}

// historyCmd focused on run ledger management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the run ledger",
	Long: `Manage the ledger of scoring runs.

Every predict, batch and watch run is recorded with:
- Run metadata (command, timestamp, duration, model version)
- The number of samples scored
- Non-sensitive parameters (flags, file name, assignment count)

Measurement values and verdicts are never stored.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show ledger statistics
  list    - List recorded runs
  export  - Export runs to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check ledger status
  tumorscore history status

  # Export for analysis in pandas/DuckDB
  tumorscore history export --output-file runs.parquet`,
}

// historyStatusCmd shows ledger status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run ledger statistics and connection details",
	Long: `Show the ledger backend, whether it is connected, the number of recorded runs,
the newest and oldest run, and the total number of samples scored.

Examples:
  tumorscore history status
  tumorscore history status --run-backend mysql --run-db-connect "user:pass@tcp(localhost:3306)/lab"`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := runManager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run ledger status", err)
		}
		runlog.PrintRunStatus(os.Stdout, status)
	},
}

// historyListCmd lists recorded runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded scoring runs",
	Long: `Print every recorded run, oldest first, in any output format.

Examples:
  tumorscore history list
  tumorscore history list --output csv --output-file runs.csv`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := runManager.GetRunStore().GetAllRuns()
		if err != nil {
			contract.LogFatal("Failed to read run ledger", err)
		}
		if err := outwriter.WriteRunHistory(runs, cfg); err != nil {
			contract.LogFatal("Failed to write run history", err)
		}
	},
}

// historyClearCmd clears the run ledger.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete the run ledger. For SQLite this removes the database file; for MySQL
and PostgreSQL it drops the runs table.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  tumorscore history export --output-file backup.parquet
  tumorscore history clear`,
	Args:    cobra.NoArgs,
	PreRunE: historyMaintenanceSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runlog.ClearRuns(cfg.RunBackend, cfg.RunDBConnect, cfg.RunDBConnect); err != nil {
			contract.LogFatal("Failed to clear run ledger", err)
		}
		fmt.Println("Run ledger cleared successfully.")
	},
}

// historyExportCmd exports runs to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export every recorded run to a Parquet file.

Requires: --output-file parameter

Examples:
  tumorscore history export --output-file runs.parquet
  duckdb -c "SELECT command, count(*) FROM read_parquet('runs.parquet') GROUP BY 1"`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runlog.ExecuteRunExport(os.Stdout, runManager, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run ledger", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the run ledger.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run ledger.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  tumorscore history migrate

  # Migrate to specific version
  tumorscore history migrate --target-version 1

  # Rollback to the initial state
  tumorscore history migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: historyMaintenanceSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runlog.MigrateRuns(cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
