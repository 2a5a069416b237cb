// Package cmd defines the command-line interface for tumorscore.
package cmd

import (
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers for batch scoring")
	rootCmd.PersistentFlags().String("run-backend", string(schema.SQLiteBackend), "Run ledger backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for the run ledger (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Command flags share viper keys (input, defaults, strict), so they are
	// bound in sharedSetup for the command that actually runs.
	for _, c := range []*cobra.Command{predictCmd, watchCmd} {
		c.Flags().StringP("input", "i", "", "Measurement file (json, yaml or csv) holding one sample")
		c.Flags().StringSliceP("set", "s", nil, "Measurement assignments such as 'worst_area=880.5' (repeatable, comma-separated)")
		c.Flags().Bool("defaults", false, "Fill missing weighted features with their default values")
		c.Flags().Bool("strict", false, "Reject unknown feature names, non-numeric and negative values")
		c.Flags().Bool("explain", false, "Print the per-feature contribution to the decision value")
	}

	predictCmd.Flags().String("delay", "", "Simulated processing delay before scoring (e.g. 500ms)")

	batchCmd.Flags().StringP("input", "i", "", "Measurement file (json, yaml or csv) holding many samples")
	batchCmd.Flags().Bool("defaults", false, "Fill missing weighted features with their default values")
	batchCmd.Flags().Bool("strict", false, "Reject unknown feature names, non-numeric and negative values")
	batchCmd.Flags().Bool("rank", false, "Sort samples by malignant probability, highest first")
	batchCmd.Flags().IntP("limit", "l", 0, "Number of samples to display (0 = all)")
	batchCmd.Flags().String("source-backend", "", "Read samples from a database table: sqlite or mysql or postgresql")
	batchCmd.Flags().String("source-db-connect", "", "Connection string (or SQLite file) for --source-table")
	batchCmd.Flags().String("source-table", "", "Table holding one sample per row, with feature columns")

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
