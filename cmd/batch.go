package cmd

import (
	"github.com/oncolens/tumorscore/core"
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/spf13/cobra"
)

// batchCmd scores every sample of a file or table.
var batchCmd = &cobra.Command{
	Use:   "batch [input-file]",
	Short: "Score many samples from a file or database table.",
	Long: `Score every sample of a JSON, YAML or CSV file, or every row of a database table.

A JSON or YAML file holds a list of measurement maps. A CSV file holds one
sample per row with feature names as headers; an optional "id" column names
each sample. Samples are scored concurrently by --workers goroutines and
reported in input order unless --rank is given.

Examples:
  # Score a CSV export
  tumorscore batch samples.csv

  # Show the ten samples most likely to be malignant
  tumorscore batch samples.csv --rank --limit 10

  # Fill gaps with defaults and reject malformed rows
  tumorscore batch samples.json --defaults --strict

  # Read from a PostgreSQL table
  tumorscore batch --source-backend postgresql \
    --source-db-connect "host=localhost dbname=lab user=lab" --source-table biopsies

  # Keep a columnar copy of the results
  tumorscore batch samples.csv --output parquet --output-file results.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBatch(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot run batch scoring", err)
		}
	},
}
