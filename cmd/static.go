package cmd

import (
	"github.com/oncolens/tumorscore/core"
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/spf13/cobra"
)

// modelCmd shows the fixed model.
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Show the model weights, scaler parameters and accuracy comparison.",
	Long: `Display the fixed linear model used for scoring.

Shows the intercept, the 15 weighted features with their coefficient and
standardization mean/scale, and the test accuracy of the candidate models.

Examples:
  tumorscore model
  tumorscore model --output csv --output-file weights.csv`,
	Args:    cobra.NoArgs,
	PreRunE: outputSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteModelInfo(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot show model", err)
		}
	},
}

// featuresCmd shows the feature catalog.
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List all 30 features and the top feature importances.",
	Long: `Display the top 10 feature importances and the catalog of all 30 features,
with the column name accepted in files and the model coefficient of each
weighted feature.

Examples:
  tumorscore features
  tumorscore features --output json`,
	Args:    cobra.NoArgs,
	PreRunE: outputSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFeatures(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list features", err)
		}
	},
}

// defaultsCmd shows the default measurements.
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show the default value and typical range of every weighted feature.",
	Long: `Display the default (median) measurement used by --defaults for each
weighted feature, with the typical range seen in the reference data.

Examples:
  tumorscore defaults
  tumorscore defaults --output yaml > sample.yaml`,
	Args:    cobra.NoArgs,
	PreRunE: outputSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDefaults(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot show defaults", err)
		}
	},
}
