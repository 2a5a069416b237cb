package cmd

import (
	"github.com/oncolens/tumorscore/core"
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/spf13/cobra"
)

// predictCmd classifies a single sample.
var predictCmd = &cobra.Command{
	Use:   "predict [input-file]",
	Short: "Classify one tumor sample as benign or malignant.",
	Long: `Score one set of cell-nucleus measurements with the fixed linear model.

Measurements come from up to three places, applied in this order:
- the default (median) value of every weighted feature, with --defaults
- a JSON, YAML or CSV file holding exactly one sample
- name=value pairs given with --set

Feature names accept spaces, underscores or dashes ("worst area", "worst_area",
"worst-area"). Features that are never supplied are scored at zero, so combine
partial input with --defaults for a realistic estimate.

The report shows the verdict, the confidence, the malignant and benign
probabilities, a risk level (Low, Medium or High) and recommendations.

Examples:
  # Score a sample file
  tumorscore predict sample.json

  # Override two features on top of the defaults
  tumorscore predict --defaults --set worst_area=1500,worst_concave_points=0.2

  # Show how each weighted feature moved the decision value
  tumorscore predict sample.yaml --explain

  # Emit JSON for another tool
  tumorscore predict sample.csv --output json --output-file verdict.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePredict(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot run prediction", err)
		}
	},
}
