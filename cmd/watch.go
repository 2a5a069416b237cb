package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/oncolens/tumorscore/core"
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/spf13/cobra"
)

// watchCmd re-scores a sample file whenever it changes.
var watchCmd = &cobra.Command{
	Use:   "watch [input-file]",
	Short: "Re-score a sample file every time it is saved.",
	Long: `Score a one-sample measurement file, then keep watching it and print a new
report each time the file is written. Stop with Ctrl+C.

The --set, --defaults, --strict and --explain flags apply to every re-score.
A save that leaves the file unreadable is reported as a warning and skipped.

Examples:
  # Follow edits to a sample
  tumorscore watch sample.yaml --defaults

  # Keep only the latest verdict on disk
  tumorscore watch sample.json --output json --output-file latest.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := core.ExecuteWatch(ctx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot watch sample", err)
		}
	},
}
