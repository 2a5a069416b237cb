package cmd

import (
	"runtime"

	"github.com/oncolens/tumorscore/schema"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tumorscore.",
	Long: `Display version information including build details and the model version.

Useful for:
- Debugging compatibility issues
- Matching recorded runs to the model that produced them`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("tumorscore CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Model:   %s\n", schema.ModelVersion)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
