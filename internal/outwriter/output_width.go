package outwriter

import (
	"os"

	"github.com/oncolens/tumorscore/internal/contract"
	"golang.org/x/term"
)

// getTermWidth returns the --width override, the detected terminal width, or 80.
func getTermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// GetMaxTableIDWidth calculates the maximum width for sample IDs in the batch table
// based on terminal width and table configuration.
func GetMaxTableIDWidth(cfg *contract.Config) int {
	// Rank + Prediction + Confidence + Malignant + Risk with borders/padding
	baseWidth := 70

	available := getTermWidth(cfg) - baseWidth
	if available < 15 {
		return 15
	}
	if available > 40 {
		return 40
	}
	return available
}

// GetMaxBarWidth calculates the width of chart bars so a chart row fits the terminal.
func GetMaxBarWidth(cfg *contract.Config) int {
	// Label + value columns with borders/padding
	baseWidth := 45

	available := getTermWidth(cfg) - baseWidth
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}
