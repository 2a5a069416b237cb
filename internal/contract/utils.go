package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/oncolens/tumorscore/schema"
)

// Color variables for console output.
var (
	MalignantColor = color.New(color.FgRed, color.Bold) // MalignantColor represents standard danger.
	BenignColor    = color.New(color.FgGreen, color.Bold)
	HighColor      = color.New(color.FgRed)    // HighColor marks low-confidence results.
	MediumColor    = color.New(color.FgYellow) // MediumColor represents standard caution, not bold.
	LowColor       = color.New(color.FgCyan)   // LowColor represents informational / low-priority signal.
)

// GetColorVerdict returns a colored verdict for console output (table).
func GetColorVerdict(v schema.Verdict) string {
	if v == schema.Malignant {
		return MalignantColor.Sprint(string(v))
	}
	return BenignColor.Sprint(string(v))
}

// GetColorRisk returns a colored risk level for console output (table).
func GetColorRisk(r schema.RiskLevel) string {
	switch r {
	case schema.HighRisk:
		return HighColor.Sprint(string(r))
	case schema.MediumRisk:
		return MediumColor.Sprint(string(r))
	default: // "Low"
		return LowColor.Sprint(string(r))
	}
}

// GetColorBand returns a colored range band: green for low, yellow for mid, red for high.
func GetColorBand(band string) string {
	switch band {
	case schema.BandLow:
		return color.New(color.FgGreen).Sprint(band)
	case schema.BandMid:
		return color.New(color.FgYellow).Sprint(band)
	default:
		return color.New(color.FgRed).Sprint(band)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for the run ledger.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tumorscore_runs.db"
	}
	return filepath.Join(homeDir, ".tumorscore_runs.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
