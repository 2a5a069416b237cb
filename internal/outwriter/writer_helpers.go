package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/internal/parquet"
	"github.com/oncolens/tumorscore/schema"
	"gopkg.in/yaml.v3"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeYAML is the YAML counterpart of writeJSON.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// writeSampleParquet writes scored samples to a Parquet file.
func writeSampleParquet(outputFile string, results []schema.SampleResult, modelVersion string) error {
	if outputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}
	rows := parquet.ConvertSampleResults(results, modelVersion)
	return writeWithFile(outputFile, func(w io.Writer) error {
		return parquet.WriteSampleResults(w, rows)
	}, fmt.Sprintf("Wrote %d Parquet rows", len(rows)))
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// verdictLabel returns the verdict, colored when colors are enabled.
func verdictLabel(v schema.Verdict, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorVerdict(v)
	}
	return string(v)
}

// riskLabel returns the risk level, colored when colors are enabled.
func riskLabel(r schema.RiskLevel, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorRisk(r)
	}
	return string(r)
}

// bandLabel returns the range band, colored when colors are enabled.
func bandLabel(band string, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorBand(band)
	}
	return band
}

// renderBar draws a horizontal bar of up to width cells for value out of maxValue.
func renderBar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	cells := min(int(value/maxValue*float64(width)+0.5), width)
	return strings.Repeat("█", cells)
}
