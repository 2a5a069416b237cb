// Package outwriter renders predictions, batches, static model reports and run history
// as text tables, JSON, YAML, CSV or Parquet.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"
)

// WritePrediction prints a single prediction using the configured output format.
func WritePrediction(report schema.PredictionReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, report)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionCSV(w, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		results := []schema.SampleResult{{ID: "sample-1", Measurements: report.Measurements, Result: report.Result}}
		return writeSampleParquet(cfg.OutputFile, results, report.ModelVersion)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionText(w, report, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// WriteBatch prints scored batch results using the configured output format.
func WriteBatch(report schema.BatchReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, report)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchCSV(w, report.Results, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeSampleParquet(cfg.OutputFile, report.Results, report.ModelVersion)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchTable(w, report, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

// WriteModelInfo prints the model parameters and accuracy chart.
func WriteModelInfo(info schema.ModelInfo, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return writeStatic(cfg, info, func(w io.Writer) error {
		return writeModelCSV(w, info, fmtFloat)
	}, func(w io.Writer) error {
		return writeModelText(w, info, cfg, fmtFloat)
	})
}

// WriteFeatures prints the feature importance chart and catalog.
func WriteFeatures(report schema.FeatureReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return writeStatic(cfg, report, func(w io.Writer) error {
		return writeFeaturesCSV(w, report, fmtFloat)
	}, func(w io.Writer) error {
		return writeFeaturesText(w, report, cfg, fmtFloat)
	})
}

// WriteDefaults prints the default measurement values.
func WriteDefaults(entries []schema.DefaultEntry, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return writeStatic(cfg, entries, func(w io.Writer) error {
		return writeDefaultsCSV(w, entries, fmtFloat)
	}, func(w io.Writer) error {
		return writeDefaultsText(w, entries, cfg)
	})
}

// WriteRunHistory prints recorded ledger runs, newest last.
func WriteRunHistory(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeStatic(cfg, runs, func(w io.Writer) error {
		return writeRunsCSV(w, runs)
	}, func(w io.Writer) error {
		return writeRunsTable(w, runs, cfg)
	})
}

// writeStatic dispatches the formats shared by reports that have no Parquet form.
func writeStatic(cfg *contract.Config, data any, csvFn, textFn func(io.Writer) error) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, data)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, data)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, csvFn, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by predict and batch")
	default:
		return writeWithFile(cfg.OutputFile, textFn, "Wrote table")
	}
}
