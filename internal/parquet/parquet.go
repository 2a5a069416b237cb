// Package parquet provides row types and writers for exporting tumorscore
// batch results and run-ledger history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oncolens/tumorscore/schema"
	"github.com/parquet-go/parquet-go"
)

// SampleResultRow is one scored sample from a batch run.
type SampleResultRow struct {
	// Rank is the 1-based position in the written output
	Rank int32 `parquet:"rank,snappy"`

	// SampleID identifies the sample within its source
	SampleID string `parquet:"sample_id,snappy"`

	// Prediction is BENIGN or MALIGNANT
	Prediction string `parquet:"prediction,snappy"`

	Confidence           float64 `parquet:"confidence,snappy"`
	MalignantProbability float64 `parquet:"malignant_probability,snappy"`
	BenignProbability    float64 `parquet:"benign_probability,snappy"`

	// RiskLevel is Low, Medium or High
	RiskLevel string `parquet:"risk_level,snappy"`

	// Decision is the raw linear decision value before the sigmoid
	Decision float64 `parquet:"decision,snappy"`

	// Measurements holds the JSON-encoded input measurements (nullable)
	Measurements *string `parquet:"measurements,optional,snappy"`

	ModelVersion string `parquet:"model_version,snappy"`
}

// RunRow represents a single run-ledger entry.
// This struct maps to the tumorscore_runs database table.
type RunRow struct {
	// RunID is the store-assigned identifier
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique run identifier
	RunUUID string `parquet:"run_uuid,snappy"`

	// Command is the CLI or MCP operation that produced the run
	Command string `parquet:"command,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// SampleCount is the number of samples scored
	SampleCount int32 `parquet:"sample_count,snappy"`

	ModelVersion string `parquet:"model_version,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// WriteSampleResults writes batch rows to w.
func WriteSampleResults(w io.Writer, rows []SampleResultRow) error {
	return writeRows(w, rows)
}

// WriteRuns writes run-ledger rows to w.
func WriteRuns(w io.Writer, rows []RunRow) error {
	return writeRows(w, rows)
}

// WriteRunsParquet writes run-ledger rows to a new file at outputPath.
func WriteRunsParquet(rows []RunRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteRuns(file, rows)
}

// writeRows infers the schema from the row type's struct tags.
func writeRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertSampleResults converts batch results to rows, ranked in the given order.
func ConvertSampleResults(results []schema.SampleResult, modelVersion string) []SampleResultRow {
	rows := make([]SampleResultRow, len(results))
	for i, r := range results {
		var measurements *string
		if len(r.Measurements) > 0 {
			if b, err := json.Marshal(r.Measurements); err == nil {
				s := string(b)
				measurements = &s
			}
		}
		rows[i] = SampleResultRow{
			Rank:                 int32(i + 1),
			SampleID:             r.ID,
			Prediction:           string(r.Result.Verdict),
			Confidence:           r.Result.Confidence,
			MalignantProbability: r.Result.MalignantProbability,
			BenignProbability:    r.Result.BenignProbability,
			RiskLevel:            string(r.Result.RiskLevel),
			Decision:             r.Result.Decision,
			Measurements:         measurements,
			ModelVersion:         modelVersion,
		}
	}
	return rows
}

// ConvertRunRecords converts schema.RunRecord to RunRow for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RunRow {
	result := make([]RunRow, len(records))
	for i, record := range records {
		result[i] = RunRow{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			Command:       record.Command,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			SampleCount:   record.SampleCount,
			ModelVersion:  record.ModelVersion,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}
