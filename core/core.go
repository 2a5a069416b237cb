// Package core orchestrates scoring runs: it gathers measurements, scores them with
// the fixed model, records run metadata and hands results to the output writers.
package core

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/oncolens/tumorscore/core/algo"
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/internal/outwriter"
	"github.com/oncolens/tumorscore/internal/source"
	"github.com/oncolens/tumorscore/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error

// ExecutePredict scores a single sample and writes the report.
// It serves as the main entry point for the 'predict' command.
func ExecutePredict(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	report, duration, err := GetPredictionReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WritePrediction(report, cfg, duration)
}

// ExecuteBatch scores every sample from a file or SQL table and writes the results.
// It serves as the main entry point for the 'batch' command.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	report, duration, err := GetBatchResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteBatch(report, cfg, duration)
}

// GetPredictionReport gathers measurements from defaults, the input file and --set pairs
// (later sources win), waits for the optional delay and scores the sample.
func GetPredictionReport(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (schema.PredictionReport, time.Duration, error) {
	start := time.Now()

	m, err := gatherMeasurements(cfg)
	if err != nil {
		return schema.PredictionReport{}, 0, err
	}

	run := beginRun(mgr, "predict", runParams(cfg))
	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		logPredictHeader(cfg, m)
	}

	if err := waitDelay(ctx, cfg.Delay); err != nil {
		run.end(0)
		return schema.PredictionReport{}, 0, err
	}

	report := BuildReport(m, cfg.Explain)
	run.end(1)
	return report, time.Since(start), nil
}

// GetBatchResults loads and scores a batch, optionally ranked by malignant probability.
func GetBatchResults(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (schema.BatchReport, time.Duration, error) {
	start := time.Now()

	src, err := source.FromConfig(cfg)
	if err != nil {
		return schema.BatchReport{}, 0, err
	}
	samples, err := src.Load(ctx)
	if err != nil {
		return schema.BatchReport{}, 0, fmt.Errorf("failed to load samples: %w", err)
	}
	if cfg.UseDefaults {
		for i := range samples {
			samples[i].Measurements = source.MergeDefaults(samples[i].Measurements)
		}
	}

	run := beginRun(mgr, "batch", runParams(cfg))
	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		logBatchHeader(cfg, len(samples))
	}

	results := scoreSamples(ctx, cfg.Workers, samples)
	if err := ctx.Err(); err != nil {
		run.end(0)
		return schema.BatchReport{}, 0, err
	}
	run.end(len(results))

	report := schema.BatchReport{
		Summary:      schema.Summarize(results),
		ModelVersion: schema.ModelVersion,
	}
	switch {
	case cfg.Rank:
		report.Results = algo.RankSamples(results, cfg.Limit)
	case cfg.Limit > 0 && cfg.Limit < len(results):
		report.Results = results[:cfg.Limit]
	default:
		report.Results = results
	}
	return report, time.Since(start), nil
}

// BuildReport scores m with the fixed model.
func BuildReport(m schema.Measurements, explain bool) schema.PredictionReport {
	model := schema.DefaultModel()
	report := schema.PredictionReport{
		Measurements: m,
		Result:       algo.Predict(model, m),
		ModelVersion: schema.ModelVersion,
	}
	if explain {
		report.Contributions = algo.Contributions(model, m)
	}
	return report
}

// gatherMeasurements merges the configured measurement sources.
func gatherMeasurements(cfg *contract.Config) (schema.Measurements, error) {
	m := schema.Measurements{}
	if cfg.UseDefaults {
		m = schema.DefaultMeasurements()
	}

	if cfg.InputFile != "" {
		samples, err := source.LoadFile(cfg.InputFile, cfg.Strict)
		if err != nil {
			return nil, err
		}
		if len(samples) != 1 {
			return nil, fmt.Errorf("%s holds %d samples; use the batch command for more than one", cfg.InputFile, len(samples))
		}
		maps.Copy(m, samples[0].Measurements)
	}

	if len(cfg.Assignments) > 0 {
		assigned, err := source.ParseAssignments(cfg.Assignments, cfg.Strict)
		if err != nil {
			return nil, err
		}
		maps.Copy(m, assigned)
	}
	return m, nil
}

// waitDelay blocks for d unless ctx is cancelled first.
func waitDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("prediction cancelled"), ctx.Err())
	}
}
