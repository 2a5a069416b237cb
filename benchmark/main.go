// Package main provides a performance benchmarking tool for the tumorscore CLI.
// It generates synthetic measurement files of several sizes, scores each one
// with the batch command at several worker counts, running each test multiple times,
// treating the first successful run as cold and averaging the rest as warm,
// and writes CSV output for performance analysis and documentation.
//
// Prerequisites:
// - tumorscore binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic sample files are written
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/oncolens/tumorscore/schema"
)

// BenchmarkResult holds the result of a benchmark run (no-ledger average, cold run and average of warm runs).
type BenchmarkResult struct {
	Samples      int
	Workers      int
	NoLedgerTime string
	ColdTime     string
	WarmTime     string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	Timeout      time.Duration
	WorkerCounts []int
	NoLedgerRuns int
	LedgerRuns   int
	SampleSizes  []int
	Seed         uint64
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:      os.Args[1],
		Timeout:      5 * time.Minute,
		WorkerCounts: []int{1, 4, 14},
		NoLedgerRuns: 3,
		LedgerRuns:   4,
		SampleSizes:  []int{1000, 10000, 100000},
		Seed:         569,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty ledger so the cold run creates it
	ledgerPath := filepath.Join(config.WorkDir, "benchmark_runs.db")
	fmt.Printf("Clearing run ledger...\n")
	clearCmd := exec.Command("tumorscore", "history", "clear", "--run-db-connect", ledgerPath)
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run ledger: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run ledger cleared successfully\n")
	}

	results := runBenchmarks(config, ledgerPath)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the tumorscore binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("tumorscore"); err != nil {
		return fmt.Errorf("tumorscore binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// generateSamples writes n synthetic samples around the default measurements.
// Every value is scaled by a random factor in [0.5, 2.0), so the file mixes both verdicts.
func generateSamples(path string, n int, seed uint64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	defaults := schema.DefaultMeasurements()
	header := []string{"id"}
	for _, feature := range schema.SelectedFeatures {
		header = append(header, schema.ColumnName(feature))
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	rng := rand.New(rand.NewPCG(seed, uint64(n)))
	record := make([]string, len(header))
	for i := range n {
		record[0] = fmt.Sprintf("sample-%d", i+1)
		for j, feature := range schema.SelectedFeatures {
			v := defaults[feature] * (0.5 + 1.5*rng.Float64())
			record[j+1] = strconv.FormatFloat(v, 'f', 4, 64)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarks executes all benchmark tests across sample sizes and worker counts
func runBenchmarks(config BenchmarkConfig, ledgerPath string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, workers %v, no-ledger: %d runs, ledger: %d runs\n",
		len(config.SampleSizes), config.Timeout, config.WorkerCounts, config.NoLedgerRuns, config.LedgerRuns)

	for _, n := range config.SampleSizes {
		samplePath := filepath.Join(config.WorkDir, fmt.Sprintf("samples_%d.csv", n))
		fmt.Printf("Generating %d samples at %s\n", n, samplePath)
		if err := generateSamples(samplePath, n, config.Seed); err != nil {
			fmt.Printf("Warning: failed to generate samples: %v\n", err)
			continue
		}

		for _, workers := range config.WorkerCounts {
			results = append(results, runBenchmarkSuite(config, samplePath, ledgerPath, n, workers))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-ledger and ledger benchmarks for one file and worker count
func runBenchmarkSuite(config BenchmarkConfig, samplePath, ledgerPath string, n, workers int) BenchmarkResult {
	fmt.Printf("Scoring %d samples with %d workers\n", n, workers)

	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, samplePath, backend, ledgerPath, workers, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: ledger disabled
	_, noLedgerAvg := runPhase("none", config.NoLedgerRuns, "No-ledger")

	// Phase 2: SQLite ledger
	coldTime, warmAvg := runPhase("sqlite", config.LedgerRuns, "Ledger")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-ledger average: %s, Cold time: %s, Warm average: %s\n", noLedgerAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Samples:      n,
		Workers:      workers,
		NoLedgerTime: noLedgerAvg,
		ColdTime:     coldTimeStr,
		WarmTime:     warmAvg,
	}
}

// runBenchmark executes the batch command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, samplePath, backend, ledgerPath string, workers, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"batch", samplePath,
		"--rank", "--limit", "10",
		"--workers", strconv.Itoa(workers),
		"--run-backend", backend,
		"--run-db-connect", ledgerPath,
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("tumorscore", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Scoring completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("tumorscore_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"samples", "workers", "no_ledger_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{strconv.Itoa(result.Samples), strconv.Itoa(result.Workers), result.NoLedgerTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %7d samples, %2d workers: No-ledger: %s, Cold: %s, Warm: %s\n",
			result.Samples, result.Workers, result.NoLedgerTime, result.ColdTime, result.WarmTime)
	}
}
