//go:build basic

// Package integration contains end-to-end tests for the tumorscore binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oncolens/tumorscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noLedgerEnv() map[string]string {
	return map[string]string{"TUMORSCORE_RUN_BACKEND": "none"}
}

// TestPredictDefaultsVerification checks the default sample against its known verdict.
func TestPredictDefaultsVerification(t *testing.T) {
	out, err := runTumorscore(t, noLedgerEnv(), "predict", "--defaults", "--output", "json")
	require.NoError(t, err)

	var report schema.PredictionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, schema.Benign, report.Result.Verdict)
	assert.InDelta(t, -3.442463260990278, report.Result.Decision, 1e-9)
	assert.InDelta(t, 96.90055823692244, report.Result.Confidence, 1e-9)
	assert.Equal(t, schema.LowRisk, report.Result.RiskLevel)
}

// TestPredictEmptySampleVerification scores a sample with no measurements at all.
func TestPredictEmptySampleVerification(t *testing.T) {
	path := writeFixture(t, "empty.json", `{}`)
	out, err := runTumorscore(t, noLedgerEnv(), "predict", path, "--output", "json")
	require.NoError(t, err)

	var report schema.PredictionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.InDelta(t, -17.121868589992793, report.Result.Decision, 1e-9)
	assert.InDelta(t, 3.664940561407724e-06, report.Result.MalignantProbability, 1e-12)
}

// TestPredictStrictRejectsNegative ensures strict mode fails the command.
func TestPredictStrictRejectsNegative(t *testing.T) {
	_, err := runTumorscore(t, noLedgerEnv(), "predict", "--strict", "--set", "mean_area=-4")
	require.Error(t, err)
}

// TestBatchRankVerification ranks a CSV file and checks the order.
func TestBatchRankVerification(t *testing.T) {
	path := writeFixture(t, "samples.csv", "id,worst_area,worst_perimeter\nsmall,400,80\nlarge,3000,220\nmid,900,120\n")
	out, err := runTumorscore(t, noLedgerEnv(), "batch", path, "--defaults", "--rank", "--output", "json")
	require.NoError(t, err)

	var report schema.BatchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 3)
	assert.Equal(t, "large", report.Results[0].ID)
	assert.Equal(t, "small", report.Results[2].ID)
	assert.Equal(t, 3, report.Summary.Total)
}

// TestTextOutputVerification makes sure the table output carries the verdict.
func TestTextOutputVerification(t *testing.T) {
	out, err := runTumorscore(t, noLedgerEnv(), "predict", "--defaults", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "BENIGN")
	assert.Contains(t, out, "Recommendation")
}

// TestStaticCommandsVerification runs the read-only commands.
func TestStaticCommandsVerification(t *testing.T) {
	out, err := runTumorscore(t, nil, "features", "--output", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, schema.NumCanonicalFeatures+1)

	out, err = runTumorscore(t, nil, "model", "--output", "json")
	require.NoError(t, err)
	var info schema.ModelInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Len(t, info.Weights, schema.NumSelectedFeatures)

	out, err = runTumorscore(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, schema.ModelVersion)
}

// TestSQLiteLedgerVerification records runs in a SQLite ledger and reads them back.
func TestSQLiteLedgerVerification(t *testing.T) {
	env := map[string]string{
		"TUMORSCORE_RUN_BACKEND":    "sqlite",
		"TUMORSCORE_RUN_DB_CONNECT": filepath.Join(t.TempDir(), "runs.db"),
	}

	_, err := runTumorscore(t, env, "predict", "--defaults")
	require.NoError(t, err)
	_, err = runTumorscore(t, env, "predict", "--set", "worst_area=2500")
	require.NoError(t, err)

	out, err := runTumorscore(t, env, "history", "list", "--output", "json")
	require.NoError(t, err)
	var runs []schema.RunRecord
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "predict", runs[0].Command)
	assert.Equal(t, int32(1), runs[1].SampleCount)

	out, err = runTumorscore(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 2")

	_, err = runTumorscore(t, env, "history", "clear")
	require.NoError(t, err)
}
