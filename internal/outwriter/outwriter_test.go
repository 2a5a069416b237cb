package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testConfig(t *testing.T, output schema.OutputMode, name string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     output,
		OutputFile: filepath.Join(t.TempDir(), name),
		Precision:  2,
		Width:      120,
		Workers:    2,
		RunBackend: schema.NoneBackend,
	}
}

func readOutput(t *testing.T, cfg *contract.Config) string {
	t.Helper()
	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return string(content)
}

func sampleReport() schema.PredictionReport {
	return schema.PredictionReport{
		Measurements: schema.Measurements{"mean radius": 13.4, "mean area": 551.1, "mean texture": 19.3},
		Result: schema.PredictionResult{
			Verdict:              schema.Benign,
			Confidence:           96.90055823692244,
			MalignantProbability: 3.099441763077559,
			BenignProbability:    96.90055823692244,
			RiskLevel:            schema.LowRisk,
			Recommendation:       schema.Recommendation{Icon: "✅", Lines: []string{"✅ Results suggest benign characteristics."}},
			Decision:             -3.442463260990278,
		},
		ModelVersion: schema.ModelVersion,
	}
}

func sampleBatch() schema.BatchReport {
	results := []schema.SampleResult{
		{ID: "case-a", Result: schema.PredictionResult{Verdict: schema.Malignant, Confidence: 99.5, MalignantProbability: 99.5, BenignProbability: 0.5, RiskLevel: schema.LowRisk, Decision: 5.3}},
		{ID: "case-b", Result: schema.PredictionResult{Verdict: schema.Benign, Confidence: 70, MalignantProbability: 30, BenignProbability: 70, RiskLevel: schema.MediumRisk, Decision: -0.85}},
	}
	return schema.BatchReport{Results: results, Summary: schema.Summarize(results), ModelVersion: schema.ModelVersion}
}

func TestWritePrediction(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "predict.txt")
		require.NoError(t, WritePrediction(sampleReport(), cfg, 5*time.Millisecond))

		out := readOutput(t, cfg)
		assert.Contains(t, out, "BENIGN")
		assert.Contains(t, out, "96.90%")
		assert.Contains(t, out, "3.10%")
		assert.Contains(t, out, "Recommendation:")
		assert.Contains(t, out, "benign characteristics")
		assert.Contains(t, out, "13.4 mm")
		assert.Contains(t, out, "551.1 mm²")
		assert.Contains(t, out, "Prediction completed in 5ms")
		assert.NotContains(t, out, "✅ Recommendation:", "icon is shown only with emojis")
	})

	t.Run("text explain", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "explain.txt")
		report := sampleReport()
		report.Contributions = []schema.FeatureContribution{
			{Feature: "mean radius", Raw: 13.4, Scaled: -0.21, Coefficient: 0.6, Contribution: -0.12},
			{Feature: "worst area", Raw: 782.7, Scaled: -0.17, Coefficient: 1.2, Contribution: -0.21},
		}
		require.NoError(t, WritePrediction(report, cfg, time.Millisecond))

		out := readOutput(t, cfg)
		assert.Contains(t, out, "Decision value: -3.44 (intercept -0.10)")
		assert.Less(t, strings.Index(out, "worst area"), strings.Index(out, "mean radius"), "largest contribution first")
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut, "predict.json")
		require.NoError(t, WritePrediction(sampleReport(), cfg, time.Millisecond))

		var got schema.PredictionReport
		require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &got))
		assert.Equal(t, schema.Benign, got.Result.Verdict)
		assert.InDelta(t, 96.90055823692244, got.Result.Confidence, 1e-12)
		assert.Equal(t, schema.ModelVersion, got.ModelVersion)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := testConfig(t, schema.YAMLOut, "predict.yaml")
		require.NoError(t, WritePrediction(sampleReport(), cfg, time.Millisecond))

		var got schema.PredictionReport
		require.NoError(t, yaml.Unmarshal([]byte(readOutput(t, cfg)), &got))
		assert.Equal(t, schema.LowRisk, got.Result.RiskLevel)
		assert.InDelta(t, 13.4, got.Measurements["mean radius"], 1e-12)
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "predict.csv")
		require.NoError(t, WritePrediction(sampleReport(), cfg, time.Millisecond))

		lines := strings.Split(strings.TrimSpace(readOutput(t, cfg)), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "rank,id,prediction,confidence,malignant_probability,benign_probability,risk_level,decision", lines[0])
		assert.Equal(t, "1,sample-1,BENIGN,96.90,3.10,96.90,Low,-3.44", lines[1])
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut, "predict.parquet")
		require.NoError(t, WritePrediction(sampleReport(), cfg, time.Millisecond))

		info, err := os.Stat(cfg.OutputFile)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("parquet without file", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut, "unused")
		cfg.OutputFile = ""
		err := WritePrediction(sampleReport(), cfg, time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file is required")
	})
}

func TestWriteBatch(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "batch.txt")
		require.NoError(t, WriteBatch(sampleBatch(), cfg, 10*time.Millisecond))

		out := readOutput(t, cfg)
		assert.Contains(t, out, "case-a")
		assert.Contains(t, out, "MALIGNANT")
		assert.Contains(t, out, "Medium")
		assert.Contains(t, out, "Showing 2 of 2 samples (benign: 1, malignant: 1; risk low/medium/high: 1/1/0)")
		assert.Contains(t, out, "with 2 workers. Run ledger: none")
	})

	t.Run("csv keeps order", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "batch.csv")
		require.NoError(t, WriteBatch(sampleBatch(), cfg, time.Millisecond))

		lines := strings.Split(strings.TrimSpace(readOutput(t, cfg)), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[1], "1,case-a,MALIGNANT"))
		assert.True(t, strings.HasPrefix(lines[2], "2,case-b,BENIGN"))
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, schema.JSONOut, "batch.json")
		require.NoError(t, WriteBatch(sampleBatch(), cfg, time.Millisecond))

		var got schema.BatchReport
		require.NoError(t, json.Unmarshal([]byte(readOutput(t, cfg)), &got))
		require.Len(t, got.Results, 2)
		assert.Equal(t, 1, got.Summary.Malignant)
		assert.Equal(t, "case-b", got.Results[1].ID)
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut, "batch.parquet")
		require.NoError(t, WriteBatch(sampleBatch(), cfg, time.Millisecond))

		info, err := os.Stat(cfg.OutputFile)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})
}

func TestWriteModelInfo(t *testing.T) {
	info := schema.ModelInfo{
		Version:    schema.ModelVersion,
		Intercept:  -0.1,
		Weights:    []schema.FeatureWeight{{Feature: "worst concave points", Index: 27, Coefficient: -0.5, Mean: 0.11, Scale: 0.066}},
		Accuracies: schema.ModelAccuracies(),
		ChartTitle: schema.ModelChartTitle,
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "model.txt")
		require.NoError(t, WriteModelInfo(info, cfg))

		out := readOutput(t, cfg)
		assert.Contains(t, out, schema.ModelChartTitle)
		assert.Contains(t, out, "Random Forest")
		assert.Contains(t, out, "97.37%")
		assert.Contains(t, out, "█")
		assert.Contains(t, out, "worst concave points")
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "model.csv")
		require.NoError(t, WriteModelInfo(info, cfg))
		assert.Equal(t, "order,feature,index,coefficient,mean,scale\n1,worst concave points,27,-0.50,0.11,0.07\n", readOutput(t, cfg))
	})

	t.Run("parquet unsupported", func(t *testing.T) {
		cfg := testConfig(t, schema.ParquetOut, "model.parquet")
		err := WriteModelInfo(info, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only supported by predict and batch")
	})
}

func TestWriteFeatures(t *testing.T) {
	report := schema.FeatureReport{
		ChartTitle:  schema.FeatureChartTitle,
		Importances: schema.FeatureImportances(),
		Catalog: []schema.CatalogEntry{
			{Index: 1, Feature: "mean texture", Column: "mean_texture"},
			{Index: 22, Feature: "worst perimeter", Column: "worst_perimeter", Selected: true, Coefficient: 0.8},
		},
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "features.txt")
		require.NoError(t, WriteFeatures(report, cfg))

		out := readOutput(t, cfg)
		assert.Contains(t, out, schema.FeatureChartTitle)
		assert.Contains(t, out, "16.40%")
		assert.Contains(t, out, "worst_perimeter")
		assert.Contains(t, out, "1 of 2 features carry a model weight")
	})

	t.Run("csv joins importance", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "features.csv")
		require.NoError(t, WriteFeatures(report, cfg))

		lines := strings.Split(strings.TrimSpace(readOutput(t, cfg)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "1,mean texture,mean_texture,false,0.00,", lines[1])
		assert.Equal(t, "22,worst perimeter,worst_perimeter,true,0.80,0.16", lines[2])
	})
}

func TestWriteDefaults(t *testing.T) {
	entries := []schema.DefaultEntry{
		{Feature: "mean area", Value: 551.1, Display: "551.1 mm²", Band: schema.BandLow},
		{Feature: "area error", Value: 25.4, Display: "25.4 mm", Band: schema.BandLow},
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "defaults.txt")
		require.NoError(t, WriteDefaults(entries, cfg))

		out := readOutput(t, cfg)
		assert.Contains(t, out, "551.1 mm²")
		assert.Contains(t, out, "25.4 mm")
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := testConfig(t, schema.YAMLOut, "defaults.yaml")
		require.NoError(t, WriteDefaults(entries, cfg))

		var got []schema.DefaultEntry
		require.NoError(t, yaml.Unmarshal([]byte(readOutput(t, cfg)), &got))
		assert.Equal(t, entries, got)
	})
}

func TestWriteRunHistory(t *testing.T) {
	duration := int32(1500)
	params := `{"strict":false}`
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	runs := []schema.RunRecord{
		{RunID: 1, RunUUID: "u-1", Command: "predict", StartTime: start, EndTime: &end, RunDurationMs: &duration, SampleCount: 1, ModelVersion: schema.ModelVersion, ConfigParams: &params},
		{RunID: 2, RunUUID: "u-2", Command: "batch", StartTime: start, SampleCount: 0, ModelVersion: schema.ModelVersion},
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "runs.txt")
		require.NoError(t, WriteRunHistory(runs, cfg))

		out := readOutput(t, cfg)
		assert.Contains(t, out, "predict")
		assert.Contains(t, out, "1.5s")
		assert.Contains(t, out, "Showing 2 runs from none ledger")
	})

	t.Run("empty", func(t *testing.T) {
		cfg := testConfig(t, schema.TextOut, "empty.txt")
		require.NoError(t, WriteRunHistory(nil, cfg))
		assert.Equal(t, "No runs recorded.\n", readOutput(t, cfg))
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig(t, schema.CSVOut, "runs.csv")
		require.NoError(t, WriteRunHistory(runs, cfg))

		lines := strings.Split(strings.TrimSpace(readOutput(t, cfg)), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[1], "1500")
		assert.True(t, strings.HasSuffix(lines[2], ",0,"+schema.ModelVersion+","), lines[2])
	})
}

func TestFormatRunDuration(t *testing.T) {
	ms := int32(250)
	assert.Equal(t, "250ms", formatRunDuration(&ms))
	assert.Equal(t, "-", formatRunDuration(nil))
}
