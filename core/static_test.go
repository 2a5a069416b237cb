package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetModelInfo(t *testing.T) {
	info := GetModelInfo()
	assert.Equal(t, schema.ModelVersion, info.Version)
	assert.Equal(t, -0.1, info.Intercept)
	assert.Equal(t, schema.ModelChartTitle, info.ChartTitle)
	require.Len(t, info.Weights, schema.NumSelectedFeatures)
	require.Len(t, info.Accuracies, 6)

	first := info.Weights[0]
	assert.Equal(t, "worst concave points", first.Feature)
	assert.Equal(t, 27, first.Index)
	assert.Equal(t, -0.5, first.Coefficient)

	last := info.Weights[schema.NumSelectedFeatures-1]
	assert.Equal(t, "area error", last.Feature)
	assert.Equal(t, 13, last.Index)
	assert.Equal(t, 0.3, last.Coefficient)

	for _, w := range info.Weights {
		assert.Positive(t, w.Scale, w.Feature)
	}
}

func TestGetFeatureReport(t *testing.T) {
	report := GetFeatureReport()
	assert.Equal(t, schema.FeatureChartTitle, report.ChartTitle)
	require.Len(t, report.Importances, 10)
	require.Len(t, report.Catalog, schema.NumCanonicalFeatures)

	selected := 0
	for i, e := range report.Catalog {
		assert.Equal(t, i, e.Index)
		if e.Selected {
			selected++
			assert.NotZero(t, e.Coefficient, e.Feature)
		} else {
			assert.Zero(t, e.Coefficient, e.Feature)
		}
	}
	assert.Equal(t, schema.NumSelectedFeatures, selected)

	assert.Equal(t, "worst_concave_points", report.Catalog[27].Column)
	assert.Equal(t, 1.2, report.Catalog[23].Coefficient, "worst area")
}

func TestGetDefaultEntries(t *testing.T) {
	entries := GetDefaultEntries()
	require.Len(t, entries, schema.NumSelectedFeatures)

	byName := make(map[string]schema.DefaultEntry, len(entries))
	for _, e := range entries {
		byName[e.Feature] = e
	}
	assert.Equal(t, "551.1 mm²", byName["mean area"].Display)
	assert.Equal(t, "25.4 mm", byName["area error"].Display, "error suffix renders in mm")
	assert.Equal(t, "13.4 mm", byName["mean radius"].Display)
	assert.Equal(t, "0.093", byName["mean compactness"].Display)
	assert.Equal(t, "worst concave points", entries[0].Feature)

	for _, e := range entries {
		assert.Contains(t, []string{schema.BandLow, schema.BandMid, schema.BandHigh}, e.Band)
	}
}

func TestExecuteStaticWritesFiles(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		run  func(context.Context, *contract.Config) error
		want string
	}{
		{name: "model.json", run: ExecuteModelInfo, want: `"version": "wdbc-linear-svm-15f"`},
		{name: "features.json", run: ExecuteFeatures, want: `"column": "mean_fractal_dimension"`},
		{name: "defaults.json", run: ExecuteDefaults, want: `"display": "782.7 mm²"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Output: schema.JSONOut, OutputFile: filepath.Join(dir, tt.name), Precision: 2}
			require.NoError(t, tt.run(context.Background(), cfg))

			content, err := os.ReadFile(cfg.OutputFile)
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.want)
		})
	}
}
