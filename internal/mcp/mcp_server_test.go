package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/oncolens/tumorscore/internal/contract"
	mcp_internal "github.com/oncolens/tumorscore/internal/mcp"
	"github.com/oncolens/tumorscore/internal/runlog"
	"github.com/oncolens/tumorscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, cfg *contract.Config, mgr contract.RunManager, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(cfg, mgr)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func noLedger() *runlog.MockRunManager {
	mgr := &runlog.MockRunManager{}
	mgr.On("GetRunStore").Return(nil)
	return mgr
}

func TestPredictSample(t *testing.T) {
	baseCfg := &contract.Config{Workers: 1, Precision: 2}

	t.Run("defaults", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "predict_sample", map[string]any{"use_defaults": true})
		require.False(t, res.IsError, resultText(res))

		var report schema.PredictionReport
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &report))
		assert.Equal(t, schema.Benign, report.Result.Verdict)
		assert.InDelta(t, 96.90055823692244, report.Result.Confidence, 1e-9)
		assert.Empty(t, report.Contributions)
	})

	t.Run("explicit values override defaults", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "predict_sample", map[string]any{
			"use_defaults":    true,
			"explain":         true,
			"worst_area":      4000.0,
			"worst_perimeter": 250.0,
			"worst_radius":    35.0,
		})
		require.False(t, res.IsError, resultText(res))

		var report schema.PredictionReport
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &report))
		assert.Equal(t, 4000.0, report.Measurements["worst area"])
		assert.Equal(t, schema.Malignant, report.Result.Verdict)
		assert.Len(t, report.Contributions, schema.NumSelectedFeatures)
	})

	t.Run("empty sample", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "predict_sample", map[string]any{})
		require.False(t, res.IsError)

		var report schema.PredictionReport
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &report))
		assert.InDelta(t, -17.121868589992793, report.Result.Decision, 1e-9)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "predict_sample", map[string]any{"mean_radius": "large"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "mean_radius must be a number")
	})

	t.Run("strict rejects unknown names", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "predict_sample", map[string]any{"strict": true, "tumor_color": 2.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), `unknown feature: "tumor_color"`)
	})

	t.Run("strict rejects negatives", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "predict_sample", map[string]any{"strict": true, "mean_area": -1.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "out of range")
	})

	t.Run("two spellings of one feature resolve the same way every call", func(t *testing.T) {
		args := map[string]any{"mean radius": 1.0, "mean_radius": 20.0, "Mean-Radius": 7.0}
		for range 50 {
			res := callTool(t, baseCfg, noLedger(), "predict_sample", args)
			require.False(t, res.IsError, resultText(res))

			var report schema.PredictionReport
			require.NoError(t, json.Unmarshal([]byte(resultText(res)), &report))
			require.Equal(t, 1.0, report.Measurements["mean radius"])
		}
	})

	t.Run("strict rejects two spellings of one feature", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "predict_sample", map[string]any{
			"strict": true, "mean radius": 1.0, "mean_radius": 20.0,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "name the same feature")
	})

	t.Run("records a run", func(t *testing.T) {
		store := &runlog.MockRunStore{}
		store.On("BeginRun", "predict", mock.Anything, mock.Anything).Return(int64(1), "u", nil)
		store.On("EndRun", int64(1), mock.Anything, 1).Return(nil)
		mgr := &runlog.MockRunManager{}
		mgr.On("GetRunStore").Return(store)

		res := callTool(t, baseCfg, mgr, "predict_sample", map[string]any{"mean_radius": 14.0})
		require.False(t, res.IsError)
		store.AssertExpectations(t)
	})
}

func TestScoreBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,worst_area\nlow,400\nhigh,3000\n"), 0o644))
	baseCfg := &contract.Config{Workers: 2, Precision: 2}

	t.Run("ranked", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "score_batch", map[string]any{"path": path, "rank": true, "limit": 1.0})
		require.False(t, res.IsError, resultText(res))

		var report schema.BatchReport
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &report))
		require.Len(t, report.Results, 1)
		assert.Equal(t, "high", report.Results[0].ID)
		assert.Equal(t, 2, report.Summary.Total)
	})

	t.Run("missing path", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "score_batch", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "path is required")
	})

	t.Run("negative limit", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "score_batch", map[string]any{"path": path, "limit": -3.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "limit must be between")
	})

	t.Run("unreadable file", func(t *testing.T) {
		res := callTool(t, baseCfg, noLedger(), "score_batch", map[string]any{"path": filepath.Join(t.TempDir(), "nope.csv")})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "batch scoring failed")
	})
}

func TestStaticTools(t *testing.T) {
	baseCfg := &contract.Config{}

	t.Run("get_model_info", func(t *testing.T) {
		res := callTool(t, baseCfg, nil, "get_model_info", nil)
		var info schema.ModelInfo
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &info))
		assert.Equal(t, schema.ModelVersion, info.Version)
		assert.Len(t, info.Weights, schema.NumSelectedFeatures)
		assert.Equal(t, "SVM", info.Accuracies[0].Model)
	})

	t.Run("get_feature_importance", func(t *testing.T) {
		res := callTool(t, baseCfg, nil, "get_feature_importance", nil)
		var report schema.FeatureReport
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &report))
		assert.Equal(t, "Worst Perimeter", report.Importances[0].Feature)
		assert.Len(t, report.Catalog, schema.NumCanonicalFeatures)
	})

	t.Run("get_default_measurements", func(t *testing.T) {
		res := callTool(t, baseCfg, nil, "get_default_measurements", nil)
		var entries []schema.DefaultEntry
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &entries))
		assert.Len(t, entries, schema.NumSelectedFeatures)
	})
}

func TestPredictSampleDeclaresFeatureArguments(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil)
	tool := s.GetTool("predict_sample")
	require.NotNil(t, tool)

	for _, feature := range schema.SelectedFeatures {
		assert.Contains(t, tool.Tool.InputSchema.Properties, schema.ColumnName(feature))
	}
	assert.Contains(t, tool.Tool.InputSchema.Properties, "use_defaults")
}
