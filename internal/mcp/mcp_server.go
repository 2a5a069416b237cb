// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"
)

// NewMCPServer initializes and configures the tumorscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.RunManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Tumorscore Prediction Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: predict_sample ---
	s.AddTool(mcp.NewTool("predict_sample", predictOptions()...), h.handlePredictSample)

	// --- 2. Tool: score_batch ---
	s.AddTool(mcp.NewTool("score_batch",
		mcp.WithDescription("Score every sample in a JSON, YAML or CSV measurement file."),
		mcp.WithString("path", mcp.Description("Path to the measurement file."), mcp.Required()),
		mcp.WithBoolean(argUseDefaults, mcp.Description("Fill missing weighted features with default values.")),
		mcp.WithBoolean(argStrict, mcp.Description("Reject unknown feature names, non-numeric and negative values.")),
		mcp.WithBoolean("rank", mcp.Description("Sort samples by malignant probability, highest first.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of samples returned.")),
	), h.handleScoreBatch)

	// --- 3. Tool: get_model_info ---
	s.AddTool(mcp.NewTool("get_model_info",
		mcp.WithDescription("Return the fixed model weights, scaler parameters and the model accuracy comparison."),
	), h.handleGetModelInfo)

	// --- 4. Tool: get_feature_importance ---
	s.AddTool(mcp.NewTool("get_feature_importance",
		mcp.WithDescription("Return the top 10 feature importances and the full 30-feature catalog."),
	), h.handleGetFeatureImportance)

	// --- 5. Tool: get_default_measurements ---
	s.AddTool(mcp.NewTool("get_default_measurements",
		mcp.WithDescription("Return the default (median) value of every weighted feature."),
	), h.handleGetDefaultMeasurements)

	return s
}

// predictOptions declares one numeric argument per weighted feature plus the control flags.
func predictOptions() []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Classify one tumor sample as BENIGN or MALIGNANT with confidence, risk level and recommendations. " +
			"Omitted features are scored as zero unless use_defaults is set."),
		mcp.WithBoolean(argUseDefaults, mcp.Description("Fill missing weighted features with default values.")),
		mcp.WithBoolean(argStrict, mcp.Description("Reject unknown feature names and negative values.")),
		mcp.WithBoolean(argExplain, mcp.Description("Include the per-feature contribution to the decision value.")),
	}
	for _, feature := range schema.SelectedFeatures {
		opts = append(opts, mcp.WithNumber(schema.ColumnName(feature), mcp.Description("Measured "+feature+".")))
	}
	return opts
}

// StartMCPServer starts the tumorscore MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.RunManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
