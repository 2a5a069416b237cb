package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/oncolens/tumorscore/core"
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/internal/source"
	"github.com/oncolens/tumorscore/schema"
)

// Tool arguments that are not measurements.
const (
	argUseDefaults = "use_defaults"
	argStrict      = "strict"
	argExplain     = "explain"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.RunManager
}

func (h *toolHandler) handlePredictSample(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = ""
	cfg.Delay = 0
	cfg.UseDefaults = request.GetBool(argUseDefaults, false)
	cfg.Strict = request.GetBool(argStrict, false)
	cfg.Explain = request.GetBool(argExplain, false)

	assignments, err := measurementArgs(request.GetArguments(), cfg.Strict)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid measurements: %v", err)), nil
	}
	cfg.Assignments = assignments

	report, _, err := core.GetPredictionReport(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prediction failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputFile = request.GetString("path", "")
	cfg.SourceTable = ""
	cfg.UseDefaults = request.GetBool(argUseDefaults, false)
	cfg.Strict = request.GetBool(argStrict, false)
	cfg.Rank = request.GetBool("rank", false)
	cfg.Limit = request.GetInt("limit", 0)

	if cfg.InputFile == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	if cfg.Limit < 0 || cfg.Limit > contract.MaxResultLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 0 and %d", contract.MaxResultLimit)), nil
	}
	if cfg.Workers <= 0 {
		cfg.Workers = contract.DefaultWorkers
	}

	report, _, err := core.GetBatchResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("batch scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetModelInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(core.GetModelInfo(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFeatureImportance(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(core.GetFeatureReport(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDefaultMeasurements(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(core.GetDefaultEntries(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// measurementArgs turns numeric tool arguments into name=value pairs, sorted by name.
// Control arguments are skipped. Names are resolved by source.Normalize, so unknown names
// are dropped (or rejected when strict) and two spellings of one feature resolve the same way every call.
func measurementArgs(args map[string]any, strict bool) ([]string, error) {
	raw := make(map[string]float64, len(args))
	for name, arg := range args {
		switch name {
		case argUseDefaults, argStrict, argExplain:
			continue
		}
		switch v := arg.(type) {
		case float64:
			raw[name] = v
		case int:
			raw[name] = float64(v)
		default:
			if _, ok := schema.FeatureIndex(schema.NormalizeFeatureName(name)); !ok {
				if strict {
					return nil, fmt.Errorf("%w: %q", source.ErrUnknownFeature, name)
				}
				continue
			}
			return nil, fmt.Errorf("%s must be a number", name)
		}
	}

	m, err := source.Normalize(raw, strict)
	if err != nil {
		return nil, err
	}
	pairs := make([]string, 0, len(m))
	for _, feature := range slices.Sorted(maps.Keys(m)) {
		pairs = append(pairs, schema.ColumnName(feature)+"="+strconv.FormatFloat(m[feature], 'g', -1, 64))
	}
	return pairs, nil
}
