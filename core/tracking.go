package core

import (
	"time"

	"github.com/oncolens/tumorscore/internal/contract"
)

// runTracker records one ledger entry. A zero tracker does nothing.
type runTracker struct {
	store contract.RunStore
	id    int64
}

// beginRun opens a ledger entry. Ledger failures are logged and never block scoring.
func beginRun(mgr contract.RunManager, command string, params map[string]any) *runTracker {
	if mgr == nil {
		return &runTracker{}
	}
	store := mgr.GetRunStore()
	if store == nil {
		return &runTracker{}
	}
	id, _, err := store.BeginRun(command, time.Now(), params)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return &runTracker{}
	}
	return &runTracker{store: store, id: id}
}

// end closes the ledger entry with the number of samples scored.
func (rt *runTracker) end(sampleCount int) {
	if rt.store == nil || rt.id <= 0 {
		return
	}
	if err := rt.store.EndRun(rt.id, time.Now(), sampleCount); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// runParams lists the settings recorded with a run.
// Measurement values are left out; only how many pairs were given is kept.
func runParams(cfg *contract.Config) map[string]any {
	params := map[string]any{
		"defaults":    cfg.UseDefaults,
		"strict":      cfg.Strict,
		"explain":     cfg.Explain,
		"assignments": len(cfg.Assignments),
		"output":      string(cfg.Output),
		"workers":     cfg.Workers,
	}
	if cfg.InputFile != "" {
		params["input"] = cfg.InputFile
	}
	if cfg.SourceTable != "" {
		params["source_backend"] = string(cfg.SourceBackend)
		params["source_table"] = cfg.SourceTable
	}
	if cfg.Rank {
		params["rank"] = true
	}
	if cfg.Limit > 0 {
		params["limit"] = cfg.Limit
	}
	if cfg.Delay > 0 {
		params["delay"] = cfg.Delay.String()
	}
	return params
}
