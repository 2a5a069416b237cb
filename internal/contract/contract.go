// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/oncolens/tumorscore/schema"
)

// RunManager defines the interface for managing the run ledger.
// This allows the persistence layer to be mocked for testing.
type RunManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking CLI and MCP runs.
// Only run metadata is recorded. Measurements and verdicts never reach the store.
type RunStore interface {
	// BeginRun creates a new run and returns its numeric ID and UUID.
	BeginRun(command string, startTime time.Time, configParams map[string]any) (int64, string, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, sampleCount int) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns returns every recorded run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// Close closes the underlying connection.
	Close() error
}

// SampleSource yields samples to score. Implementations read files, flags or SQL tables.
type SampleSource interface {
	Load(ctx context.Context) ([]schema.Sample, error)
}
