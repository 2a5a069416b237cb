package schema

import "time"

// RunRecord represents a row from the tumorscore_runs table.
// It holds run metadata only; measurements and verdicts are never stored.
type RunRecord struct {
	RunID         int64      `json:"run_id" yaml:"run_id"`
	RunUUID       string     `json:"run_uuid" yaml:"run_uuid"`
	Command       string     `json:"command" yaml:"command"`
	StartTime     time.Time  `json:"start_time" yaml:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	RunDurationMs *int32     `json:"run_duration_ms,omitempty" yaml:"run_duration_ms,omitempty"`
	SampleCount   int32      `json:"sample_count" yaml:"sample_count"`
	ModelVersion  string     `json:"model_version" yaml:"model_version"`
	ConfigParams  *string    `json:"config_params,omitempty" yaml:"config_params,omitempty"`
}

// RunStatus represents the status of the run ledger.
type RunStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunUUID   string           `json:"last_run_uuid"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalSamples  int              `json:"total_samples"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
