package contract

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/oncolens/tumorscore/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	MaxPrecision     = 6
	MaxResultLimit   = 10000
	MaxDelay         = 10 * time.Second
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for scoring.
// This struct is the "final, validated" config.
type Config struct {
	InputFile   string   // measurement file (json, yaml, csv)
	Assignments []string // raw "name=value" pairs from --set
	UseDefaults bool     // fill missing selected features from the defaults table
	Strict      bool     // reject unknown names and negative values instead of ignoring them
	Explain     bool     // print per-feature contributions
	Delay       time.Duration

	Workers int
	Limit   int  // batch rows to keep after ranking (0 = all)
	Rank    bool // sort batch results by malignant probability

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)

	SourceBackend   schema.DatabaseBackend
	SourceDBConnect string // Please use env var as this is plaintext
	SourceTable     string

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Precision    int    `mapstructure:"precision"`
	Width        int    `mapstructure:"width"`
	Workers      int    `mapstructure:"workers"`
	RunBackend   string `mapstructure:"run-backend"`
	RunDBConnect string `mapstructure:"run-db-connect"`
	Emoji        string `mapstructure:"emoji"`
	Color        string `mapstructure:"color"`

	// --- Fields from predictCmd / batchCmd / watchCmd flags ---
	Input       string   `mapstructure:"input"`
	Set         []string `mapstructure:"set"`
	Defaults    bool     `mapstructure:"defaults"`
	Strict      bool     `mapstructure:"strict"`
	Explain     bool     `mapstructure:"explain"`
	Delay       string   `mapstructure:"delay"`
	Limit       int      `mapstructure:"limit"`
	Rank        bool     `mapstructure:"rank"`
	SourceTable string   `mapstructure:"source-table"`

	SourceBackend   string `mapstructure:"source-backend"`
	SourceDBConnect string `mapstructure:"source-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Assignments = slices.Clone(c.Assignments)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSampleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend lowercases and validates a backend name. Empty means none.
func ParseBackend(raw string) (schema.DatabaseBackend, error) {
	if strings.TrimSpace(raw) == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// validateBackendConfigs validates run ledger and SQL source backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Run Ledger Validation ---
	backend, err := ParseBackend(input.RunBackend)
	if err != nil {
		return fmt.Errorf("run ledger: %w", err)
	}
	cfg.RunBackend = backend
	cfg.RunDBConnect = input.RunDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return err
	}

	// --- SQL Source Validation ---
	cfg.SourceTable = strings.TrimSpace(input.SourceTable)
	backend, err = ParseBackend(input.SourceBackend)
	if err != nil {
		return fmt.Errorf("sample source: %w", err)
	}
	cfg.SourceBackend = backend
	cfg.SourceDBConnect = input.SourceDBConnect
	if cfg.SourceTable == "" {
		return nil
	}
	if cfg.SourceBackend == schema.NoneBackend {
		return fmt.Errorf("--source-table requires --source-backend to be sqlite, mysql or postgresql")
	}
	if cfg.SourceBackend == schema.SQLiteBackend && cfg.SourceDBConnect == "" {
		return fmt.Errorf("--source-db-connect must name the SQLite file when reading from a table")
	}
	if !isSafeIdentifier(cfg.SourceTable) {
		return fmt.Errorf("invalid table name '%s'. only letters, digits, '_' and '.' are allowed", cfg.SourceTable)
	}
	return ValidateDatabaseConnectionString(cfg.SourceBackend, cfg.SourceDBConnect)
}

// validateSimpleInputs processes and validates all output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Explain = input.Explain
	cfg.Rank = input.Rank

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Limit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	return nil
}

// processSampleInputs handles where the measurements come from and how they are treated.
func processSampleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputFile = strings.TrimSpace(input.Input)
	if input.InputFileArg != "" {
		cfg.InputFile = input.InputFileArg
	}
	cfg.UseDefaults = input.Defaults
	cfg.Strict = input.Strict

	cfg.Assignments = nil
	for _, raw := range input.Set {
		for part := range strings.SplitSeq(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cfg.Assignments = append(cfg.Assignments, trimmed)
			}
		}
	}

	cfg.Delay = 0
	if input.Delay != "" {
		d, err := time.ParseDuration(input.Delay)
		if err != nil {
			return fmt.Errorf("invalid --delay '%s': %w", input.Delay, err)
		}
		if d < 0 || d > MaxDelay {
			return fmt.Errorf("delay must be between 0s and %s (received %s)", MaxDelay, d)
		}
		cfg.Delay = d
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// isSafeIdentifier reports whether a table name can be interpolated into SQL.
func isSafeIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
