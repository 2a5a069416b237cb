package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the run ledger and SQL sources.
	DatabaseBackend string

	// Verdict is the binary classification of a sample.
	Verdict string

	// RiskLevel is the coarse bucket derived from confidence.
	RiskLevel string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Verdicts produced by the scoring pipeline.
const (
	Benign    Verdict = "BENIGN"
	Malignant Verdict = "MALIGNANT"
)

// Risk levels. Low means the model is confident, not that the tumor is harmless.
const (
	LowRisk    RiskLevel = "Low"
	MediumRisk RiskLevel = "Medium"
	HighRisk   RiskLevel = "High"
)

// Fixed decision boundaries.
const (
	MalignantThreshold   = 0.5  // p strictly above this is MALIGNANT
	HighConfidenceCutoff = 80.0 // confidence at or above this is Low risk
	MidConfidenceCutoff  = 60.0 // confidence at or above this is Medium risk
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
