package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLSource reads samples from a table whose columns are snake_case feature names
// plus an optional "id" column.
type SQLSource struct {
	Backend schema.DatabaseBackend
	ConnStr string
	Table   string
	Strict  bool
}

var _ contract.SampleSource = &SQLSource{} // Compile-time check

// DriverName maps a backend onto its database/sql driver name.
func DriverName(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// Load queries every row of the table.
func (ss *SQLSource) Load(ctx context.Context) ([]schema.Sample, error) {
	driverName, err := DriverName(ss.Backend)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, ss.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", ss.Backend, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", ss.Backend, err)
	}

	// Table name is validated as a plain identifier during config processing.
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", ss.Table))
	if err != nil {
		return nil, fmt.Errorf("failed to query samples from %s: %w", ss.Table, err)
	}
	defer func() { _ = rows.Close() }()

	return ScanSamples(rows, ss.Strict)
}

// rowScanner is the subset of *sql.Rows used by ScanSamples.
type rowScanner interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// ScanSamples converts query rows into samples. NULL cells are treated as missing.
func ScanSamples(rows rowScanner, strict bool) ([]schema.Sample, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var samples []schema.Sample
	for row := 0; rows.Next(); row++ {
		cells := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", row+1, err)
		}

		raw := make(map[string]float64, len(columns))
		var id string
		for i, col := range columns {
			if cells[i] == nil {
				continue
			}
			if schema.NormalizeFeatureName(col) == idKey {
				id = cellText(cells[i])
				continue
			}
			v, err := cellFloat(col, cells[i], strict)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row+1, err)
			}
			raw[col] = v
		}
		m, err := Normalize(raw, strict)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		samples = append(samples, schema.Sample{ID: sampleID(id, row), Measurements: m})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

// cellFloat converts a driver value into a float.
func cellFloat(col string, cell any, strict bool) (float64, error) {
	switch v := cell.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case []byte:
		return parseValue(col, string(v), strict)
	case string:
		return parseValue(col, v, strict)
	default:
		return parseValue(col, fmt.Sprint(v), strict)
	}
}

// cellText converts a driver value into an identifier string.
func cellText(cell any) string {
	switch v := cell.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
