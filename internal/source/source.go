// Package source reads measurement samples from command-line pairs, files and SQL tables.
package source

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"
)

// Sentinel errors returned in strict mode. Match them with errors.Is.
var (
	ErrUnknownFeature     = errors.New("unknown feature")
	ErrInvalidMeasurement = errors.New("invalid measurement")
	ErrOutOfRange         = errors.New("measurement out of range")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrNoSamples          = errors.New("no samples found")
)

// idKey is the reserved column/key that carries a sample identifier.
const idKey = "id"

// Normalize maps raw names onto catalog names.
// Without strict, names outside the catalog are dropped, NaN becomes zero and infinities
// are clamped to the largest finite magnitudes, which saturate the score the same way.
// With strict, all three are errors, as are negative values.
//
// Two spellings of one feature are an error with strict. Otherwise the catalog spelling
// wins, then the first name in sorted order, so the result never depends on map order.
func Normalize(raw map[string]float64, strict bool) (schema.Measurements, error) {
	out := make(schema.Measurements, len(raw))
	from := make(map[string]string, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		value := raw[name]
		feature := schema.NormalizeFeatureName(name)
		if _, ok := schema.FeatureIndex(feature); !ok {
			if strict {
				return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
			}
			continue
		}
		if prev, dup := from[feature]; dup {
			if strict {
				return nil, fmt.Errorf("%w: %q and %q name the same feature", ErrInvalidMeasurement, prev, name)
			}
			if prev == feature || name != feature {
				continue
			}
		}
		switch {
		case math.IsNaN(value) || math.IsInf(value, 0):
			if strict {
				return nil, fmt.Errorf("%w: %q is not a finite number", ErrInvalidMeasurement, name)
			}
			if math.IsNaN(value) {
				value = 0
			} else {
				value = math.Copysign(math.MaxFloat64, value)
			}
		case strict && value < 0:
			return nil, fmt.Errorf("%w: %q is negative (%v)", ErrOutOfRange, name, value)
		}
		from[feature] = name
		out[feature] = value
	}
	return out, nil
}

// MergeDefaults fills every selected feature missing from m with its default value.
// Values already present win.
func MergeDefaults(m schema.Measurements) schema.Measurements {
	out := schema.DefaultMeasurements()
	for k, v := range m {
		out[k] = v
	}
	return out
}

// parseValue parses a numeric cell. Without strict, garbage becomes zero.
func parseValue(name, raw string, strict bool) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		if strict {
			return 0, fmt.Errorf("%w: %q=%q", ErrInvalidMeasurement, name, raw)
		}
		return 0, nil
	}
	return v, nil
}

// sampleID returns the given id or a positional fallback.
func sampleID(id string, index int) string {
	if strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id)
	}
	return fmt.Sprintf("sample-%d", index+1)
}

// FromConfig picks the batch source described by the configuration.
// A SQL table wins over a file.
func FromConfig(cfg *contract.Config) (contract.SampleSource, error) {
	switch {
	case cfg.SourceTable != "":
		return &SQLSource{
			Backend: cfg.SourceBackend,
			ConnStr: cfg.SourceDBConnect,
			Table:   cfg.SourceTable,
			Strict:  cfg.Strict,
		}, nil
	case cfg.InputFile != "":
		return &FileSource{Path: cfg.InputFile, Strict: cfg.Strict}, nil
	default:
		return nil, errors.New("a measurement file or --source-table is required")
	}
}
