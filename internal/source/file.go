package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/schema"
	"gopkg.in/yaml.v3"
)

// FileSource reads samples from a .json, .yaml/.yml or .csv file.
type FileSource struct {
	Path   string
	Strict bool
}

var _ contract.SampleSource = &FileSource{} // Compile-time check

// Load reads and parses the file.
func (fs *FileSource) Load(_ context.Context) ([]schema.Sample, error) {
	return LoadFile(fs.Path, fs.Strict)
}

// LoadFile dispatches on the file extension.
func LoadFile(path string, strict bool) ([]schema.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open measurement file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var samples []schema.Sample
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		samples, err = ParseJSON(f, strict)
	case ".yaml", ".yml":
		samples, err = ParseYAML(f, strict)
	case ".csv":
		samples, err = ParseCSV(f, strict)
	default:
		return nil, fmt.Errorf("%w: %q (expected .json, .yaml, .yml or .csv)", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// ParseJSON reads one sample object or an array of them, validated against the measurement schema.
func ParseJSON(r io.Reader, strict bool) ([]schema.Sample, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidMeasurement, err)
	}
	return samplesFromDocument(doc, strict)
}

// ParseYAML reads the same shapes as ParseJSON from YAML.
func ParseYAML(r io.Reader, strict bool) ([]schema.Sample, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrNoSamples
		}
		return nil, fmt.Errorf("%w: invalid YAML: %v", ErrInvalidMeasurement, err)
	}
	return samplesFromDocument(toJSONValue(doc), strict)
}

// samplesFromDocument validates a decoded document and converts it into samples.
func samplesFromDocument(doc any, strict bool) ([]schema.Sample, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var objects []map[string]any
	switch v := doc.(type) {
	case map[string]any:
		objects = append(objects, v)
	case []any:
		for _, item := range v {
			obj, _ := item.(map[string]any) // shape already guaranteed by the schema
			objects = append(objects, obj)
		}
	}

	samples := make([]schema.Sample, 0, len(objects))
	for i, obj := range objects {
		raw := make(map[string]float64, len(obj))
		var id string
		for key, value := range obj {
			if key == idKey {
				id = formatID(value)
				continue
			}
			n, _ := value.(float64)
			raw[key] = n
		}
		m, err := Normalize(raw, strict)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}
		samples = append(samples, schema.Sample{ID: sampleID(id, i), Measurements: m})
	}
	return samples, nil
}

// ParseCSV reads a header row of feature names followed by one sample per row.
// An optional "id" column names each sample. Empty cells are treated as missing.
func ParseCSV(r io.Reader, strict bool) ([]schema.Sample, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoSamples
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idCol := -1
	features := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, col := range header {
		name := schema.NormalizeFeatureName(col)
		if name == idKey {
			idCol = i
			continue
		}
		if _, ok := schema.FeatureIndex(name); !ok {
			if strict {
				return nil, fmt.Errorf("%w: column %q", ErrUnknownFeature, col)
			}
			continue
		}
		// Duplicate spellings: the catalog spelling wins, then the leftmost column.
		if prev, dup := seen[name]; dup {
			if strict {
				return nil, fmt.Errorf("%w: columns %q and %q name the same feature", ErrInvalidMeasurement, header[prev], col)
			}
			if strings.TrimSpace(header[prev]) == name || strings.TrimSpace(col) != name {
				continue
			}
			features[prev] = ""
		}
		seen[name] = i
		features[i] = name
	}

	var samples []schema.Sample
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row+1, err)
		}

		raw := make(map[string]float64)
		var id string
		for i, cell := range record {
			if i == idCol {
				id = cell
				continue
			}
			if i >= len(features) || features[i] == "" || strings.TrimSpace(cell) == "" {
				continue
			}
			v, err := parseValue(features[i], cell, strict)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row+1, err)
			}
			raw[features[i]] = v
		}
		m, err := Normalize(raw, strict)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		samples = append(samples, schema.Sample{ID: sampleID(id, row), Measurements: m})
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

// formatID renders a JSON id value as text.
func formatID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

// toJSONValue converts YAML-decoded values into the shapes encoding/json produces,
// so one schema validates both formats.
func toJSONValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = toJSONValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = toJSONValue(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	default:
		return t
	}
}
