package source

import (
	"fmt"
	"strings"

	"github.com/oncolens/tumorscore/schema"
)

// ParseAssignments parses "name=value" pairs such as "mean radius=13.4" or "worst_area=800".
// A pair without '=' is always an error. Later pairs override earlier ones.
func ParseAssignments(pairs []string, strict bool) (schema.Measurements, error) {
	raw := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: expected name=value, got %q", ErrInvalidMeasurement, pair)
		}
		v, err := parseValue(name, value, strict)
		if err != nil {
			return nil, err
		}
		raw[schema.NormalizeFeatureName(name)] = v
	}
	return Normalize(raw, strict)
}
