package schema

import (
	"fmt"
	"strings"
)

// Band names for the range indicator.
const (
	BandLow  = "low"
	BandMid  = "mid"
	BandHigh = "high"
)

// FormatMeasurement renders a value with the unit its feature name implies.
// Radius, perimeter and any standard error render in mm, area in mm², everything else unitless.
// The error check comes first, so "area error" renders in mm.
func FormatMeasurement(feature string, value float64) string {
	switch {
	case strings.Contains(feature, "radius"), strings.Contains(feature, "perimeter"), strings.Contains(feature, "error"):
		return fmt.Sprintf("%.1f mm", value)
	case strings.Contains(feature, "area"):
		return fmt.Sprintf("%.1f mm²", value)
	default:
		return fmt.Sprintf("%.3f", value)
	}
}

// FeatureRange returns the reference range used by the indicator: the training mean
// plus or minus two standard deviations, floored at zero.
func FeatureRange(feature string) (lo, hi float64, ok bool) {
	i, ok := FeatureIndex(feature)
	if !ok {
		return 0, 0, false
	}
	mean, scale := defaultModel.ScalerMean[i], defaultModel.ScalerScale[i]
	lo = max(0, mean-2*scale)
	hi = mean + 2*scale
	return lo, hi, true
}

// RangeBand places a value in the lower, middle or upper third of its reference range.
func RangeBand(feature string, value float64) string {
	lo, hi, ok := FeatureRange(feature)
	if !ok || hi <= lo {
		return BandMid
	}
	fraction := (value - lo) / (hi - lo)
	switch {
	case fraction < 0.33:
		return BandLow
	case fraction < 0.66:
		return BandMid
	default:
		return BandHigh
	}
}

// DisplayName title-cases a catalog name for chart labels: "mean radius" -> "Mean Radius".
func DisplayName(feature string) string {
	words := strings.Fields(feature)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
