package schema

import "strings"

// NumCanonicalFeatures is the width of the full measurement vector.
const NumCanonicalFeatures = 30

// NumSelectedFeatures is the number of features that carry a model weight.
const NumSelectedFeatures = 15

// CanonicalFeatures is the full 30-feature vocabulary in vector order.
// Ten base measurements appear three times: as a mean, as a standard error and as the worst value.
var CanonicalFeatures = [NumCanonicalFeatures]string{
	"mean radius",
	"mean texture",
	"mean perimeter",
	"mean area",
	"mean smoothness",
	"mean compactness",
	"mean concavity",
	"mean concave points",
	"mean symmetry",
	"mean fractal dimension",
	"radius error",
	"texture error",
	"perimeter error",
	"area error",
	"smoothness error",
	"compactness error",
	"concavity error",
	"concave points error",
	"symmetry error",
	"fractal dimension error",
	"worst radius",
	"worst texture",
	"worst perimeter",
	"worst area",
	"worst smoothness",
	"worst compactness",
	"worst concavity",
	"worst concave points",
	"worst symmetry",
	"worst fractal dimension",
}

// SelectedFeatures lists the weighted features in scoring order.
// The k-th coefficient of the model applies to the k-th entry.
var SelectedFeatures = [NumSelectedFeatures]string{
	"worst concave points",
	"worst perimeter",
	"mean concave points",
	"worst radius",
	"mean perimeter",
	"worst area",
	"mean radius",
	"mean area",
	"mean concavity",
	"worst concavity",
	"mean compactness",
	"worst compactness",
	"radius error",
	"perimeter error",
	"area error",
}

var featureIndex = func() map[string]int {
	m := make(map[string]int, NumCanonicalFeatures)
	for i, name := range CanonicalFeatures {
		m[name] = i
	}
	return m
}()

var selectedIndices = func() [NumSelectedFeatures]int {
	var out [NumSelectedFeatures]int
	for k, name := range SelectedFeatures {
		out[k] = featureIndex[name]
	}
	return out
}()

// FeatureIndex returns the canonical vector index for a feature name.
func FeatureIndex(name string) (int, bool) {
	i, ok := featureIndex[name]
	return i, ok
}

// SelectedIndices returns the canonical index of every selected feature, in scoring order.
func SelectedIndices() [NumSelectedFeatures]int {
	return selectedIndices
}

// IsSelected reports whether a canonical feature carries a model weight.
func IsSelected(name string) bool {
	for _, s := range SelectedFeatures {
		if s == name {
			return true
		}
	}
	return false
}

// NormalizeFeatureName maps user spellings onto catalog names.
// "Mean_Radius", "mean-radius" and " mean radius " all become "mean radius".
func NormalizeFeatureName(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// ColumnName returns the snake_case column name used for files, tables and tool arguments.
func ColumnName(feature string) string {
	return strings.ReplaceAll(feature, " ", "_")
}
