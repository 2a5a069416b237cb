package schema

// ModelAccuracy is one bar of the model comparison chart.
type ModelAccuracy struct {
	Model    string  `json:"model" yaml:"model"`
	Accuracy float64 `json:"accuracy" yaml:"accuracy"` // percent
}

// FeatureImportance is one bar of the feature importance chart.
type FeatureImportance struct {
	Feature    string  `json:"feature" yaml:"feature"`
	Importance float64 `json:"importance" yaml:"importance"` // fraction of total
}

// Chart titles.
const (
	ModelChartTitle   = "Cancer Prediction Model Performance Comparison"
	FeatureChartTitle = "Top 10 Most Important Features for Cancer Prediction"
)

var modelAccuracies = []ModelAccuracy{
	{Model: "SVM", Accuracy: 97.37},
	{Model: "Neural Network", Accuracy: 97.37},
	{Model: "Ensemble Voting", Accuracy: 96.49},
	{Model: "Logistic Regression", Accuracy: 95.61},
	{Model: "XGBoost", Accuracy: 95.61},
	{Model: "Random Forest", Accuracy: 94.74},
}

var featureImportances = []FeatureImportance{
	{Feature: "Worst Perimeter", Importance: 0.164},
	{Feature: "Mean Concave Points", Importance: 0.132},
	{Feature: "Worst Radius", Importance: 0.118},
	{Feature: "Mean Perimeter", Importance: 0.095},
	{Feature: "Worst Area", Importance: 0.087},
	{Feature: "Mean Radius", Importance: 0.081},
	{Feature: "Mean Area", Importance: 0.074},
	{Feature: "Worst Concave Points", Importance: 0.069},
	{Feature: "Mean Concavity", Importance: 0.058},
	{Feature: "Worst Concavity", Importance: 0.052},
}

// ModelAccuracies returns the accuracy dataset, best model first.
func ModelAccuracies() []ModelAccuracy {
	out := make([]ModelAccuracy, len(modelAccuracies))
	copy(out, modelAccuracies)
	return out
}

// FeatureImportances returns the importance dataset, most important first.
func FeatureImportances() []FeatureImportance {
	out := make([]FeatureImportance, len(featureImportances))
	copy(out, featureImportances)
	return out
}
