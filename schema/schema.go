// Package schema has the feature catalog, fixed model parameters and data types for all parts of tumorscore.
package schema

// Measurements maps catalog feature names to raw values.
// Names missing from the catalog are ignored by the scorer.
type Measurements map[string]float64

// Recommendation is the canned advice shown alongside a verdict.
type Recommendation struct {
	Icon  string   `json:"icon" yaml:"icon"`
	Lines []string `json:"lines" yaml:"lines"`
}

// PredictionResult is the outcome of scoring one sample.
// All probabilities and the confidence are percentages in [0, 100].
type PredictionResult struct {
	Verdict              Verdict        `json:"prediction" yaml:"prediction"`
	Confidence           float64        `json:"confidence" yaml:"confidence"`
	MalignantProbability float64        `json:"malignant_probability" yaml:"malignant_probability"`
	BenignProbability    float64        `json:"benign_probability" yaml:"benign_probability"`
	RiskLevel            RiskLevel      `json:"risk_level" yaml:"risk_level"`
	Recommendation       Recommendation `json:"recommendation" yaml:"recommendation"`
	Decision             float64        `json:"decision" yaml:"decision"` // raw value before the sigmoid
}

// FeatureContribution is one term of the decision sum, used by --explain.
type FeatureContribution struct {
	Feature      string  `json:"feature" yaml:"feature"`
	Raw          float64 `json:"raw" yaml:"raw"`
	Scaled       float64 `json:"scaled" yaml:"scaled"`
	Coefficient  float64 `json:"coefficient" yaml:"coefficient"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
}

// Sample is one unscored input row, as read from a file or table.
type Sample struct {
	ID           string       `json:"id" yaml:"id"`
	Measurements Measurements `json:"measurements" yaml:"measurements"`
}

// SampleResult pairs a sample with its prediction.
type SampleResult struct {
	ID           string           `json:"id" yaml:"id"`
	Measurements Measurements     `json:"measurements,omitempty" yaml:"measurements,omitempty"`
	Result       PredictionResult `json:"result" yaml:"result"`
}

// PredictionReport is the render model for a single prediction.
type PredictionReport struct {
	Measurements  Measurements          `json:"measurements" yaml:"measurements"`
	Result        PredictionResult      `json:"result" yaml:"result"`
	Contributions []FeatureContribution `json:"contributions,omitempty" yaml:"contributions,omitempty"`
	ModelVersion  string                `json:"model_version" yaml:"model_version"`
}

// BatchSummary aggregates verdict counts over a batch.
type BatchSummary struct {
	Total     int `json:"total" yaml:"total"`
	Benign    int `json:"benign" yaml:"benign"`
	Malignant int `json:"malignant" yaml:"malignant"`
	LowRisk   int `json:"low_risk" yaml:"low_risk"`
	Medium    int `json:"medium_risk" yaml:"medium_risk"`
	HighRisk  int `json:"high_risk" yaml:"high_risk"`
}

// ModelInfo is the render model for the model command.
type ModelInfo struct {
	Version    string          `json:"version" yaml:"version"`
	Intercept  float64         `json:"intercept" yaml:"intercept"`
	Weights    []FeatureWeight `json:"weights" yaml:"weights"`
	Accuracies []ModelAccuracy `json:"accuracies" yaml:"accuracies"`
	ChartTitle string          `json:"chart_title" yaml:"chart_title"`
}

// FeatureWeight describes one selected feature and its scaler parameters.
type FeatureWeight struct {
	Feature     string  `json:"feature" yaml:"feature"`
	Index       int     `json:"index" yaml:"index"`
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
	Mean        float64 `json:"mean" yaml:"mean"`
	Scale       float64 `json:"scale" yaml:"scale"`
}

// DefaultEntry is one row of the defaults listing.
type DefaultEntry struct {
	Feature string  `json:"feature" yaml:"feature"`
	Value   float64 `json:"value" yaml:"value"`
	Display string  `json:"display" yaml:"display"`
	Band    string  `json:"band" yaml:"band"`
}

// CatalogEntry is one canonical feature as listed by the features command.
type CatalogEntry struct {
	Index       int     `json:"index" yaml:"index"`
	Feature     string  `json:"feature" yaml:"feature"`
	Column      string  `json:"column" yaml:"column"`
	Selected    bool    `json:"selected" yaml:"selected"`
	Coefficient float64 `json:"coefficient,omitempty" yaml:"coefficient,omitempty"`
}

// FeatureReport is the render model for the features command.
type FeatureReport struct {
	ChartTitle  string              `json:"chart_title" yaml:"chart_title"`
	Importances []FeatureImportance `json:"importances" yaml:"importances"`
	Catalog     []CatalogEntry      `json:"catalog" yaml:"catalog"`
}

// BatchReport is the render model for a scored batch.
type BatchReport struct {
	Results      []SampleResult `json:"results" yaml:"results"`
	Summary      BatchSummary   `json:"summary" yaml:"summary"`
	ModelVersion string         `json:"model_version" yaml:"model_version"`
}

// Summarize counts verdicts and risk levels over a batch.
func Summarize(results []SampleResult) BatchSummary {
	s := BatchSummary{Total: len(results)}
	for _, r := range results {
		switch r.Result.Verdict {
		case Malignant:
			s.Malignant++
		default:
			s.Benign++
		}
		switch r.Result.RiskLevel {
		case LowRisk:
			s.LowRisk++
		case MediumRisk:
			s.Medium++
		default:
			s.HighRisk++
		}
	}
	return s
}
