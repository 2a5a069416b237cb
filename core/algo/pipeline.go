// Package algo has the scoring pipeline: vectorize, standardize, select, dot product, sigmoid, classify.
// Every function here is pure and total over its inputs.
package algo

import (
	"math"

	"github.com/oncolens/tumorscore/schema"
)

// Vectorize places each recognised measurement at its catalog index.
// Unknown names are ignored and NaN counts as zero. Infinities are kept so they saturate p.
func Vectorize(m schema.Measurements) [schema.NumCanonicalFeatures]float64 {
	var v [schema.NumCanonicalFeatures]float64
	for name, value := range m {
		idx, ok := schema.FeatureIndex(name)
		if !ok {
			continue
		}
		if math.IsNaN(value) {
			value = 0
		}
		v[idx] = value
	}
	return v
}

// Standardize applies (x - mean) / scale to all 30 slots.
func Standardize(model schema.Model, v [schema.NumCanonicalFeatures]float64) [schema.NumCanonicalFeatures]float64 {
	var out [schema.NumCanonicalFeatures]float64
	for i := range v {
		out[i] = (v[i] - model.ScalerMean[i]) / model.ScalerScale[i]
	}
	return out
}

// SelectScaled gathers the standardized values of the selected features, in scoring order.
func SelectScaled(scaled [schema.NumCanonicalFeatures]float64) [schema.NumSelectedFeatures]float64 {
	var out [schema.NumSelectedFeatures]float64
	for k, idx := range schema.SelectedIndices() {
		out[k] = scaled[idx]
	}
	return out
}

// Decision is intercept + sum of scaled*w, accumulated left to right.
func Decision(model schema.Model, selected [schema.NumSelectedFeatures]float64) float64 {
	decision := model.Intercept
	for k := range selected {
		// The explicit conversion forces the product to be rounded before the add (no FMA).
		decision += float64(selected[k] * model.Coefficients[k])
	}
	return decision
}

// Sigmoid is the logistic function.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Predict scores one sample with the given model.
func Predict(model schema.Model, m schema.Measurements) schema.PredictionResult {
	scaled := Standardize(model, Vectorize(m))
	return Classify(Decision(model, SelectScaled(scaled)))
}

// PredictDefault scores one sample with the compiled-in model.
func PredictDefault(m schema.Measurements) schema.PredictionResult {
	return Predict(schema.DefaultModel(), m)
}

// Classify turns a decision value into a full result.
// The verdict is MALIGNANT only when p is strictly greater than 0.5.
// A NaN decision, left when infinite terms of opposite sign cancel, is scored as 0.
// The reported decision is clamped to a finite value so results stay encodable.
func Classify(decision float64) schema.PredictionResult {
	if math.IsNaN(decision) {
		decision = 0
	}
	p := Sigmoid(decision)

	verdict := schema.Benign
	confidence := (1 - p) * 100
	if p > schema.MalignantThreshold {
		verdict = schema.Malignant
		confidence = p * 100
	}

	return schema.PredictionResult{
		Verdict:              verdict,
		Confidence:           confidence,
		MalignantProbability: p * 100,
		BenignProbability:    (1 - p) * 100,
		RiskLevel:            RiskLevelFor(confidence),
		Recommendation:       RecommendationFor(verdict, confidence),
		Decision:             finite(decision),
	}
}

// finite maps NaN to 0 and the infinities to the largest finite magnitudes.
func finite(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case math.IsInf(x, 1):
		return math.MaxFloat64
	case math.IsInf(x, -1):
		return -math.MaxFloat64
	default:
		return x
	}
}

// RiskLevelFor buckets a confidence percentage.
func RiskLevelFor(confidence float64) schema.RiskLevel {
	switch {
	case confidence >= schema.HighConfidenceCutoff:
		return schema.LowRisk
	case confidence >= schema.MidConfidenceCutoff:
		return schema.MediumRisk
	default:
		return schema.HighRisk
	}
}

// Contributions breaks the decision sum into per-feature terms, in scoring order.
// Raw values follow the same rules as Vectorize. Every reported number is finite.
func Contributions(model schema.Model, m schema.Measurements) []schema.FeatureContribution {
	raw := Vectorize(m)
	scaled := Standardize(model, raw)
	indices := schema.SelectedIndices()

	out := make([]schema.FeatureContribution, schema.NumSelectedFeatures)
	for k, name := range schema.SelectedFeatures {
		idx := indices[k]
		out[k] = schema.FeatureContribution{
			Feature:      name,
			Raw:          finite(raw[idx]),
			Scaled:       finite(scaled[idx]),
			Coefficient:  model.Coefficients[k],
			Contribution: finite(float64(scaled[idx] * model.Coefficients[k])),
		}
	}
	return out
}
