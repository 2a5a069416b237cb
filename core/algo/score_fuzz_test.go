package algo

import (
	"math"
	"testing"

	"github.com/oncolens/tumorscore/schema"
)

// FuzzPredict feeds arbitrary values into large-scale and small-scale weighted features
// and checks the invariants that must hold for any input.
func FuzzPredict(f *testing.F) {
	f.Add(15.6, 104.1, 782.7, 0.11, 0.25)
	f.Add(0.0, 0.0, 0.0, 0.0, 0.0)
	f.Add(-1e300, 1e300, math.SmallestNonzeroFloat64, 0.0, 0.0)
	f.Add(math.Inf(1), math.NaN(), math.Inf(-1), 0.0, 0.0)
	f.Add(15.6, 104.1, 782.7, 1e308, 1e308)
	f.Add(0.0, 0.0, math.Inf(1), math.Inf(1), -1e308)

	f.Fuzz(func(t *testing.T, radius, perimeter, area, concavePoints, compactness float64) {
		m := schema.Measurements{
			"worst radius":         radius,
			"worst perimeter":      perimeter,
			"worst area":           area,
			"worst concave points": concavePoints,
			"worst compactness":    compactness,
		}
		res := PredictDefault(m)

		for _, v := range []float64{res.Decision, res.Confidence, res.MalignantProbability, res.BenignProbability} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite result field: %+v", res)
			}
		}
		if res.Confidence < 50 || res.Confidence > 100 {
			t.Fatalf("confidence out of range: %v", res.Confidence)
		}
		if sum := res.MalignantProbability + res.BenignProbability; math.Abs(sum-100) > 1e-9 {
			t.Fatalf("probabilities do not sum to 100: %v", sum)
		}
		if (res.Verdict == schema.Malignant) != (res.MalignantProbability > 50) {
			t.Fatalf("verdict %s inconsistent with p=%v", res.Verdict, res.MalignantProbability)
		}
		if len(res.Recommendation.Lines) != 4 {
			t.Fatalf("expected 4 recommendation lines, got %d", len(res.Recommendation.Lines))
		}
	})
}

func BenchmarkPredictDefault(b *testing.B) {
	m := schema.DefaultMeasurements()
	for b.Loop() {
		_ = PredictDefault(m)
	}
}
