package algo

import "github.com/oncolens/tumorscore/schema"

type recommendationKey struct {
	verdict        schema.Verdict
	highConfidence bool
}

var recommendations = map[recommendationKey]schema.Recommendation{
	{schema.Malignant, true}:  malignantAdvice,
	{schema.Malignant, false}: malignantAdvice,
	{schema.Benign, true}: {
		Icon: "✅",
		Lines: []string{
			"✅ Results suggest benign characteristics.",
			"📋 Continue regular monitoring and follow-up.",
			"👩‍⚕️ Consult with healthcare provider for comprehensive evaluation.",
			"🌟 Maintain healthy lifestyle practices.",
		},
	},
	{schema.Benign, false}: {
		Icon: "⚠️",
		Lines: []string{
			"⚠️ Results are inconclusive - further evaluation needed.",
			"🔬 Additional imaging or biopsy may be recommended.",
			"👩‍⚕️ Schedule follow-up appointment with specialist.",
			"📋 Monitor for any changes in symptoms.",
		},
	},
}

var malignantAdvice = schema.Recommendation{
	Icon: "⚠️",
	Lines: []string{
		"🚨 Immediate medical consultation recommended.",
		"🔬 Further diagnostic tests may be required.",
		"👩‍⚕️ Discuss treatment options with oncologist.",
		"📋 Consider seeking a second medical opinion.",
	},
}

// RecommendationFor looks up the advice for a verdict and confidence.
// The returned lines are a copy and may be modified by the caller.
func RecommendationFor(verdict schema.Verdict, confidence float64) schema.Recommendation {
	rec := recommendations[recommendationKey{verdict, confidence >= schema.HighConfidenceCutoff}]
	lines := make([]string, len(rec.Lines))
	copy(lines, rec.Lines)
	return schema.Recommendation{Icon: rec.Icon, Lines: lines}
}
