package algo

import (
	"sort"

	"github.com/oncolens/tumorscore/schema"
)

// RankSamples sorts samples by malignant probability in descending order
// and returns the top 'limit' samples. A limit of zero or less keeps all of them.
// Ties keep their input order.
func RankSamples(samples []schema.SampleResult, limit int) []schema.SampleResult {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Result.MalignantProbability > samples[j].Result.MalignantProbability
	})
	if limit > 0 && len(samples) > limit {
		return samples[:limit]
	}
	return samples
}
