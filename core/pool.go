package core

import (
	"context"
	"sync"

	"github.com/oncolens/tumorscore/core/algo"
	"github.com/oncolens/tumorscore/schema"
)

// scoreSamples scores samples with a pool of workers.
// Each worker writes to its own index, so results keep the input order.
// Samples still queued when ctx is cancelled are left unscored.
func scoreSamples(ctx context.Context, workers int, samples []schema.Sample) []schema.SampleResult {
	model := schema.DefaultModel()
	results := make([]schema.SampleResult, len(samples))
	indexCh := make(chan int, len(samples))

	var wg sync.WaitGroup
	for range max(workers, 1) {
		wg.Go(func() {
			for i := range indexCh {
				if ctx.Err() != nil {
					continue
				}
				s := samples[i]
				results[i] = schema.SampleResult{
					ID:           s.ID,
					Measurements: s.Measurements,
					Result:       algo.Predict(model, s.Measurements),
				}
			}
		})
	}

	for i := range samples {
		indexCh <- i
	}
	close(indexCh)

	wg.Wait()
	return results
}
