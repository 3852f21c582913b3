package sim

import (
	"context"
	"sync"
)

// Ensemble runs the same scenario under consecutive seeds. Each run gets its
// own scenario, metrics and rig, so no grab state is shared between goroutines.
type Ensemble struct {
	scenario  func() Scenario
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

func NewEnsemble(scenario func() Scenario, metrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{scenario: scenario, metrics: metrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s := New(nil)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, e.scenario(), cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
