package shot

import (
	"context"
	"sync"

	"github.com/plasmalab/tokasim/internal/device"
	"github.com/plasmalab/tokasim/internal/engine"
	"github.com/plasmalab/tokasim/internal/plasma"
	"github.com/plasmalab/tokasim/internal/safety"
)

// Ensemble runs the same shot setup many times in parallel with
// consecutive seeds. Controllers, monitors and metrics carry per-run
// state, so each run builds fresh instances through the factories.
type Ensemble struct {
	Dev     device.Params
	NumRuns int
	Seed    int64

	State      func() *plasma.State
	Actuators  func() *plasma.Actuators
	Controller func() Controller
	Monitor    func() *safety.Monitor
	Metrics    func() []Metric
}

// Run executes all runs and returns their results in seed order. The
// first run error aborts the batch.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.NumRuns)
	errs := make([]error, e.NumRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.NumRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.Seed + int64(idx)

			eng := engine.New(e.Dev, cfgCopy.Seed)
			var ctrl Controller
			if e.Controller != nil {
				ctrl = e.Controller()
			}
			r := New(eng, ctrl)
			if e.Monitor != nil {
				r.SetMonitor(e.Monitor())
			}
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					r.AddMetric(m)
				}
			}

			s := e.State()
			act := e.Actuators()
			results[idx], errs[idx] = r.Run(ctx, s, act, cfgCopy)
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

// DisruptedFraction is the share of results with a latched disruption.
func DisruptedFraction(results []*Result) float64 {
	if len(results) == 0 {
		return 0
	}
	n := 0
	for _, r := range results {
		if r != nil && r.Disrupted {
			n++
		}
	}
	return float64(n) / float64(len(results))
}
