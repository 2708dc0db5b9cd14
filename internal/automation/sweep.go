package automation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/san-kum/sortlab/internal/algo"
	"github.com/san-kum/sortlab/internal/config"
	"github.com/san-kum/sortlab/internal/logging"
	"github.com/san-kum/sortlab/internal/trace"
)

// Sweep builds every algorithm over random inputs of each size. Trial t
// of a size uses seed Seed+t, so every algorithm sees the same arrays.
type Sweep struct {
	Algorithms []string
	Sizes      []int
	Trials     int
	Seed       int64
	Min, Max   int
}

// SweepResult holds counters averaged over the trials of one
// (algorithm, size) cell.
type SweepResult struct {
	Algorithm   string  `json:"algorithm"`
	Size        int     `json:"size"`
	Steps       float64 `json:"steps"`
	Comparisons float64 `json:"comparisons"`
	Swaps       float64 `json:"swaps"`
	Stable      bool    `json:"stable"`
}

// RunSweep runs the sweep. Empty Algorithms means every registered one.
func RunSweep(ctx context.Context, sw *Sweep, registry *algo.Registry, logger *slog.Logger) ([]SweepResult, error) {
	if registry == nil {
		registry = algo.Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	names := sw.Algorithms
	if len(names) == 0 {
		names = registry.Names()
	}
	trials := sw.Trials
	if trials <= 0 {
		trials = 1
	}
	lo, hi := sw.Min, sw.Max
	if hi <= lo {
		lo, hi = config.DefaultMin, config.DefaultMax
	}

	results := make([]SweepResult, 0, len(names)*len(sw.Sizes))
	for _, size := range sw.Sizes {
		inputs := make([]trace.Values, trials)
		for t := range inputs {
			in := config.InputConfig{Size: size, Seed: sw.Seed + int64(t), Min: lo, Max: hi}
			inputs[t] = in.Generate()
		}

		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			res, err := sweepCell(registry, name, inputs)
			if err != nil {
				return results, fmt.Errorf("sweep %s size %d: %w", name, size, err)
			}
			res.Size = size
			results = append(results, res)
			logger.Debug("sweep cell", "algorithm", res.Algorithm, "size", size, "steps", res.Steps)
		}
	}
	return results, nil
}

// sweepCell builds one trace per input concurrently. Traces are
// independent and the registry is only read.
func sweepCell(registry *algo.Registry, name string, inputs []trace.Values) (SweepResult, error) {
	traces := make([]*trace.Trace, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			traces[idx], errs[idx] = registry.Build(name, inputs[idx])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return SweepResult{}, err
		}
	}

	res := SweepResult{Algorithm: traces[0].Algorithm, Stable: true}
	for _, tr := range traces {
		res.Steps += float64(tr.Len())
		res.Comparisons += float64(tr.Stats.Comparisons)
		res.Swaps += float64(tr.Stats.Swaps)
		res.Stable = res.Stable && tr.Stable()
	}
	n := float64(len(traces))
	res.Steps /= n
	res.Comparisons /= n
	res.Swaps /= n
	return res, nil
}
