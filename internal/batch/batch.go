// Package batch runs many independent simulations in parallel, the
// worker-pool boundary spec §5 describes: each worker owns one simulation
// object exclusively, with no state shared across simulations. Grounded on
// taupy's experiment() function, which builds every simulation before
// running any of them (a two-phase build-then-run shape), reimplemented
// here with golang.org/x/sync/errgroup instead of a process pool, since a
// single Go process can run independent goroutines without the
// serialization overhead Python's multiprocessing requires.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quanticsoul4772/dialectical-sim/internal/simconfig"
	"github.com/quanticsoul4772/dialectical-sim/internal/simulation"
)

// Result pairs one simulation's configuration-derived seed with its trace,
// or the error that ended it early.
type Result struct {
	Seed  int64
	Trace *simulation.Trace
	Err   error
}

// Run builds n simulations from cfg (one per seed in seeds) and runs them
// concurrently, bounded by maxWorkers concurrent goroutines. It returns one
// Result per seed, in seed order, once every simulation has finished.
func Run(ctx context.Context, cfg simconfig.Config, seeds []int64, maxWorkers int) ([]Result, error) {
	sims := make([]*simulation.Simulation, len(seeds))
	for i, seed := range seeds {
		runCfg := cfg
		runCfg.Seed = seed
		sims[i] = simulation.New(runCfg)
	}

	results := make([]Result, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	if maxWorkers > 0 {
		g.SetLimit(maxWorkers)
	}

	for i := range sims {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = Result{Seed: seeds[i], Err: gctx.Err()}
				return nil
			default:
			}
			trace, err := sims[i].Run()
			if err != nil {
				results[i] = Result{Seed: seeds[i], Err: fmt.Errorf("batch: simulation seed %d: %w", seeds[i], err)}
				return nil
			}
			results[i] = Result{Seed: seeds[i], Trace: trace}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
