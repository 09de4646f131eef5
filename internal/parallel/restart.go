// Package parallel implements the external parallel-restart aggregator
// spec §5 permits alongside the single-core ghost.Driver: P independent
// cores solve the same model shape concurrently, with an aggregator that
// picks the best feasible-and-better result once every core has finished
// or been cancelled.
//
// Adapted from the teacher's internal/parallel worker pool: that pool ran
// arbitrary goal-evaluation tasks with dynamic scaling; a parallel restart
// only ever runs a small, fixed number of independent ghost.Driver.Solve
// calls, so the dynamic worker-pool machinery is replaced here by a
// golang.org/x/sync/errgroup fan-out — simpler, and a closer fit for "run
// exactly P tasks, join on completion or first error".
package parallel

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gitrdm/ghost/pkg/ghost"
)

// ModelFactory builds one fresh Model per independent core. Models are
// not safe to share across cores — each Driver mutates its model's
// variable state in place (spec §5: "no shared mutable state between the
// inner cores") — so every call must return distinct Variable/Constraint
// instances, not the same pointers.
type ModelFactory func() (*ghost.Model, error)

// Solve runs `runs` independent ghost.Driver cores against models built by
// factory, each under its own RNG stream (derived from opts.RNGSeed when
// set, so the whole parallel run stays reproducible), and returns the best
// result: feasible beats infeasible, and among feasible results the
// better (normalized-direction) cost wins. ctx cancellation propagates to
// every core cooperatively — each Driver polls ctx.Err() at the same
// point it polls its deadline, so no in-flight state needs rolling back.
func Solve(ctx context.Context, factory ModelFactory, opts *ghost.SolveOptions, runs int) (ghost.Result, error) {
	if runs < 1 {
		runs = 1
	}

	group, gctx := errgroup.WithContext(ctx)

	var (
		mu        sync.Mutex
		best      ghost.Result
		haveBest  bool
		direction ghost.Direction
		dirOnce   sync.Once
	)

	for r := 0; r < runs; r++ {
		r := r
		group.Go(func() error {
			m, err := factory()
			if err != nil {
				return fmt.Errorf("parallel: building model for run %d: %w", r, err)
			}
			dirOnce.Do(func() { direction = m.Objective().Direction() })

			runOpts := *opts
			if opts.RNGSeed != nil {
				seed := *opts.RNGSeed + uint64(r)
				runOpts.RNGSeed = &seed
			}

			driver, err := ghost.NewDriver(m, &runOpts)
			if err != nil {
				return fmt.Errorf("parallel: run %d: %w", r, err)
			}
			res, err := driver.Solve(gctx)
			if err != nil {
				return fmt.Errorf("parallel: run %d: %w", r, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if !haveBest || isBetter(res, best, direction) {
				best, haveBest = res, true
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return ghost.Result{}, err
	}
	if !haveBest {
		return ghost.Result{}, fmt.Errorf("parallel: no runs completed")
	}
	return best, nil
}

// isBetter reports whether candidate improves on incumbent: feasible
// always beats infeasible; among two feasible results, lower cost wins
// under Minimize, higher under Maximize (feasible results carry Cost in the
// objective's own, un-normalized sense). Two infeasible results carry their
// satisfaction error in Cost, so the lower one wins whatever the direction.
func isBetter(candidate, incumbent ghost.Result, direction ghost.Direction) bool {
	if candidate.Feasible != incumbent.Feasible {
		return candidate.Feasible
	}
	if !candidate.Feasible {
		return candidate.Cost < incumbent.Cost
	}
	if direction == ghost.Maximize {
		return candidate.Cost > incumbent.Cost
	}
	return candidate.Cost < incumbent.Cost
}
