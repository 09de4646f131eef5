package ghost

import (
	"fmt"
	"time"
)

// SolveOptions collects every field of the driver boundary (spec §6): the
// two deadlines, restart/start-policy controls, the chosen heuristics and
// projection strategy, the permutation-mode flag, and an optional RNG
// seed for reproducible runs.
type SolveOptions struct {
	// SatisfactionTimeout bounds a single optimization round's inner
	// loop. Required.
	SatisfactionTimeout time.Duration

	// OptimizationTimeout bounds the whole solve. Defaults to
	// 10 * SatisfactionTimeout.
	OptimizationTimeout time.Duration

	// ParallelRuns, if true, tells callers to drive this model through
	// internal/parallel's aggregator instead of a single Driver.Solve
	// call. The single-core driver itself ignores this field — parallel
	// restart is an external concern (spec §5, §9).
	ParallelRuns bool

	// NoRandomStartingPoint makes the first optimization round use the
	// model's variables as they currently stand instead of sampling a
	// random start. Every subsequent round always randomizes.
	NoRandomStartingPoint bool

	// Samplings is the number of Monte-Carlo (or, in permutation mode,
	// random-swap) restarts set_initial_configuration tries before
	// keeping the lowest-total-error one. Defaults to 10.
	Samplings int

	// TabuTimeLocalMin and TabuTimeSelected override the model-derived
	// tabu constants (spec 4.6: max(1, N/2) and max(1, localMin/2)) when
	// non-zero.
	TabuTimeLocalMin int
	TabuTimeSelected int

	// PlateauEscapeProbability is the optional coin-flip probability
	// (spec 4.6 step 8) of committing a strictly-zero-improvement move
	// to escape a plateau. Zero disables the escape.
	PlateauEscapeProbability float64

	VariableCandidates VariableCandidatesHeuristic
	Variable           VariableHeuristic
	Value              ValueHeuristic
	Projection         ErrorProjection

	// PermutationProblem switches the driver's move primitive from
	// value assignment to index/value swaps.
	PermutationProblem bool

	// RNGSeed, when non-nil, seeds the driver's RNG for reproducible
	// runs (spec §8's determinism property).
	RNGSeed *uint64

	Logger Logger
}

// Option mutates a SolveOptions record being built up by DefaultOptions.
// Mirrors costela/golpa's functional-option pattern.
type Option func(*SolveOptions) error

// DefaultOptions returns the options table populated with the spec's
// defaults, given the one required field.
func DefaultOptions(satisfactionTimeout time.Duration) *SolveOptions {
	return &SolveOptions{
		SatisfactionTimeout: satisfactionTimeout,
		OptimizationTimeout: 10 * satisfactionTimeout,
		Samplings:           10,
		VariableCandidates:  AdaptiveVariableCandidates{},
		Variable:            AdaptiveVariableHeuristic{},
		Value:               AdaptiveValueHeuristic{},
		Projection:          FullErrorProjection{},
		Logger:              NewNopLogger(),
	}
}

// Apply folds opts onto o in order, stopping at the first error.
func (o *SolveOptions) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// WithOptimizationTimeout overrides the overall deadline.
func WithOptimizationTimeout(d time.Duration) Option {
	return func(o *SolveOptions) error { o.OptimizationTimeout = d; return nil }
}

// WithParallelRuns marks the options for external parallel-restart use.
func WithParallelRuns(enabled bool) Option {
	return func(o *SolveOptions) error { o.ParallelRuns = enabled; return nil }
}

// WithNoRandomStartingPoint disables randomizing the first round's start.
func WithNoRandomStartingPoint(enabled bool) Option {
	return func(o *SolveOptions) error { o.NoRandomStartingPoint = enabled; return nil }
}

// WithSamplings overrides the Monte-Carlo restart count.
func WithSamplings(n int) Option {
	return func(o *SolveOptions) error {
		if n < 1 {
			return fmt.Errorf("ghost: samplings must be >= 1, got %d", n)
		}
		o.Samplings = n
		return nil
	}
}

// WithTabuTimes overrides the two tabu countdown constants.
func WithTabuTimes(localMin, selected int) Option {
	return func(o *SolveOptions) error { o.TabuTimeLocalMin, o.TabuTimeSelected = localMin, selected; return nil }
}

// WithPlateauEscapeProbability sets the step-8 plateau-escape coin-flip
// probability (0 disables it).
func WithPlateauEscapeProbability(p float64) Option {
	return func(o *SolveOptions) error {
		if p < 0 || p > 1 {
			return fmt.Errorf("ghost: plateau escape probability must be in [0,1], got %f", p)
		}
		o.PlateauEscapeProbability = p
		return nil
	}
}

// WithVariableCandidatesHeuristic selects the variable-candidates
// heuristic by name ("adaptive", "antidote", "random-walk").
func WithVariableCandidatesHeuristic(name string) Option {
	return func(o *SolveOptions) error {
		h, err := VariableCandidatesHeuristicByName(name)
		if err != nil {
			return err
		}
		o.VariableCandidates = h
		return nil
	}
}

// WithVariableHeuristic selects the variable heuristic by name.
func WithVariableHeuristic(name string) Option {
	return func(o *SolveOptions) error {
		h, err := VariableHeuristicByName(name)
		if err != nil {
			return err
		}
		o.Variable = h
		return nil
	}
}

// WithValueHeuristic selects the value heuristic by name ("adaptive",
// "antidote", "random-walk", "optimization-space").
func WithValueHeuristic(name string) Option {
	return func(o *SolveOptions) error {
		h, err := ValueHeuristicByName(name)
		if err != nil {
			return err
		}
		o.Value = h
		return nil
	}
}

// WithErrorProjection selects the error-projection strategy by name
// ("full", "incremental", "null").
func WithErrorProjection(name string) Option {
	return func(o *SolveOptions) error {
		p, err := ErrorProjectionByName(name)
		if err != nil {
			return err
		}
		o.Projection = p
		return nil
	}
}

// WithHeuristicFamily is a convenience that sets matching
// variable-candidates/variable/value heuristics from one named family
// ("adaptive", "antidote", "random-walk").
func WithHeuristicFamily(name string) Option {
	return func(o *SolveOptions) error {
		vc, err := VariableCandidatesHeuristicByName(name)
		if err != nil {
			return err
		}
		v, err := VariableHeuristicByName(name)
		if err != nil {
			return err
		}
		val, err := ValueHeuristicByName(name)
		if err != nil {
			return err
		}
		o.VariableCandidates, o.Variable, o.Value = vc, v, val
		return nil
	}
}

// WithPermutationProblem switches the driver to permutation-mode moves.
func WithPermutationProblem(enabled bool) Option {
	return func(o *SolveOptions) error { o.PermutationProblem = enabled; return nil }
}

// WithRNGSeed seeds the driver's RNG for reproducible runs.
func WithRNGSeed(seed uint64) Option {
	return func(o *SolveOptions) error { o.RNGSeed = &seed; return nil }
}

// WithLogger installs a Logger; NewNopLogger is the default.
func WithLogger(logger Logger) Option {
	return func(o *SolveOptions) error { o.Logger = logger; return nil }
}

// resolvedTabuTimes returns the tabu constants to use for a model with n
// variables, honoring any override in o.
func (o *SolveOptions) resolvedTabuTimes(n int) (localMin, selected int) {
	localMin, selected = tabuTimes(n)
	if o.TabuTimeLocalMin > 0 {
		localMin = o.TabuTimeLocalMin
	}
	if o.TabuTimeSelected > 0 {
		selected = o.TabuTimeSelected
	}
	return localMin, selected
}
