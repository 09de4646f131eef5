// Command ghost-solve is a cobra-based CLI exposing every field of
// ghost.SolveOptions (spec §6's driver boundary table) against one of a
// handful of built-in scenarios, so the solver can be exercised from a
// shell without writing Go.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/ghost/internal/parallel"
	"github.com/gitrdm/ghost/pkg/ghost"
)

var (
	flagScenario              string
	flagSatisfactionTimeout   time.Duration
	flagOptimizationTimeout   time.Duration
	flagSamplings             int
	flagNoRandomStart         bool
	flagPermutation           bool
	flagHeuristicFamily       string
	flagVariableCandidates    string
	flagVariableHeuristic     string
	flagValueHeuristic        string
	flagErrorProjection       string
	flagPlateauEscapeProb     float64
	flagTabuLocalMin          int
	flagTabuSelected          int
	flagSeed                  uint64
	flagSeedSet               bool
	flagParallelRuns          int
	flagVerbose               bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghost-solve",
		Short: "Run a ghost scenario with configurable heuristics",
		RunE:  runSolve,
	}

	cmd.Flags().StringVar(&flagScenario, "scenario", "knapsack",
		"built-in scenario: knapsack, alldifferent, permutation, deadline")
	cmd.Flags().DurationVar(&flagSatisfactionTimeout, "satisfaction-timeout", 20*time.Millisecond,
		"inner-loop deadline per optimization round")
	cmd.Flags().DurationVar(&flagOptimizationTimeout, "optimization-timeout", 0,
		"overall solve deadline (defaults to 10x satisfaction-timeout)")
	cmd.Flags().IntVar(&flagSamplings, "samplings", 10, "Monte-Carlo restart count")
	cmd.Flags().BoolVar(&flagNoRandomStart, "no-random-start", false,
		"use the model's current values for the first round instead of a random start")
	cmd.Flags().BoolVar(&flagPermutation, "permutation", false, "use permutation-mode moves")
	cmd.Flags().StringVar(&flagHeuristicFamily, "heuristic-family", "",
		"set matching variable-candidates/variable/value heuristics at once: adaptive, antidote, random-walk")
	cmd.Flags().StringVar(&flagVariableCandidates, "variable-candidates", "", "override the variable-candidates heuristic")
	cmd.Flags().StringVar(&flagVariableHeuristic, "variable-heuristic", "", "override the variable heuristic")
	cmd.Flags().StringVar(&flagValueHeuristic, "value-heuristic", "", "override the value heuristic")
	cmd.Flags().StringVar(&flagErrorProjection, "error-projection", "full", "full, incremental, or null")
	cmd.Flags().Float64Var(&flagPlateauEscapeProb, "plateau-escape-probability", 0,
		"probability of accepting a zero-improvement move to escape a plateau")
	cmd.Flags().IntVar(&flagTabuLocalMin, "tabu-local-min", 0, "override tabu_time_local_min (0 = derive from model size)")
	cmd.Flags().IntVar(&flagTabuSelected, "tabu-selected", 0, "override tabu_time_selected (0 = derive from model size)")
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed for reproducible runs")
	cmd.Flags().IntVar(&flagParallelRuns, "parallel-runs", 1, "number of independent cores to run via internal/parallel")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "enable structured zap logging")

	cmd.PreRunE = func(c *cobra.Command, _ []string) error {
		flagSeedSet = c.Flags().Changed("seed")
		return nil
	}

	return cmd
}

func runSolve(cmd *cobra.Command, _ []string) error {
	build, ok := scenarios[flagScenario]
	if !ok {
		return fmt.Errorf("unknown scenario %q", flagScenario)
	}

	opts := ghost.DefaultOptions(flagSatisfactionTimeout)
	options := []ghost.Option{
		ghost.WithSamplings(flagSamplings),
		ghost.WithNoRandomStartingPoint(flagNoRandomStart),
		ghost.WithPermutationProblem(flagPermutation),
		ghost.WithErrorProjection(flagErrorProjection),
		ghost.WithPlateauEscapeProbability(flagPlateauEscapeProb),
		ghost.WithTabuTimes(flagTabuLocalMin, flagTabuSelected),
		ghost.WithParallelRuns(flagParallelRuns > 1),
	}
	if flagOptimizationTimeout > 0 {
		options = append(options, ghost.WithOptimizationTimeout(flagOptimizationTimeout))
	}
	if flagHeuristicFamily != "" {
		options = append(options, ghost.WithHeuristicFamily(flagHeuristicFamily))
	}
	if flagVariableCandidates != "" {
		options = append(options, ghost.WithVariableCandidatesHeuristic(flagVariableCandidates))
	}
	if flagVariableHeuristic != "" {
		options = append(options, ghost.WithVariableHeuristic(flagVariableHeuristic))
	}
	if flagValueHeuristic != "" {
		options = append(options, ghost.WithValueHeuristic(flagValueHeuristic))
	}
	if flagSeedSet {
		options = append(options, ghost.WithRNGSeed(flagSeed))
	}
	if flagVerbose {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer zl.Sync() //nolint:errcheck
		options = append(options, ghost.WithLogger(ghost.NewZapLogger(zl.Sugar())))
	}
	if err := opts.Apply(options...); err != nil {
		return fmt.Errorf("applying options: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := solve(ctx, build, opts)
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	fmt.Printf("scenario=%s feasible=%v cost=%.4f solution=%v\n",
		flagScenario, result.Feasible, result.Cost, result.Solution)
	return nil
}

// solve dispatches to internal/parallel when more than one core was
// requested, otherwise builds and runs a single Driver directly.
func solve(ctx context.Context, build parallel.ModelFactory, opts *ghost.SolveOptions) (ghost.Result, error) {
	if flagParallelRuns <= 1 {
		model, err := build()
		if err != nil {
			return ghost.Result{}, err
		}
		driver, err := ghost.NewDriver(model, opts)
		if err != nil {
			return ghost.Result{}, err
		}
		return driver.Solve(ctx)
	}
	return parallel.Solve(ctx, build, opts, flagParallelRuns)
}
