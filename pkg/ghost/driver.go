package ghost

import (
	"context"
	"fmt"
	"math"
	mathrand "math/rand"
	"time"
)

// Driver runs the outer optimization / inner satisfaction search described
// in spec §4.6 against one Model. A Driver is single-use: construct one
// per Solve call (or let internal/parallel construct several, one per
// independent core).
type Driver struct {
	model *Model
	opts  *SolveOptions
	rng   *mathrand.Rand

	data *SearchUnitData
	best *BestRecord

	isOptimization bool
	tabuLocalMin   int
	tabuSelected   int
}

// NewDriver validates opts and builds a Driver ready to Solve m.
func NewDriver(m *Model, opts *SolveOptions) (*Driver, error) {
	if opts.SatisfactionTimeout <= 0 {
		return nil, fmt.Errorf("ghost: satisfaction timeout must be > 0")
	}
	if opts.VariableCandidates == nil || opts.Variable == nil || opts.Value == nil || opts.Projection == nil {
		return nil, fmt.Errorf("ghost: options must set VariableCandidates, Variable, Value and Projection")
	}

	localMin, selected := opts.resolvedTabuTimes(m.NumVariables())
	d := &Driver{
		model:          m,
		opts:           opts,
		rng:            newRNG(opts.RNGSeed),
		data:           NewSearchUnitData(m.NumVariables(), m.NumConstraints()),
		best:           newBestRecord(m.NumVariables()),
		isOptimization: !isNullObjective(m.Objective()),
		tabuLocalMin:   localMin,
		tabuSelected:   selected,
	}
	d.data.IsOptimization = d.isOptimization
	return d, nil
}

func isNullObjective(o Objective) bool {
	_, ok := o.(*NullObjective)
	return ok
}

// Solve runs the full outer/inner search against the driver's model until
// it either finds an optimization-quality solution, exhausts
// opts.OptimizationTimeout, or ctx is cancelled (cooperative cancellation
// for parallel-restart use, spec §5). Deadline expiry is a normal
// outcome: Solve returns the best solution seen so far with Feasible
// reflecting whether any zero-error assignment was ever found.
func (d *Driver) Solve(ctx context.Context) (Result, error) {
	start := time.Now()
	firstRound := true

	for {
		if time.Since(start) >= d.opts.OptimizationTimeout {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if !d.isOptimization && d.best.Feasible {
			break
		}

		if err := d.setStartingAssignment(firstRound); err != nil {
			return Result{}, err
		}
		firstRound = false

		d.data.ResetRound()
		roundDeadline := start.Add(d.opts.OptimizationTimeout)
		if satDeadline := time.Now().Add(d.opts.SatisfactionTimeout); satDeadline.Before(roundDeadline) {
			roundDeadline = satDeadline
		}

		roundFeasible, err := d.innerLoop(ctx, roundDeadline)
		if err != nil {
			return Result{}, err
		}

		if roundFeasible {
			cost, err := normalizedCost(d.model.Objective())
			if err != nil {
				return Result{}, err
			}
			sol := d.model.Solution()
			if d.best.considerOptimization(cost, sol) {
				ppCost, ppSol := d.model.Objective().PostprocessSatisfaction(cost, append([]int(nil), sol...))
				if ppCost < d.best.OptimizationCost && len(ppSol) == len(d.best.Solution) {
					d.best.OptimizationCost = ppCost
					copy(d.best.Solution, ppSol)
				}
				d.opts.Logger.Infow("ghost: new best", "cost", d.best.OptimizationCost, "moves", d.data.LocalMoves)
			}
		}
	}

	if d.best.Feasible {
		cost, sol := d.model.Objective().PostprocessOptimization(d.best.OptimizationCost, append([]int(nil), d.best.Solution...))
		if cost < d.best.OptimizationCost && len(sol) == len(d.best.Solution) {
			d.best.OptimizationCost = cost
			copy(d.best.Solution, sol)
		}
	}

	result := Result{
		Feasible: d.best.Feasible,
		Solution: append([]int(nil), d.best.Solution...),
	}
	if d.best.Feasible {
		result.Cost = d.denormalizedCost(d.best.OptimizationCost)
	} else {
		result.Cost = d.best.SatisfactionError
	}
	return result, nil
}

// denormalizedCost undoes the minimize/maximize normalization so Result.Cost
// reads in the objective's own sense.
func (d *Driver) denormalizedCost(cost float64) float64 {
	if d.model.Objective().Direction() == Maximize {
		return -cost
	}
	return cost
}

// setStartingAssignment implements spec 4.6 outer-loop step 1.
func (d *Driver) setStartingAssignment(firstRound bool) error {
	if firstRound && d.opts.NoRandomStartingPoint {
		return nil
	}
	if d.opts.PermutationProblem {
		return d.setInitialPermutation()
	}
	return d.setInitialAssignment()
}

// setInitialAssignment runs opts.Samplings Monte-Carlo restarts, each one
// sampling every variable uniformly from its domain, and keeps the
// lowest-total-error restart.
func (d *Driver) setInitialAssignment() error {
	n := d.model.NumVariables()
	bestErr := math.Inf(1)
	bestAssignment := make([]int, n)

	for s := 0; s < d.opts.Samplings; s++ {
		for _, v := range d.model.Variables() {
			v.PickRandomValue(d.rng)
		}
		total, err := d.model.RefreshConstraintErrors()
		if err != nil {
			return err
		}
		if total < bestErr {
			bestErr = total
			for i, v := range d.model.Variables() {
				bestAssignment[i] = v.Value()
			}
		}
	}
	return d.model.ApplySolution(bestAssignment)
}

// setInitialPermutation runs opts.Samplings random-swap restarts over the
// model's initial value multiset (pairwise swaps applied with probability
// ~0.5 each), keeping the lowest-total-error restart.
func (d *Driver) setInitialPermutation() error {
	n := d.model.NumVariables()
	bestErr := math.Inf(1)
	bestAssignment := make([]int, n)
	bestIndexes := make([]int, n)

	baseline := make([]int, n)
	for i, v := range d.model.Variables() {
		baseline[i] = v.Value()
	}

	for s := 0; s < d.opts.Samplings; s++ {
		if err := d.model.ApplySolution(baseline); err != nil {
			return err
		}
		vars := d.model.Variables()
		for i := range vars {
			vars[i].SetIndex(i)
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if d.rng.Float64() < 0.5 {
					if err := d.swapVariables(vars[i], vars[j]); err != nil {
						return err
					}
				}
			}
		}
		total, err := d.model.RefreshConstraintErrors()
		if err != nil {
			return err
		}
		if total < bestErr {
			bestErr = total
			for i, v := range vars {
				bestAssignment[i] = v.Value()
				bestIndexes[i] = v.Index()
			}
		}
	}

	for i, v := range d.model.Variables() {
		if err := v.SetValue(bestAssignment[i]); err != nil {
			return err
		}
		v.SetIndex(bestIndexes[i])
	}
	return nil
}

// swapVariables exchanges both the value and the index of two variables —
// the permutation-mode move primitive (spec's "swap partner").
func (d *Driver) swapVariables(a, b *Variable) error {
	av, ai := a.Value(), a.Index()
	bv, bi := b.Value(), b.Index()
	if err := a.SetValue(bv); err != nil {
		return err
	}
	a.SetIndex(bi)
	if err := b.SetValue(av); err != nil {
		_ = a.SetValue(av)
		a.SetIndex(ai)
		return err
	}
	b.SetIndex(ai)
	return nil
}

// innerLoop runs the satisfaction round described in spec 4.6, returning
// whether it ended with zero satisfaction error.
func (d *Driver) innerLoop(ctx context.Context, deadline time.Time) (bool, error) {
	roundBest := math.Inf(1)

	for {
		total, err := d.model.RefreshConstraintErrors()
		if err != nil {
			return false, err
		}
		total = collapseEpsilon(total)
		d.data.SatisfactionError = total

		d.opts.Projection.Project(d.model, d.data)
		d.data.DecayTabu()

		candidates := d.opts.VariableCandidates.Candidates(d.model, d.data)
		if candidates.Empty() {
			candidates = d.opts.VariableCandidates.Unfiltered(d.data)
		}

		vi := d.opts.Variable.SelectVariable(candidates, d.rng)
		variable := d.model.VariableAt(vi)

		candidateKeys, err := d.buildDeltaErrors(vi, variable)
		if err != nil {
			return false, err
		}

		if len(candidateKeys) == 0 {
			// Domain of size 1 (or, in permutation mode, a single
			// variable): no move is possible from here. Tabu it so
			// the next iteration looks elsewhere, per spec's
			// boundary-case note.
			d.data.Tabu[vi] = d.tabuLocalMin
		} else {
			chosenKey, err := d.opts.Value.SelectValue(d.model, d.model.Objective(), d.data, variable, candidateKeys, d.opts.PermutationProblem, d.rng)
			if err != nil {
				return false, err
			}
			d.data.MinConflict = collapseEpsilon(d.data.MinConflict)

			commit := d.data.MinConflict < 0
			if !commit && d.data.MinConflict == 0 && d.opts.PlateauEscapeProbability > 0 {
				commit = d.rng.Float64() < d.opts.PlateauEscapeProbability
			}

			if commit {
				if err := d.commitMove(vi, variable, chosenKey); err != nil {
					return false, err
				}
				d.data.SatisfactionError = collapseEpsilon(d.data.SatisfactionError + d.data.MinConflict)
				d.data.LocalMoves++
			} else {
				d.data.Tabu[vi] = d.tabuLocalMin
				d.freezeImprovingSibling(candidates, vi)
			}
		}

		if d.data.SatisfactionError < roundBest {
			roundBest = d.data.SatisfactionError
			d.best.considerSatisfaction(roundBest, d.model.Solution())
		}

		if roundBest == 0 {
			return true, nil
		}
		if !time.Now().Before(deadline) {
			return false, nil
		}
		if ctx.Err() != nil {
			return false, nil
		}
	}
}

// freezeImprovingSibling implements spec 4.6 step 9's second clause:
// besides tabu-freezing the variable just examined, the first other
// variable in candidates.Indexes is frozen for the shorter tabuSelected
// window, so the next iteration doesn't immediately re-examine the same
// local minimum from a different angle. Whether that variable's own move
// would improve things is not checked, and weight-based candidates
// (Antidote Search, which leaves Indexes empty) freeze nothing here.
func (d *Driver) freezeImprovingSibling(candidates VariableCandidates, chosen int) {
	for _, vi := range candidates.Indexes {
		if vi != chosen {
			d.data.Tabu[vi] = d.tabuSelected
			return
		}
	}
}

// buildDeltaErrors fills data.DeltaErrors for the chosen variable and
// returns the candidate key list (spec 4.6 step 6): domain values
// excluding the current one in assignment mode, or other variables' ids
// in permutation mode.
func (d *Driver) buildDeltaErrors(vi int, variable *Variable) ([]int, error) {
	d.data.clearDeltaErrors()

	if !d.opts.PermutationProblem {
		current := variable.Value()
		incident := d.model.IncidentConstraints(vi)
		var keys []int
		for _, val := range variable.PossibleValues() {
			if val == current {
				continue
			}
			deltas := make([]float64, d.model.NumConstraints())
			for _, ci := range incident {
				delta, err := d.model.SimulateDelta(ci, []int{variable.ID()}, []int{val})
				if err != nil {
					return nil, err
				}
				deltas[ci] = delta
			}
			d.data.DeltaErrors[val] = deltas
			keys = append(keys, val)
		}
		return keys, nil
	}

	var keys []int
	for _, partner := range d.model.Variables() {
		if partner.ID() == variable.ID() {
			continue
		}
		partnerIdx, _ := d.model.InternalIndex(partner.ID())
		constraintSet := unionConstraints(d.model.IncidentConstraints(vi), d.model.IncidentConstraints(partnerIdx))
		deltas := make([]float64, d.model.NumConstraints())
		for _, ci := range constraintSet {
			delta, err := d.model.SimulateDelta(ci, []int{variable.ID(), partner.ID()}, []int{partner.Value(), variable.Value()})
			if err != nil {
				return nil, err
			}
			deltas[ci] = delta
		}
		d.data.DeltaErrors[partner.ID()] = deltas
		keys = append(keys, partner.ID())
	}
	return keys, nil
}

// unionConstraints merges two sorted-by-append constraint index lists
// without duplicates. Lists are small (a variable's typical degree), so a
// linear scan beats allocating a set.
func unionConstraints(a, b []int) []int {
	out := append([]int(nil), a...)
	for _, ci := range b {
		found := false
		for _, existing := range out {
			if existing == ci {
				found = true
				break
			}
		}
		if !found {
			out = append(out, ci)
		}
	}
	return out
}

// commitMove applies the chosen move: an assignment in value mode, or a
// swap in permutation mode, always routing through AuxiliaryData.Update
// before the corresponding Variable.SetValue and ConditionalUpdate after
// (spec §5's happens-before chain).
func (d *Driver) commitMove(vi int, variable *Variable, chosenKey int) error {
	aux := d.model.Auxiliary()

	if !d.opts.PermutationProblem {
		if err := aux.Update(variable.ID(), chosenKey); err != nil {
			return err
		}
		if err := variable.SetValue(chosenKey); err != nil {
			return err
		}
		return d.model.CommitConditionalUpdates(vi, chosenKey)
	}

	partnerIdx, ok := d.model.InternalIndex(chosenKey)
	if !ok {
		return variableOutOfScope(-1, chosenKey)
	}
	partner := d.model.VariableAt(partnerIdx)

	origValue, origIndex := variable.Value(), variable.Index()
	partnerValue, partnerIndex := partner.Value(), partner.Index()

	if err := aux.Update(variable.ID(), partnerValue); err != nil {
		return err
	}
	if err := variable.SetValue(partnerValue); err != nil {
		return err
	}
	variable.SetIndex(partnerIndex)

	if err := aux.Update(partner.ID(), origValue); err != nil {
		return err
	}
	if err := partner.SetValue(origValue); err != nil {
		return err
	}
	partner.SetIndex(origIndex)

	if err := d.model.CommitConditionalUpdates(vi, partnerValue); err != nil {
		return err
	}
	return d.model.CommitConditionalUpdates(partnerIdx, origValue)
}

// collapseEpsilonThreshold is the numeric-hygiene threshold spec 4.6 step
// 11 calls for: values smaller in magnitude than this collapse to zero.
const collapseEpsilonThreshold = 1e-10

func collapseEpsilon(v float64) float64 {
	if math.Abs(v) < collapseEpsilonThreshold {
		return 0
	}
	return v
}
