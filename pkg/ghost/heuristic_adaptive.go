package ghost

import "math"

// variableInViolatedConstraint reports whether the variable at internal
// index vi participates in at least one constraint whose cached error is
// currently greater than zero.
func variableInViolatedConstraint(m *Model, data *SearchUnitData, vi int) bool {
	for _, ci := range m.IncidentConstraints(vi) {
		if data.ErrorConstraints[ci] > 0 {
			return true
		}
	}
	return false
}

// AdaptiveVariableCandidates implements Adaptive Search's greedy
// worst-first candidate selection: every variable tied at the maximum
// error, excluding tabu-frozen variables and, unless the driver is
// optimizing over an already-feasible assignment, excluding variables that
// read no currently-violated constraint.
type AdaptiveVariableCandidates struct{}

// Name returns "adaptive".
func (AdaptiveVariableCandidates) Name() string { return "adaptive" }

// Candidates implements VariableCandidatesHeuristic.
func (AdaptiveVariableCandidates) Candidates(m *Model, data *SearchUnitData) VariableCandidates {
	maxErr := math.Inf(-1)
	var eligible []int
	freeAtZero := data.IsOptimization && data.SatisfactionError == 0
	for vi := 0; vi < data.NumVariables; vi++ {
		if data.Tabu[vi] > 0 {
			continue
		}
		if !freeAtZero && !variableInViolatedConstraint(m, data, vi) {
			continue
		}
		e := data.ErrorVariables[vi]
		switch {
		case e > maxErr:
			maxErr = e
			eligible = eligible[:0]
			eligible = append(eligible, vi)
		case e == maxErr:
			eligible = append(eligible, vi)
		}
	}
	return VariableCandidates{Indexes: eligible}
}

// Unfiltered returns every variable, ignoring tabu and violation status.
func (AdaptiveVariableCandidates) Unfiltered(data *SearchUnitData) VariableCandidates {
	all := make([]int, data.NumVariables)
	for i := range all {
		all[i] = i
	}
	return VariableCandidates{Indexes: all}
}

// AdaptiveVariableHeuristic picks uniformly among Adaptive Search's
// tied-worst candidates.
type AdaptiveVariableHeuristic struct{}

// Name returns "adaptive".
func (AdaptiveVariableHeuristic) Name() string { return "adaptive" }

// SelectVariable implements VariableHeuristic.
func (AdaptiveVariableHeuristic) SelectVariable(candidates VariableCandidates, rng RandSource) int {
	return candidates.Indexes[rng.Intn(len(candidates.Indexes))]
}

// AdaptiveValueHeuristic implements Adaptive Search's value choice: sum
// each candidate's per-constraint delta vector, keep those tied at the
// minimum sum, and break ties via the objective's tie-break heuristic when
// optimizing, else uniformly at random.
type AdaptiveValueHeuristic struct{}

// Name returns "adaptive".
func (AdaptiveValueHeuristic) Name() string { return "adaptive" }

// SelectValue implements ValueHeuristic.
func (AdaptiveValueHeuristic) SelectValue(_ *Model, obj Objective, data *SearchUnitData, variable *Variable, candidateKeys []int, permutation bool, rng RandSource) (int, error) {
	bestSum := math.Inf(1)
	var best []int
	for _, key := range candidateKeys {
		s := sumDeltas(data.DeltaErrors[key])
		switch {
		case s < bestSum-tieEpsilon:
			bestSum = s
			best = best[:0]
			best = append(best, key)
		case s <= bestSum+tieEpsilon:
			best = append(best, key)
		}
	}
	data.MinConflict = bestSum

	if len(best) == 1 {
		return best[0], nil
	}
	if data.IsOptimization {
		if permutation {
			return obj.HeuristicValuePermutation(variable, best, rng)
		}
		return obj.HeuristicValue(variable, best, rng)
	}
	return best[rng.Intn(len(best))], nil
}

// tieEpsilon is the numeric-hygiene threshold spec 4.6 step 11 uses to
// collapse near-zero values to zero, reused here for sum-of-deltas ties.
const tieEpsilon = 1e-10
