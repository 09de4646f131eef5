package ghost

// VariableCandidates is what a VariableCandidatesHeuristic hands to a
// VariableHeuristic. Exactly one of the two fields is populated, matching
// which representation the paired VariableHeuristic expects:
//
//   - Indexes: an explicit tied-best candidate list (Adaptive Search,
//     Random Walk) — the variable heuristic picks uniformly among them.
//   - Weights: the full per-variable vector, tabu-frozen entries zeroed
//     (Antidote Search) — the variable heuristic samples from it as a
//     discrete distribution.
type VariableCandidates struct {
	Indexes []int
	Weights []float64
}

// Empty reports whether this is the degenerate "no non-tabu candidate"
// case the driver must detect and recover from (spec 4.6 step 4).
func (c VariableCandidates) Empty() bool {
	if len(c.Indexes) > 0 {
		return false
	}
	for _, w := range c.Weights {
		if w > 0 {
			return false
		}
	}
	return true
}

// VariableCandidatesHeuristic decides which variables are eligible for
// selection on this iteration.
type VariableCandidatesHeuristic interface {
	Name() string
	Candidates(m *Model, data *SearchUnitData) VariableCandidates

	// Unfiltered returns the bypass candidate set the driver substitutes
	// when Candidates comes back Empty() — every variable is tabu-frozen
	// at once — so the search never stalls (spec 4.6 step 4's "dummy
	// non-empty sentinel"). It must return the same Indexes-vs-Weights
	// shape Candidates does, just without the tabu/violation filtering.
	Unfiltered(data *SearchUnitData) VariableCandidates
}

// VariableHeuristic picks one variable (by internal index) among the
// candidates a VariableCandidatesHeuristic produced.
type VariableHeuristic interface {
	Name() string
	SelectVariable(candidates VariableCandidates, rng RandSource) int
}

// ValueHeuristic decides, for the variable the VariableHeuristic just
// chose, which candidate key to move to — an assignment-mode domain value
// or, in permutation mode, a partner variable id. Implementations must
// write back data.MinConflict (and, for Optimization-Space, data.OptDelta)
// before returning.
type ValueHeuristic interface {
	Name() string
	// SelectValue returns the chosen candidate key. candidateKeys is
	// data.DeltaErrors' key population restricted to this call — always
	// the same slice the driver just built.
	SelectValue(m *Model, obj Objective, data *SearchUnitData, variable *Variable, candidateKeys []int, permutation bool, rng RandSource) (int, error)
}

// sumDeltas sums a per-constraint delta vector.
func sumDeltas(deltas []float64) float64 {
	var s float64
	for _, d := range deltas {
		s += d
	}
	return s
}
