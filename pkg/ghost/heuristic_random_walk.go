package ghost

// RandomWalkVariableCandidates returns every variable, uniformly eligible —
// no error-driven bias and, unlike Adaptive/Antidote Search, no tabu
// exclusion either; a pure random walk ignores search history entirely.
type RandomWalkVariableCandidates struct{}

// Name returns "random-walk".
func (RandomWalkVariableCandidates) Name() string { return "random-walk" }

// Candidates implements VariableCandidatesHeuristic.
func (RandomWalkVariableCandidates) Candidates(_ *Model, data *SearchUnitData) VariableCandidates {
	return RandomWalkVariableCandidates{}.Unfiltered(data)
}

// Unfiltered returns every variable, ignoring tabu.
func (RandomWalkVariableCandidates) Unfiltered(data *SearchUnitData) VariableCandidates {
	all := make([]int, data.NumVariables)
	for i := range all {
		all[i] = i
	}
	return VariableCandidates{Indexes: all}
}

// RandomWalkVariableHeuristic picks uniformly among the full candidate
// list.
type RandomWalkVariableHeuristic struct{}

// Name returns "random-walk".
func (RandomWalkVariableHeuristic) Name() string { return "random-walk" }

// SelectVariable implements VariableHeuristic.
func (RandomWalkVariableHeuristic) SelectVariable(candidates VariableCandidates, rng RandSource) int {
	return candidates.Indexes[rng.Intn(len(candidates.Indexes))]
}

// RandomWalkValueHeuristic picks uniformly among candidate keys,
// ignoring delta-error entirely — the point of a pure random walk.
type RandomWalkValueHeuristic struct{}

// Name returns "random-walk".
func (RandomWalkValueHeuristic) Name() string { return "random-walk" }

// SelectValue implements ValueHeuristic.
func (RandomWalkValueHeuristic) SelectValue(_ *Model, _ Objective, data *SearchUnitData, _ *Variable, candidateKeys []int, _ bool, rng RandSource) (int, error) {
	chosen := candidateKeys[rng.Intn(len(candidateKeys))]
	data.MinConflict = sumDeltas(data.DeltaErrors[chosen])
	return chosen, nil
}
