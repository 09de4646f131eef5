package ghost

import "math"

// OptimizationSpaceValueHeuristic chooses the candidate that minimizes the
// (normalized) objective cost, breaking ties by the smallest summed
// constraint-error delta. It is a value heuristic only — pair it with
// Adaptive or Antidote's variable-candidates/variable heuristics.
type OptimizationSpaceValueHeuristic struct{}

// Name returns "optimization-space".
func (OptimizationSpaceValueHeuristic) Name() string { return "optimization-space" }

// SelectValue implements ValueHeuristic. For each candidate it temporarily
// applies the move (a value assignment, or — in permutation mode — a
// swap with the named partner variable), measures the normalized
// objective cost, and restores the original state before trying the next
// candidate.
func (h OptimizationSpaceValueHeuristic) SelectValue(m *Model, obj Objective, data *SearchUnitData, variable *Variable, candidateKeys []int, permutation bool, rng RandSource) (int, error) {
	baseCost, err := normalizedCost(obj)
	if err != nil {
		return 0, err
	}

	costs := make([]float64, len(candidateKeys))
	for i, key := range candidateKeys {
		c, err := h.trialCost(m, obj, variable, key, permutation)
		if err != nil {
			return 0, err
		}
		costs[i] = c
	}

	bestCost := math.Inf(1)
	var tied []int
	for i, c := range costs {
		switch {
		case c < bestCost-tieEpsilon:
			bestCost = c
			tied = tied[:0]
			tied = append(tied, i)
		case c <= bestCost+tieEpsilon:
			tied = append(tied, i)
		}
	}

	bestDelta := math.Inf(1)
	var finalists []int
	for _, i := range tied {
		d := sumDeltas(data.DeltaErrors[candidateKeys[i]])
		switch {
		case d < bestDelta-tieEpsilon:
			bestDelta = d
			finalists = finalists[:0]
			finalists = append(finalists, i)
		case d <= bestDelta+tieEpsilon:
			finalists = append(finalists, i)
		}
	}

	chosen := finalists[rng.Intn(len(finalists))]
	data.MinConflict = bestDelta
	data.OptDelta = bestCost - baseCost
	return candidateKeys[chosen], nil
}

// trialCost measures the normalized objective cost that would result from
// applying the assignment- or permutation-mode move named by key, leaving
// all variable state unchanged on return.
func (OptimizationSpaceValueHeuristic) trialCost(m *Model, obj Objective, variable *Variable, key int, permutation bool) (float64, error) {
	if !permutation {
		original := variable.Value()
		if err := variable.SetValue(key); err != nil {
			return 0, err
		}
		cost, err := normalizedCost(obj)
		_ = variable.SetValue(original)
		return cost, err
	}

	partnerIdx, ok := m.InternalIndex(key)
	if !ok {
		return 0, variableOutOfScope(-1, key)
	}
	partner := m.VariableAt(partnerIdx)

	origValue, origIndex := variable.Value(), variable.Index()
	partnerValue, partnerIndex := partner.Value(), partner.Index()

	if err := variable.SetValue(partnerValue); err != nil {
		return 0, err
	}
	variable.SetIndex(partnerIndex)
	if err := partner.SetValue(origValue); err != nil {
		_ = variable.SetValue(origValue)
		variable.SetIndex(origIndex)
		return 0, err
	}
	partner.SetIndex(origIndex)

	cost, err := normalizedCost(obj)

	_ = variable.SetValue(origValue)
	variable.SetIndex(origIndex)
	_ = partner.SetValue(partnerValue)
	partner.SetIndex(partnerIndex)

	return cost, err
}
