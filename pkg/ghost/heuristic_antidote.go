package ghost

// sampleWeighted picks an index into weights proportionally to its
// weight. If every weight is zero (or weights is empty), it falls back to
// a uniform pick over the full length.
func sampleWeighted(weights []float64, rng RandSource) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return i
		}
	}
	return len(weights) - 1
}

// AntidoteVariableCandidates implements Antidote Search's candidate step:
// the full per-variable error vector with tabu-frozen entries zeroed,
// handed to the paired variable heuristic as sampling weights.
type AntidoteVariableCandidates struct{}

// Name returns "antidote".
func (AntidoteVariableCandidates) Name() string { return "antidote" }

// Candidates implements VariableCandidatesHeuristic.
func (AntidoteVariableCandidates) Candidates(_ *Model, data *SearchUnitData) VariableCandidates {
	for vi := 0; vi < data.NumVariables; vi++ {
		if data.Tabu[vi] > 0 {
			data.ErrorDistribution[vi] = 0
		} else {
			data.ErrorDistribution[vi] = data.ErrorVariables[vi]
		}
	}
	return VariableCandidates{Weights: data.ErrorDistribution}
}

// Unfiltered returns the raw per-variable error vector, ignoring tabu.
func (AntidoteVariableCandidates) Unfiltered(data *SearchUnitData) VariableCandidates {
	weights := make([]float64, data.NumVariables)
	copy(weights, data.ErrorVariables)
	return VariableCandidates{Weights: weights}
}

// AntidoteVariableHeuristic samples a variable from the discrete
// distribution Antidote's candidate step produced.
type AntidoteVariableHeuristic struct{}

// Name returns "antidote".
func (AntidoteVariableHeuristic) Name() string { return "antidote" }

// SelectVariable implements VariableHeuristic.
func (AntidoteVariableHeuristic) SelectVariable(candidates VariableCandidates, rng RandSource) int {
	return sampleWeighted(candidates.Weights, rng)
}

// AntidoteValueHeuristic implements Antidote Search's value choice:
// summed constraint deltas are transformed into non-negative
// anti-conflict weights (w = max(0, -delta)) and sampled proportionally,
// falling back to a uniform pick when every candidate has weight zero.
type AntidoteValueHeuristic struct{}

// Name returns "antidote".
func (AntidoteValueHeuristic) Name() string { return "antidote" }

// SelectValue implements ValueHeuristic.
func (AntidoteValueHeuristic) SelectValue(_ *Model, _ Objective, data *SearchUnitData, _ *Variable, candidateKeys []int, _ bool, rng RandSource) (int, error) {
	sums := make([]float64, len(candidateKeys))
	weights := make([]float64, len(candidateKeys))
	for i, key := range candidateKeys {
		s := sumDeltas(data.DeltaErrors[key])
		sums[i] = s
		if w := -s; w > 0 {
			weights[i] = w
		}
	}
	chosen := sampleWeighted(weights, rng)
	data.MinConflict = sums[chosen]
	return candidateKeys[chosen], nil
}
