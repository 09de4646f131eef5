package ghost

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAdaptiveTestModel(t *testing.T) (*Model, *SearchUnitData) {
	t.Helper()
	gen := NewIDGenerator()
	vars := []*Variable{
		NewVariableInterval(gen, "a", 5, 0),
		NewVariableInterval(gen, "b", 5, 0),
	}
	c := newSumTargetConstraint(gen, vars, 5)
	m, err := NewModel(vars, []Constraint{c}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, vars[0].SetValue(1))
	require.NoError(t, vars[1].SetValue(1))
	_, err = m.RefreshConstraintErrors()
	require.NoError(t, err)

	data := NewSearchUnitData(m.NumVariables(), m.NumConstraints())
	FullErrorProjection{}.Project(m, data)
	data.SatisfactionError = m.ConstraintError(0)
	return m, data
}

func TestAdaptiveVariableCandidatesExcludesTabu(t *testing.T) {
	m, data := buildAdaptiveTestModel(t)
	data.Tabu[0] = 3

	candidates := AdaptiveVariableCandidates{}.Candidates(m, data)
	assert.NotContains(t, candidates.Indexes, 0)
}

func TestAdaptiveVariableCandidatesUnfilteredIgnoresTabu(t *testing.T) {
	m, data := buildAdaptiveTestModel(t)
	data.Tabu[0] = 3
	data.Tabu[1] = 3

	filtered := AdaptiveVariableCandidates{}.Candidates(m, data)
	assert.True(t, filtered.Empty())

	unfiltered := AdaptiveVariableCandidates{}.Unfiltered(data)
	assert.Len(t, unfiltered.Indexes, 2)
}

func TestAdaptiveValueHeuristicPicksMinimalSumDelta(t *testing.T) {
	m, data := buildAdaptiveTestModel(t)
	variable := m.VariableAt(0)

	data.DeltaErrors[2] = []float64{1} // candidate value 2: summed delta 1
	data.DeltaErrors[4] = []float64{3} // candidate value 4: summed delta 3, worse

	rng := rand.New(rand.NewSource(1))
	chosen, err := AdaptiveValueHeuristic{}.SelectValue(m, NewNullObjective(), data, variable, []int{2, 4}, false, rng)
	require.NoError(t, err)
	assert.Equal(t, 2, chosen)
	assert.InDelta(t, 1, data.MinConflict, 1e-9)
}
