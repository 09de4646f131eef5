package ghost

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumTargetConstraint reports |sum(values) - target| and supports
// DeltaError directly, used to test the incremental path.
type sumTargetConstraint struct {
	BaseConstraint
	vars   []*Variable
	target int
}

func newSumTargetConstraint(gen *IDGenerator, vars []*Variable, target int) *sumTargetConstraint {
	ids := make([]int, len(vars))
	for i, v := range vars {
		ids[i] = v.ID()
	}
	return &sumTargetConstraint{BaseConstraint: NewBaseConstraint(gen, ids), vars: vars, target: target}
}

func (c *sumTargetConstraint) sum() int {
	var s int
	for _, v := range c.vars {
		s += v.Value()
	}
	return s
}

func (c *sumTargetConstraint) Error() (float64, error) {
	return math.Abs(float64(c.sum() - c.target)), nil
}

func (c *sumTargetConstraint) DeltaError(varIDs []int, candidateValues []int) (float64, error) {
	newSum := c.sum()
	for i, id := range varIDs {
		for _, v := range c.vars {
			if v.ID() == id {
				newSum += candidateValues[i] - v.Value()
			}
		}
	}
	before := math.Abs(float64(c.sum() - c.target))
	after := math.Abs(float64(newSum - c.target))
	return after - before, nil
}

// fallbackConstraint never implements DeltaError (inherits
// BaseConstraint's ErrDeltaNotDefined default), to exercise the
// simulate/evaluate/restore recovery path.
type fallbackConstraint struct {
	BaseConstraint
	vars []*Variable
}

func newFallbackConstraint(gen *IDGenerator, vars []*Variable) *fallbackConstraint {
	ids := make([]int, len(vars))
	for i, v := range vars {
		ids[i] = v.ID()
	}
	return &fallbackConstraint{BaseConstraint: NewBaseConstraint(gen, ids), vars: vars}
}

func (c *fallbackConstraint) Error() (float64, error) {
	var s int
	for _, v := range c.vars {
		s += v.Value()
	}
	return math.Abs(float64(s - 5)), nil
}

func buildTwoVarModel(t *testing.T) (*Model, []*Variable) {
	t.Helper()
	gen := NewIDGenerator()
	vars := []*Variable{
		NewVariableInterval(gen, "a", 10, 0),
		NewVariableInterval(gen, "b", 10, 0),
	}
	constraint := newSumTargetConstraint(gen, vars, 5)
	m, err := NewModel(vars, []Constraint{constraint}, nil, nil)
	require.NoError(t, err)
	return m, vars
}

func TestNewModelRejectsEmptyVariables(t *testing.T) {
	_, err := NewModel(nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestNewModelRejectsVariableOutOfScope(t *testing.T) {
	gen := NewIDGenerator()
	vars := []*Variable{NewVariableInterval(gen, "a", 5, 0)}
	foreign := NewVariableInterval(gen, "ghost", 5, 0)
	constraint := newSumTargetConstraint(gen, []*Variable{vars[0], foreign}, 0)
	_, err := NewModel(vars, []Constraint{constraint}, nil, nil)
	assert.ErrorIs(t, err, ErrVariableOutOfScope)
}

func TestNewModelInstallsNullDefaults(t *testing.T) {
	m, _ := buildTwoVarModel(t)
	assert.IsType(t, &NullObjective{}, m.Objective())
	assert.IsType(t, NullAuxiliaryData{}, m.Auxiliary())
}

func TestSimulateDeltaDoesNotMutateVariables(t *testing.T) {
	m, vars := buildTwoVarModel(t)
	require.NoError(t, vars[0].SetValue(2))
	require.NoError(t, vars[1].SetValue(3))
	_, err := m.RefreshConstraintErrors()
	require.NoError(t, err)

	before := []int{vars[0].Value(), vars[1].Value()}
	_, err = m.SimulateDelta(0, []int{vars[0].ID()}, []int{9})
	require.NoError(t, err)
	assert.Equal(t, before, []int{vars[0].Value(), vars[1].Value()})
}

func TestSimulateDeltaMatchesBeforeAfter(t *testing.T) {
	m, vars := buildTwoVarModel(t)
	require.NoError(t, vars[0].SetValue(1))
	require.NoError(t, vars[1].SetValue(1))
	before, err := m.RefreshConstraintErrors()
	require.NoError(t, err)

	delta, err := m.SimulateDelta(0, []int{vars[0].ID()}, []int{4})
	require.NoError(t, err)

	require.NoError(t, vars[0].SetValue(4))
	after, err := m.RefreshConstraintErrors()
	require.NoError(t, err)
	require.NoError(t, vars[0].SetValue(1))

	assert.InDelta(t, after-before, delta, 1e-9)
}

func TestConstraintHandleFallsBackOnDeltaNotDefined(t *testing.T) {
	gen := NewIDGenerator()
	vars := []*Variable{
		NewVariableInterval(gen, "a", 10, 0),
		NewVariableInterval(gen, "b", 10, 0),
	}
	constraint := newFallbackConstraint(gen, vars)
	m, err := NewModel(vars, []Constraint{constraint}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, vars[0].SetValue(1))
	require.NoError(t, vars[1].SetValue(1))
	_, err = m.RefreshConstraintErrors()
	require.NoError(t, err)

	delta, err := m.SimulateDelta(0, []int{vars[0].ID()}, []int{4})
	require.NoError(t, err)
	assert.InDelta(t, -3, delta, 1e-9)
	// Falling back must still restore the probed variable.
	assert.Equal(t, 1, vars[0].Value())
}

func TestApplySolutionRejectsWrongLength(t *testing.T) {
	m, _ := buildTwoVarModel(t)
	err := m.ApplySolution([]int{1})
	assert.Error(t, err)
}

// recordingConstraint records the value of every ConditionalUpdate call.
type recordingConstraint struct {
	BaseConstraint
	updates []int
}

func (c *recordingConstraint) Error() (float64, error) { return 0, nil }

func (c *recordingConstraint) ConditionalUpdate(_ int, newValue int) error {
	c.updates = append(c.updates, newValue)
	return nil
}

func TestCommitConditionalUpdatesInvokesEveryIncidentConstraint(t *testing.T) {
	gen := NewIDGenerator()
	vars := []*Variable{
		NewVariableInterval(gen, "a", 10, 0),
		NewVariableInterval(gen, "b", 10, 0),
	}
	both := &recordingConstraint{BaseConstraint: NewBaseConstraint(gen, []int{vars[0].ID(), vars[1].ID()})}
	onlyA := &recordingConstraint{BaseConstraint: NewBaseConstraint(gen, []int{vars[0].ID()})}
	onlyB := &recordingConstraint{BaseConstraint: NewBaseConstraint(gen, []int{vars[1].ID()})}
	m, err := NewModel(vars, []Constraint{both, onlyA, onlyB}, nil, nil)
	require.NoError(t, err)

	err = m.CommitConditionalUpdates(0, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, both.updates)
	assert.Equal(t, []int{7}, onlyA.updates)
	assert.Empty(t, onlyB.updates, "a constraint not reading the variable must not be updated")
}
