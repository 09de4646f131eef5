package ghost

import (
	"errors"
	"fmt"
	"math"
)

// constraintHandle wraps a user Constraint with the bookkeeping the driver
// needs: the remap from a constraint's declared variable ids to the
// model's contiguous internal variable indexes (spec 4.2's "internal
// id-remap"), the constraint's cached error, the error it held the last
// time a projection strategy consumed it (for the Incremental strategy),
// and whether delta-error is still believed to be supported.
type constraintHandle struct {
	impl          Constraint
	varIndexes    []int // internal variable indexes, parallel to impl.VariableIDs()
	cachedError   float64
	previousError float64
	deltaOK       bool
}

func newConstraintHandle(impl Constraint, varIndexes []int) *constraintHandle {
	return &constraintHandle{impl: impl, varIndexes: varIndexes, deltaOK: true}
}

// refreshError recomputes and caches the constraint's current error.
func (h *constraintHandle) refreshError() error {
	v, err := h.impl.Error()
	if err != nil {
		return fmt.Errorf("constraint %d: %w", h.impl.ID(), err)
	}
	if math.IsNaN(v) {
		return fmt.Errorf("constraint %d: %w", h.impl.ID(), ErrNaN)
	}
	h.cachedError = v
	return nil
}

// simulateDelta returns the expected change in error() from simultaneously
// assigning candidateValues to the variables named by varIDs, preferring
// the constraint's own DeltaError and falling back to a set/evaluate/
// restore path once DeltaError reports ErrDeltaNotDefined; from then on
// DeltaError is not called again for this constraint. Variable values are
// always restored before return.
func (h *constraintHandle) simulateDelta(variables []*Variable, byID map[int]int, varIDs []int, candidateValues []int) (float64, error) {
	if h.deltaOK {
		d, err := h.impl.DeltaError(varIDs, candidateValues)
		switch {
		case err == nil:
			return d, nil
		case errors.Is(err, ErrDeltaNotDefined):
			h.deltaOK = false
		default:
			return 0, fmt.Errorf("constraint %d: %w", h.impl.ID(), err)
		}
	}

	saved := make([]int, len(varIDs))
	for i, id := range varIDs {
		saved[i] = variables[byID[id]].Value()
	}
	restore := func() {
		for i, id := range varIDs {
			_ = variables[byID[id]].SetValue(saved[i])
		}
	}
	for i, id := range varIDs {
		if err := variables[byID[id]].SetValue(candidateValues[i]); err != nil {
			restore()
			return 0, err
		}
	}
	newErr, err := h.impl.Error()
	restore()
	if err != nil {
		return 0, fmt.Errorf("constraint %d: %w", h.impl.ID(), err)
	}
	if math.IsNaN(newErr) {
		return 0, fmt.Errorf("constraint %d: %w", h.impl.ID(), ErrNaN)
	}
	return newErr - h.cachedError, nil
}

// Model bundles the variables, constraints, objective, and auxiliary data
// of a single solve. The driver holds non-owning references into it and
// never reassigns its slices during a search; only Variable values (and,
// in permutation mode, indexes) change.
type Model struct {
	variables  []*Variable
	byID       map[int]int // variable id -> internal index
	constraints []*constraintHandle
	objective  Objective
	aux        AuxiliaryData

	// incidence[i] lists the internal constraint indexes that read
	// variable i, mirroring each constraint's declared variable set.
	incidence [][]int
}

// NewModel validates and assembles a Model. Every constraint's declared
// variable set must be a subset of vars; objective and aux may be nil, in
// which case NullObjective/NullAuxiliaryData are installed. Validation
// happens once here so the hot loop never has to handle a malformed
// model.
func NewModel(vars []*Variable, constraints []Constraint, objective Objective, aux AuxiliaryData) (*Model, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("ghost: model has no variables")
	}
	byID := make(map[int]int, len(vars))
	for i, v := range vars {
		if _, dup := byID[v.ID()]; dup {
			return nil, fmt.Errorf("ghost: duplicate variable id %d", v.ID())
		}
		byID[v.ID()] = i
	}

	handles := make([]*constraintHandle, len(constraints))
	incidence := make([][]int, len(vars))
	for ci, c := range constraints {
		ids := c.VariableIDs()
		if len(ids) == 0 {
			return nil, fmt.Errorf("ghost: constraint %d reads no variables", c.ID())
		}
		indexes := make([]int, len(ids))
		for j, id := range ids {
			idx, ok := byID[id]
			if !ok {
				return nil, variableOutOfScope(c.ID(), id)
			}
			indexes[j] = idx
			incidence[idx] = append(incidence[idx], ci)
		}
		handles[ci] = newConstraintHandle(c, indexes)
	}

	if objective == nil {
		objective = NewNullObjective()
	}
	if aux == nil {
		aux = NullAuxiliaryData{}
	}

	return &Model{
		variables:   vars,
		byID:        byID,
		constraints: handles,
		objective:   objective,
		aux:         aux,
		incidence:   incidence,
	}, nil
}

// NumVariables returns the number of variables in the model.
func (m *Model) NumVariables() int { return len(m.variables) }

// NumConstraints returns the number of constraints in the model.
func (m *Model) NumConstraints() int { return len(m.constraints) }

// Variables returns the model's variables in internal-index order. The
// returned slice must not be mutated.
func (m *Model) Variables() []*Variable { return m.variables }

// VariableAt returns the variable at internal index i.
func (m *Model) VariableAt(i int) *Variable { return m.variables[i] }

// InternalIndex returns the internal index of the variable with the given
// id.
func (m *Model) InternalIndex(id int) (int, bool) {
	i, ok := m.byID[id]
	return i, ok
}

// Objective returns the model's objective (never nil after NewModel).
func (m *Model) Objective() Objective { return m.objective }

// Auxiliary returns the model's auxiliary data (never nil after NewModel).
func (m *Model) Auxiliary() AuxiliaryData { return m.aux }

// IncidentConstraints returns the internal constraint indexes that read
// the variable at internal index varIdx.
func (m *Model) IncidentConstraints(varIdx int) []int { return m.incidence[varIdx] }

// RefreshConstraintErrors recomputes every constraint's cached error and
// returns the total satisfaction error (the plain sum of constraint
// errors, not weighted by variable count).
func (m *Model) RefreshConstraintErrors() (float64, error) {
	var total float64
	for _, h := range m.constraints {
		if err := h.refreshError(); err != nil {
			return 0, err
		}
		total += h.cachedError
	}
	return total, nil
}

// ConstraintError returns constraint ci's cached error (last refreshed by
// RefreshConstraintErrors).
func (m *Model) ConstraintError(ci int) float64 { return m.constraints[ci].cachedError }

// SimulateDelta simulates the effect of assigning candidateValues to the
// variables named by varIDs on constraint ci's error, without mutating
// any variable on return.
func (m *Model) SimulateDelta(ci int, varIDs []int, candidateValues []int) (float64, error) {
	return m.constraints[ci].simulateDelta(m.variables, m.byID, varIDs, candidateValues)
}

// CommitConditionalUpdates invokes ConditionalUpdate on every constraint
// incident on the given variable, in declaration order, after a move has
// been committed to it.
func (m *Model) CommitConditionalUpdates(varIdx int, newValue int) error {
	id := m.variables[varIdx].ID()
	for _, ci := range m.incidence[varIdx] {
		if err := m.constraints[ci].impl.ConditionalUpdate(id, newValue); err != nil {
			return fmt.Errorf("constraint %d: %w", m.constraints[ci].impl.ID(), err)
		}
	}
	return nil
}

// Solution returns the current value of every variable, in internal-index
// order — the shape the driver's best-so-far record and Result.Solution
// use.
func (m *Model) Solution() []int {
	out := make([]int, len(m.variables))
	for i, v := range m.variables {
		out[i] = v.Value()
	}
	return out
}

// ApplySolution installs sol (as produced by Solution) onto the model's
// variables.
func (m *Model) ApplySolution(sol []int) error {
	if len(sol) != len(m.variables) {
		return fmt.Errorf("ghost: solution has %d values, model has %d variables", len(sol), len(m.variables))
	}
	for i, val := range sol {
		if err := m.variables[i].SetValue(val); err != nil {
			return err
		}
	}
	return nil
}
