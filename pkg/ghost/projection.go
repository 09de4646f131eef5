package ghost

// ErrorProjection attributes each constraint's current error to the
// individual variables it reads, producing the per-variable error score
// the variable-candidates heuristics consume.
type ErrorProjection interface {
	Name() string
	// Project refreshes data.ErrorVariables (and data.ErrorConstraints)
	// from the model's currently-cached constraint errors. Callers must
	// have already called Model.RefreshConstraintErrors.
	Project(m *Model, data *SearchUnitData)
}

// FullErrorProjection recomputes the whole per-variable error vector on
// every call: zero it, then add each constraint's error to every variable
// it reads. Simple, and the yardstick the Incremental strategy must match.
type FullErrorProjection struct{}

// Name returns "full".
func (FullErrorProjection) Name() string { return "full" }

// Project implements ErrorProjection.
func (FullErrorProjection) Project(m *Model, data *SearchUnitData) {
	for i := range data.ErrorVariables {
		data.ErrorVariables[i] = 0
	}
	for ci, h := range m.constraints {
		data.ErrorConstraints[ci] = h.cachedError
		for _, vi := range h.varIndexes {
			data.ErrorVariables[vi] += h.cachedError
		}
		h.previousError = h.cachedError
	}
}

// IncrementalErrorProjection only touches the variables of constraints
// whose cached error changed since the last projection call, adding the
// delta rather than recomputing from scratch.
type IncrementalErrorProjection struct{}

// Name returns "incremental".
func (IncrementalErrorProjection) Name() string { return "incremental" }

// Project implements ErrorProjection.
func (IncrementalErrorProjection) Project(m *Model, data *SearchUnitData) {
	for ci, h := range m.constraints {
		data.ErrorConstraints[ci] = h.cachedError
		delta := h.cachedError - h.previousError
		if delta != 0 {
			for _, vi := range h.varIndexes {
				data.ErrorVariables[vi] += delta
			}
		}
		h.previousError = h.cachedError
	}
}

// NullErrorProjection leaves the per-variable error vector untouched,
// for heuristics (Random Walk) that never read it.
type NullErrorProjection struct{}

// Name returns "null".
func (NullErrorProjection) Name() string { return "null" }

// Project implements ErrorProjection; it only mirrors ErrorConstraints so
// that code relying on data.ErrorConstraints (e.g. logging) still sees
// current values.
func (NullErrorProjection) Project(m *Model, data *SearchUnitData) {
	for ci, h := range m.constraints {
		data.ErrorConstraints[ci] = h.cachedError
		h.previousError = h.cachedError
	}
}
