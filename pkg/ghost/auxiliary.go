package ghost

// AuxiliaryData is an optional user-supplied block of derived quantities
// (e.g. precomputed coefficients) that must stay consistent with the
// current assignment. The driver invokes Update immediately before it
// commits a value change, and before the corresponding Variable.SetValue
// call (spec: "auxiliary_data.update happens-before variable.set_value").
type AuxiliaryData interface {
	Update(variableID int, newValue int) error
}

// NullAuxiliaryData is used whenever the model supplies none.
type NullAuxiliaryData struct{}

// Update is a no-op.
func (NullAuxiliaryData) Update(int, int) error { return nil }
