package ghost

import "sync/atomic"

// IDGenerator hands out non-negative ids, unique within one generator,
// that wrap back to 0 on overflow. A per-model generator (one per model being built, not one
// shared global) is preferred per the design notes so that ids stay small
// and model-scoped; callers construct one with NewIDGenerator and share it
// across every Variable/Constraint/Objective built for that model.
type IDGenerator struct {
	next uint32
}

// NewIDGenerator returns a fresh generator starting at 0.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Generate returns the next id in sequence.
func (g *IDGenerator) Generate() int {
	v := atomic.AddUint32(&g.next, 1) - 1
	if v > 1<<31 {
		atomic.StoreUint32(&g.next, 0)
		v = 0
	}
	return int(v)
}

// Variable is an integer decision variable: an id, an optional name, a
// fixed domain, a current value, and an index used only in permutation
// mode (the position this variable occupies in a logical sequence).
//
// current_value == domain[index] is not an invariant in general; in
// permutation mode the driver keeps the two coherent by swapping both
// together on every move.
type Variable struct {
	id     int
	name   string
	domain *Domain
	value  int
	index  int
}

// NewVariable constructs a Variable with an explicit domain and the
// domain's first value as its starting value.
func NewVariable(gen *IDGenerator, name string, domain *Domain) *Variable {
	v := &Variable{
		id:     gen.Generate(),
		name:   name,
		domain: domain,
	}
	if domain.Size() > 0 {
		v.value = domain.values[0]
	}
	return v
}

// NewVariableInterval constructs a Variable whose domain is the interval
// [start, start+size).
func NewVariableInterval(gen *IDGenerator, name string, size, start int) *Variable {
	return NewVariable(gen, name, NewIntervalDomain(size, start))
}

// ID returns the variable's id, unique among the ids of its IDGenerator.
func (v *Variable) ID() int { return v.id }

// Name returns the variable's human-readable name, possibly empty.
func (v *Variable) Name() string { return v.name }

// Domain returns the variable's fixed domain.
func (v *Variable) Domain() *Domain { return v.domain }

// Value returns the variable's current value.
func (v *Variable) Value() int { return v.value }

// SetValue commits a new value, failing with ErrOutOfDomain if v is not a
// domain member.
func (v *Variable) SetValue(val int) error {
	if !v.domain.Has(val) {
		return outOfDomain(val)
	}
	v.value = val
	return nil
}

// Index returns the variable's position in the logical permutation
// sequence. Meaningless outside permutation mode.
func (v *Variable) Index() int { return v.index }

// SetIndex sets the variable's permutation-sequence position. Only the
// driver's permutation move primitive should call this.
func (v *Variable) SetIndex(i int) { v.index = i }

// RandomValue samples a value uniformly from the domain without committing
// it.
func (v *Variable) RandomValue(rng RandSource) int {
	return v.domain.RandomValue(rng)
}

// PickRandomValue samples a value uniformly from the domain and commits it
// as the current value.
func (v *Variable) PickRandomValue(rng RandSource) int {
	val := v.domain.RandomValue(rng)
	v.value = val
	return val
}

// PossibleValues returns the variable's admissible values in domain order.
func (v *Variable) PossibleValues() []int {
	return v.domain.Values()
}

// IndexOf returns the domain position of val.
func (v *Variable) IndexOf(val int) (int, error) {
	return v.domain.IndexOf(val)
}

// ValueAt returns the domain value at position i.
func (v *Variable) ValueAt(i int) (int, error) {
	return v.domain.ValueAt(i)
}

// PartialDomain returns a centered window of up to span values around the
// variable's current value, wrapping around the domain.
func (v *Variable) PartialDomain(span int) []int {
	return v.domain.PartialDomain(v.value, span)
}
