package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseConstraintHasVariable(t *testing.T) {
	gen := NewIDGenerator()
	v1 := NewVariableInterval(gen, "a", 5, 0)
	v2 := NewVariableInterval(gen, "b", 5, 0)
	base := NewBaseConstraint(gen, []int{v1.ID(), v2.ID()})

	assert.True(t, base.HasVariable(v1.ID()))
	assert.True(t, base.HasVariable(v2.ID()))
	assert.False(t, base.HasVariable(9999))
	assert.ElementsMatch(t, []int{v1.ID(), v2.ID()}, base.VariableIDs())
}

func TestBaseConstraintDefaultDeltaErrorReportsUnsupported(t *testing.T) {
	gen := NewIDGenerator()
	v := NewVariableInterval(gen, "a", 5, 0)
	base := NewBaseConstraint(gen, []int{v.ID()})
	_, err := base.DeltaError([]int{v.ID()}, []int{1})
	assert.ErrorIs(t, err, ErrDeltaNotDefined)
}

func TestBaseConstraintDefaultConditionalUpdateIsNoop(t *testing.T) {
	gen := NewIDGenerator()
	v := NewVariableInterval(gen, "a", 5, 0)
	base := NewBaseConstraint(gen, []int{v.ID()})
	assert.NoError(t, base.ConditionalUpdate(v.ID(), 3))
}
