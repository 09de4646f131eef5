package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariableStartsAtFirstDomainValue(t *testing.T) {
	gen := NewIDGenerator()
	v := NewVariable(gen, "x", NewDomain([]int{4, 5, 6}))
	assert.Equal(t, 4, v.Value())
	assert.Equal(t, "x", v.Name())
}

func TestIDGeneratorProducesDistinctIDs(t *testing.T) {
	gen := NewIDGenerator()
	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		assert.False(t, seen[id], "id %d reused", id)
		seen[id] = true
	}
}

func TestVariableSetValueRejectsOutOfDomain(t *testing.T) {
	gen := NewIDGenerator()
	v := NewVariable(gen, "x", NewDomain([]int{1, 2, 3}))
	err := v.SetValue(2)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Value())

	err = v.SetValue(99)
	assert.ErrorIs(t, err, ErrOutOfDomain)
	// A rejected SetValue must not mutate the variable.
	assert.Equal(t, 2, v.Value())
}

func TestVariableIndexTracksPermutationPosition(t *testing.T) {
	gen := NewIDGenerator()
	v := NewVariableInterval(gen, "x", 4, 0)
	assert.Equal(t, 0, v.Index())
	v.SetIndex(3)
	assert.Equal(t, 3, v.Index())
}

func TestVariablePartialDomain(t *testing.T) {
	gen := NewIDGenerator()
	v := NewVariableInterval(gen, "x", 10, 0)
	require.NoError(t, v.SetValue(5))
	window := v.PartialDomain(4)
	assert.Len(t, window, 4)
}
