package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestRecordConsiderSatisfactionOnlyAcceptsImprovements(t *testing.T) {
	b := newBestRecord(2)
	assert.True(t, b.considerSatisfaction(3, []int{1, 1}))
	assert.False(t, b.considerSatisfaction(3, []int{2, 2}), "equal error must not update")
	assert.True(t, b.considerSatisfaction(1, []int{3, 3}))
	assert.Equal(t, []int{3, 3}, b.Solution)
}

func TestBestRecordConsiderSatisfactionStopsOnceFeasible(t *testing.T) {
	b := newBestRecord(1)
	assert.True(t, b.considerOptimization(5, []int{9}))
	assert.True(t, b.Feasible)
	// Once feasible, satisfaction-only updates must not apply.
	assert.False(t, b.considerSatisfaction(0, []int{0}))
}

func TestBestRecordConsiderOptimizationRequiresImprovement(t *testing.T) {
	b := newBestRecord(1)
	assert.True(t, b.considerOptimization(10, []int{1}))
	assert.False(t, b.considerOptimization(10, []int{2}))
	assert.True(t, b.considerOptimization(9, []int{3}))
	assert.Equal(t, []int{3}, b.Solution)
}
