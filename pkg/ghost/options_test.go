package ghost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsPopulatesDefaults(t *testing.T) {
	opts := DefaultOptions(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, opts.SatisfactionTimeout)
	assert.Equal(t, 100*time.Millisecond, opts.OptimizationTimeout)
	assert.Equal(t, 10, opts.Samplings)
	assert.NotNil(t, opts.VariableCandidates)
	assert.NotNil(t, opts.Variable)
	assert.NotNil(t, opts.Value)
	assert.NotNil(t, opts.Projection)
	assert.NotNil(t, opts.Logger)
}

func TestWithSamplingsRejectsNonPositive(t *testing.T) {
	opts := DefaultOptions(time.Millisecond)
	err := opts.Apply(WithSamplings(0))
	assert.Error(t, err)
}

func TestWithPlateauEscapeProbabilityValidatesRange(t *testing.T) {
	opts := DefaultOptions(time.Millisecond)
	assert.Error(t, opts.Apply(WithPlateauEscapeProbability(-0.1)))
	assert.Error(t, opts.Apply(WithPlateauEscapeProbability(1.1)))
	assert.NoError(t, opts.Apply(WithPlateauEscapeProbability(0.5)))
}

func TestWithHeuristicFamilySetsAllThree(t *testing.T) {
	opts := DefaultOptions(time.Millisecond)
	require.NoError(t, opts.Apply(WithHeuristicFamily("antidote")))
	assert.Equal(t, "antidote", opts.VariableCandidates.Name())
	assert.Equal(t, "antidote", opts.Variable.Name())
	assert.Equal(t, "antidote", opts.Value.Name())
}

func TestWithHeuristicFamilyUnknownNameFails(t *testing.T) {
	opts := DefaultOptions(time.Millisecond)
	assert.Error(t, opts.Apply(WithHeuristicFamily("nonexistent")))
}

func TestResolvedTabuTimesHonorsOverride(t *testing.T) {
	opts := DefaultOptions(time.Millisecond)
	require.NoError(t, opts.Apply(WithTabuTimes(7, 3)))
	localMin, selected := opts.resolvedTabuTimes(100)
	assert.Equal(t, 7, localMin)
	assert.Equal(t, 3, selected)
}

func TestResolvedTabuTimesFallsBackToDerived(t *testing.T) {
	opts := DefaultOptions(time.Millisecond)
	localMin, selected := opts.resolvedTabuTimes(10)
	wantLocalMin, wantSelected := tabuTimes(10)
	assert.Equal(t, wantLocalMin, localMin)
	assert.Equal(t, wantSelected, selected)
}

func TestWithRNGSeedSetsPointer(t *testing.T) {
	opts := DefaultOptions(time.Millisecond)
	require.NoError(t, opts.Apply(WithRNGSeed(42)))
	require.NotNil(t, opts.RNGSeed)
	assert.Equal(t, uint64(42), *opts.RNGSeed)
}
