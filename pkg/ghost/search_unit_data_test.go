package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchUnitDataResetRoundClearsTabuAndMoves(t *testing.T) {
	d := NewSearchUnitData(4, 2)
	d.Tabu[0] = 3
	d.Tabu[2] = 1
	d.LocalMoves = 7

	d.ResetRound()

	for i, tb := range d.Tabu {
		assert.Zerof(t, tb, "tabu[%d] not reset", i)
	}
	assert.Zero(t, d.LocalMoves)
}

func TestSearchUnitDataDecayTabuNeverGoesNegative(t *testing.T) {
	d := NewSearchUnitData(3, 1)
	d.Tabu[0] = 1
	d.Tabu[1] = 0

	d.DecayTabu()
	assert.Equal(t, 0, d.Tabu[0])
	assert.Equal(t, 0, d.Tabu[1])
	for _, tb := range d.Tabu {
		assert.GreaterOrEqual(t, tb, 0)
	}
}

func TestSearchUnitDataDecayTabuReportsFreeVariable(t *testing.T) {
	d := NewSearchUnitData(2, 1)
	d.Tabu[0] = 5
	d.Tabu[1] = 5
	assert.False(t, d.DecayTabu())

	d.Tabu[0] = 1
	assert.True(t, d.DecayTabu())
}

func TestSearchUnitDataClearDeltaErrors(t *testing.T) {
	d := NewSearchUnitData(2, 1)
	d.DeltaErrors[5] = []float64{1, 2}
	d.clearDeltaErrors()
	assert.Empty(t, d.DeltaErrors)
}
