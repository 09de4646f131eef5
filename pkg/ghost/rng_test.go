package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRNGWithSeedIsDeterministic(t *testing.T) {
	seed := uint64(1234)
	a := newRNG(&seed)
	b := newRNG(&seed)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestNewRNGWithoutSeedStillWorks(t *testing.T) {
	rng := newRNG(nil)
	v := rng.Intn(10)
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 10)
}
