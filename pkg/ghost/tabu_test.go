package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTabuTimesDerivation(t *testing.T) {
	cases := []struct {
		n            int
		localMin     int
		selected     int
	}{
		{0, 1, 1},
		{1, 1, 1},
		{2, 1, 1},
		{4, 2, 1},
		{10, 5, 2},
		{100, 50, 25},
	}
	for _, c := range cases {
		localMin, selected := tabuTimes(c.n)
		assert.Equal(t, c.localMin, localMin, "n=%d", c.n)
		assert.Equal(t, c.selected, selected, "n=%d", c.n)
	}
}

func TestTabuTimesAlwaysPositive(t *testing.T) {
	for n := 0; n < 50; n++ {
		localMin, selected := tabuTimes(n)
		assert.GreaterOrEqual(t, localMin, 1)
		assert.GreaterOrEqual(t, selected, 1)
	}
}
