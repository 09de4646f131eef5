package ghost

import "math"

// BestRecord tracks the best solution seen across an entire solve: the
// lowest satisfaction error ever observed, and — once a feasible
// assignment has been found — the lowest (normalized) optimization cost
// seen while satisfaction error was zero. Solution always holds the
// variable-value vector backing whichever of the two is current.
type BestRecord struct {
	SatisfactionError float64
	Feasible          bool
	OptimizationCost  float64
	Solution          []int
}

// newBestRecord allocates an empty record for a model with n variables.
func newBestRecord(n int) *BestRecord {
	return &BestRecord{
		SatisfactionError: math.Inf(1),
		OptimizationCost:  math.Inf(1),
		Solution:          make([]int, n),
	}
}

// considerSatisfaction updates the record if satErr improves on (is
// strictly less than) the best satisfaction error seen so far, and no
// feasible solution has been recorded yet (once feasible, the record only
// moves on optimization cost — spec's feasibility-monotonicity property).
// Reports whether it updated the record.
func (b *BestRecord) considerSatisfaction(satErr float64, sol []int) bool {
	if b.Feasible || satErr >= b.SatisfactionError {
		return false
	}
	b.SatisfactionError = satErr
	copy(b.Solution, sol)
	return true
}

// considerOptimization updates the record if cost improves on the best
// optimization cost seen so far. Only meaningful once Feasible is true.
func (b *BestRecord) considerOptimization(cost float64, sol []int) bool {
	if cost >= b.OptimizationCost {
		return false
	}
	b.Feasible = true
	b.SatisfactionError = 0
	b.OptimizationCost = cost
	copy(b.Solution, sol)
	return true
}
