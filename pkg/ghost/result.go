package ghost

// Result is what Driver.Solve returns: whether a zero-error assignment
// was ever found, the best (normalized-direction, un-negated back to the
// objective's own sense) cost achieved, and the variable-value vector
// backing it — or, if no feasible assignment was ever found, the
// variable-value vector with the lowest satisfaction error seen.
type Result struct {
	Feasible bool
	Cost     float64
	Solution []int
}
