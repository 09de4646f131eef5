package ghost

// SearchUnitData is the driver's scratch record for one search unit (one
// independent core). It is reset at the start of every optimization round
// and mutated in place through the satisfaction loop; nothing here
// outlives a single Solve call.
type SearchUnitData struct {
	// NumVariables is the model's variable count.
	NumVariables int

	// ErrorVariables is the per-variable error score computed by the
	// active ErrorProjection strategy. Length == NumVariables.
	ErrorVariables []float64

	// ErrorConstraints mirrors each constraint's cached error, refreshed
	// once per satisfaction iteration.
	ErrorConstraints []float64

	// SatisfactionError is the current total constraint violation
	// (sum of ErrorConstraints).
	SatisfactionError float64

	// OptimizationCost is the current objective cost, normalized to a
	// minimizing form.
	OptimizationCost float64

	// MinConflict is the summed constraint-error delta of the move the
	// value heuristic just chose. Distinct from OptDelta: a source of
	// confusion in the original C++ that a clean port must not repeat
	// (spec's open question).
	MinConflict float64

	// OptDelta is the objective-cost delta of the move the
	// Optimization-Space value heuristic just chose; zero for heuristics
	// that never touch the objective mid-iteration.
	OptDelta float64

	// Tabu holds a non-negative countdown per variable; Tabu[i] > 0
	// means variable i is temporarily frozen from re-selection.
	Tabu []int

	// LocalMoves counts committed moves across the whole round.
	LocalMoves int

	// IsOptimization is true for the whole solve whenever the model
	// carries a real (non-null) objective. It lets the variable-
	// candidates heuristic keep offering variables outside any
	// currently-violated constraint — normally excluded — on the rare
	// iteration where a restart's very first refresh already lands on
	// zero satisfaction error, so a COP round can still take one more
	// step toward the objective instead of seeing an empty candidate
	// list.
	IsOptimization bool

	// DeltaErrors maps a candidate key (an assignment-mode candidate
	// value, or a permutation-mode partner variable id — both plain
	// ints) to the per-constraint delta vector the candidate would
	// produce, indexed the same way as ErrorConstraints.
	DeltaErrors map[int][]float64

	// ErrorDistribution holds the sampling weights Antidote Search uses
	// for its discrete variable/value distributions.
	ErrorDistribution []float64
}

// NewSearchUnitData allocates a scratch record sized for n variables and m
// constraints.
func NewSearchUnitData(n, m int) *SearchUnitData {
	return &SearchUnitData{
		NumVariables:      n,
		ErrorVariables:    make([]float64, n),
		ErrorConstraints:  make([]float64, m),
		Tabu:              make([]int, n),
		DeltaErrors:       make(map[int][]float64),
		ErrorDistribution: make([]float64, n),
	}
}

// ResetRound clears per-round state (tabu counters and move counter) at
// the start of a new optimization round, per spec 4.6 step 2. Error
// vectors are left alone; they are overwritten on the first satisfaction
// iteration.
func (d *SearchUnitData) ResetRound() {
	for i := range d.Tabu {
		d.Tabu[i] = 0
	}
	d.LocalMoves = 0
}

// DecayTabu decrements every positive tabu counter by one and reports
// whether at least one variable is now untabued.
func (d *SearchUnitData) DecayTabu() (freeVariableExists bool) {
	for i, t := range d.Tabu {
		if t > 0 {
			d.Tabu[i] = t - 1
		}
		if d.Tabu[i] == 0 {
			freeVariableExists = true
		}
	}
	return freeVariableExists
}

// clearDeltaErrors empties the delta-error scratch map for reuse on the
// next iteration without reallocating it.
func (d *SearchUnitData) clearDeltaErrors() {
	for k := range d.DeltaErrors {
		delete(d.DeltaErrors, k)
	}
}
