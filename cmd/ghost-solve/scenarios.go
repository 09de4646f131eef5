package main

import (
	"fmt"

	"github.com/gitrdm/ghost/internal/parallel"
	"github.com/gitrdm/ghost/pkg/ghost"
)

// scenarios maps a --scenario name to a fresh-model-per-call factory, so
// the same builder serves both a single Driver.Solve and internal/parallel's
// per-core fan-out (which needs distinct Variable/Constraint instances per
// core, spec §5).
var scenarios = map[string]parallel.ModelFactory{
	"knapsack":    buildKnapsackScenario,
	"alldifferent": buildAllDifferentScenario,
	"permutation": buildPermutationScenario,
	"deadline":    buildDeadlineScenario,
}

// capacityConstraint and valueObjective model a 0/1 knapsack: a weight
// capacity constraint and a maximized total-value objective.
type capacityConstraint struct {
	ghost.BaseConstraint
	weights map[int]int
	picks   map[int]int
	total   int
	cap     int
}

func overflow(total, capacity int) float64 {
	if over := total - capacity; over > 0 {
		return float64(over)
	}
	return 0
}

func (c *capacityConstraint) Error() (float64, error) { return overflow(c.total, c.cap), nil }

func (c *capacityConstraint) DeltaError(varIDs []int, candidateValues []int) (float64, error) {
	newTotal := c.total
	for i, id := range varIDs {
		newTotal += c.weights[id] * (candidateValues[i] - c.picks[id])
	}
	return overflow(newTotal, c.cap) - overflow(c.total, c.cap), nil
}

func (c *capacityConstraint) ConditionalUpdate(varID int, newValue int) error {
	c.total += c.weights[varID] * (newValue - c.picks[varID])
	c.picks[varID] = newValue
	return nil
}

type valueObjective struct {
	ghost.BaseObjective
	vars   []*ghost.Variable
	values map[int]int
}

func (o *valueObjective) Cost() (float64, error) {
	var total int
	for _, v := range o.vars {
		total += o.values[v.ID()] * v.Value()
	}
	return float64(total), nil
}

func (o *valueObjective) HeuristicValue(variable *ghost.Variable, candidateValues []int, rng ghost.RandSource) (int, error) {
	return ghost.DefaultHeuristicValue(o.Cost, variable, candidateValues, rng)
}

func (o *valueObjective) HeuristicValuePermutation(_ *ghost.Variable, candidateVariableIDs []int, rng ghost.RandSource) (int, error) {
	return ghost.DefaultHeuristicValuePermutation(candidateVariableIDs, rng)
}

var knapsackItems = []struct {
	name   string
	weight int
	value  int
}{
	{"map", 9, 150},
	{"compass", 13, 35},
	{"water", 153, 200},
	{"sandwich", 50, 160},
	{"glucose", 15, 60},
}

const knapsackCapacity = 150

func buildKnapsackScenario() (*ghost.Model, error) {
	gen := ghost.NewIDGenerator()
	vars := make([]*ghost.Variable, len(knapsackItems))
	weights := make(map[int]int, len(vars))
	values := make(map[int]int, len(vars))
	for i, item := range knapsackItems {
		vars[i] = ghost.NewVariableInterval(gen, item.name, 2, 0)
		weights[vars[i].ID()] = item.weight
		values[vars[i].ID()] = item.value
	}

	ids := make([]int, len(vars))
	for i, v := range vars {
		ids[i] = v.ID()
	}
	constraint := &capacityConstraint{
		BaseConstraint: ghost.NewBaseConstraint(gen, ids),
		weights:        weights,
		picks:          make(map[int]int, len(vars)),
		cap:            knapsackCapacity,
	}
	objective := &valueObjective{
		BaseObjective: ghost.NewBaseObjective("total-value", ghost.Maximize, ids),
		vars:          vars,
		values:        values,
	}

	return ghost.NewModel(vars, []ghost.Constraint{constraint}, objective, nil)
}

type allDifferentConstraint struct {
	ghost.BaseConstraint
	vars []*ghost.Variable
}

func (c *allDifferentConstraint) Error() (float64, error) {
	var violations int
	for i := 0; i < len(c.vars); i++ {
		for j := i + 1; j < len(c.vars); j++ {
			if c.vars[i].Value() == c.vars[j].Value() {
				violations++
			}
		}
	}
	return float64(violations), nil
}

func buildAllDifferentScenario() (*ghost.Model, error) {
	domain := ghost.NewDomain([]int{1, 3, 5, 7, 9})
	gen := ghost.NewIDGenerator()
	vars := make([]*ghost.Variable, 5)
	ids := make([]int, 5)
	for i := range vars {
		vars[i] = ghost.NewVariable(gen, fmt.Sprintf("v%d", i), domain)
		ids[i] = vars[i].ID()
	}
	constraint := &allDifferentConstraint{
		BaseConstraint: ghost.NewBaseConstraint(gen, ids),
		vars:           vars,
	}
	return ghost.NewModel(vars, []ghost.Constraint{constraint}, nil, nil)
}

type adjacencyConstraint struct {
	ghost.BaseConstraint
	vars []*ghost.Variable
}

func (c *adjacencyConstraint) Error() (float64, error) {
	var violations int
	for i := 0; i < len(c.vars)-1; i++ {
		if c.vars[i].Value() != i+1 || c.vars[i+1].Value() != i+2 {
			violations++
		}
	}
	return float64(violations), nil
}

func buildPermutationScenario() (*ghost.Model, error) {
	domain := ghost.NewDomain([]int{1, 2, 3, 4, 5, 6})
	gen := ghost.NewIDGenerator()
	vars := make([]*ghost.Variable, 6)
	ids := make([]int, 6)
	scrambled := []int{6, 5, 4, 3, 2, 1}
	for i := range vars {
		vars[i] = ghost.NewVariable(gen, fmt.Sprintf("pos%d", i), domain)
		if err := vars[i].SetValue(scrambled[i]); err != nil {
			return nil, err
		}
		vars[i].SetIndex(i)
		ids[i] = vars[i].ID()
	}
	constraint := &adjacencyConstraint{
		BaseConstraint: ghost.NewBaseConstraint(gen, ids),
		vars:           vars,
	}
	return ghost.NewModel(vars, []ghost.Constraint{constraint}, nil, nil)
}

type impossibleConstraint struct {
	ghost.BaseConstraint
}

func (c *impossibleConstraint) Error() (float64, error) { return 1, nil }

func buildDeadlineScenario() (*ghost.Model, error) {
	gen := ghost.NewIDGenerator()
	v := ghost.NewVariableInterval(gen, "x", 10, 0)
	constraint := &impossibleConstraint{BaseConstraint: ghost.NewBaseConstraint(gen, []int{v.ID()})}
	return ghost.NewModel([]*ghost.Variable{v}, []ghost.Constraint{constraint}, nil, nil)
}
