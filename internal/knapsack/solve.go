package knapsack

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Solver runs the optimizer with fixed Options. It holds no mutable state and
// is safe for concurrent use.
type Solver struct {
	opts Options
}

// NewSolver validates opts and returns a Solver.
func NewSolver(opts Options) (*Solver, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Solver{opts: opts}, nil
}

// Options returns the solver configuration.
func (s *Solver) Options() Options {
	return s.opts
}

var defaultSolver = &Solver{opts: DefaultOptions()}

// Solve runs the dynamic-programming optimizer with DefaultOptions.
func Solve(items []Item, budget decimal.Decimal) (Solution, error) {
	return defaultSolver.Solve(items, budget)
}

// SolveExhaustive runs the exhaustive enumerator with DefaultOptions.
func SolveExhaustive(items []Item, budget decimal.Decimal) (Solution, error) {
	return defaultSolver.SolveExhaustive(items, budget)
}

// Solve returns the subset of items with the largest total value whose total
// cost does not exceed budget. An empty item list, a zero budget and a budget
// below every cost all yield an empty Solution.
func (s *Solver) Solve(items []Item, budget decimal.Decimal) (Solution, error) {
	p, err := s.prepare(items, budget)
	if err != nil {
		return Solution{}, err
	}
	if err := s.checkTable(len(p.candidates), p.capacity); err != nil {
		return Solution{}, err
	}

	capacity := p.capacity
	best := make([]int64, capacity+1)
	used := newProvenance(len(p.candidates), capacity)

	for i, c := range p.candidates {
		// Descending capacity keeps every item to at most one use.
		for w := capacity; w >= c.cost; w-- {
			if candidate := best[w-c.cost] + c.value; candidate > best[w] {
				best[w] = candidate
				used.set(i, w)
			}
		}
	}

	// The first maximum is the cheapest optimal capacity.
	at := int64(0)
	for w := int64(1); w <= capacity; w++ {
		if best[w] > best[at] {
			at = w
		}
	}

	var picked []int
	for i := len(p.candidates) - 1; i >= 0 && at > 0; i-- {
		if used.has(i, at) {
			picked = append(picked, i)
			at -= p.candidates[i].cost
		}
	}
	for l, r := 0, len(picked)-1; l < r; l, r = l+1, r-1 {
		picked[l], picked[r] = picked[r], picked[l]
	}

	return p.solution(picked, s.opts), nil
}

func (s *Solver) checkTable(items int, capacity int64) error {
	if capacity > s.opts.MaxCapacityUnits {
		return fmt.Errorf("%w: %d units > %d", ErrCapacityTooLarge, capacity, s.opts.MaxCapacityUnits)
	}
	if items > 0 && capacity+1 > s.opts.MaxTableCells/int64(items) {
		return fmt.Errorf("%w: %d items × %d capacities > %d cells", ErrCapacityTooLarge, items, capacity+1, s.opts.MaxTableCells)
	}
	return nil
}
