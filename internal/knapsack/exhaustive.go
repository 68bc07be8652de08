package knapsack

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SolveExhaustive enumerates every subset of the candidate items and keeps the
// one with the largest value, then the smallest cost. The first subset in
// enumeration order wins any remaining tie. Items whose cost exceeds the
// budget are not enumerated; more than MaxExhaustiveItems remaining items fail
// with ErrTooManyItems.
func (s *Solver) SolveExhaustive(items []Item, budget decimal.Decimal) (Solution, error) {
	p, err := s.prepare(items, budget)
	if err != nil {
		return Solution{}, err
	}
	n := len(p.candidates)
	if n > MaxExhaustiveItems {
		return Solution{}, fmt.Errorf("%w: %d > %d", ErrTooManyItems, n, MaxExhaustiveItems)
	}

	var bestMask uint32
	var bestValue, bestCost int64
	for mask := uint32(1); mask < 1<<uint(n); mask++ {
		var cost, value int64
		for i := 0; i < n && cost <= p.budgetUnits; i++ {
			if mask&(1<<uint(i)) != 0 {
				cost += p.candidates[i].cost
				value += p.candidates[i].value
			}
		}
		if cost > p.budgetUnits {
			continue
		}
		if value > bestValue || (value == bestValue && cost < bestCost) {
			bestMask, bestValue, bestCost = mask, value, cost
		}
	}

	var picked []int
	for i := 0; i < n; i++ {
		if bestMask&(1<<uint(i)) != 0 {
			picked = append(picked, i)
		}
	}
	return p.solution(picked, s.opts), nil
}
