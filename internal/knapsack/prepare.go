package knapsack

import (
	"fmt"
	"math"

	"github.com/iwvelando/portfolio-picker/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// candidate is an item converted to integer units.
type candidate struct {
	index int   // position in the caller's slice
	scale int32 // fractional digits of the item value
	cost  int64
	value int64
}

// problem is the validated, unit-converted form of one Solve call.
type problem struct {
	items       []Item
	candidates  []candidate
	skipped     []Item
	budgetUnits int64
	capacity    int64
}

func (s *Solver) prepare(items []Item, budget decimal.Decimal) (*problem, error) {
	if budget.IsNegative() {
		return nil, fmt.Errorf("%w: negative budget %s", ErrInvalidInput, mathutil.Describe(budget))
	}
	budgetUnits, err := mathutil.ToUnits(budget, s.opts.Precision)
	if err != nil {
		return nil, fmt.Errorf("%w: budget: %v", ErrInvalidInput, err)
	}

	p := &problem{items: items, budgetUnits: budgetUnits}
	seen := make(map[string]struct{}, len(items))
	var totalCost int64
	var valueScale int32

	for i, item := range items {
		c, reason := s.convert(item)
		if reason == "" && s.opts.InvalidItems == RejectInvalid {
			if _, dup := seen[item.ID]; dup {
				reason = "duplicate id"
			}
			seen[item.ID] = struct{}{}
		}
		if reason != "" {
			if s.opts.InvalidItems == SkipInvalid {
				p.skipped = append(p.skipped, item)
				continue
			}
			return nil, fmt.Errorf("%w: item %d (%q): %s", ErrInvalidInput, i, item.ID, reason)
		}

		// Items that cannot fit are never candidates.
		if c.cost > budgetUnits {
			continue
		}
		c.index = i
		valueScale = max(valueScale, c.scale)
		totalCost += min(c.cost, budgetUnits-totalCost)
		p.candidates = append(p.candidates, c)
	}

	// Values are scaled only once every candidate's digits are known, so the
	// conversion below never rounds.
	var totalValue int64
	for k := range p.candidates {
		c := &p.candidates[k]
		value, err := mathutil.ToUnits(items[c.index].Value, valueScale)
		if err != nil || totalValue > math.MaxInt64-value {
			return nil, fmt.Errorf("%w: total value overflows int64 at %d fractional digits", ErrInvalidInput, valueScale)
		}
		c.value = value
		totalValue += value
	}

	// Capacities above the combined cost of all candidates add nothing.
	p.capacity = totalCost
	return p, nil
}

// convert returns the cost units and value scale of item, or a non-empty
// reason when the item violates the preconditions.
func (s *Solver) convert(item Item) (candidate, string) {
	if !item.Cost.IsPositive() {
		return candidate{}, fmt.Sprintf("non-positive cost %s", mathutil.Describe(item.Cost))
	}
	if !item.Value.IsPositive() {
		return candidate{}, fmt.Sprintf("non-positive value %s", mathutil.Describe(item.Value))
	}
	cost, err := mathutil.ToUnits(item.Cost, s.opts.Precision)
	if err != nil {
		return candidate{}, fmt.Sprintf("cost out of range: %v", err)
	}
	if cost == 0 {
		return candidate{}, fmt.Sprintf("cost %s rounds to zero units", mathutil.Describe(item.Cost))
	}
	scale, err := mathutil.Scale(item.Value, s.opts.ValuePrecision)
	if err != nil {
		return candidate{}, fmt.Sprintf("value %s has more than %d fractional digits", mathutil.Describe(item.Value), s.opts.ValuePrecision)
	}
	if _, err := mathutil.ToUnits(item.Value, scale); err != nil {
		return candidate{}, fmt.Sprintf("value out of range: %v", err)
	}
	return candidate{scale: scale, cost: cost}, ""
}

// solution builds the result from candidate positions in ascending order.
func (p *problem) solution(picked []int, opts Options) Solution {
	sol := Solution{
		Selected:   make([]Item, 0, len(picked)),
		TotalValue: decimal.Zero,
		Budget:     mathutil.FromUnits(p.budgetUnits, opts.Precision),
		Skipped:    p.skipped,
		Considered: len(p.candidates),
		Capacity:   p.capacity,
	}
	var costUnits int64
	for _, k := range picked {
		c := p.candidates[k]
		item := p.items[c.index]
		sol.Selected = append(sol.Selected, item)
		sol.TotalValue = sol.TotalValue.Add(item.Value)
		costUnits += c.cost
	}
	sol.TotalCost = mathutil.FromUnits(costUnits, opts.Precision)
	return sol
}
