package knapsack_test

import (
	"fmt"
	"testing"

	"github.com/iwvelando/portfolio-picker/internal/knapsack"
	"github.com/iwvelando/portfolio-picker/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyBudgets = []string{"0", "0.01", "12.34", "50", "125.5", "300"}

// TestSolve_MatchesExhaustive cross-checks the DP against full enumeration.
func TestSolve_MatchesExhaustive(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5, 8, 12, 16, 20} {
		for seed := int64(1); seed <= 3; seed++ {
			items := testutil.RandomItems(seed*100+int64(n), n, 10000, 5000)
			for _, b := range propertyBudgets {
				t.Run(fmt.Sprintf("n=%d/seed=%d/budget=%s", n, seed, b), func(t *testing.T) {
					budget := dec(b)
					got, err := knapsack.Solve(items, budget)
					require.NoError(t, err)
					want, err := knapsack.SolveExhaustive(items, budget)
					require.NoError(t, err)

					assert.True(t, got.TotalValue.Equal(want.TotalValue),
						"value: dp %s, exhaustive %s", got.TotalValue, want.TotalValue)
					assert.True(t, got.TotalCost.Equal(want.TotalCost),
						"cost: dp %s, exhaustive %s", got.TotalCost, want.TotalCost)
				})
			}
		}
	}
}

// TestSolve_Feasible checks total cost never exceeds the budget and that the
// reported totals match the selected items.
func TestSolve_Feasible(t *testing.T) {
	items := testutil.RandomItems(7, 200, 20000, 4000)
	for _, b := range propertyBudgets {
		sol, err := knapsack.Solve(items, dec(b))
		require.NoError(t, err)
		assert.True(t, sol.TotalCost.LessThanOrEqual(dec(b)), "budget %s: cost %s", b, sol.TotalCost)

		cost, value := decimal.Zero, decimal.Zero
		for _, item := range sol.Selected {
			cost = cost.Add(item.Cost)
			value = value.Add(item.Value)
		}
		assert.True(t, cost.Equal(sol.TotalCost), "budget %s: summed cost %s, reported %s", b, cost, sol.TotalCost)
		assert.True(t, value.Equal(sol.TotalValue), "budget %s: summed value %s, reported %s", b, value, sol.TotalValue)
	}
}

// TestSolve_MonotoneInBudget verifies that a larger budget never lowers the value.
func TestSolve_MonotoneInBudget(t *testing.T) {
	items := testutil.RandomItems(11, 60, 15000, 4000)
	previous := decimal.Zero
	for cents := int64(0); cents <= 60000; cents += 1370 {
		budget := decimal.New(cents, -2)
		sol, err := knapsack.Solve(items, budget)
		require.NoError(t, err)
		assert.True(t, sol.TotalValue.GreaterThanOrEqual(previous),
			"budget %s: value %s dropped below %s", budget, sol.TotalValue, previous)
		previous = sol.TotalValue
	}
}

// TestSolve_Deterministic runs the same input twice and compares every field.
func TestSolve_Deterministic(t *testing.T) {
	items := testutil.RandomItems(5, 120, 8000, 3000)
	budget := dec("250")

	first, err := knapsack.Solve(items, budget)
	require.NoError(t, err)
	second, err := knapsack.Solve(items, budget)
	require.NoError(t, err)

	assert.Equal(t, first.IDs(), second.IDs())
	assert.Equal(t, first.TotalCost.String(), second.TotalCost.String())
	assert.Equal(t, first.TotalValue.String(), second.TotalValue.String())
	assert.Equal(t, first.Capacity, second.Capacity)
	assert.Equal(t, first.Considered, second.Considered)
}

// TestSolve_DoesNotMutateInput leaves the caller's slice untouched.
func TestSolve_DoesNotMutateInput(t *testing.T) {
	items := testutil.RandomItems(9, 30, 8000, 3000)
	snapshot := append([]knapsack.Item(nil), items...)

	_, err := knapsack.Solve(items, dec("100"))
	require.NoError(t, err)
	for i := range items {
		assert.Equal(t, snapshot[i].ID, items[i].ID)
		assert.True(t, snapshot[i].Cost.Equal(items[i].Cost))
		assert.True(t, snapshot[i].Value.Equal(items[i].Value))
	}
}
