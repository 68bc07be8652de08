// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/iwvelando/portfolio-picker/internal/knapsack"
	"github.com/iwvelando/portfolio-picker/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// MustDecimal parses s or panics. Intended for literals in tests.
func MustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Item builds an item from decimal literals.
func Item(id, cost, value string) knapsack.Item {
	return knapsack.Item{ID: id, Cost: MustDecimal(cost), Value: MustDecimal(value)}
}

// RandomItems returns n items with costs in (0, maxCost] cents and payout
// percentages in (0, maxPercent] hundredths, derived from seed.
// The same seed always yields the same items.
func RandomItems(seed int64, n int, maxCost int64, maxPercent int64) []knapsack.Item {
	rng := rand.New(rand.NewSource(seed))
	items := make([]knapsack.Item, n)
	for i := range items {
		cost := decimal.New(rng.Int63n(maxCost)+1, -2)
		percent := decimal.New(rng.Int63n(maxPercent)+1, -2)
		items[i] = knapsack.Item{
			ID:    fmt.Sprintf("Action-%d", i+1),
			Cost:  cost,
			Value: mathutil.ApplyPercentage(cost, percent),
		}
	}
	return items
}

// FindItem finds an item by ID.
// Returns a pointer to the item if found, nil otherwise.
func FindItem(items []knapsack.Item, id string) *knapsack.Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// DatasetCSV renders items as a dataset file with a percent column, the
// format read by the dataset package.
func DatasetCSV(items []knapsack.Item) string {
	var b strings.Builder
	b.WriteString("name,price,profit\n")
	for _, item := range items {
		percent := mathutil.CalculatePercentage(item.Value, item.Cost, 6)
		fmt.Fprintf(&b, "%s,%s,%s%%\n", item.ID, item.Cost.String(), percent.String())
	}
	return b.String()
}
