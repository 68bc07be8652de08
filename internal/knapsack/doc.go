// Package knapsack selects the payout-maximizing subset of investments whose
// total cost fits within a budget (0/1 knapsack).
//
// Costs and the budget are converted to integer units of the smallest
// currency denomination (Options.Precision digits, half-to-even rounding) and
// used as indexes of a rolling dynamic-programming array. Payouts are summed
// exactly in int64 fixed-point units, scaled per call by the most fractional
// digits any candidate value carries (at most Options.ValuePrecision). A bitset records
// which item improved each capacity during its pass so that the selection is
// rebuilt by a single backward walk.
//
// Among subsets with the maximal payout the cheapest one is returned. Any
// remaining tie is settled in favor of items that appear earlier in the input.
//
// Complexity is O(n × capacity) time and O(capacity) words plus
// n × capacity bits, where capacity is the budget in currency units. The
// table size is bounded by Options.MaxCapacityUnits and Options.MaxTableCells.
//
// SolveExhaustive enumerates every subset and applies the same policy. It is
// limited to MaxExhaustiveItems candidates and exists to cross-check Solve.
package knapsack
