package knapsack

import (
	"fmt"

	"github.com/iwvelando/portfolio-picker/pkg/constants"
	"github.com/shopspring/decimal"
)

// MaxExhaustiveItems is the largest number of candidate items SolveExhaustive
// will enumerate.
const MaxExhaustiveItems = constants.MaxExhaustiveItems

// Item is a candidate investment.
type Item struct {
	ID    string          `json:"id"`
	Cost  decimal.Decimal `json:"cost"`
	Value decimal.Decimal `json:"value"`
}

// Solution is the selected subset and its totals.
type Solution struct {
	// Selected items in input order.
	Selected []Item `json:"selected"`
	// TotalCost is the sum of the selected costs in currency units.
	TotalCost decimal.Decimal `json:"totalCost"`
	// TotalValue is the exact sum of the selected values.
	TotalValue decimal.Decimal `json:"totalValue"`
	// Budget is the budget after conversion to currency units.
	Budget decimal.Decimal `json:"budget"`
	// Skipped holds the items left out in SkipInvalid mode.
	Skipped []Item `json:"skipped,omitempty"`
	// Considered is the number of items whose cost fits the budget.
	Considered int `json:"considered"`
	// Capacity is the width of the DP table minus one.
	Capacity int64 `json:"capacity"`
}

// Remaining returns the unspent part of the budget.
func (s Solution) Remaining() decimal.Decimal {
	return s.Budget.Sub(s.TotalCost)
}

// IDs returns the IDs of the selected items.
func (s Solution) IDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for _, item := range s.Selected {
		ids = append(ids, item.ID)
	}
	return ids
}

// InvalidItemMode controls how items violating the preconditions are handled.
type InvalidItemMode int

const (
	// RejectInvalid fails the call with ErrInvalidInput.
	RejectInvalid InvalidItemMode = iota
	// SkipInvalid leaves the item out and reports it in Solution.Skipped.
	SkipInvalid
)

// String returns the configuration name of the mode.
func (m InvalidItemMode) String() string {
	switch m {
	case RejectInvalid:
		return constants.InvalidItemsReject
	case SkipInvalid:
		return constants.InvalidItemsSkip
	default:
		return fmt.Sprintf("InvalidItemMode(%d)", int(m))
	}
}

// ParseInvalidItemMode maps a configuration name to a mode.
func ParseInvalidItemMode(name string) (InvalidItemMode, error) {
	switch name {
	case "", constants.InvalidItemsReject:
		return RejectInvalid, nil
	case constants.InvalidItemsSkip:
		return SkipInvalid, nil
	default:
		return RejectInvalid, fmt.Errorf("%w: unknown invalid item mode %q", ErrInvalidOptions, name)
	}
}

// Options configures a Solver.
type Options struct {
	// Precision is the number of decimal digits of the smallest currency unit.
	Precision int32
	// ValuePrecision is the largest number of fractional digits an item value
	// may have. Values are never rounded.
	ValuePrecision int32
	// MaxCapacityUnits bounds the DP table width.
	MaxCapacityUnits int64
	// MaxTableCells bounds items × (capacity+1), the provenance table size in bits.
	MaxTableCells int64
	// InvalidItems selects strict or relaxed precondition handling.
	InvalidItems InvalidItemMode
}

// DefaultOptions returns cents precision, values of up to 12 fractional
// digits, strict mode and the default ceilings.
func DefaultOptions() Options {
	return Options{
		Precision:        constants.DefaultPrecision,
		ValuePrecision:   constants.DefaultValuePrecision,
		MaxCapacityUnits: constants.DefaultMaxCapacityUnits,
		MaxTableCells:    constants.DefaultMaxTableCells,
		InvalidItems:     RejectInvalid,
	}
}

func (o Options) validate() error {
	if o.Precision < 0 || o.Precision > constants.MaxPrecision {
		return fmt.Errorf("%w: precision %d outside [0, %d]", ErrInvalidOptions, o.Precision, constants.MaxPrecision)
	}
	if o.ValuePrecision < 0 || o.ValuePrecision > constants.MaxValuePrecision {
		return fmt.Errorf("%w: value precision %d outside [0, %d]", ErrInvalidOptions, o.ValuePrecision, constants.MaxValuePrecision)
	}
	if o.MaxCapacityUnits <= 0 {
		return fmt.Errorf("%w: max capacity units must be positive, got %d", ErrInvalidOptions, o.MaxCapacityUnits)
	}
	if o.MaxTableCells <= 0 {
		return fmt.Errorf("%w: max table cells must be positive, got %d", ErrInvalidOptions, o.MaxTableCells)
	}
	if o.InvalidItems != RejectInvalid && o.InvalidItems != SkipInvalid {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.InvalidItems)
	}
	return nil
}
