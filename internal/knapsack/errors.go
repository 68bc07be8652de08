package knapsack

import "errors"

var (
	// ErrInvalidInput is returned for a negative budget or, in RejectInvalid
	// mode, for an item with a non-positive cost or value, a cost that rounds to
	// zero units, or a duplicate ID.
	ErrInvalidInput = errors.New("knapsack: invalid input")

	// ErrCapacityTooLarge is returned when the DP table would exceed the
	// configured ceilings.
	ErrCapacityTooLarge = errors.New("knapsack: capacity exceeds configured ceiling")

	// ErrTooManyItems is returned by SolveExhaustive above MaxExhaustiveItems.
	ErrTooManyItems = errors.New("knapsack: too many items for exhaustive search")

	// ErrInvalidOptions is returned by NewSolver for unusable options.
	ErrInvalidOptions = errors.New("knapsack: invalid options")
)
