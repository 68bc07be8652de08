package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/portfolio-picker/internal/knapsack"
	"github.com/iwvelando/portfolio-picker/pkg/constants"
	"github.com/iwvelando/portfolio-picker/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// OptimizerConfig defines the budget and solver settings of a run.
type OptimizerConfig struct {
	Budget           string `yaml:"budget,omitempty" mapstructure:"budget"`
	Precision        *int32 `yaml:"precision,omitempty" mapstructure:"precision"`
	ValuePrecision   *int32 `yaml:"valuePrecision,omitempty" mapstructure:"valuePrecision"`
	MaxCapacityUnits int64  `yaml:"maxCapacityUnits,omitempty" mapstructure:"maxCapacityUnits"`
	MaxTableCells    int64  `yaml:"maxTableCells,omitempty" mapstructure:"maxTableCells"`
	InvalidItems     string `yaml:"invalidItems,omitempty" mapstructure:"invalidItems"`
	Algorithm        string `yaml:"algorithm,omitempty" mapstructure:"algorithm"`
}

// CanonicalAlgorithm returns the canonical identifier for an algorithm name.
func CanonicalAlgorithm(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.AlgorithmDynamic
	}
	switch strings.ToLower(trimmed) {
	case "dynamic", "dp", "optimized":
		return constants.AlgorithmDynamic
	case "exhaustive", "bruteforce", "brute-force", "brute_force":
		return constants.AlgorithmExhaustive
	default:
		return strings.ToLower(trimmed)
	}
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	o.Budget = strings.TrimSpace(o.Budget)
	if o.Budget == "" {
		o.Budget = constants.DefaultBudget
	}
	if o.Precision == nil {
		p := constants.DefaultPrecision
		o.Precision = &p
	}
	if o.ValuePrecision == nil {
		p := constants.DefaultValuePrecision
		o.ValuePrecision = &p
	}
	if o.MaxCapacityUnits <= 0 {
		o.MaxCapacityUnits = constants.DefaultMaxCapacityUnits
	}
	if o.MaxTableCells <= 0 {
		o.MaxTableCells = constants.DefaultMaxTableCells
	}
	o.InvalidItems = strings.ToLower(strings.TrimSpace(o.InvalidItems))
	if o.InvalidItems == "" {
		o.InvalidItems = constants.InvalidItemsReject
	}
	o.Algorithm = CanonicalAlgorithm(o.Algorithm)
}

// BudgetAmount parses the configured budget.
func (o *OptimizerConfig) BudgetAmount() (decimal.Decimal, error) {
	budget, err := decimal.NewFromString(strings.TrimSpace(o.Budget))
	if err != nil {
		return decimal.Zero, fmt.Errorf("optimizer budget %q is not a number", o.Budget)
	}
	return budget, nil
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	budget, err := o.BudgetAmount()
	if err != nil {
		return err
	}
	if budget.IsNegative() {
		return fmt.Errorf("optimizer budget %s must not be negative", mathutil.Describe(budget))
	}

	switch o.Algorithm {
	case constants.AlgorithmDynamic, constants.AlgorithmExhaustive:
		// supported algorithms
	default:
		return fmt.Errorf("optimizer algorithm %q is not supported", o.Algorithm)
	}

	if _, err := o.Options(); err != nil {
		return err
	}
	if _, err := mathutil.ToUnits(budget, *o.Precision); err != nil {
		return fmt.Errorf("optimizer budget out of range: %w", err)
	}
	return nil
}

// Options converts the configuration into solver options.
func (o *OptimizerConfig) Options() (knapsack.Options, error) {
	o.Normalize()
	mode, err := knapsack.ParseInvalidItemMode(o.InvalidItems)
	if err != nil {
		return knapsack.Options{}, fmt.Errorf("optimizer invalidItems %q is not supported", o.InvalidItems)
	}
	opts := knapsack.Options{
		Precision:        *o.Precision,
		ValuePrecision:   *o.ValuePrecision,
		MaxCapacityUnits: o.MaxCapacityUnits,
		MaxTableCells:    o.MaxTableCells,
		InvalidItems:     mode,
	}
	if _, err := knapsack.NewSolver(opts); err != nil {
		return knapsack.Options{}, fmt.Errorf("optimizer options: %w", err)
	}
	return opts, nil
}
