// Package optimizer runs the knapsack solver for a configured budget and
// algorithm and shapes the outcome for reporting.
package optimizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/portfolio-picker/internal/config"
	"github.com/iwvelando/portfolio-picker/internal/knapsack"
	"github.com/iwvelando/portfolio-picker/pkg/constants"
	"github.com/iwvelando/portfolio-picker/pkg/mathutil"
	"github.com/iwvelando/portfolio-picker/pkg/optimization"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnsupportedAlgorithm is returned for algorithm names other than the
// dynamic and exhaustive solvers and their aliases.
var ErrUnsupportedAlgorithm = errors.New("optimizer: unsupported algorithm")

// Runner holds a validated solver, the default budget and algorithm.
// It is safe for concurrent use.
type Runner struct {
	logger    *zap.Logger
	solver    *knapsack.Solver
	budget    decimal.Decimal
	algorithm string
}

// Result is the outcome of one run.
type Result struct {
	Solution  knapsack.Solution
	Algorithm string
	Items     int
	Duration  time.Duration
}

// NewRunner constructs a Runner for the provided optimizer configuration.
func NewRunner(logger *zap.Logger, conf config.OptimizerConfig) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	budget, err := conf.BudgetAmount()
	if err != nil {
		return nil, err
	}
	opts, err := conf.Options()
	if err != nil {
		return nil, err
	}
	solver, err := knapsack.NewSolver(opts)
	if err != nil {
		return nil, err
	}

	return &Runner{logger: logger, solver: solver, budget: budget, algorithm: conf.Algorithm}, nil
}

// Budget returns the configured budget.
func (r *Runner) Budget() decimal.Decimal {
	return r.budget
}

// Algorithm returns the configured algorithm.
func (r *Runner) Algorithm() string {
	return r.algorithm
}

// Options returns the solver options, which dataset readers use to filter
// rows the solver would refuse.
func (r *Runner) Options() knapsack.Options {
	return r.solver.Options()
}

// Run solves items against the configured budget with the configured algorithm.
func (r *Runner) Run(items []knapsack.Item) (*Result, error) {
	return r.RunWith(items, r.budget, r.algorithm)
}

// RunWith solves items against budget with the named algorithm. An empty
// algorithm name selects the configured one.
func (r *Runner) RunWith(items []knapsack.Item, budget decimal.Decimal, algorithm string) (*Result, error) {
	if algorithm == "" {
		algorithm = r.algorithm
	}
	algorithm = config.CanonicalAlgorithm(algorithm)

	start := time.Now()
	var (
		solution knapsack.Solution
		err      error
	)
	switch algorithm {
	case constants.AlgorithmDynamic:
		solution, err = r.solver.Solve(items, budget)
	case constants.AlgorithmExhaustive:
		solution, err = r.solver.SolveExhaustive(items, budget)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("%s optimization of %d items failed: %w", algorithm, len(items), err)
	}
	elapsed := time.Since(start)

	r.logger.Info("optimizer selected items",
		zap.String("op", "optimizer.Run"),
		zap.String("algorithm", algorithm),
		zap.Int("items", len(items)),
		zap.Int("considered", solution.Considered),
		zap.Int("skipped", len(solution.Skipped)),
		zap.Int("selected", len(solution.Selected)),
		zap.Int64("capacity", solution.Capacity),
		zap.String("budget", solution.Budget.String()),
		zap.String("totalCost", solution.TotalCost.String()),
		zap.String("totalValue", solution.TotalValue.String()),
		zap.Duration("duration", elapsed),
	)
	for _, item := range solution.Skipped {
		r.logger.Warn("optimizer skipped invalid item",
			zap.String("op", "optimizer.Run"),
			zap.String("id", item.ID),
			zap.String("cost", mathutil.Describe(item.Cost)),
			zap.String("value", mathutil.Describe(item.Value)),
		)
	}

	return &Result{Solution: solution, Algorithm: algorithm, Items: len(items), Duration: elapsed}, nil
}

// Summary shapes the result for reporting. rejectedRows is the number of
// dataset rows dropped before the run.
func (r *Result) Summary(source string, rejectedRows int) optimization.Summary {
	sol := r.Solution
	summary := optimization.Summary{
		Source:          source,
		Algorithm:       r.Algorithm,
		Budget:          sol.Budget,
		Selected:        make([]optimization.Selection, 0, len(sol.Selected)),
		TotalCost:       sol.TotalCost,
		TotalValue:      sol.TotalValue,
		Remaining:       sol.Remaining(),
		ReturnPercent:   mathutil.CalculatePercentage(sol.TotalValue, sol.TotalCost, 2),
		ItemsConsidered: sol.Considered,
		ItemsSkipped:    len(sol.Skipped),
		RowsRejected:    rejectedRows,
		Duration:        r.Duration.String(),
	}
	for _, item := range sol.Selected {
		summary.Selected = append(summary.Selected, optimization.Selection{
			ID:    item.ID,
			Cost:  item.Cost,
			Value: item.Value,
		})
	}
	p := message.NewPrinter(language.English)
	if rejectedRows > 0 {
		summary.Notes = append(summary.Notes, p.Sprintf("%d dataset rows rejected", rejectedRows))
	}
	if n := len(sol.Skipped); n > 0 {
		summary.Notes = append(summary.Notes, p.Sprintf("%d invalid items skipped", n))
	}
	if excluded := r.Items - sol.Considered - len(sol.Skipped); excluded > 0 {
		summary.Notes = append(summary.Notes, p.Sprintf("%d items cost more than the budget", excluded))
	}
	return summary
}
