// Package dataset reads candidate investments from CSV files and converts
// payout percentages into absolute payout values.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/portfolio-picker/internal/knapsack"
	"github.com/iwvelando/portfolio-picker/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrMalformedDataset is returned when the file itself cannot be used, as
// opposed to individual rows that are rejected.
var ErrMalformedDataset = errors.New("dataset: malformed dataset")

// Columns selects the CSV columns by header name. Empty names fall back to
// position: name is column 0, cost column 1 and payout percent column 2.
type Columns struct {
	Name    string `yaml:"name,omitempty" mapstructure:"name"`
	Cost    string `yaml:"cost,omitempty" mapstructure:"cost"`
	Percent string `yaml:"percent,omitempty" mapstructure:"percent"`
}

// Rejection describes a row left out of the dataset.
type Rejection struct {
	Line   int    `json:"line"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// Dataset holds the accepted items and the rejected rows of one file.
type Dataset struct {
	Source   string
	Items    []knapsack.Item
	Rejected []Rejection
}

// Load opens path and reads it with Read.
func Load(logger *zap.Logger, path string, columns Columns, opts knapsack.Options) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && logger != nil {
			logger.Warn("failed to close dataset",
				zap.String("op", "dataset.Load"),
				zap.String("path", path),
				zap.Error(closeErr),
			)
		}
	}()

	ds, err := Read(logger, file, columns, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// Read parses a CSV stream with a header row. Rows with a missing name, a
// missing, non-numeric or non-positive cost or percent, or a name already
// accepted are rejected and reported. So are rows the solver configured by
// opts could not take: a cost that rounds to zero units or overflows at
// opts.Precision, and a payout needing more than opts.ValuePrecision digits.
// The remaining rows become items with value = cost × percent / 100.
func Read(logger *zap.Logger, r io.Reader, columns Columns, opts knapsack.Options) (*Dataset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", ErrMalformedDataset)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx, err := resolveColumns(header, columns)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	seen := make(map[string]struct{})
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
		}
		line, _ := reader.FieldPos(0)

		item, reason := parseRecord(record, idx, opts)
		if reason == "" {
			if _, dup := seen[item.ID]; dup {
				reason = "duplicate name"
			}
		}
		if reason != "" {
			rejection := Rejection{Line: line, Name: item.ID, Reason: reason}
			ds.Rejected = append(ds.Rejected, rejection)
			logger.Debug("rejected dataset row",
				zap.String("op", "dataset.Read"),
				zap.Int("line", rejection.Line),
				zap.String("name", rejection.Name),
				zap.String("reason", rejection.Reason),
			)
			continue
		}
		seen[item.ID] = struct{}{}
		ds.Items = append(ds.Items, item)
	}

	logger.Info("dataset read",
		zap.String("op", "dataset.Read"),
		zap.Int("accepted", len(ds.Items)),
		zap.Int("rejected", len(ds.Rejected)),
	)
	return ds, nil
}

type columnIndex struct {
	name, cost, percent int
}

func (c columnIndex) max() int {
	return max(c.name, c.cost, c.percent)
}

func resolveColumns(header []string, columns Columns) (columnIndex, error) {
	idx := columnIndex{name: 0, cost: 1, percent: 2}
	lookup := func(want string, fallback int) (int, error) {
		want = strings.TrimSpace(want)
		if want == "" {
			return fallback, nil
		}
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: column %q not found in header", ErrMalformedDataset, want)
	}

	var err error
	if idx.name, err = lookup(columns.Name, idx.name); err != nil {
		return idx, err
	}
	if idx.cost, err = lookup(columns.Cost, idx.cost); err != nil {
		return idx, err
	}
	if idx.percent, err = lookup(columns.Percent, idx.percent); err != nil {
		return idx, err
	}
	if idx.max() >= len(header) {
		return idx, fmt.Errorf("%w: header has %d columns, need %d", ErrMalformedDataset, len(header), idx.max()+1)
	}
	return idx, nil
}

func parseRecord(record []string, idx columnIndex, opts knapsack.Options) (knapsack.Item, string) {
	var item knapsack.Item
	if idx.name < len(record) {
		item.ID = strings.TrimSpace(record[idx.name])
	}
	if item.ID == "" {
		return item, "missing name"
	}
	if idx.max() >= len(record) {
		return item, "missing column"
	}

	cost, err := parseAmount(record[idx.cost])
	if err != nil {
		return item, fmt.Sprintf("invalid cost: %v", err)
	}
	if !cost.IsPositive() {
		return item, fmt.Sprintf("non-positive cost %s", mathutil.Describe(cost))
	}
	units, err := mathutil.ToUnits(cost, opts.Precision)
	if err != nil {
		return item, fmt.Sprintf("cost out of range: %v", err)
	}
	if units == 0 {
		return item, fmt.Sprintf("cost %s rounds to zero at %d digits", mathutil.Describe(cost), opts.Precision)
	}

	percent, err := ParsePercent(record[idx.percent])
	if err != nil {
		return item, fmt.Sprintf("invalid percent: %v", err)
	}
	if !percent.IsPositive() {
		return item, fmt.Sprintf("non-positive percent %s", mathutil.Describe(percent))
	}

	value := Payout(cost, percent)
	scale, err := mathutil.Scale(value, opts.ValuePrecision)
	if err != nil {
		return item, fmt.Sprintf("payout %s has more than %d fractional digits", mathutil.Describe(value), opts.ValuePrecision)
	}
	if _, err := mathutil.ToUnits(value, scale); err != nil {
		return item, fmt.Sprintf("payout out of range: %v", err)
	}

	item.Cost = cost
	item.Value = value
	return item, ""
}

func parseAmount(field string) (decimal.Decimal, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return decimal.Zero, errors.New("empty")
	}
	return decimal.NewFromString(field)
}

// ParsePercent parses a percentage such as "17.5" or "17.5%".
func ParsePercent(field string) (decimal.Decimal, error) {
	field = strings.TrimSpace(field)
	field = strings.TrimSpace(strings.TrimSuffix(field, "%"))
	return parseAmount(field)
}

// Payout converts a payout percentage into an absolute value.
func Payout(cost, percent decimal.Decimal) decimal.Decimal {
	return mathutil.ApplyPercentage(cost, percent)
}
