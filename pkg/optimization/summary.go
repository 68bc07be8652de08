// Package optimization provides shared data structures for optimization results.
package optimization

import (
	"github.com/shopspring/decimal"
)

// Selection is one chosen investment in a Summary.
type Selection struct {
	ID    string          `json:"id"`
	Cost  decimal.Decimal `json:"cost"`
	Value decimal.Decimal `json:"value"`
}

// Summary captures the result of a single optimization run in the shape
// rendered by the report printers and returned by the HTTP API.
type Summary struct {
	Source          string          `json:"source,omitempty"`
	Algorithm       string          `json:"algorithm"`
	Budget          decimal.Decimal `json:"budget"`
	Selected        []Selection     `json:"selected"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	Remaining       decimal.Decimal `json:"remaining"`
	ReturnPercent   decimal.Decimal `json:"returnPercent"`
	ItemsConsidered int             `json:"itemsConsidered"`
	ItemsSkipped    int             `json:"itemsSkipped"`
	RowsRejected    int             `json:"rowsRejected"`
	Duration        string          `json:"duration"`
	Notes           []string        `json:"notes,omitempty"`
}
