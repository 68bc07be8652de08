// Package output provides utilities for formatting and displaying optimization results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/portfolio-picker/pkg/constants"
	"github.com/iwvelando/portfolio-picker/pkg/format"
	"github.com/iwvelando/portfolio-picker/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders summary to w in the named format.
func Write(w io.Writer, outputFormat string, summary optimization.Summary, symbol string) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, summary, symbol)
	case constants.OutputFormatCSV:
		return CsvFormat(w, summary)
	case constants.OutputFormatJSON:
		return JSONFormat(w, summary)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, summary optimization.Summary, symbol string) error {
	p := message.NewPrinter(language.English)

	idWidth := len("Investment")
	for _, sel := range summary.Selected {
		idWidth = max(idWidth, len(sel.ID))
	}

	var b strings.Builder
	title := "--- Selected investments"
	if summary.Source != "" {
		title += " for " + summary.Source
	}
	fmt.Fprintf(&b, "%s (%s) ---\n", title, summary.Algorithm)
	fmt.Fprintf(&b, "%-*s | %14s | %14s\n", idWidth, "Investment", "Cost", "Payout")
	fmt.Fprintf(&b, "%s | %s | %s\n", strings.Repeat("_", idWidth), strings.Repeat("_", 14), strings.Repeat("_", 14))
	for _, sel := range summary.Selected {
		fmt.Fprintf(&b, "%-*s | %14s | %14s\n", idWidth, sel.ID,
			format.Currency(sel.Cost, symbol), format.Currency(sel.Value, symbol))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Budget:          %s\n", format.Currency(summary.Budget, symbol))
	fmt.Fprintf(&b, "Total cost:      %s\n", format.Currency(summary.TotalCost, symbol))
	fmt.Fprintf(&b, "Total payout:    %s\n", format.Currency(summary.TotalValue, symbol))
	fmt.Fprintf(&b, "Remaining:       %s\n", format.Currency(summary.Remaining, symbol))
	fmt.Fprintf(&b, "Return:          %s\n", format.Percent(summary.ReturnPercent))
	// Counts get locale digit grouping; amounts are already grouped above.
	_, _ = p.Fprintf(&b, "Selected:        %d of %d candidates\n", len(summary.Selected), summary.ItemsConsidered)
	if summary.Duration != "" {
		fmt.Fprintf(&b, "Duration:        %s\n", summary.Duration)
	}
	for _, note := range summary.Notes {
		fmt.Fprintf(&b, "Note: %s\n", note)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs in comma-separated value format: one row per selected
// investment followed by a TOTAL row.
func CsvFormat(w io.Writer, summary optimization.Summary) error {
	cw := csv.NewWriter(w)
	records := make([][]string, 0, len(summary.Selected)+2)
	records = append(records, []string{"id", "cost", "value"})
	for _, sel := range summary.Selected {
		records = append(records, []string{sel.ID, sel.Cost.String(), sel.Value.String()})
	}
	records = append(records, []string{"TOTAL", summary.TotalCost.String(), summary.TotalValue.String()})
	return cw.WriteAll(records)
}

// CsvString renders the CSV report to a string.
func CsvString(summary optimization.Summary) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, summary); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat outputs the summary as indented JSON.
func JSONFormat(w io.Writer, summary optimization.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
