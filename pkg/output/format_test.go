package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/portfolio-picker/pkg/optimization"
	"github.com/shopspring/decimal"
)

func sampleSummary() optimization.Summary {
	d := decimal.RequireFromString
	return optimization.Summary{
		Source:    "shares.csv",
		Algorithm: "dynamic",
		Budget:    d("500"),
		Selected: []optimization.Selection{
			{ID: "Action-10", Cost: d("34"), Value: d("9.18")},
			{ID: "Action-20", Cost: d("114"), Value: d("20.52")},
		},
		TotalCost:       d("148"),
		TotalValue:      d("29.70"),
		Remaining:       d("352"),
		ReturnPercent:   d("20.07"),
		ItemsConsidered: 20,
		Duration:        "1.2ms",
		Notes:           []string{"1 dataset rows rejected"},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, sampleSummary(), "€"); err != nil {
		t.Fatalf("PrettyFormat failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"--- Selected investments for shares.csv (dynamic) ---",
		"Investment |           Cost |         Payout",
		"Action-10  |         €34.00 |          €9.18",
		"Budget:          €500.00",
		"Total payout:    €29.70",
		"Return:          20.07%",
		"Selected:        2 of 20 candidates",
		"Note: 1 dataset rows rejected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PrettyFormat output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyFormatGroupsLargeCounts(t *testing.T) {
	summary := sampleSummary()
	summary.ItemsConsidered = 12345
	summary.Budget = decimal.RequireFromString("1234567")

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, summary, "€"); err != nil {
		t.Fatalf("PrettyFormat failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Selected:        2 of 12,345 candidates",
		"Budget:          €1,234,567.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PrettyFormat output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyFormatEmptySelection(t *testing.T) {
	summary := optimization.Summary{Algorithm: "exhaustive", Budget: decimal.Zero}
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, summary, "$"); err != nil {
		t.Fatalf("PrettyFormat failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "--- Selected investments (exhaustive) ---") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "Total cost:      $0.00") {
		t.Errorf("expected zero total:\n%s", out)
	}
}

func TestCsvFormat(t *testing.T) {
	expected := "id,cost,value\nAction-10,34,9.18\nAction-20,114,20.52\nTOTAL,148,29.7\n"
	if got := CsvString(sampleSummary()); got != expected {
		t.Errorf("CsvString() = %q, expected %q", got, expected)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, sampleSummary()); err != nil {
		t.Fatalf("JSONFormat failed: %v", err)
	}

	var decoded optimization.Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output does not decode: %v", err)
	}
	if len(decoded.Selected) != 2 || decoded.Selected[1].ID != "Action-20" {
		t.Errorf("unexpected selection %+v", decoded.Selected)
	}
	if !decoded.TotalValue.Equal(decimal.RequireFromString("29.7")) {
		t.Errorf("unexpected total value %s", decoded.TotalValue)
	}
	if !strings.Contains(buf.String(), `"totalCost": "148"`) {
		t.Errorf("expected decimal amounts as strings:\n%s", buf.String())
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "xml", sampleSummary(), ""); err == nil {
		t.Errorf("expected error for unknown format")
	}
	if err := Write(&buf, "csv", sampleSummary(), ""); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
