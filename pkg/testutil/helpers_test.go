package testutil

import (
	"strings"
	"testing"
)

func TestFindItem(t *testing.T) {
	items := RandomItems(1, 5, 10000, 4000)

	tests := []struct {
		name        string
		id          string
		expectFound bool
	}{
		{name: "First item", id: "Action-1", expectFound: true},
		{name: "Last item", id: "Action-5", expectFound: true},
		{name: "Missing item", id: "Action-6", expectFound: false},
		{name: "Empty id", id: "", expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindItem(items, tt.id)
			if tt.expectFound {
				if result == nil {
					t.Fatalf("expected to find %q", tt.id)
				}
				if result.ID != tt.id {
					t.Errorf("expected ID %q, got %q", tt.id, result.ID)
				}
			} else if result != nil {
				t.Errorf("expected nil for %q, got %+v", tt.id, *result)
			}
		})
	}
}

func TestFindItemReturnsPointerIntoSlice(t *testing.T) {
	items := RandomItems(1, 3, 10000, 4000)
	found := FindItem(items, "Action-2")
	if found != &items[1] {
		t.Errorf("expected pointer to the original slice element")
	}
}

func TestRandomItemsDeterministic(t *testing.T) {
	a := RandomItems(42, 20, 50000, 5000)
	b := RandomItems(42, 20, 50000, 5000)
	if len(a) != 20 || len(b) != 20 {
		t.Fatalf("expected 20 items, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || !a[i].Cost.Equal(b[i].Cost) || !a[i].Value.Equal(b[i].Value) {
			t.Fatalf("item %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
		if !a[i].Cost.IsPositive() || !a[i].Value.IsPositive() {
			t.Errorf("item %d must have positive cost and value: %+v", i, a[i])
		}
	}
}

func TestItem(t *testing.T) {
	item := Item("A", "20.50", "1.025")
	if item.ID != "A" || item.Cost.String() != "20.5" || item.Value.String() != "1.025" {
		t.Errorf("unexpected item %+v", item)
	}
}

func TestDatasetCSV(t *testing.T) {
	out := DatasetCSV(nil)
	if out != "name,price,profit\n" {
		t.Errorf("unexpected header-only output %q", out)
	}

	out = DatasetCSV(RandomItems(7, 2, 10000, 4000)[:1])
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", out)
	}
	if !strings.HasPrefix(lines[1], "Action-1,") || !strings.HasSuffix(lines[1], "%") {
		t.Errorf("unexpected row %q", lines[1])
	}
}
