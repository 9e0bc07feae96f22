package render

import (
	"errors"
	"testing"
)

func TestLayoutByName(t *testing.T) {
	layout, err := LayoutByName("")
	if err != nil || layout.Name != Overdue.Name {
		t.Fatalf("expected empty name to select overdue, got %q err %v", layout.Name, err)
	}

	layout, err = LayoutByName("classic")
	if err != nil || layout.Name != Classic.Name {
		t.Fatalf("expected classic layout, got %q err %v", layout.Name, err)
	}

	_, err = LayoutByName("fancy")
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestLayoutVariantColumns(t *testing.T) {
	for _, col := range Overdue.Columns {
		if col.Field == FieldReference {
			t.Fatalf("expected overdue layout to drop the reference column")
		}
	}

	var hasReference bool
	for _, col := range Classic.Columns {
		if col.Field == FieldReference {
			hasReference = true
		}
	}
	if !hasReference {
		t.Fatalf("expected classic layout to keep the reference column")
	}
	if !Classic.AdviceAllOverdue {
		t.Fatalf("expected classic advice slip to report everything overdue")
	}

	// Both variants must stay inside the content area and keep their
	// columns in reading order.
	for _, layout := range []Layout{Overdue, Classic} {
		prev := 0.0
		for _, col := range layout.Columns {
			if col.X < prev {
				t.Fatalf("%s: column %q out of order at x=%v", layout.Name, col.Header, col.X)
			}
			if col.X < pageMetrics.MarginX || col.X > pageWidth-pageMetrics.MarginX {
				t.Fatalf("%s: column %q outside content area at x=%v", layout.Name, col.Header, col.X)
			}
			prev = col.X
		}
	}
}

func TestMaxLineItems(t *testing.T) {
	// Pinned to the current geometry: 673.89pt of table space minus the
	// 271pt tail below the table and the 40pt bottom margin, at 18pt per
	// row. Nudging any metric shows up here.
	if got := MaxLineItems(); got != 20 {
		t.Fatalf("expected capacity 20, got %d", got)
	}
}
