package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals is the derived arithmetic for one statement request. Nothing in
// it is persisted; it is recomputed per request from the line items and a
// reference date sampled once by the caller.
type Totals struct {
	// RunningBalances holds the prefix sums of per-row balances in input
	// order. The last element equals GrandTotal.
	RunningBalances []decimal.Decimal
	// OverdueTotal sums balances of rows due strictly before the
	// reference date.
	OverdueTotal decimal.Decimal
	// CurrentTotal sums balances of rows due on or after the reference
	// date. A row due exactly on the reference date is current.
	CurrentTotal decimal.Decimal
	// GrandTotal is OverdueTotal plus CurrentTotal.
	GrandTotal decimal.Decimal
}

// Aggregate computes Totals over items in input order against the asOf
// reference date. The order of items is preserved exactly; inputs are
// assumed already validated, and a negative balance from an overpaid row
// is carried through as-is.
func Aggregate(items []LineItem, asOf time.Time) Totals {
	day := DayOf(asOf)

	totals := Totals{
		RunningBalances: make([]decimal.Decimal, 0, len(items)),
		OverdueTotal:    decimal.Zero,
		CurrentTotal:    decimal.Zero,
	}

	running := decimal.Zero
	for _, item := range items {
		balance := item.Balance()
		running = running.Add(balance)
		totals.RunningBalances = append(totals.RunningBalances, running)

		if item.DueOn().Before(day) {
			totals.OverdueTotal = totals.OverdueTotal.Add(balance)
		} else {
			totals.CurrentTotal = totals.CurrentTotal.Add(balance)
		}
	}

	totals.GrandTotal = totals.OverdueTotal.Add(totals.CurrentTotal)
	return totals
}

// DayOf truncates t to its calendar date in UTC. Both due dates and the
// reference date go through this, so overdue classification is a pure
// date comparison.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
