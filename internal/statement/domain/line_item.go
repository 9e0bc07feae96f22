package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemParams carries caller input for a single statement row.
type LineItemParams struct {
	OccurredOn time.Time
	Label      string
	LinkTarget string
	Reference  string
	DueOn      time.Time
	Amount     decimal.Decimal
	Paid       decimal.Decimal
}

// LineItem is one billable row on a statement. It is immutable once
// constructed; monetary values are normalized to two decimal places.
type LineItem struct {
	occurredOn time.Time
	label      string
	linkTarget string
	reference  string
	dueOn      time.Time
	amount     decimal.Decimal
	paid       decimal.Decimal
}

// NewLineItem validates and normalizes caller input into a LineItem.
// Amounts are rounded half-to-even to two decimals here, once, so every
// downstream sum works on the same normalized values. Dates are truncated
// to their UTC calendar day.
func NewLineItem(p LineItemParams) (LineItem, error) {
	if p.OccurredOn.IsZero() {
		return LineItem{}, ErrInvalidOccurredOn
	}
	if p.DueOn.IsZero() {
		return LineItem{}, ErrInvalidDueOn
	}
	if p.Amount.IsNegative() {
		return LineItem{}, ErrNegativeAmount
	}
	if p.Paid.IsNegative() {
		return LineItem{}, ErrNegativePaid
	}

	return LineItem{
		occurredOn: DayOf(p.OccurredOn),
		label:      p.Label,
		linkTarget: p.LinkTarget,
		reference:  p.Reference,
		dueOn:      DayOf(p.DueOn),
		amount:     normalizeAmount(p.Amount),
		paid:       normalizeAmount(p.Paid),
	}, nil
}

// OccurredOn returns the invoice/transaction date.
func (li LineItem) OccurredOn() time.Time { return li.occurredOn }

// Label returns the display text for the row's link.
func (li LineItem) Label() string { return li.label }

// LinkTarget returns the URI the row links to.
func (li LineItem) LinkTarget() string { return li.linkTarget }

// Reference returns the optional free-text reference.
func (li LineItem) Reference() string { return li.reference }

// DueOn returns the due date used to classify overdue vs current.
func (li LineItem) DueOn() time.Time { return li.dueOn }

// Amount returns the normalized invoice amount.
func (li LineItem) Amount() decimal.Decimal { return li.amount }

// Paid returns the normalized payments received against the row.
func (li LineItem) Paid() decimal.Decimal { return li.paid }

// Balance returns amount minus paid. It is negative when overpaid.
func (li LineItem) Balance() decimal.Decimal { return li.amount.Sub(li.paid) }
