package statement

import "unicode/utf8"

const maxNameLength = 200

// Header is the document-level metadata for a statement. The period
// fields are display labels; they take no part in any calculation.
type Header struct {
	recipientName string
	issuerName    string
	periodStart   string
	periodEnd     string
}

// NewHeader validates statement metadata. Period labels are free text,
// but periodEnd must not sort before periodStart byte-wise, which keeps
// ISO-formatted date labels in chronological order.
func NewHeader(recipientName, issuerName, periodStart, periodEnd string) (Header, error) {
	if n := utf8.RuneCountInString(recipientName); n == 0 || n > maxNameLength {
		return Header{}, ErrRecipientName
	}
	if n := utf8.RuneCountInString(issuerName); n == 0 || n > maxNameLength {
		return Header{}, ErrIssuerName
	}
	if periodEnd < periodStart {
		return Header{}, ErrPeriodOrder
	}

	return Header{
		recipientName: recipientName,
		issuerName:    issuerName,
		periodStart:   periodStart,
		periodEnd:     periodEnd,
	}, nil
}

// RecipientName returns the customer the statement is addressed to.
func (h Header) RecipientName() string { return h.recipientName }

// IssuerName returns the company issuing the statement.
func (h Header) IssuerName() string { return h.issuerName }

// PeriodStart returns the period start display label.
func (h Header) PeriodStart() string { return h.periodStart }

// PeriodEnd returns the period end display label.
func (h Header) PeriodEnd() string { return h.periodEnd }

// Request is a fully validated statement: header metadata plus an ordered,
// non-empty sequence of line items.
type Request struct {
	header Header
	items  []LineItem
}

// NewRequest builds a Request from validated parts. The item slice is
// copied so later caller mutations cannot reach the request.
func NewRequest(header Header, items []LineItem) (Request, error) {
	if len(items) == 0 {
		return Request{}, ErrNoLineItems
	}
	return Request{
		header: header,
		items:  append([]LineItem(nil), items...),
	}, nil
}

// Header returns the statement metadata.
func (r Request) Header() Header { return r.header }

// Items returns the line items in input order. Callers must not modify
// the returned slice.
func (r Request) Items() []LineItem { return r.items }
