package statement

import "errors"

var (
	// ErrNoLineItems is returned when a request carries no line items.
	ErrNoLineItems = errors.New("statement: at least one line item required")
	// ErrRecipientName is returned when the recipient name is empty or too long.
	ErrRecipientName = errors.New("statement: recipient name must be 1-200 characters")
	// ErrIssuerName is returned when the issuer name is empty or too long.
	ErrIssuerName = errors.New("statement: issuer name must be 1-200 characters")
	// ErrPeriodOrder is returned when period_end sorts before period_start.
	ErrPeriodOrder = errors.New("statement: period_end must not be before period_start")
	// ErrInvalidOccurredOn is returned when a line item has no occurred-on date.
	ErrInvalidOccurredOn = errors.New("statement: invalid occurred_on date")
	// ErrInvalidDueOn is returned when a line item has no due-on date.
	ErrInvalidDueOn = errors.New("statement: invalid due_on date")
	// ErrNegativeAmount is returned when an invoice amount is negative.
	ErrNegativeAmount = errors.New("statement: amount must not be negative")
	// ErrNegativePaid is returned when a payments value is negative.
	ErrNegativePaid = errors.New("statement: paid must not be negative")
)
