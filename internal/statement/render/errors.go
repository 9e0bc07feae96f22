package render

import "errors"

var (
	// ErrPageOverflow is returned when a statement carries more rows than
	// the single fixed page can hold. There is no pagination.
	ErrPageOverflow = errors.New("render: statement exceeds single-page capacity")
	// ErrUnknownTemplate is returned when a template name matches no layout.
	ErrUnknownTemplate = errors.New("render: unknown template")
)
