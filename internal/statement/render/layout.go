package render

import "fmt"

// A4 portrait in PDF points, matching gofpdf's "A4" page size.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
)

// Alignment places a cell against its column offset.
type Alignment int

const (
	// AlignLeft draws the cell starting at the column offset.
	AlignLeft Alignment = iota
	// AlignRight draws the cell ending at the column offset.
	AlignRight
)

// Field selects which line-item value a column renders.
type Field int

const (
	// FieldOccurredOn is the invoice/transaction date.
	FieldOccurredOn Field = iota
	// FieldLabel is the clickable activity text.
	FieldLabel
	// FieldReference is the optional free-text reference.
	FieldReference
	// FieldDueOn is the payment due date.
	FieldDueOn
	// FieldAmount is the invoice amount.
	FieldAmount
	// FieldRunningBalance is the prefix sum of balances up to the row.
	FieldRunningBalance
)

// Column places one line-item field in the statement table. X is the
// left edge for left-aligned cells and the right edge for right-aligned
// ones. A Link column is drawn in the accent color and registered as a
// clickable region over the rendered text.
type Column struct {
	Field  Field
	Header string
	X      float64
	Align  Alignment
	Link   bool
}

// Layout is one printable statement template: its title, its column
// table, and how its payment advice classifies the balance. All
// templates share the vertical rhythm in pageMetrics.
type Layout struct {
	Name    string
	Title   string
	Columns []Column
	// AdviceAllOverdue reproduces the older template's advice slip,
	// which reports the whole grand total as overdue.
	AdviceAllOverdue bool
}

// Overdue is the canonical template: calendar dates and a true
// overdue/current split on the payment advice.
var Overdue = Layout{
	Name:  "overdue",
	Title: "OVERDUE STATEMENT",
	Columns: []Column{
		{Field: FieldOccurredOn, Header: "Date", X: 40},
		{Field: FieldLabel, Header: "Activity", X: 115, Link: true},
		{Field: FieldDueOn, Header: "Due Date", X: 280},
		{Field: FieldAmount, Header: "Invoice Amount", X: 420, Align: AlignRight},
		{Field: FieldRunningBalance, Header: "Balance AUD", X: 520, Align: AlignRight},
	},
}

// Classic is the older template kept for callers still printing it: a
// reference column between activity and due date, and an advice slip
// that treats the entire balance as overdue.
var Classic = Layout{
	Name:  "classic",
	Title: "OVER DUE STATEMENT",
	Columns: []Column{
		{Field: FieldOccurredOn, Header: "Date", X: 40},
		{Field: FieldLabel, Header: "Activity", X: 115, Link: true},
		{Field: FieldReference, Header: "Reference", X: 190},
		{Field: FieldDueOn, Header: "Due Date", X: 280},
		{Field: FieldAmount, Header: "Invoice Amount", X: 420, Align: AlignRight},
		{Field: FieldRunningBalance, Header: "Balance AUD", X: 520, Align: AlignRight},
	},
	AdviceAllOverdue: true,
}

// LayoutByName resolves a template name. The empty name selects the
// canonical overdue template.
func LayoutByName(name string) (Layout, error) {
	switch name {
	case "", Overdue.Name:
		return Overdue, nil
	case Classic.Name:
		return Classic, nil
	default:
		return Layout{}, fmt.Errorf("%w %q", ErrUnknownTemplate, name)
	}
}

// metrics is the fixed vertical rhythm and the shared horizontal anchors
// of the statement page. Drops are measured down from the top edge;
// advances are the distance from one baseline (or rule) to the next,
// in the top-to-bottom order the page is drawn.
type metrics struct {
	MarginX float64 // left and right page margin

	TitleDrop     float64 // top edge to the title baseline
	HeaderLabelX  float64 // x of the From Date / To Date labels
	HeaderValueX  float64 // x of the recipient name on the title line
	PeriodAdvance float64 // label baseline to its period value baseline
	LabelAdvance  float64 // period value baseline to the next label
	IssuerDrop    float64 // top edge to the issuer name baseline

	TableDrop     float64 // top edge to the table header baseline
	HeaderRuleGap float64 // header baseline to the rule below it
	RowAdvance    float64 // rule or row baseline to the next row baseline
	RowRuleGap    float64 // row baseline to the gray rule below it
	TableCloseGap float64 // last gray rule to the closing rule

	LinkRise float64 // row baseline to the top of the link region
	LinkDrop float64 // row baseline to the bottom of the link region

	BalanceAdvance   float64 // closing rule to the balance-due baseline
	SeparatorAdvance float64 // balance-due baseline to the dashed rule

	AdviceTitleAdvance float64 // dashed rule to the PAYMENT ADVICE baseline
	AdviceToAdvance    float64 // PAYMENT ADVICE baseline to the To: line
	DetailAdvance      float64 // To: line to the Customer baseline

	DetailX        float64 // left edge of the advice detail block
	DetailIssuerX  float64 // x of the issuer name in the Customer row
	DetailOverdueX float64 // x of the Overdue column
	DetailCurrentX float64 // x of the Current column
	DetailTotalX   float64 // x of the Total Due column

	DetailRuleRise     float64 // Customer baseline to the rule above it
	DetailLabelAdvance float64 // Customer baseline to the column labels
	DetailValueAdvance float64 // column labels to the values baseline
	DetailRuleGap      float64 // values baseline to the rule below
	EnclosedAdvance    float64 // that rule to the Amount Enclosed baseline
	EnclosedRuleGap    float64 // Amount Enclosed baseline to the final rule

	BottomMargin float64 // minimum y for the lowest mark on the page
}

// pageMetrics is the single reviewable source for the page geometry.
var pageMetrics = metrics{
	MarginX: 40,

	TitleDrop:     50,
	HeaderLabelX:  360,
	HeaderValueX:  480,
	PeriodAdvance: 15,
	LabelAdvance:  13,
	IssuerDrop:    105,

	TableDrop:     165,
	HeaderRuleGap: 3,
	RowAdvance:    15,
	RowRuleGap:    3,
	TableCloseGap: 10,

	LinkRise: 10,
	LinkDrop: 2,

	BalanceAdvance:   25,
	SeparatorAdvance: 100,

	AdviceTitleAdvance: 30,
	AdviceToAdvance:    20,
	DetailAdvance:      35,

	DetailX:        320,
	DetailIssuerX:  440,
	DetailOverdueX: 320,
	DetailCurrentX: 395,
	DetailTotalX:   470,

	DetailRuleRise:     5,
	DetailLabelAdvance: 13,
	DetailValueAdvance: 15,
	DetailRuleGap:      5,
	EnclosedAdvance:    13,
	EnclosedRuleGap:    5,

	BottomMargin: 40,
}

// MaxLineItems is how many rows fit between the table header and the
// payment advice block on the fixed canvas. Statements with more rows
// are rejected with ErrPageOverflow rather than paginated or cropped.
func MaxLineItems() int {
	m := pageMetrics
	ruleY := pageHeight - m.TableDrop - m.HeaderRuleGap
	tail := m.TableCloseGap + m.BalanceAdvance + m.SeparatorAdvance +
		m.AdviceTitleAdvance + m.AdviceToAdvance + m.DetailAdvance +
		m.DetailLabelAdvance + m.DetailValueAdvance + m.DetailRuleGap +
		m.EnclosedAdvance + m.EnclosedRuleGap
	return int((ruleY - tail - m.BottomMargin) / (m.RowAdvance + m.RowRuleGap))
}
