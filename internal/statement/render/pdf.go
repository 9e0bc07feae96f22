package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	statement "deskwork-invoice/internal/statement/domain"
)

const (
	fontFamily = "Helvetica"
	dateFormat = "2 Jan 2006"

	sizeTitle       = 22
	sizeAdviceTitle = 23
	sizeBalance     = 11
	sizeIssuer      = 10
	sizeBody        = 9
)

// Accent color for link cells and the gray of the row rules.
const (
	accentR, accentG, accentB = 0, 102, 204
	ruleGray                  = 204
)

// page adapts the bottom-origin layout coordinates to gofpdf's top-down
// coordinate system.
type page struct {
	pdf *gofpdf.Fpdf
}

func (p page) setFont(style string, size float64) {
	p.pdf.SetFont(fontFamily, style, size)
}

func (p page) text(x, y float64, s string) {
	p.pdf.Text(x, pageHeight-y, s)
}

func (p page) textRight(right, y float64, s string) {
	p.pdf.Text(right-p.pdf.GetStringWidth(s), pageHeight-y, s)
}

func (p page) line(x1, y1, x2, y2 float64) {
	p.pdf.Line(x1, pageHeight-y1, x2, pageHeight-y2)
}

// Statement renders a single-page statement document with the given
// template. The row loop accumulates the running balance with the same
// decimal arithmetic the aggregator uses, so the drawn figures always
// agree with totals. The reference date pins the document creation
// timestamp, which keeps identical requests byte-identical; it plays no
// part in the arithmetic.
func Statement(layout Layout, req statement.Request, totals statement.Totals, asOf time.Time) ([]byte, error) {
	items := req.Items()
	if capacity := MaxLineItems(); len(items) > capacity {
		return nil, fmt.Errorf("%w: %d items, capacity %d", ErrPageOverflow, len(items), capacity)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCreationDate(statement.DayOf(asOf))
	pdf.SetTitle(layout.Title, false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := page{pdf: pdf}
	m := pageMetrics
	right := pageWidth - m.MarginX
	header := req.Header()

	// Header band: title on the left, period stack on the right, issuer
	// below the title.
	y := pageHeight - m.TitleDrop
	p.setFont("", sizeTitle)
	p.text(m.MarginX, y, layout.Title)

	p.setFont("B", sizeBody)
	p.text(m.HeaderLabelX, y, "From Date")
	p.setFont("", sizeBody)
	p.text(m.HeaderValueX, y, header.RecipientName())

	y -= m.PeriodAdvance
	p.text(m.HeaderLabelX, y, header.PeriodStart())

	y -= m.LabelAdvance
	p.setFont("B", sizeBody)
	p.text(m.HeaderLabelX, y, "To Date")

	y -= m.PeriodAdvance
	p.setFont("", sizeBody)
	p.text(m.HeaderLabelX, y, header.PeriodEnd())

	p.setFont("", sizeIssuer)
	p.text(m.MarginX, pageHeight-m.IssuerDrop, header.IssuerName())

	// Line-item table.
	y = pageHeight - m.TableDrop
	p.setFont("B", sizeBody)
	for _, col := range layout.Columns {
		if col.Align == AlignRight {
			p.textRight(col.X, y, col.Header)
		} else {
			p.text(col.X, y, col.Header)
		}
	}

	y -= m.HeaderRuleGap
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1)
	p.line(m.MarginX, y, right, y)

	running := decimal.Zero
	p.setFont("", sizeBody)
	for _, item := range items {
		y -= m.RowAdvance
		running = running.Add(item.Balance())

		for _, col := range layout.Columns {
			value := cellValue(col.Field, item, running)
			switch {
			case col.Link:
				pdf.SetTextColor(accentR, accentG, accentB)
				p.text(col.X, y, value)
				pdf.LinkString(col.X, pageHeight-(y+m.LinkRise),
					pdf.GetStringWidth(value), m.LinkRise+m.LinkDrop, item.LinkTarget())
				pdf.SetTextColor(0, 0, 0)
			case col.Align == AlignRight:
				p.textRight(col.X, y, value)
			default:
				p.text(col.X, y, value)
			}
		}

		y -= m.RowRuleGap
		pdf.SetDrawColor(ruleGray, ruleGray, ruleGray)
		p.line(m.MarginX, y, right, y)
	}

	y -= m.TableCloseGap
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1)
	p.line(m.MarginX, y, right, y)

	// Balance due.
	y -= m.BalanceAdvance
	p.setFont("B", sizeBalance)
	p.textRight(right, y, fmt.Sprintf("BALANCE DUE %s  %s",
		statement.CurrencyLabel, statement.FormatAmount(running)))

	// Tear-off separator between statement and payment advice.
	y -= m.SeparatorAdvance
	pdf.SetLineWidth(0.5)
	pdf.SetDashPattern([]float64{2, 2}, 0)
	p.line(m.MarginX, y, right, y)
	pdf.SetDashPattern([]float64{}, 0)

	// Payment advice slip.
	y -= m.AdviceTitleAdvance
	p.setFont("", sizeAdviceTitle)
	p.text(m.MarginX, y, "PAYMENT ADVICE")

	y -= m.AdviceToAdvance
	p.setFont("", sizeBody)
	p.text(m.MarginX, y, "To: "+header.RecipientName())

	overdue, current := totals.OverdueTotal, totals.CurrentTotal
	if layout.AdviceAllOverdue {
		overdue, current = totals.GrandTotal, decimal.Zero
	}

	y -= m.DetailAdvance
	p.line(m.DetailX, y+m.DetailRuleRise, right, y+m.DetailRuleRise)
	p.setFont("B", sizeBody)
	p.text(m.DetailX, y, "Customer")
	p.setFont("", sizeBody)
	p.text(m.DetailIssuerX, y, header.IssuerName())

	y -= m.DetailLabelAdvance
	p.setFont("B", sizeBody)
	p.text(m.DetailOverdueX, y, "Overdue")
	p.text(m.DetailCurrentX, y, "Current")
	p.text(m.DetailTotalX, y, "Total "+statement.CurrencyLabel+" Due")

	y -= m.DetailValueAdvance
	p.setFont("", sizeBody)
	p.text(m.DetailOverdueX, y, statement.FormatAmount(overdue))
	p.text(m.DetailCurrentX, y, statement.FormatAmount(current))
	p.text(m.DetailTotalX, y, statement.FormatAmount(totals.GrandTotal))

	y -= m.DetailRuleGap
	p.line(m.DetailX, y, right, y)

	y -= m.EnclosedAdvance
	p.setFont("B", sizeBody)
	p.text(m.DetailX, y, "Amount Enclosed")

	y -= m.EnclosedRuleGap
	p.line(m.DetailX, y, right, y)

	if pdf.Err() {
		return nil, fmt.Errorf("render: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(f Field, item statement.LineItem, running decimal.Decimal) string {
	switch f {
	case FieldOccurredOn:
		return item.OccurredOn().Format(dateFormat)
	case FieldLabel:
		return item.Label()
	case FieldReference:
		return item.Reference()
	case FieldDueOn:
		return item.DueOn().Format(dateFormat)
	case FieldAmount:
		return statement.FormatAmount(item.Amount())
	case FieldRunningBalance:
		return statement.FormatAmount(running)
	}
	return ""
}
