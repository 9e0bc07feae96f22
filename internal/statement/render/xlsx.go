package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	statement "deskwork-invoice/internal/statement/domain"
)

// Workbook renders the statement as an XLSX workbook: a summary sheet
// with the header and totals, and an items sheet with one row per line
// item including its running balance. Spreadsheets have no fixed canvas,
// so there is no row cap on this path. Document properties are pinned to
// the reference date to keep identical requests byte-identical.
func Workbook(req statement.Request, totals statement.Totals, asOf time.Time) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "Statement"
	itemsSheet := "Items"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(itemsSheet)

	header := req.Header()
	_ = f.SetCellValue(summarySheet, "A1", "Overdue Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Recipient")
	_ = f.SetCellValue(summarySheet, "B3", header.RecipientName())
	_ = f.SetCellValue(summarySheet, "A4", "Issuer")
	_ = f.SetCellValue(summarySheet, "B4", header.IssuerName())
	_ = f.SetCellValue(summarySheet, "A5", "Period Start")
	_ = f.SetCellValue(summarySheet, "B5", header.PeriodStart())
	_ = f.SetCellValue(summarySheet, "A6", "Period End")
	_ = f.SetCellValue(summarySheet, "B6", header.PeriodEnd())
	_ = f.SetCellValue(summarySheet, "A7", "Currency")
	_ = f.SetCellValue(summarySheet, "B7", statement.CurrencyLabel)
	_ = f.SetCellValue(summarySheet, "A9", "Overdue")
	_ = f.SetCellValue(summarySheet, "B9", totals.OverdueTotal.InexactFloat64())
	_ = f.SetCellValue(summarySheet, "A10", "Current")
	_ = f.SetCellValue(summarySheet, "B10", totals.CurrentTotal.InexactFloat64())
	_ = f.SetCellValue(summarySheet, "A11", "Balance Due")
	_ = f.SetCellValue(summarySheet, "B11", totals.GrandTotal.InexactFloat64())

	itemHeaders := []string{
		"Date", "Activity", "Link", "Reference", "Due Date",
		"Invoice Amount", "Payments", "Balance", "Running Balance",
	}
	for i, h := range itemHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		_ = f.SetCellValue(itemsSheet, cell, h)
	}

	running := decimal.Zero
	for i, item := range req.Items() {
		row := i + 2
		running = running.Add(item.Balance())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("A%d", row), item.OccurredOn().Format("2006-01-02"))
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("B%d", row), item.Label())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("C%d", row), item.LinkTarget())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("D%d", row), item.Reference())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("E%d", row), item.DueOn().Format("2006-01-02"))
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("F%d", row), item.Amount().InexactFloat64())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("G%d", row), item.Paid().InexactFloat64())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("H%d", row), item.Balance().InexactFloat64())
		_ = f.SetCellValue(itemsSheet, fmt.Sprintf("I%d", row), running.InexactFloat64())
	}

	created := statement.DayOf(asOf).Format(time.RFC3339)
	_ = f.SetDocProps(&excelize.DocProperties{Created: created, Modified: created})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
