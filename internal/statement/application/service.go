package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"deskwork-invoice/internal/observability/metrics"
	statement "deskwork-invoice/internal/statement/domain"
	"deskwork-invoice/internal/statement/render"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Clock supplies the reference date for statement processing.
type Clock interface {
	Now() time.Time
}

// Document is a rendered statement ready to be sent as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Bytes       []byte
}

// Summary reports the aggregator's totals without producing a document.
// FileSize is always zero: no document is rendered on the preview path.
type Summary struct {
	Message       string  `json:"message"`
	TotalDue      float64 `json:"total_due"`
	OverdueAmount float64 `json:"overdue_amount"`
	CurrentAmount float64 `json:"current_amount"`
	FileSize      int     `json:"file_size"`
}

// StatementService runs statement workflows over validated requests. It
// samples the reference date once per request and threads it through
// aggregation and rendering, so both see the same day even across a
// midnight boundary.
type StatementService struct {
	clock  Clock
	logger *log.Logger
}

// NewStatementService constructs a service.
func NewStatementService(clock Clock, logger *log.Logger) (*StatementService, error) {
	if clock == nil {
		return nil, errors.New("statement service: nil clock")
	}
	if logger == nil {
		return nil, errors.New("statement service: nil logger")
	}
	return &StatementService{clock: clock, logger: logger}, nil
}

// Generate renders the statement PDF with the given template and names
// the attachment after the issuer and the reference date.
func (s *StatementService) Generate(ctx context.Context, req statement.Request, layout render.Layout) (Document, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStatementGenerate(result, time.Since(start))
	}()

	asOf := s.clock.Now().UTC()
	totals := statement.Aggregate(req.Items(), asOf)

	out, err := render.Statement(layout, req, totals, asOf)
	if err != nil {
		result = metrics.ResultError
		s.logger.Printf("statement generate failed for %s: %v", req.Header().IssuerName(), err)
		return Document{}, err
	}

	s.logger.Printf("statement generated for %s: %d rows, %d bytes",
		req.Header().IssuerName(), len(req.Items()), len(out))

	return Document{
		Filename:    attachmentFilename(req.Header().IssuerName(), asOf, "pdf"),
		ContentType: pdfContentType,
		Bytes:       out,
	}, nil
}

// Preview reports the aggregator's totals without rendering a document.
func (s *StatementService) Preview(ctx context.Context, req statement.Request) Summary {
	start := time.Now()
	defer func() {
		metrics.ObserveStatementPreview(metrics.ResultSuccess, time.Since(start))
	}()

	asOf := s.clock.Now().UTC()
	totals := statement.Aggregate(req.Items(), asOf)

	return Summary{
		Message:       "Statement preview generated successfully",
		TotalDue:      totals.GrandTotal.InexactFloat64(),
		OverdueAmount: totals.OverdueTotal.InexactFloat64(),
		CurrentAmount: totals.CurrentTotal.InexactFloat64(),
		FileSize:      0,
	}
}

// ExportWorkbook renders the statement as an XLSX workbook.
func (s *StatementService) ExportWorkbook(ctx context.Context, req statement.Request) (Document, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStatementExport("xlsx", result, time.Since(start))
	}()

	asOf := s.clock.Now().UTC()
	totals := statement.Aggregate(req.Items(), asOf)

	out, err := render.Workbook(req, totals, asOf)
	if err != nil {
		result = metrics.ResultError
		s.logger.Printf("statement export failed for %s: %v", req.Header().IssuerName(), err)
		return Document{}, err
	}

	s.logger.Printf("statement exported for %s: %d rows, %d bytes",
		req.Header().IssuerName(), len(req.Items()), len(out))

	return Document{
		Filename:    attachmentFilename(req.Header().IssuerName(), asOf, "xlsx"),
		ContentType: xlsxContentType,
		Bytes:       out,
	}, nil
}

// attachmentFilename builds statement_<issuer>_<YYYYMMDD>.<ext> with
// spaces in the issuer name replaced by underscores.
func attachmentFilename(issuer string, asOf time.Time, ext string) string {
	return fmt.Sprintf("statement_%s_%s.%s",
		strings.ReplaceAll(issuer, " ", "_"), asOf.Format("20060102"), ext)
}
