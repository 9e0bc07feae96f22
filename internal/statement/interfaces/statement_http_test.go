package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"deskwork-invoice/internal/audit"
	"deskwork-invoice/internal/auth"
	statementapp "deskwork-invoice/internal/statement/application"
	"deskwork-invoice/internal/statement/render"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type captureAudit struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (c *captureAudit) Log(ctx context.Context, entry audit.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	return nil
}

var handlerNow = time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T, auditLogger audit.Logger) *StatementHandler {
	t.Helper()
	logger := log.New(&bytes.Buffer{}, "", 0)
	service, err := statementapp.NewStatementService(fixedClock{now: handlerNow}, logger)
	if err != nil {
		t.Fatalf("statement service: %v", err)
	}
	handler, err := NewStatementHandler(service, render.Overdue.Name, 1<<20, auditLogger)
	if err != nil {
		t.Fatalf("statement handler: %v", err)
	}
	return handler
}

// splitBody is one current item (50.00 due in six days) and one overdue
// item (30.00 with 10.00 paid, due four days back).
const splitBody = `{
	"recipient_name": "Northwind Traders",
	"issuer_name": "Acme Pty Ltd",
	"period_start": "2026-02-01",
	"period_end": "2026-03-14",
	"items": [
		{"occurred_on": "2026-03-01", "label": "INV-9001",
		 "link_target": "https://billing.example.com/invoices/9001",
		 "due_on": "2026-03-20", "amount": "50.00"},
		{"occurred_on": "2026-02-10", "label": "INV-9000",
		 "link_target": "https://billing.example.com/invoices/9000",
		 "reference": "PO-101", "due_on": "2026-03-10",
		 "amount": 30, "paid": 10}
	]
}`

func postStatement(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestStatementHandler_GeneratePDF(t *testing.T) {
	handler := newTestHandler(t, nil)

	resp := postStatement(handler, "/api/v1/statements/generate", splitBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("content type mismatch: %q", got)
	}
	want := "attachment; filename=statement_Acme_Pty_Ltd_20260314.pdf"
	if got := resp.Header().Get("Content-Disposition"); got != want {
		t.Fatalf("disposition mismatch: %q", got)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("body is not a PDF")
	}
}

func TestStatementHandler_PreviewTotals(t *testing.T) {
	handler := newTestHandler(t, nil)

	resp := postStatement(handler, "/api/v1/statements/preview", splitBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}

	var summary struct {
		Message       string  `json:"message"`
		TotalDue      float64 `json:"total_due"`
		OverdueAmount float64 `json:"overdue_amount"`
		CurrentAmount float64 `json:"current_amount"`
		FileSize      int     `json:"file_size"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Message != "Statement preview generated successfully" {
		t.Fatalf("unexpected message: %q", summary.Message)
	}
	if summary.TotalDue != 70 || summary.OverdueAmount != 20 || summary.CurrentAmount != 50 {
		t.Fatalf("totals mismatch: %+v", summary)
	}
	if summary.FileSize != 0 {
		t.Fatalf("file size must be 0, got %d", summary.FileSize)
	}
}

func TestStatementHandler_ExportWorkbook(t *testing.T) {
	handler := newTestHandler(t, nil)

	resp := postStatement(handler, "/api/v1/statements/export.xlsx", splitBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type mismatch: %q", got)
	}
	want := "attachment; filename=statement_Acme_Pty_Ltd_20260314.xlsx"
	if got := resp.Header().Get("Content-Disposition"); got != want {
		t.Fatalf("disposition mismatch: %q", got)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("PK")) {
		t.Fatalf("body is not a zip container")
	}
}

func TestStatementHandler_EmptyItemsRejected(t *testing.T) {
	handler := newTestHandler(t, nil)

	body := `{
		"recipient_name": "Northwind Traders",
		"issuer_name": "Acme Pty Ltd",
		"period_start": "2026-02-01",
		"period_end": "2026-03-14",
		"items": []
	}`
	resp := postStatement(handler, "/api/v1/statements/generate", body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "at least one line item") {
		t.Fatalf("unexpected error body: %s", resp.Body.String())
	}
}

func TestStatementHandler_PeriodOrderRejected(t *testing.T) {
	handler := newTestHandler(t, nil)

	body := strings.Replace(splitBody, `"period_end": "2026-03-14"`, `"period_end": "2026-01-31"`, 1)
	resp := postStatement(handler, "/api/v1/statements/preview", body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "period_end") {
		t.Fatalf("unexpected error body: %s", resp.Body.String())
	}
}

func TestStatementHandler_NegativeAmountRejected(t *testing.T) {
	handler := newTestHandler(t, nil)

	body := strings.Replace(splitBody, `"amount": "50.00"`, `"amount": "-50.00"`, 1)
	resp := postStatement(handler, "/api/v1/statements/generate", body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "items[0]") {
		t.Fatalf("error should name the bad item: %s", resp.Body.String())
	}
}

func TestStatementHandler_BadDateRejected(t *testing.T) {
	handler := newTestHandler(t, nil)

	body := strings.Replace(splitBody, `"occurred_on": "2026-03-01"`, `"occurred_on": "01/03/2026"`, 1)
	resp := postStatement(handler, "/api/v1/statements/generate", body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "occurred_on must be YYYY-MM-DD") {
		t.Fatalf("unexpected error body: %s", resp.Body.String())
	}
}

func TestStatementHandler_UnknownTemplateRejected(t *testing.T) {
	handler := newTestHandler(t, nil)

	resp := postStatement(handler, "/api/v1/statements/generate?template=fancy", splitBody)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "unknown template") {
		t.Fatalf("unexpected error body: %s", resp.Body.String())
	}
}

func TestStatementHandler_ClassicTemplateAccepted(t *testing.T) {
	handler := newTestHandler(t, nil)

	resp := postStatement(handler, "/api/v1/statements/generate?template=classic", splitBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("body is not a PDF")
	}
}

func TestStatementHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements/generate", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", resp.Code)
	}
}

func TestStatementHandler_InvalidJSONRejected(t *testing.T) {
	handler := newTestHandler(t, nil)

	resp := postStatement(handler, "/api/v1/statements/preview", "{not json")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "invalid json") {
		t.Fatalf("unexpected error body: %s", resp.Body.String())
	}
}

func TestStatementHandler_BodyTooLargeRejected(t *testing.T) {
	logger := log.New(&bytes.Buffer{}, "", 0)
	service, err := statementapp.NewStatementService(fixedClock{now: handlerNow}, logger)
	if err != nil {
		t.Fatalf("statement service: %v", err)
	}
	handler, err := NewStatementHandler(service, render.Overdue.Name, 64, nil)
	if err != nil {
		t.Fatalf("statement handler: %v", err)
	}

	resp := postStatement(handler, "/api/v1/statements/preview", splitBody)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status %d", resp.Code)
	}
}

func TestStatementHandler_OverflowReturns500(t *testing.T) {
	handler := newTestHandler(t, nil)

	var items []string
	for i := 0; i <= render.MaxLineItems(); i++ {
		items = append(items, `{"occurred_on": "2026-03-01", "label": "INV",
			"due_on": "2026-03-20", "amount": 1}`)
	}
	body := `{
		"recipient_name": "Northwind Traders",
		"issuer_name": "Acme Pty Ltd",
		"period_start": "2026-02-01",
		"period_end": "2026-03-14",
		"items": [` + strings.Join(items, ",") + `]
	}`

	resp := postStatement(handler, "/api/v1/statements/generate", body)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "single-page capacity") {
		t.Fatalf("unexpected error body: %s", resp.Body.String())
	}
}

func TestStatementHandler_AuditsGenerate(t *testing.T) {
	trail := &captureAudit{}
	handler := newTestHandler(t, trail)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/generate", strings.NewReader(splitBody))
	id := auth.Identity{TenantID: "tenant-a", Subject: "user-1", Role: auth.RoleOperator}
	req = req.WithContext(auth.WithIdentity(req.Context(), id))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}

	if len(trail.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(trail.entries))
	}
	entry := trail.entries[0]
	if entry.Action != "statement.generate" {
		t.Fatalf("action mismatch: %q", entry.Action)
	}
	if entry.TenantID != "tenant-a" || entry.Actor != "user-1" {
		t.Fatalf("identity mismatch: %+v", entry)
	}
	if entry.ResourceID != "statement_Acme_Pty_Ltd_20260314.pdf" {
		t.Fatalf("resource mismatch: %q", entry.ResourceID)
	}
}
