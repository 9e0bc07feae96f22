package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"deskwork-invoice/internal/audit"
	"deskwork-invoice/internal/auth"
	statementapp "deskwork-invoice/internal/statement/application"
	statement "deskwork-invoice/internal/statement/domain"
	"deskwork-invoice/internal/statement/render"
)

const dateLayout = "2006-01-02"

// StatementHandler handles statement APIs.
type StatementHandler struct {
	service         *statementapp.StatementService
	defaultTemplate string
	maxBodyBytes    int64
	auditLogger     audit.Logger
}

// NewStatementHandler constructs a handler. The default template must
// resolve; auditLogger may be nil to disable the audit trail.
func NewStatementHandler(service *statementapp.StatementService, defaultTemplate string, maxBodyBytes int64, auditLogger audit.Logger) (*StatementHandler, error) {
	if service == nil {
		return nil, errors.New("statement handler: nil service")
	}
	if _, err := render.LayoutByName(defaultTemplate); err != nil {
		return nil, fmt.Errorf("statement handler: %w", err)
	}
	if maxBodyBytes <= 0 {
		return nil, errors.New("statement handler: max body bytes must be positive")
	}
	return &StatementHandler{
		service:         service,
		defaultTemplate: defaultTemplate,
		maxBodyBytes:    maxBodyBytes,
		auditLogger:     auditLogger,
	}, nil
}

// ServeHTTP handles statement routes under /api/v1/statements.
func (h *StatementHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/statements/generate":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleGenerate(w, r)
	case "/api/v1/statements/preview":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handlePreview(w, r)
	case "/api/v1/statements/export.xlsx":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleExport(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type statementPayload struct {
	RecipientName string        `json:"recipient_name"`
	IssuerName    string        `json:"issuer_name"`
	PeriodStart   string        `json:"period_start"`
	PeriodEnd     string        `json:"period_end"`
	Items         []itemPayload `json:"items"`
}

type itemPayload struct {
	OccurredOn string          `json:"occurred_on"`
	Label      string          `json:"label"`
	LinkTarget string          `json:"link_target"`
	Reference  string          `json:"reference"`
	DueOn      string          `json:"due_on"`
	Amount     decimal.Decimal `json:"amount"`
	Paid       decimal.Decimal `json:"paid"`
}

func (h *StatementHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.resolveTemplate(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	doc, err := h.service.Generate(r.Context(), req, layout)
	if err != nil {
		respondRenderError(w, err)
		return
	}
	writeAttachment(w, doc)
	h.logAudit(r, "statement.generate", doc.Filename, map[string]any{
		"template": layout.Name,
		"rows":     len(req.Items()),
		"bytes":    len(doc.Bytes),
	})
}

func (h *StatementHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	summary := h.service.Preview(r.Context(), req)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
	h.logAudit(r, "statement.preview", req.Header().IssuerName(), map[string]any{
		"rows": len(req.Items()),
	})
}

func (h *StatementHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	doc, err := h.service.ExportWorkbook(r.Context(), req)
	if err != nil {
		respondRenderError(w, err)
		return
	}
	writeAttachment(w, doc)
	h.logAudit(r, "statement.export", doc.Filename, map[string]any{
		"format": "xlsx",
		"rows":   len(req.Items()),
		"bytes":  len(doc.Bytes),
	})
}

// resolveTemplate picks the layout from the template query parameter,
// falling back to the handler default.
func (h *StatementHandler) resolveTemplate(w http.ResponseWriter, r *http.Request) (render.Layout, bool) {
	name := r.URL.Query().Get("template")
	if name == "" {
		name = h.defaultTemplate
	}
	layout, err := render.LayoutByName(name)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return render.Layout{}, false
	}
	return layout, true
}

// decodeRequest reads and validates the statement payload. On failure it
// writes the error response and returns false.
func (h *StatementHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (statement.Request, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	var payload statementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return statement.Request{}, false
		}
		respondError(w, http.StatusBadRequest, "invalid json")
		return statement.Request{}, false
	}

	req, err := buildRequest(payload)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return statement.Request{}, false
	}
	return req, true
}

func buildRequest(payload statementPayload) (statement.Request, error) {
	header, err := statement.NewHeader(payload.RecipientName, payload.IssuerName, payload.PeriodStart, payload.PeriodEnd)
	if err != nil {
		return statement.Request{}, err
	}

	items := make([]statement.LineItem, 0, len(payload.Items))
	for i, item := range payload.Items {
		occurredOn, err := time.Parse(dateLayout, item.OccurredOn)
		if err != nil {
			return statement.Request{}, fmt.Errorf("items[%d]: occurred_on must be YYYY-MM-DD", i)
		}
		dueOn, err := time.Parse(dateLayout, item.DueOn)
		if err != nil {
			return statement.Request{}, fmt.Errorf("items[%d]: due_on must be YYYY-MM-DD", i)
		}
		built, err := statement.NewLineItem(statement.LineItemParams{
			OccurredOn: occurredOn,
			Label:      item.Label,
			LinkTarget: item.LinkTarget,
			Reference:  item.Reference,
			DueOn:      dueOn,
			Amount:     item.Amount,
			Paid:       item.Paid,
		})
		if err != nil {
			return statement.Request{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, built)
	}

	return statement.NewRequest(header, items)
}

func writeAttachment(w http.ResponseWriter, doc statementapp.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+doc.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Bytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Bytes)
}

func respondRenderError(w http.ResponseWriter, err error) {
	if errors.Is(err, render.ErrPageOverflow) {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, "statement render error")
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *StatementHandler) logAudit(r *http.Request, action, resourceID string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok || id.TenantID == "" {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		TenantID:     id.TenantID,
		Actor:        id.Subject,
		Role:         string(id.Role),
		Action:       action,
		ResourceType: "statement",
		ResourceID:   resourceID,
		Metadata:     payload,
		IP:           clientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
