package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

// Trail writes audit entries as JSON lines through a standard logger.
type Trail struct {
	logger *log.Logger
}

// NewTrail constructs a Trail.
func NewTrail(logger *log.Logger) *Trail {
	if logger == nil {
		return nil
	}
	return &Trail{logger: logger}
}

// Log writes an audit entry, filling in defaults for missing fields.
func (t *Trail) Log(ctx context.Context, entry Entry) error {
	if t == nil || t.logger == nil {
		return errors.New("audit trail: nil logger")
	}
	if entry.ID == "" {
		entry.ID = NewID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.PayloadDigest == "" {
		entry.PayloadDigest = DigestJSON(entry.Metadata)
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	t.logger.Printf("audit %s", line)
	return nil
}
