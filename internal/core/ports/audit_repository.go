package ports

import (
	"context"
	"time"
)

// AuditEntry records one portal action for the audit trail.
type AuditEntry struct {
	Actor   string    `json:"actor"`
	Action  string    `json:"action"`
	Target  string    `json:"target,omitempty"`
	Outcome string    `json:"outcome"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

const (
	AuditOutcomeOK     = "ok"
	AuditOutcomeFailed = "failed"
)

// AuditRepository persists audit entries. Write failures are advisory;
// callers log and continue.
type AuditRepository interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// AuditSink accepts entries without blocking the request path. The queue
// dispatcher implements it; services treat a nil sink as "auditing off".
type AuditSink interface {
	Submit(entry AuditEntry)
}
