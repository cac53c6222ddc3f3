package auditlog

import "time"

const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
	OutcomeNoAction = "no_action"
)

// AuditEntry represents a persisted provisioning event.
type AuditEntry struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	RequestID    string    `json:"request_id,omitempty"`
	Command      string    `json:"command"`
	Args         string    `json:"args,omitempty"`
	Model        string    `json:"model,omitempty"`
	Action       string    `json:"action,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceName string    `json:"resource_name,omitempty"`
	Outcome      string    `json:"outcome"`
	Detail       string    `json:"detail,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
}
