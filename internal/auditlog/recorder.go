package auditlog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"nathanbeddoewebdev/infrachat/internal/domain"
	pdomain "nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// Recorder writes best-effort audit entries. Failures to open the
// repository or save an entry are logged and otherwise ignored; auditing
// never fails the command being audited.
type Recorder struct {
	open   func() (Repository, error)
	logger *slog.Logger
}

// NewRecorder returns a Recorder that opens the default repository for
// every entry.
func NewRecorder(logger *slog.Logger) *Recorder {
	return NewRecorderWith(func() (Repository, error) { return Open() }, logger)
}

// NewRecorderWith returns a Recorder using open to obtain a repository.
func NewRecorderWith(open func() (Repository, error), logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{open: open, logger: logger}
}

// Record saves an entry for command using the metadata attached to ctx.
// A nil err with no action in the metadata is recorded as no_action, and a
// resource type mismatch as rejected.
func (r *Recorder) Record(ctx context.Context, command string, args []string, start time.Time, err error) {
	if r == nil {
		return
	}
	repo, openErr := r.open()
	if openErr != nil {
		r.logger.Debug("audit log unavailable", "error", openErr)
		return
	}
	defer repo.Close()

	meta := MetadataFromContext(ctx)
	entry := &AuditEntry{
		Timestamp:    start.UTC(),
		RequestID:    meta.RequestID,
		Command:      command,
		Args:         strings.Join(SanitizeArgs(args), " "),
		Model:        meta.Model,
		Action:       meta.Action,
		ResourceType: meta.ResourceType,
		ResourceName: meta.ResourceName,
		DurationMs:   time.Since(start).Milliseconds(),
	}
	switch {
	case errors.Is(err, domain.ErrIntentMismatch):
		entry.Outcome = OutcomeRejected
		entry.Detail = err.Error()
	case err != nil:
		entry.Outcome = OutcomeError
		entry.Detail = err.Error()
	case meta.Action == "":
		entry.Outcome = OutcomeNoAction
	default:
		entry.Outcome = OutcomeSuccess
	}

	if saveErr := repo.Save(entry); saveErr != nil {
		r.logger.Debug("audit entry not saved", "error", saveErr)
	}
}

// RecordResponse records a provisioning submission. The action and resource
// come from resp; an executor failure reported in resp is recorded as an
// error even when err is nil.
func (r *Recorder) RecordResponse(ctx context.Context, command string, args []string, start time.Time, model string, resp *pdomain.Response, err error) {
	if r == nil {
		return
	}
	meta := Metadata{Model: model}
	if resp != nil {
		meta.RequestID = resp.RequestID
		meta.ResourceType = string(resp.ResourceType)
		meta.Action = string(resp.Action)
		if resp.Intent != nil {
			meta.ResourceName = resp.Intent.ResourceName
		}
		if resp.Resource != nil && resp.Resource.Name != "" {
			meta.ResourceName = resp.Resource.Name
		}
		if err == nil && !resp.Success {
			err = errors.New(firstNonEmpty(resp.Error, resp.Message, "request failed"))
		}
	}
	r.Record(WithMetadata(ctx, meta), command, args, start, err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
