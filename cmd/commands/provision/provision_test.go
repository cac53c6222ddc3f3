package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/infrachat/internal/auditlog"
	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/database"
	idomain "nathanbeddoewebdev/infrachat/internal/intent/domain"
	"nathanbeddoewebdev/infrachat/internal/intent/providers"
	"nathanbeddoewebdev/infrachat/internal/provision/domain"
	"nathanbeddoewebdev/infrachat/internal/services/auth"
)

type scriptedModel struct {
	completion *idomain.Completion
}

func (m scriptedModel) GetDisplayName() string { return "scripted" }
func (m scriptedModel) Complete(context.Context, idomain.Request) (*idomain.Completion, error) {
	return m.completion, nil
}

// setupEnv isolates config and audit storage and points the backend at url.
// It returns the audit database path.
func setupEnv(t *testing.T, url string) string {
	t.Helper()
	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.json"))
	t.Cleanup(config.ResetPath)
	dbPath := filepath.Join(dir, "audit.db")
	database.SetPath(dbPath)
	t.Cleanup(database.ResetPath)

	t.Setenv("INFRACHAT_BACKEND_URL", url)
	t.Setenv("INFRACHAT_STORAGE_FLOW_URL", "")
	t.Setenv("INFRACHAT_MODEL_PROVIDER", "openai")
	t.Setenv("INFRACHAT_MODEL", "")
	return dbPath
}

// scriptAction registers an openai model that always calls the provision
// tool with args.
func scriptAction(t *testing.T, args string) {
	t.Helper()
	providers.Reset()
	t.Cleanup(providers.Reset)
	providers.Register("openai", func(context.Context, auth.Store, string) (idomain.Model, error) {
		return scriptedModel{completion: &idomain.Completion{ToolCalls: []idomain.ToolCall{{
			Name:      idomain.ProvisionToolName,
			Arguments: json.RawMessage(args),
		}}}}, nil
	})
}

func execProvision(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func lastAuditEntry(t *testing.T, path string) auditlog.AuditEntry {
	t.Helper()
	repo, err := auditlog.OpenAt(path)
	if err != nil {
		t.Fatalf("failed to open audit log: %v", err)
	}
	defer repo.Close()
	entries, err := repo.List(1)
	if err != nil {
		t.Fatalf("failed to list audit entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	return entries[0]
}

func databaseBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/databases":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"db-1","name":"orders","engine":"postgres","version":"14","status":"creating"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/servers":
			_, _ = w.Write([]byte(`[{"id":"srv-1","name":"web","status":"running","region":"us-east-1","image":"ubuntu-22.04"}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/databases":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmit_CreatesDatabase(t *testing.T) {
	srv := databaseBackend(t)
	dbPath := setupEnv(t, srv.URL)
	scriptAction(t, `{"action":"create","resourceType":"database","resourceName":"orders"}`)

	stdout, _, err := execProvision(t, "submit", "--type", "db", "create", "a", "postgres", "db", "called", "orders")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(stdout, "Assistant: I've created your database.") {
		t.Errorf("expected assistant reply, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "✓ SUCCESS: Database provisioned!") {
		t.Errorf("expected success trace line, got:\n%s", stdout)
	}

	entry := lastAuditEntry(t, dbPath)
	if entry.Outcome != auditlog.OutcomeSuccess {
		t.Errorf("expected outcome %q, got %q", auditlog.OutcomeSuccess, entry.Outcome)
	}
	if entry.Action != "create" || entry.ResourceType != "database" || entry.ResourceName != "orders" {
		t.Errorf("unexpected audit metadata %+v", entry)
	}
	if entry.Command != "provision submit" {
		t.Errorf("expected command %q, got %q", "provision submit", entry.Command)
	}
	if entry.Model != "openai" {
		t.Errorf("expected model %q, got %q", "openai", entry.Model)
	}
}

func TestSubmit_JSONOutput(t *testing.T) {
	srv := databaseBackend(t)
	setupEnv(t, srv.URL)
	scriptAction(t, `{"action":"create","resourceType":"database","resourceName":"orders"}`)

	stdout, _, err := execProvision(t, "submit", "--type", "database", "-o", "json", "create orders")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var resp domain.Response
	if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
		t.Fatalf("expected JSON output, got %v:\n%s", err, stdout)
	}
	if !resp.Success || resp.Resource == nil || resp.Resource.ID != "db-1" {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.RequestID == "" {
		t.Error("expected a request ID")
	}
}

func TestSubmit_RejectsMismatchedType(t *testing.T) {
	srv := databaseBackend(t)
	dbPath := setupEnv(t, srv.URL)
	scriptAction(t, `{"action":"create","resourceType":"server","resourceName":"web"}`)

	stdout, _, err := execProvision(t, "submit", "--type", "database", "create a server")
	if !errors.Is(err, domain.ErrIntentMismatch) {
		t.Fatalf("expected ErrIntentMismatch, got %v", err)
	}
	if !strings.Contains(stdout, "✗ ERROR:") {
		t.Errorf("expected error trace line, got:\n%s", stdout)
	}

	if entry := lastAuditEntry(t, dbPath); entry.Outcome != auditlog.OutcomeRejected {
		t.Errorf("expected outcome %q, got %q", auditlog.OutcomeRejected, entry.Outcome)
	}
}

func TestSubmit_BackendFailure(t *testing.T) {
	srv := databaseBackend(t)
	setupEnv(t, srv.URL)
	scriptAction(t, `{"action":"create","resourceType":"networking","resourceName":"main"}`)

	stdout, _, err := execProvision(t, "submit", "--type", "networking", "create a vpc")
	if !errors.Is(err, errSubmitFailed) {
		t.Fatalf("expected errSubmitFailed, got %v", err)
	}
	if !strings.Contains(stdout, "ERROR: Failed to provision networking") {
		t.Errorf("expected failure trace, got:\n%s", stdout)
	}
}

func TestSubmit_RequiresType(t *testing.T) {
	setupEnv(t, "http://localhost:1")

	_, _, err := execProvision(t, "submit", "create a server")
	if err == nil || !strings.Contains(err.Error(), "--type is required") {
		t.Errorf("expected missing type error, got %v", err)
	}
}

func TestSubmit_UnknownOutput(t *testing.T) {
	setupEnv(t, "http://localhost:1")

	_, _, err := execProvision(t, "submit", "--type", "server", "-o", "yaml", "create a server")
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("expected output format error, got %v", err)
	}
}

func TestList_SingleType(t *testing.T) {
	srv := databaseBackend(t)
	setupEnv(t, srv.URL)

	stdout, _, err := execProvision(t, "list", "--type", "server")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{"srv-1", "web", "running", "us-east-1", "ubuntu-22.04"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestList_AllJSON(t *testing.T) {
	srv := databaseBackend(t)
	setupEnv(t, srv.URL)

	stdout, _, err := execProvision(t, "list", "--all", "-o", "json")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var listings []typeListing
	if err := json.Unmarshal([]byte(stdout), &listings); err != nil {
		t.Fatalf("expected JSON output, got %v:\n%s", err, stdout)
	}
	if len(listings) != len(domain.ResourceTypes) {
		t.Fatalf("expected %d listings, got %d", len(domain.ResourceTypes), len(listings))
	}
	for i, l := range listings {
		if l.ResourceType != domain.ResourceTypes[i] {
			t.Errorf("listing %d: expected type %q, got %q", i, domain.ResourceTypes[i], l.ResourceType)
		}
	}
	if len(listings[0].Resources) != 1 {
		t.Errorf("expected 1 server, got %d", len(listings[0].Resources))
	}
	// Storage listing degrades to empty on a backend error.
	if listings[2].Error != "" {
		t.Errorf("expected storage listing to degrade, got error %q", listings[2].Error)
	}
	if listings[3].Error == "" {
		t.Error("expected networking listing to report the backend error")
	}
}

func TestList_FlagValidation(t *testing.T) {
	setupEnv(t, "http://localhost:1")

	if _, _, err := execProvision(t, "list"); err == nil {
		t.Error("expected error without --type or --all")
	}
	if _, _, err := execProvision(t, "list", "--type", "server", "--all"); err == nil {
		t.Error("expected error when --type and --all are combined")
	}
	if _, _, err := execProvision(t, "list", "--type", "mainframe"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown type, got %v", err)
	}
}

func TestList_AllFailed(t *testing.T) {
	srv := databaseBackend(t)
	setupEnv(t, srv.URL)

	_, stderr, err := execProvision(t, "list", "--type", "networking")
	if err == nil {
		t.Fatal("expected error when the only listing fails")
	}
	if !strings.Contains(stderr, "Error listing networking") {
		t.Errorf("expected listing error on stderr, got %q", stderr)
	}
}

func TestChat_RequiresTerminal(t *testing.T) {
	setupEnv(t, "http://localhost:1")

	_, _, err := execProvision(t, "chat", "--type", "server")
	if err == nil || !strings.Contains(err.Error(), "interactive terminal") {
		t.Errorf("expected terminal error, got %v", err)
	}
}

func TestRecordDetails(t *testing.T) {
	rec := domain.ResourceRecord{Attributes: map[string]any{"engine": "postgres", "version": "14"}}
	if got := recordDetails(domain.ResourceDatabase, rec); got != "postgres 14" {
		t.Errorf("expected %q, got %q", "postgres 14", got)
	}
	if got := dash(recordDetails(domain.ResourceStorage, rec)); got != "-" {
		t.Errorf("expected %q, got %q", "-", got)
	}
}
