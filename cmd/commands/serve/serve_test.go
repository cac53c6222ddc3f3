package serve

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/infrachat/internal/config"
	idomain "nathanbeddoewebdev/infrachat/internal/intent/domain"
	"nathanbeddoewebdev/infrachat/internal/intent/providers"
	"nathanbeddoewebdev/infrachat/internal/services/auth"
)

type stubModel struct{}

func (stubModel) GetDisplayName() string { return "stub" }
func (stubModel) Complete(context.Context, idomain.Request) (*idomain.Completion, error) {
	return &idomain.Completion{Text: "hello"}, nil
}

func setup(t *testing.T, backendURL string) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	t.Setenv("INFRACHAT_BACKEND_URL", backendURL)
	t.Setenv("INFRACHAT_STORAGE_FLOW_URL", "")
	t.Setenv("INFRACHAT_MODEL_PROVIDER", "openai")
	t.Setenv("INFRACHAT_MODEL", "")

	providers.Reset()
	t.Cleanup(providers.Reset)
	providers.Register("openai", func(context.Context, auth.Store, string) (idomain.Model, error) {
		return stubModel{}, nil
	})
}

func TestServe_StopsWhenContextDone(t *testing.T) {
	setup(t, "http://localhost:1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--addr", "127.0.0.1:0"})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if !strings.Contains(out.String(), "Listening on http://127.0.0.1:") {
		t.Errorf("expected listening address, got %q", out.String())
	}
}

func TestServe_RequiresBackendURL(t *testing.T) {
	setup(t, "")

	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--addr", "127.0.0.1:0"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "backend-url") {
		t.Errorf("expected backend-url error, got %v", err)
	}
}
