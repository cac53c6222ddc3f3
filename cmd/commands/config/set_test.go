package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/infrachat/internal/config"
)

// setupTestConfig points the config package at a temp file, clears the
// environment overrides and returns the path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	for _, k := range config.Keys {
		t.Setenv(k.Env, "")
	}
	return path
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSet_ModelProvider(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "model-provider", "gemini")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"gemini"`) {
		t.Errorf("expected confirmation with provider name, got: %s", stdout)
	}

	// Verify it was persisted.
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.ModelProvider != "gemini" {
		t.Errorf("expected ModelProvider %q, got %q", "gemini", cfg.ModelProvider)
	}
}

func TestSet_ModelProvider_Unknown(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "model-provider", "llama")

	if !strings.Contains(stderr, "unknown model provider") {
		t.Errorf("expected 'unknown model provider' error, got: %s", stderr)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestSet_ModelProvider_CaseInsensitive(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "MODEL-PROVIDER", "OpenAI")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `model-provider set to "openai"`) {
		t.Errorf("expected normalized value, got: %s", stdout)
	}
}

func TestSet_BackendURL_PreservesCase(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "backend-url", "https://Mock.Example.com/API/")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"https://Mock.Example.com/API"`) {
		t.Errorf("expected trailing slash trimmed and case kept, got: %s", stdout)
	}
}

func TestSet_BackendURL_Invalid(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "backend-url", "not a url")

	if !strings.Contains(stderr, "invalid URL") {
		t.Errorf("expected invalid URL error, got: %s", stderr)
	}
}
