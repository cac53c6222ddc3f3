package config

import (
	"strings"
	"testing"
)

func TestLookup_Exists(t *testing.T) {
	spec := Lookup("backend-url")
	if spec == nil {
		t.Fatal("expected to find key 'backend-url', got nil")
	}
	if spec.Name != "backend-url" {
		t.Errorf("expected Name %q, got %q", "backend-url", spec.Name)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	spec := Lookup("BACKEND-URL")
	if spec == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if spec.Name != "backend-url" {
		t.Errorf("expected Name %q, got %q", "backend-url", spec.Name)
	}
}

func TestLookup_NotFound(t *testing.T) {
	spec := Lookup("nonexistent-key")
	if spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeys_AllHaveGetAndSet(t *testing.T) {
	for _, k := range Keys {
		if k.Get == nil {
			t.Errorf("key %q has nil Get function", k.Name)
		}
		if k.Set == nil {
			t.Errorf("key %q has nil Set function", k.Name)
		}
		if k.Normalize == nil {
			t.Errorf("key %q has nil Normalize function", k.Name)
		}
		if k.Env == "" {
			t.Errorf("key %q has no environment variable", k.Name)
		}
		if k.Description == "" {
			t.Errorf("key %q has empty Description", k.Name)
		}
	}
}

func TestKeys_GetSetRoundtrip(t *testing.T) {
	for _, k := range Keys {
		cfg := &Config{}
		k.Set(cfg, "test-value")
		got := k.Get(cfg)
		if got != "test-value" {
			t.Errorf("key %q: Set then Get = %q, want %q", k.Name, got, "test-value")
		}
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if len(names) != len(Keys) {
		t.Fatalf("expected %d names, got %d", len(Keys), len(names))
	}
	for i, name := range names {
		if name != Keys[i].Name {
			t.Errorf("index %d: expected %q, got %q", i, Keys[i].Name, name)
		}
	}
}

func TestKeysHelp_ContainsAllKeys(t *testing.T) {
	help := KeysHelp()
	if !strings.Contains(help, "Available keys:") {
		t.Error("expected 'Available keys:' header in help output")
	}
	for _, k := range Keys {
		if !strings.Contains(help, k.Name) {
			t.Errorf("expected key %q in help output", k.Name)
		}
		if !strings.Contains(help, k.Description) {
			t.Errorf("expected description %q in help output", k.Description)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		key     string
		in      string
		want    string
		wantErr bool
	}{
		{"backend-url", " https://Mock.Example.com/API/ ", "https://Mock.Example.com/API", false},
		{"backend-url", "ftp://example.com", "", true},
		{"backend-url", "example.com", "", true},
		{"storage-flow-url", "http://localhost:9000/flows//", "http://localhost:9000/flows", false},
		{"model-provider", " Gemini ", "gemini", false},
		{"model-provider", "llama", "", true},
		{"model", " gpt-4o ", "gpt-4o", false},
	}

	for _, tt := range tests {
		got, err := Lookup(tt.key).Normalize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s %q: expected error=%v, got %v", tt.key, tt.in, tt.wantErr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s %q: expected %q, got %q", tt.key, tt.in, tt.want, got)
		}
	}
}
