package auditlog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "plain",
			in:   []string{"--type", "storage", "list my buckets"},
			want: []string{"--type", "storage", "list my buckets"},
		},
		{
			name: "separate value",
			in:   []string{"--api-key", "sk-secret", "--provider", "openai"},
			want: []string{"--api-key", "<redacted>", "--provider", "openai"},
		},
		{
			name: "inline value",
			in:   []string{"--token=abc123"},
			want: []string{"--token=<redacted>"},
		},
		{
			name: "trailing flag",
			in:   []string{"--token"},
			want: []string{"--token", "<redacted>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SanitizeArgs(tt.in)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSanitizeArgs_TruncatesLongArguments(t *testing.T) {
	long := strings.Repeat("é", maxArgLen+10)

	got := SanitizeArgs([]string{long})
	if len([]rune(got[0])) != maxArgLen+1 {
		t.Errorf("expected %d runes, got %d", maxArgLen+1, len([]rune(got[0])))
	}
	if !strings.HasSuffix(got[0], "…") {
		t.Errorf("expected ellipsis suffix, got %q", got[0][len(got[0])-8:])
	}
}
