package util

import (
	"strings"
	"testing"
)

func TestValidateBucketName_Valid(t *testing.T) {
	valid := []string{
		"abc",
		"bucket-1717243200000",
		"my.bucket",
		"logs-2024.archive",
		"123numeric",
		strings.Repeat("a", 63),
	}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			if err := ValidateBucketName(name); err != nil {
				t.Errorf("expected %q to be valid, got error: %v", name, err)
			}
		})
	}
}

func TestValidateBucketName_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		wantMsg string
	}{
		{"", "between 3 and 63"},
		{"ab", "between 3 and 63"},
		{strings.Repeat("a", 64), "between 3 and 63"},
		{"My-Bucket", "invalid characters"},
		{"my bucket", "invalid characters"},
		{"my_bucket", "invalid characters"},
		{"-bucket", "must start with a letter or digit"},
		{".bucket", "must start with a letter or digit"},
		{"bucket-", "must end with a letter or digit"},
		{"bucket.", "must end with a letter or digit"},
		{"my..bucket", "adjacent periods"},
		{"192.168.1.10", "IP address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.name)
			if err == nil {
				t.Errorf("expected %q to be invalid, got nil", tt.name)
				return
			}
			if got := err.Error(); !strings.Contains(got, tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, got)
			}
		})
	}
}
