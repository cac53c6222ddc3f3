package util

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

// validBucketChars matches only lowercase letters, digits, hyphens, and periods.
var validBucketChars = regexp.MustCompile(`^[a-z0-9.\-]+$`)

// ValidateBucketName checks that a bucket name follows S3 naming rules:
//   - Between 3 and 63 characters
//   - Only lowercase letters (a-z), digits (0-9), hyphens (-), and periods (.)
//   - First and last characters must be a letter or digit
//   - No two adjacent periods, and not formatted as an IPv4 address
func ValidateBucketName(name string) error {
	if len(name) < 3 || len(name) > 63 {
		return fmt.Errorf("bucket name must be between 3 and 63 characters, got %d", len(name))
	}

	if !validBucketChars.MatchString(name) {
		return fmt.Errorf("bucket name %q contains invalid characters (only a-z, 0-9, hyphens, and periods are allowed)", name)
	}

	if first := name[0]; !isAlphanumeric(first) {
		return fmt.Errorf("bucket name must start with a letter or digit, got %q", string(first))
	}

	if last := name[len(name)-1]; !isAlphanumeric(last) {
		return fmt.Errorf("bucket name must end with a letter or digit, got %q", string(last))
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("bucket name %q must not contain adjacent periods", name)
	}

	if ip := net.ParseIP(name); ip != nil && ip.To4() != nil {
		return fmt.Errorf("bucket name %q must not be formatted as an IP address", name)
	}

	return nil
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
