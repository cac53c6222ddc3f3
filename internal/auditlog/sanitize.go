package auditlog

import "strings"

// sensitiveFlags have their values redacted before storage.
var sensitiveFlags = map[string]struct{}{
	"--token":   {},
	"--api-key": {},
}

// maxArgLen bounds each stored argument; chat messages can be long.
const maxArgLen = 200

// SanitizeArgs redacts sensitive flag values and truncates long arguments
// for audit storage.
func SanitizeArgs(args []string) []string {
	sanitized := make([]string, 0, len(args))
	skipNext := false

	for _, arg := range args {
		if skipNext {
			sanitized = append(sanitized, "<redacted>")
			skipNext = false
			continue
		}

		if _, ok := sensitiveFlags[arg]; ok {
			sanitized = append(sanitized, arg)
			skipNext = true
			continue
		}

		if key, _, ok := strings.Cut(arg, "="); ok {
			if _, ok := sensitiveFlags[key]; ok {
				sanitized = append(sanitized, key+"=<redacted>")
				continue
			}
		}

		sanitized = append(sanitized, truncate(arg))
	}

	if skipNext {
		sanitized = append(sanitized, "<redacted>")
	}

	return sanitized
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxArgLen {
		return s
	}
	return string(r[:maxArgLen]) + "…"
}
