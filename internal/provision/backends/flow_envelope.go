package backends

import (
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// The storage flow converts S3 XML responses to JSON by wrapping every
// element as {Tag: [children...]} with character data under "#text".
// The converted document sits at body[1] of the envelope, which is either
// the top-level object or the value of its "success-response" key:
//
//	{"success-response": {"body": [{...}, {"ListAllMyBucketsResult": [
//	    {...}, {"Buckets": [{"Bucket": [{"Name": [{"#text": "a"}]}, ...]}]}]}]}}
//
// Every lookup below is type- and length-checked; a missing node yields the
// zero value instead of an error.

const textKey = "#text"

// envelopeDocument returns the converted document at body[1].
func envelopeDocument(v any) (map[string]any, bool) {
	root, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range []string{"success-response", "error-response"} {
		if inner, ok := root[key].(map[string]any); ok {
			root = inner
			break
		}
	}
	body, ok := root["body"].([]any)
	if !ok || len(body) < 2 {
		return nil, false
	}
	doc, ok := body[1].(map[string]any)
	return doc, ok
}

// DecodeFlowError returns the error node of a flow response, or nil when
// the payload carries none.
func DecodeFlowError(v any) *domain.FlowError {
	doc, ok := envelopeDocument(v)
	if !ok {
		return nil
	}
	children, ok := doc["Error"].([]any)
	if !ok {
		return nil
	}
	return &domain.FlowError{
		Code:    childText(children, "Code"),
		Message: childText(children, "Message"),
	}
}

// DecodeBucketList extracts the bucket list from a LIST-S3-BUCKETS payload.
// Entries without a name are dropped. A payload without a
// ListAllMyBucketsResult node yields an empty list.
func DecodeBucketList(v any) []domain.Bucket {
	buckets := []domain.Bucket{}

	doc, ok := envelopeDocument(v)
	if !ok {
		return buckets
	}
	result, ok := doc["ListAllMyBucketsResult"].([]any)
	if !ok {
		return buckets
	}
	list, ok := childList(result, "Buckets")
	if !ok {
		return buckets
	}

	for _, item := range list {
		wrapper, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fields, ok := wrapper["Bucket"].([]any)
		if !ok {
			continue
		}
		name := strings.TrimSpace(childText(fields, "Name"))
		if name == "" {
			continue
		}
		buckets = append(buckets, domain.Bucket{
			Name:      name,
			CreatedAt: parseTimestamp(childText(fields, "CreationDate")),
		})
	}
	return buckets
}

// childList returns the children of the first element named tag.
func childList(children []any, tag string) ([]any, bool) {
	for _, c := range children {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if list, ok := m[tag].([]any); ok {
			return list, true
		}
	}
	return nil, false
}

// childText returns the character data of the first element named tag.
func childText(children []any, tag string) string {
	list, ok := childList(children, tag)
	if !ok {
		return ""
	}
	for _, c := range list {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		switch t := m[textKey].(type) {
		case string:
			return t
		case nil:
		default:
			return fmt.Sprint(t)
		}
	}
	return ""
}

// parseTimestamp parses an RFC 3339 timestamp, returning the zero time on
// failure.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
