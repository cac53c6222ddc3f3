package backends

import (
	"encoding/json"
	"testing"
	"time"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"

	"github.com/google/go-cmp/cmp"
)

// --- Payload builders ---

func textNode(tag, text string) map[string]any {
	return map[string]any{tag: []any{map[string]any{"#text": text}}}
}

func bucketNode(name, created string) map[string]any {
	fields := []any{}
	if name != "" {
		fields = append(fields, textNode("Name", name))
	}
	if created != "" {
		fields = append(fields, textNode("CreationDate", created))
	}
	return map[string]any{"Bucket": fields}
}

// listPayload builds a LIST-S3-BUCKETS envelope holding the given buckets.
func listPayload(wrapped bool, buckets ...any) map[string]any {
	inner := map[string]any{
		"body": []any{
			map[string]any{"?xml": []any{}},
			map[string]any{"ListAllMyBucketsResult": []any{
				textNode("Owner", "me"),
				map[string]any{"Buckets": buckets},
			}},
		},
	}
	if wrapped {
		return map[string]any{"success-response": inner}
	}
	return inner
}

func errorPayload(code, message string) map[string]any {
	return map[string]any{"success-response": map[string]any{
		"body": []any{
			map[string]any{},
			map[string]any{"Error": []any{
				map[string]any{
					"Code":    []any{map[string]any{"#text": code}},
					"Message": []any{map[string]any{"#text": message}},
				},
			}},
		},
	}}
}

// roundTrip passes v through encoding/json so the decoder sees the same
// shapes it gets from the wire.
func roundTrip(t *testing.T, v any) any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, err := decodeJSON(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

// --- DecodeBucketList tests ---

func TestDecodeBucketList(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payload any
		want    []domain.Bucket
	}{
		{
			name: "top-level body",
			payload: listPayload(false,
				bucketNode("alpha", "2024-03-01T12:30:00.000Z"),
				bucketNode("beta", ""),
			),
			want: []domain.Bucket{
				{Name: "alpha", CreatedAt: created},
				{Name: "beta"},
			},
		},
		{
			name:    "success-response wrapper",
			payload: listPayload(true, bucketNode("alpha", "2024-03-01T12:30:00Z")),
			want:    []domain.Bucket{{Name: "alpha", CreatedAt: created}},
		},
		{
			name: "nameless and malformed entries dropped",
			payload: listPayload(false,
				bucketNode("", "2024-03-01T12:30:00Z"),
				"not-an-object",
				map[string]any{"Bucket": "wrong"},
				bucketNode("gamma", "yesterday"),
			),
			want: []domain.Bucket{{Name: "gamma"}},
		},
		{
			name: "fields in reverse order",
			payload: listPayload(false, map[string]any{"Bucket": []any{
				textNode("CreationDate", "2024-03-01T12:30:00Z"),
				textNode("Name", "delta"),
			}}),
			want: []domain.Bucket{{Name: "delta", CreatedAt: created}},
		},
		{
			name:    "no result node",
			payload: map[string]any{"body": []any{map[string]any{}, map[string]any{"Other": []any{}}}},
			want:    []domain.Bucket{},
		},
		{
			name:    "short body",
			payload: map[string]any{"body": []any{map[string]any{}}},
			want:    []domain.Bucket{},
		},
		{
			name:    "not an object",
			payload: []any{1, 2},
			want:    []domain.Bucket{},
		},
		{
			name:    "no buckets",
			payload: listPayload(true),
			want:    []domain.Bucket{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeBucketList(roundTrip(t, tt.payload))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("buckets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeBucketList_NilPayload(t *testing.T) {
	if got := DecodeBucketList(nil); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

// --- DecodeFlowError tests ---

func TestDecodeFlowError(t *testing.T) {
	fe := DecodeFlowError(roundTrip(t, errorPayload("BucketAlreadyExists", "The requested bucket name is not available")))
	if fe == nil {
		t.Fatal("expected an error node, got nil")
	}

	want := &domain.FlowError{Code: "BucketAlreadyExists", Message: "The requested bucket name is not available"}
	if diff := cmp.Diff(want, fe); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
	if got, want := fe.Error(), "AWS Error: BucketAlreadyExists - The requested bucket name is not available"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDecodeFlowError_Absent(t *testing.T) {
	for _, payload := range []any{
		nil,
		"text",
		listPayload(true, bucketNode("a", "")),
		map[string]any{"success-response": map[string]any{"body": "nope"}},
	} {
		if fe := DecodeFlowError(payload); fe != nil {
			t.Errorf("expected nil for %v, got %v", payload, fe)
		}
	}
}

func TestDecodeFlowError_PartialNode(t *testing.T) {
	payload := map[string]any{"body": []any{nil, map[string]any{"Error": []any{}}}}
	fe := DecodeFlowError(roundTrip(t, payload))
	if fe == nil {
		t.Fatal("expected an error node, got nil")
	}
	if fe.Code != "" || fe.Message != "" {
		t.Errorf("expected empty code and message, got %+v", fe)
	}
}
