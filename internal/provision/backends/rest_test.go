package backends

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"

	"github.com/google/go-cmp/cmp"
)

// --- Test helpers ---

// capturedRequest records what the fake backend received.
type capturedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// newRecordingServer returns a server that replies with status and raw body
// and records every request it receives.
func newRecordingServer(t *testing.T, status int, body string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var got []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := capturedRequest{Method: r.Method, Path: r.URL.Path}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			if err := json.Unmarshal(data, &req.Body); err != nil {
				t.Errorf("request body is not a JSON object: %v", err)
			}
		}
		got = append(got, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

// --- Create tests ---

func TestRESTCreate_HappyPath(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusCreated,
		`{"id":"db-1","name":"db-123","engine":"postgres","version":"14","status":"creating","createdAt":"2024-05-01T10:00:00Z"}`)
	b := NewRESTBackend(srv.URL + "/")

	rec, err := b.Create(context.Background(), domain.ResourceDatabase, map[string]any{
		"name": "db-123", "engine": "postgres", "version": "14",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := &domain.ResourceRecord{
		ID:        "db-1",
		Name:      "db-123",
		Status:    "creating",
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Attributes: map[string]any{
			"engine":  "postgres",
			"version": "14",
		},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	wantReqs := []capturedRequest{{
		Method: http.MethodPost,
		Path:   "/databases",
		Body:   map[string]any{"name": "db-123", "engine": "postgres", "version": "14"},
	}}
	if diff := cmp.Diff(wantReqs, *reqs); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestRESTCreate_NoContentIsSuccess(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		body   string
	}{
		{"204", http.StatusNoContent, ""},
		{"200 empty", http.StatusOK, ""},
		{"200 whitespace", http.StatusOK, "  \n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newRecordingServer(t, tc.status, tc.body)
			rec, err := NewRESTBackend(srv.URL).Create(context.Background(), domain.ResourceServer, map[string]any{"name": "web"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if rec != nil {
				t.Errorf("expected nil record, got %+v", rec)
			}
		})
	}
}

func TestRESTCreate_NumericID(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `{"id":12345678901,"name":"web"}`)
	rec, err := NewRESTBackend(srv.URL).Create(context.Background(), domain.ResourceServer, map[string]any{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.ID != "12345678901" {
		t.Errorf("expected ID %q, got %q", "12345678901", rec.ID)
	}
}

func TestRESTCreate_StatusErrors(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusInternalServerError, domain.ErrBackendRequest},
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrUnauthorized},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusConflict, domain.ErrConflict},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv, _ := newRecordingServer(t, tt.status, `{"error":"nope"}`)
			_, err := NewRESTBackend(srv.URL).Create(context.Background(), domain.ResourceServer, map[string]any{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, domain.ErrBackendRequest) {
				t.Errorf("expected ErrBackendRequest, got %v", err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestRESTCreate_NonObjectBody(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `[1,2,3]`)
	_, err := NewRESTBackend(srv.URL).Create(context.Background(), domain.ResourceServer, map[string]any{})
	if !errors.Is(err, domain.ErrBackendData) {
		t.Fatalf("expected ErrBackendData, got %v", err)
	}
}

func TestRESTCreate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRESTBackend(url).Create(context.Background(), domain.ResourceServer, map[string]any{})
	if !errors.Is(err, domain.ErrBackendRequest) {
		t.Fatalf("expected ErrBackendRequest, got %v", err)
	}
}

// --- List tests ---

func TestRESTList_HappyPath(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK,
		`[{"id":"n1","name":"net-a","cidrBlock":"10.0.0.0/16"},{"id":"n2","name":"net-b"},"junk"]`)

	records, err := NewRESTBackend(srv.URL).List(context.Background(), domain.ResourceNetworking)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []domain.ResourceRecord{
		{ID: "n1", Name: "net-a", Attributes: map[string]any{"cidrBlock": "10.0.0.0/16"}},
		{ID: "n2", Name: "net-b"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if got := (*reqs)[0]; got.Method != http.MethodGet || got.Path != "/networking" {
		t.Errorf("unexpected request %s %s", got.Method, got.Path)
	}
}

func TestRESTList_NonArrayYieldsZero(t *testing.T) {
	for _, body := range []string{`{"items":[]}`, `"hello"`, `null`, ``} {
		srv, _ := newRecordingServer(t, http.StatusOK, body)
		records, err := NewRESTBackend(srv.URL).List(context.Background(), domain.ResourceServer)
		if err != nil {
			t.Fatalf("body %q: expected no error, got %v", body, err)
		}
		if len(records) != 0 {
			t.Errorf("body %q: expected 0 records, got %d", body, len(records))
		}
	}
}

func TestRESTList_MalformedJSON(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `[{`)
	_, err := NewRESTBackend(srv.URL).List(context.Background(), domain.ResourceServer)
	if !errors.Is(err, domain.ErrBackendData) {
		t.Fatalf("expected ErrBackendData, got %v", err)
	}
}

func TestRESTList_StatusError(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusBadGateway, ``)
	_, err := NewRESTBackend(srv.URL).List(context.Background(), domain.ResourceDatabase)
	if !errors.Is(err, domain.ErrBackendRequest) {
		t.Fatalf("expected ErrBackendRequest, got %v", err)
	}
	if len(*reqs) != 1 {
		t.Errorf("expected a single attempt, got %d", len(*reqs))
	}
	if want := "502 Bad Gateway"; !strings.Contains(err.Error(), want) {
		t.Errorf("expected error to mention %q, got %q", want, err.Error())
	}
}
