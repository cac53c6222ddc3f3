package backends

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// Compile-time check that RESTBackend satisfies domain.Backend.
var _ domain.Backend = (*RESTBackend)(nil)

// RESTBackend implements domain.Backend against a plain JSON REST API
// exposing one collection per resource type (/servers, /databases, ...).
type RESTBackend struct {
	baseURL string
	client  *http.Client
}

// NewRESTBackend creates a RESTBackend rooted at baseURL.
func NewRESTBackend(baseURL string) *RESTBackend {
	return &RESTBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Create posts body to the collection for t and decodes the created record.
func (b *RESTBackend) Create(ctx context.Context, t domain.ResourceType, body map[string]any) (*domain.ResourceRecord, error) {
	resp, err := doRequest(ctx, b.client, http.MethodPost, b.collectionURL(t), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", t, err)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("failed to create %s: %w", t, statusError(resp))
	}
	if resp.empty() {
		return nil, nil
	}

	v, err := decodeJSON(resp.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", t, err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to create %s: %w: expected a JSON object", t, domain.ErrBackendData)
	}

	rec := toResourceRecord(obj)
	return &rec, nil
}

// List returns every resource in the collection for t. A payload that is
// not a JSON array yields zero records.
func (b *RESTBackend) List(ctx context.Context, t domain.ResourceType) ([]domain.ResourceRecord, error) {
	resp, err := doRequest(ctx, b.client, http.MethodGet, b.collectionURL(t), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.Plural(), err)
	}
	if !resp.ok() {
		return nil, fmt.Errorf("failed to list %s: %w", t.Plural(), statusError(resp))
	}

	records := []domain.ResourceRecord{}
	if resp.empty() {
		return records, nil
	}

	v, err := decodeJSON(resp.body)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.Plural(), err)
	}
	items, ok := v.([]any)
	if !ok {
		return records, nil
	}
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, toResourceRecord(obj))
		}
	}
	return records, nil
}

func (b *RESTBackend) collectionURL(t domain.ResourceType) string {
	return b.baseURL + "/" + t.Plural()
}

// --- Conversion helpers ---

// toResourceRecord lifts the well-known fields out of a backend object and
// keeps everything else as attributes.
func toResourceRecord(obj map[string]any) domain.ResourceRecord {
	rec := domain.ResourceRecord{Attributes: map[string]any{}}
	for k, v := range obj {
		switch k {
		case "id":
			rec.ID = scalarString(v)
		case "name":
			rec.Name = scalarString(v)
		case "region":
			rec.Region = scalarString(v)
		case "status":
			rec.Status = scalarString(v)
		case "createdAt":
			rec.CreatedAt = parseTimestamp(scalarString(v))
		default:
			rec.Attributes[k] = v
		}
	}
	if len(rec.Attributes) == 0 {
		rec.Attributes = nil
	}
	return rec
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
