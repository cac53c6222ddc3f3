// Package backends implements the provisioning backends: the REST resource
// API and the flow-style storage API.
package backends

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

const (
	defaultTimeout = 30 * time.Second

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 8 << 20
)

// response is a raw backend reply.
type response struct {
	status int
	text   string
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// empty reports whether the reply carries no payload (e.g. 204 No Content).
func (r response) empty() bool {
	return r.status == http.StatusNoContent || len(bytes.TrimSpace(r.body)) == 0
}

// doRequest sends a request with an optional JSON body and returns the raw
// reply without interpreting the status code.
func doRequest(ctx context.Context, client *http.Client, method, url string, body any) (response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return response{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("%w: %w", domain.ErrBackendRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return response{}, fmt.Errorf("%w: failed to read response: %w", domain.ErrBackendRequest, err)
	}

	return response{status: resp.StatusCode, text: statusText(resp), body: data}, nil
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// statusError converts a non-2xx reply to an error wrapping
// domain.ErrBackendRequest and, where recognisable, a more specific sentinel.
func statusError(r response) error {
	var class error
	switch r.status {
	case http.StatusUnauthorized, http.StatusForbidden:
		class = domain.ErrUnauthorized
	case http.StatusNotFound:
		class = domain.ErrNotFound
	case http.StatusTooManyRequests:
		class = domain.ErrRateLimited
	case http.StatusConflict:
		class = domain.ErrConflict
	}
	if class != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrBackendRequest, r.text, class)
	}
	return fmt.Errorf("%w: %s", domain.ErrBackendRequest, r.text)
}

// decodeJSON decodes a reply body, keeping numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendData, err)
	}
	return v, nil
}
