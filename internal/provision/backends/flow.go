package backends

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

const (
	flowCreatePath = "/CREATE_S3_BUCKET"
	flowListPath   = "/LIST-S3-BUCKETS"
	flowDeletePath = "/DELETE_S3_BUCKET"
)

// Compile-time check that FlowBackend satisfies domain.StorageFlow.
var _ domain.StorageFlow = (*FlowBackend)(nil)

// FlowBackend implements domain.StorageFlow against a flow endpoint that
// proxies S3 and returns its XML responses converted to JSON.
type FlowBackend struct {
	baseURL string
	client  *http.Client
}

// NewFlowBackend creates a FlowBackend rooted at baseURL.
func NewFlowBackend(baseURL string) *FlowBackend {
	return &FlowBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// --- API request types ---

type createBucketRequest struct {
	BucketName string `json:"bucket-name"`
	Region     string `json:"region"`
}

type deleteBucketRequest struct {
	BucketName string `json:"bucketName"`
	Region     string `json:"region"`
}

// --- StorageFlow implementation ---

// CreateBucket creates a bucket. An error node in the reply wins over the
// HTTP status; otherwise any 2xx status, with or without a body, is success.
func (f *FlowBackend) CreateBucket(ctx context.Context, name, region string) error {
	resp, err := doRequest(ctx, f.client, http.MethodPost, f.baseURL+flowCreatePath, createBucketRequest{BucketName: name, Region: region})
	if err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", name, err)
	}
	if err := checkFlowReply(resp); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", name, err)
	}
	return nil
}

// ListBuckets returns all buckets reported by the flow.
func (f *FlowBackend) ListBuckets(ctx context.Context) ([]domain.Bucket, error) {
	resp, err := doRequest(ctx, f.client, http.MethodGet, f.baseURL+flowListPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	var payload any
	if !resp.empty() {
		payload, err = decodeJSON(resp.body)
	}
	if payload != nil {
		if fe := DecodeFlowError(payload); fe != nil {
			return nil, fmt.Errorf("failed to list buckets: %w", fe)
		}
	}
	if !resp.ok() {
		return nil, fmt.Errorf("failed to list buckets: %w", statusError(resp))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	return DecodeBucketList(payload), nil
}

// DeleteBucket deletes a bucket by name.
func (f *FlowBackend) DeleteBucket(ctx context.Context, name, region string) error {
	resp, err := doRequest(ctx, f.client, http.MethodPost, f.baseURL+flowDeletePath, deleteBucketRequest{BucketName: name, Region: region})
	if err != nil {
		return fmt.Errorf("failed to delete bucket %q: %w", name, err)
	}
	if err := checkFlowReply(resp); err != nil {
		return fmt.Errorf("failed to delete bucket %q: %w", name, err)
	}
	return nil
}

// checkFlowReply applies the flow's success criterion to a mutating call:
// an error node fails the call whatever the status, then the status decides.
// An undecodable body on a 2xx reply is accepted.
func checkFlowReply(resp response) error {
	if !resp.empty() {
		if payload, err := decodeJSON(resp.body); err == nil {
			if fe := DecodeFlowError(payload); fe != nil {
				return fe
			}
		}
	}
	if !resp.ok() {
		return statusError(resp)
	}
	return nil
}

// IsFlowError reports whether err carries an error node from the flow.
func IsFlowError(err error) bool {
	var fe *domain.FlowError
	return errors.As(err, &fe)
}
