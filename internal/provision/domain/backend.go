package domain

import "context"

// Backend is the REST resource API used for servers, databases,
// networking and, as a fallback, storage listing.
type Backend interface {
	// Create posts body to the collection for t. A nil record with a nil
	// error means the backend accepted the request without returning a body.
	Create(ctx context.Context, t ResourceType, body map[string]any) (*ResourceRecord, error)

	// List returns the collection for t. A payload that is not a JSON array
	// yields zero records.
	List(ctx context.Context, t ResourceType) ([]ResourceRecord, error)
}

// StorageFlow is the flow-style storage API whose responses are XML
// converted to nested JSON.
type StorageFlow interface {
	// CreateBucket creates a bucket. An error node in the response is
	// returned as a *FlowError whatever the HTTP status.
	CreateBucket(ctx context.Context, name, region string) error

	// ListBuckets returns all buckets. An error node in the response is
	// returned as a *FlowError.
	ListBuckets(ctx context.Context) ([]Bucket, error)

	// DeleteBucket deletes a bucket by name.
	DeleteBucket(ctx context.Context, name, region string) error
}
