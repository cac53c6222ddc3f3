package auditlog

import "context"

// Metadata describes the model and action behind an audited command.
type Metadata struct {
	RequestID    string
	Model        string
	Action       string
	ResourceType string
	ResourceName string
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context, keeping previously
// attached values for fields left empty in meta.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		RequestID:    pick(meta.RequestID, existing.RequestID),
		Model:        pick(meta.Model, existing.Model),
		Action:       pick(meta.Action, existing.Action),
		ResourceType: pick(meta.ResourceType, existing.ResourceType),
		ResourceName: pick(meta.ResourceName, existing.ResourceName),
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
