package domain

import "time"

// ResourceRecord is a resource as reported by a backend.
type ResourceRecord struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Region    string    `json:"region,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`

	// Attributes holds the remaining backend fields (engine, version,
	// image, size, ipAddress, cidrBlock, ...).
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Attr returns the string form of a backend attribute, or "" when absent.
func (r ResourceRecord) Attr(key string) string {
	return ScalarString(r.Attributes[key])
}

// Bucket is a storage bucket as listed by the storage flow.
type Bucket struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Result is the outcome of executing a ProvisionAction. Every executor path
// produces one; failures are reported through Success and Error rather than
// a Go error.
type Result struct {
	Success   bool             `json:"success"`
	Resource  *ResourceRecord  `json:"resource,omitempty"`
	Resources []ResourceRecord `json:"resources,omitempty"`
	Message   string           `json:"message,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Response is what a provisioning submission returns to the presentation
// layer: the executor result plus the chat reply and terminal trace.
type Response struct {
	Result

	RequestID    string       `json:"requestId"`
	AIResponse   string       `json:"aiResponse,omitempty"`
	Action       ActionKind   `json:"action,omitempty"`
	ResourceType ResourceType `json:"resourceType,omitempty"`

	// Intent is the full action extracted from the message, when there was one.
	Intent *ProvisionAction `json:"intent,omitempty"`

	// NoAction is set when the model replied without requesting a
	// provisioning action.
	NoAction bool        `json:"noAction,omitempty"`
	Trace    []TraceLine `json:"trace,omitempty"`
}

// TraceKind classifies a terminal trace line.
type TraceKind string

const (
	TraceCommand TraceKind = "command"
	TraceInfo    TraceKind = "info"
	TraceSuccess TraceKind = "success"
	TraceError   TraceKind = "error"
	TraceHeader  TraceKind = "header"
	TraceBlank   TraceKind = "blank"
)

// TraceLine is one line of the simulated terminal output.
type TraceLine struct {
	Kind TraceKind `json:"kind"`
	Text string    `json:"text"`
}

// Prefix returns the glyph printed before a line of kind k.
func (k TraceKind) Prefix() string {
	switch k {
	case TraceCommand:
		return "$ "
	case TraceSuccess:
		return "✓ "
	case TraceError:
		return "✗ "
	case TraceHeader:
		return "▶ "
	case TraceInfo:
		return "ℹ "
	}
	return ""
}
