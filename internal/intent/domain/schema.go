package domain

// Schema is the subset of JSON Schema used to describe tool parameters.
// It marshals to the JSON Schema document expected by OpenAI-style APIs.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

const (
	TypeObject = "object"
	TypeString = "string"
)
