package domain

import (
	"context"
	"encoding/json"
)

// Model is the interface that language model backends must implement.
// A backend sends one request per call and never retries.
type Model interface {
	// GetDisplayName returns the human-readable backend name (e.g. "OpenAI").
	GetDisplayName() string

	// Complete sends the request and returns the model's reply.
	Complete(ctx context.Context, req Request) (*Completion, error)
}

// Request is a single-turn function-calling request.
type Request struct {
	// System is the system instruction.
	System string

	// User is the user's message.
	User string

	// Tools are the functions the model may call.
	Tools []Tool
}

// Tool declares a function the model may call.
type Tool struct {
	Name        string
	Description string
	Parameters  *Schema
}

// Completion is a model reply: zero or more tool calls and optional text.
type Completion struct {
	ToolCalls []ToolCall
	Text      string
}

// ToolCall is one function call requested by the model. Arguments is the
// JSON object the model produced.
type ToolCall struct {
	Name      string
	Arguments json.RawMessage
}
