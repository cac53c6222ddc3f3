package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nathanbeddoewebdev/infrachat/internal/intent/domain"
	"nathanbeddoewebdev/infrachat/internal/services/auth"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4-turbo-preview"
	openAITimeout      = 60 * time.Second
)

// Compile-time check that OpenAIModel satisfies domain.Model.
var _ domain.Model = (*OpenAIModel)(nil)

// OpenAIModel implements domain.Model using the Chat Completions API with
// function calling.
type OpenAIModel struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIModel creates an OpenAIModel. An empty model selects the default.
func NewOpenAIModel(apiKey, model string) *OpenAIModel {
	if model == "" {
		model = openAIDefaultModel
	}
	return &OpenAIModel{
		apiKey:  apiKey,
		model:   model,
		baseURL: openAIBaseURL,
		client:  &http.Client{Timeout: openAITimeout},
	}
}

// RegisterOpenAI registers the OpenAI backend. The key is read from
// OPENAI_API_KEY or the "openai" keychain entry.
func RegisterOpenAI() {
	Register("openai", func(_ context.Context, store auth.Store, model string) (domain.Model, error) {
		key, _, err := auth.ResolveAPIKey(store, "openai")
		if err != nil {
			return nil, fmt.Errorf("openai auth: %w", err)
		}
		return NewOpenAIModel(key, model), nil
	})
}

// GetDisplayName returns the human-readable backend name.
func (o *OpenAIModel) GetDisplayName() string {
	return "OpenAI (" + o.model + ")"
}

// --- API request/response types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type functionDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  *domain.Schema `json:"parameters"`
}

type toolDef struct {
	Type     string      `json:"type"`
	Function functionDef `json:"function"`
}

type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Tools      []toolDef     `json:"tools,omitempty"`
	ToolChoice string        `json:"tool_choice,omitempty"`
}

type responseToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   *string            `json:"content"`
			ToolCalls []responseToolCall `json:"tool_calls,omitempty"`
		} `json:"message"`
	} `json:"choices"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// --- Model implementation ---

// Complete sends a single chat completion request with tool_choice=auto.
func (o *OpenAIModel) Complete(ctx context.Context, req domain.Request) (*domain.Completion, error) {
	body := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
	}
	for _, t := range req.Tools {
		body.Tools = append(body.Tools, toolDef{
			Type:     "function",
			Function: functionDef{Name: t.Name, Description: t.Description, Parameters: t.Parameters},
		})
	}
	if len(body.Tools) > 0 {
		body.ToolChoice = "auto"
	}

	var out chatResponse
	if err := o.post(ctx, "/chat/completions", body, &out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("openai: response contained no choices")
	}

	msg := out.Choices[0].Message
	completion := &domain.Completion{}
	if msg.Content != nil {
		completion.Text = *msg.Content
	}
	for _, tc := range msg.ToolCalls {
		if tc.Type != "" && tc.Type != "function" {
			continue
		}
		completion.ToolCalls = append(completion.ToolCalls, domain.ToolCall{
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}
	return completion, nil
}

// --- HTTP helpers ---

func (o *OpenAIModel) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("openai: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("openai: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("openai: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return apiError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("openai: failed to decode response: %w", err)
	}
	return nil
}

// apiError maps an error reply to domain sentinels where recognisable.
func apiError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		msg = parsed.Error.Message
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("openai: %w (status %d): %s", domain.ErrUnauthorized, status, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("openai: %w (status %d): %s", domain.ErrRateLimited, status, msg)
	}
	return fmt.Errorf("openai: API error (status %d): %s", status, msg)
}
