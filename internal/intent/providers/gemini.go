package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"nathanbeddoewebdev/infrachat/internal/intent/domain"
	"nathanbeddoewebdev/infrachat/internal/services/auth"

	genai "google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.5-flash"

// Compile-time check that GeminiModel satisfies domain.Model.
var _ domain.Model = (*GeminiModel)(nil)

// GeminiModel implements domain.Model using the genai SDK with function
// declarations.
type GeminiModel struct {
	cli   *genai.Client
	model string
}

// NewGeminiModel creates a GeminiModel backed by the Gemini API.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if model == "" {
		model = geminiDefaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return &GeminiModel{cli: cli, model: model}, nil
}

// RegisterGemini registers the Gemini backend. The key is read from
// GEMINI_API_KEY or the "gemini" keychain entry.
func RegisterGemini() {
	Register("gemini", func(ctx context.Context, store auth.Store, model string) (domain.Model, error) {
		key, _, err := auth.ResolveAPIKey(store, "gemini")
		if err != nil {
			return nil, fmt.Errorf("gemini auth: %w", err)
		}
		return NewGeminiModel(ctx, key, model)
	})
}

// GetDisplayName returns the human-readable backend name.
func (g *GeminiModel) GetDisplayName() string {
	return "Gemini (" + g.model + ")"
}

// Complete sends a single GenerateContent request with the tools declared
// as function declarations.
func (g *GeminiModel) Complete(ctx context.Context, req domain.Request) (*domain.Completion, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, t := range req.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  toGenaiSchema(t.Parameters),
			})
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: req.User}}}},
		cfg,
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	completion := &domain.Completion{}
	for _, fc := range resp.FunctionCalls() {
		args, err := json.Marshal(fc.Args)
		if err != nil {
			return nil, fmt.Errorf("gemini: failed to encode function arguments: %w", err)
		}
		completion.ToolCalls = append(completion.ToolCalls, domain.ToolCall{Name: fc.Name, Arguments: args})
	}
	if len(completion.ToolCalls) == 0 {
		completion.Text = resp.Text()
	}
	return completion, nil
}

// toGenaiSchema converts a JSON Schema subset to the SDK's schema type.
func toGenaiSchema(s *domain.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case domain.TypeObject:
		return genai.TypeObject
	case domain.TypeString:
		return genai.TypeString
	case "array":
		return genai.TypeArray
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	}
	return genai.TypeUnspecified
}
