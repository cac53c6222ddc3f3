// Package services turns user messages into provisioning actions using a
// function-calling language model.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/intent/domain"
	pdomain "nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// Extractor asks a Model to express a user message as a call to the
// provisioning tool.
type Extractor struct {
	model domain.Model
}

// NewExtractor returns an Extractor backed by model.
func NewExtractor(model domain.Model) *Extractor {
	return &Extractor{model: model}
}

// SystemPrompt returns the system instruction that constrains the model to
// the declared resource type.
func SystemPrompt(declared pdomain.ResourceType) string {
	noun := declared.Noun()
	return fmt.Sprintf("You are a cloud infrastructure provisioning assistant specialized in creating %ss. "+
		"The user is ONLY requesting to create a %s. "+
		"Use the %s function with resourceType=%q. "+
		"Be concise and technical in your responses.", noun, noun, domain.ProvisionToolName, string(declared))
}

// Extract sends a single model request. A reply that calls the provisioning
// tool yields an action; any other reply yields its text.
func (e *Extractor) Extract(ctx context.Context, utterance string, declared pdomain.ResourceType) (domain.Extraction, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return domain.Extraction{}, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if !declared.Valid() {
		return domain.Extraction{}, fmt.Errorf("%w: unknown resource type %q", domain.ErrInvalidInput, declared)
	}

	completion, err := e.model.Complete(ctx, domain.Request{
		System: SystemPrompt(declared),
		User:   utterance,
		Tools:  []domain.Tool{domain.ProvisionTool()},
	})
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: %w", domain.ErrUpstreamModel, err)
	}

	for _, call := range completion.ToolCalls {
		if call.Name != domain.ProvisionToolName {
			continue
		}
		action, err := DecodeArguments(call.Arguments)
		if err != nil {
			return domain.Extraction{}, fmt.Errorf("%w: %w", domain.ErrUpstreamModel, err)
		}
		return domain.Extraction{Action: action, Text: completion.Text}, nil
	}

	return domain.Extraction{Text: completion.Text}, nil
}

// --- Argument decoding ---

type toolArguments struct {
	Action       string             `json:"action"`
	ResourceType string             `json:"resourceType"`
	ResourceName any                `json:"resourceName"`
	Config       *pdomain.RawConfig `json:"config"`
}

// DecodeArguments parses provisioning tool arguments into an action. The
// config object is narrowed to the variant of the action's resource type.
// Unknown action kinds and resource types are preserved for the validator
// and executor to reject.
func DecodeArguments(raw json.RawMessage) (*pdomain.ProvisionAction, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	var args toolArguments
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("malformed tool arguments: %w", err)
	}
	if args.Action == "" {
		return nil, fmt.Errorf("malformed tool arguments: missing action")
	}
	if args.ResourceType == "" {
		return nil, fmt.Errorf("malformed tool arguments: missing resourceType")
	}

	action := &pdomain.ProvisionAction{
		Kind:         pdomain.ActionKind(strings.ToLower(strings.TrimSpace(args.Action))),
		ResourceType: pdomain.ResourceType(strings.ToLower(strings.TrimSpace(args.ResourceType))),
		ResourceName: strings.TrimSpace(pdomain.ScalarString(args.ResourceName)),
	}
	if args.Config != nil {
		action.Config = args.Config.ForType(action.ResourceType)
	}
	return action, nil
}
