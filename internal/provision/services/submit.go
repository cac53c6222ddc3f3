package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"

	"github.com/google/uuid"
)

// Submit runs one chat turn: it extracts an action from the utterance,
// checks it against the declared resource type, executes it and builds the
// chat reply and terminal trace.
//
// The returned Response is always non-nil. The error is non-nil only when
// the request never reached the executor, and wraps domain.ErrInvalidInput,
// domain.ErrUpstreamModel or domain.ErrIntentMismatch. Executor failures are
// reported through Response.Success and Response.Error.
func (s *Service) Submit(ctx context.Context, utterance string, declared domain.ResourceType) (*domain.Response, error) {
	resp := &domain.Response{
		RequestID:    uuid.NewString(),
		ResourceType: declared,
	}
	tr := &trace{}
	defer func() { resp.Trace = tr.lines }()

	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		resp.Error = "Message is required"
		return resp, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if !declared.Valid() {
		resp.Error = fmt.Sprintf("Unknown resource type %q", declared)
		return resp, fmt.Errorf("%w: unknown resource type %q", domain.ErrInvalidInput, declared)
	}

	log := s.logger.With("request_id", resp.RequestID, "resource_type", declared)

	tr.add(domain.TraceInfo, "Sending request to AI...")
	tr.add(domain.TraceCommand, "User: %s", utterance)
	tr.blank()
	tr.add(domain.TraceInfo, "AI analyzing command...")

	if s.extractor == nil {
		return s.modelFailure(resp, tr, declared, fmt.Errorf("%w: no language model configured", domain.ErrUpstreamModel))
	}
	ext, err := s.extractor.Extract(ctx, utterance, declared)
	if err != nil {
		log.Warn("intent extraction failed", "error", err)
		if !errors.Is(err, domain.ErrUpstreamModel) && !errors.Is(err, domain.ErrInvalidInput) {
			err = fmt.Errorf("%w: %w", domain.ErrUpstreamModel, err)
		}
		return s.modelFailure(resp, tr, declared, err)
	}

	tr.blank()
	if ext.Action == nil {
		resp.Success = true
		resp.NoAction = true
		resp.AIResponse = ext.Text
		tr.add(domain.TraceInfo, "AI Response: %s", ext.Text)
		tr.blank()
		tr.add(domain.TraceInfo, "No provisioning action taken.")
		tr.add(domain.TraceInfo, "Try: %q or %q", ExamplePrompts[0], "Create a server")
		return resp, nil
	}

	action := *ext.Action
	resp.Action = action.Kind
	resp.Intent = &action

	if rej := ValidateAction(action, declared); rej != nil {
		log.Info("action rejected", "extracted", action.ResourceType)
		resp.Error = rej.Error
		resp.AIResponse = rej.AIResponse
		tr.add(domain.TraceInfo, "AI Response: %s", rej.AIResponse)
		tr.blank()
		tr.add(domain.TraceError, "ERROR: %s", rej.Error)
		return resp, fmt.Errorf("%w: extracted %q, declared %q", domain.ErrIntentMismatch, action.ResourceType, declared)
	}

	log.Debug("executing action", "action", action.Kind, "name", action.ResourceName)
	resp.Result = s.Execute(ctx, action)
	resp.AIResponse = chatReply(action, resp.Result)

	tr.add(domain.TraceInfo, "AI Response: %s", resp.AIResponse)
	tr.blank()
	if !resp.Success {
		tr.add(domain.TraceError, "ERROR: Failed to provision %s", declared)
		tr.add(domain.TraceError, "Details: %s", orNA(firstNonEmpty(resp.Error, resp.Message)))
		return resp, nil
	}

	tr.add(domain.TraceHeader, "Action: %s", action.Kind)
	tr.add(domain.TraceHeader, "Resource Type: %s", action.ResourceType)
	tr.blank()
	if resp.Resource != nil {
		tr.resourceDetails(resp.Resource)
		tr.blank()
	}
	if action.Kind == domain.ActionList && len(resp.Resources) > 0 {
		tr.resourceList(resp.Resources)
		tr.blank()
	}
	if action.Kind == domain.ActionCreate {
		tr.add(domain.TraceSuccess, "SUCCESS: %s provisioned!", declared.Title())
	} else {
		tr.add(domain.TraceSuccess, "SUCCESS: %s", resp.Message)
	}
	return resp, nil
}

func (s *Service) modelFailure(resp *domain.Response, tr *trace, declared domain.ResourceType, err error) (*domain.Response, error) {
	resp.Error = "Failed to process request"
	tr.blank()
	tr.add(domain.TraceError, "ERROR: Failed to provision %s", declared)
	tr.add(domain.TraceError, "Details: %s", err.Error())
	return resp, err
}

// chatReply builds the assistant message for an executed action.
func chatReply(action domain.ProvisionAction, result domain.Result) string {
	if !result.Success {
		return strings.TrimSpace(fmt.Sprintf("I couldn't %s your %s. %s", action.Kind, action.ResourceType, result.Message))
	}
	verb := "processed"
	if action.Kind == domain.ActionCreate {
		verb = "created"
	}
	return strings.TrimSpace(fmt.Sprintf("I've %s your %s. %s", verb, action.ResourceType, result.Message))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
