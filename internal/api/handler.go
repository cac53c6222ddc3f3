// Package api serves the provisioning service as a JSON HTTP API.
//
//	POST /api/provision        {"message": "...", "resourceType": "database"}
//	GET  /api/resources/{type}
//	GET  /healthz
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nathanbeddoewebdev/infrachat/internal/auditlog"
	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// maxBodyBytes bounds provisioning request bodies.
const maxBodyBytes = 1 << 20

// Provisioner is the subset of the provisioning service the API needs.
type Provisioner interface {
	Submit(ctx context.Context, utterance string, declared domain.ResourceType) (*domain.Response, error)
	Execute(ctx context.Context, action domain.ProvisionAction) domain.Result
}

// ProvisionRequest is the body of POST /api/provision.
type ProvisionRequest struct {
	Message      string `json:"message"`
	ResourceType string `json:"resourceType"`
}

type provisionResponse struct {
	*domain.Response

	// Details carries the underlying error for model failures.
	Details string `json:"details,omitempty"`
}

// Handler provides the HTTP handlers for the provisioning API.
type Handler struct {
	svc      Provisioner
	logger   *slog.Logger
	recorder *auditlog.Recorder
	model    string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithRecorder records every provisioning submission in the audit log.
// model names the language model backend in each entry.
func WithRecorder(rec *auditlog.Recorder, model string) HandlerOption {
	return func(h *Handler) {
		h.recorder = rec
		h.model = model
	}
}

// NewHandler creates a new provisioning API handler.
func NewHandler(svc Provisioner, opts ...HandlerOption) *Handler {
	h := &Handler{svc: svc, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers the API routes on a ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/provision", h.HandleProvision)
	mux.HandleFunc("GET /api/resources/{type}", h.HandleListResources)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}

// Routes returns the API routes wrapped in request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return logRequests(h.logger, mux)
}

// HandleProvision handles POST /api/provision.
func (h *Handler) HandleProvision(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ProvisionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	rt, err := domain.ParseResourceType(req.ResourceType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.svc.Submit(r.Context(), req.Message, rt)
	if resp == nil {
		resp = &domain.Response{ResourceType: rt, Result: domain.Result{Error: "Failed to process request"}}
	}
	h.recorder.RecordResponse(context.WithoutCancel(r.Context()), "POST /api/provision", []string{req.Message}, start, h.model, resp, err)

	status := statusFor(err)
	out := provisionResponse{Response: resp}
	if status == http.StatusInternalServerError {
		h.logger.Error("provision request failed", "request_id", resp.RequestID, "error", err)
		out.Details = err.Error()
	}
	writeJSON(w, status, out)
}

// HandleListResources handles GET /api/resources/{type}.
func (h *Handler) HandleListResources(w http.ResponseWriter, r *http.Request) {
	rt, err := domain.ParseResourceType(r.PathValue("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.svc.Execute(r.Context(), domain.ProvisionAction{
		Kind:         domain.ActionList,
		ResourceType: rt,
	})

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, result)
}

// HandleHealth handles GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps a Submit error to an HTTP status. Executor failures are
// reported in the body with 200.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrIntentMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
