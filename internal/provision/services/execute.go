package services

import (
	"context"
	"errors"
	"fmt"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// Execute runs a validated action against the backends. It never returns a
// Go error: every failure, including a panic in a backend, is reported in
// the returned Result.
func (s *Service) Execute(ctx context.Context, action domain.ProvisionAction) (res domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("provisioning aborted", "action", action.Kind, "resource_type", action.ResourceType, "panic", r)
			res = failure(action, fmt.Errorf("internal error: %v", r))
		}
	}()

	switch action.Kind {
	case domain.ActionCreate, domain.ActionList:
	default:
		return domain.Result{
			Success: false,
			Message: fmt.Sprintf("Action %s not yet implemented", action.Kind),
		}
	}

	if !action.ResourceType.Valid() {
		return failure(action, fmt.Errorf("%w: resource type %q", domain.ErrUnsupported, action.ResourceType))
	}
	if action.Kind == domain.ActionList {
		return s.list(ctx, action.ResourceType)
	}
	return s.create(ctx, action)
}

// failure builds the uniform failure result for an action.
func failure(action domain.ProvisionAction, err error) domain.Result {
	return domain.Result{
		Success: false,
		Message: fmt.Sprintf("Failed to %s %s", action.Kind, action.ResourceType),
		Error:   err.Error(),
	}
}

func found(t domain.ResourceType, records []domain.ResourceRecord) domain.Result {
	if records == nil {
		records = []domain.ResourceRecord{}
	}
	return domain.Result{
		Success:   true,
		Resources: records,
		Message:   fmt.Sprintf("Found %d %s(s)", len(records), t),
	}
}

// --- create ---

func (s *Service) create(ctx context.Context, action domain.ProvisionAction) domain.Result {
	t := action.ResourceType
	name := s.resourceName(action)
	cfg := withDefaults(action)

	if t == domain.ResourceStorage {
		return s.createBucket(ctx, action, name, cfg.(domain.StorageConfig))
	}

	s.logger.Debug("creating resource", "resource_type", t, "name", name)
	rec, err := s.backend.Create(ctx, t, createBody(name, cfg))
	if err != nil {
		s.logger.Warn("create failed", "resource_type", t, "name", name, "error", err)
		return failure(action, err)
	}

	label := name
	if rec != nil {
		switch {
		case rec.Name != "":
			label = rec.Name
		case rec.ID != "":
			label = rec.ID
		}
	}

	return domain.Result{
		Success:  true,
		Resource: rec,
		Message:  fmt.Sprintf("Successfully created %s: %s", t, label),
	}
}

func (s *Service) createBucket(ctx context.Context, action domain.ProvisionAction, name string, cfg domain.StorageConfig) domain.Result {
	if s.flow == nil {
		return failure(action, fmt.Errorf("%w: storage flow endpoint is not configured", domain.ErrUnsupported))
	}

	s.logger.Debug("creating bucket", "name", name, "region", cfg.Region)
	if err := s.flow.CreateBucket(ctx, name, cfg.Region); err != nil {
		s.logger.Warn("bucket create failed", "name", name, "error", err)
		return failure(action, err)
	}

	rec := &domain.ResourceRecord{
		ID:        name,
		Name:      name,
		Region:    cfg.Region,
		Status:    "available",
		CreatedAt: s.now().UTC(),
	}
	s.verifyBucket(ctx, name)

	return domain.Result{
		Success:  true,
		Resource: rec,
		Message:  fmt.Sprintf("Successfully created %s: %s", domain.ResourceStorage, name),
	}
}

// --- list ---

func (s *Service) list(ctx context.Context, t domain.ResourceType) domain.Result {
	if t == domain.ResourceStorage {
		return s.listStorage(ctx)
	}

	records, err := s.backend.List(ctx, t)
	if err != nil {
		s.logger.Warn("list failed", "resource_type", t, "error", err)
		return failure(domain.ProvisionAction{Kind: domain.ActionList, ResourceType: t}, err)
	}
	return found(t, records)
}

// listStorage lists buckets through the flow when one is configured and
// through the REST backend otherwise. An error node from the flow is a
// failure; any other listing problem degrades to an empty list.
func (s *Service) listStorage(ctx context.Context) domain.Result {
	if s.flow == nil {
		records, err := s.backend.List(ctx, domain.ResourceStorage)
		if err != nil {
			s.logger.Warn("storage listing unavailable, reporting no buckets", "error", err)
			return found(domain.ResourceStorage, nil)
		}
		return found(domain.ResourceStorage, records)
	}

	buckets, err := s.flow.ListBuckets(ctx)
	if err != nil {
		var fe *domain.FlowError
		if errors.As(err, &fe) {
			return failure(domain.ProvisionAction{Kind: domain.ActionList, ResourceType: domain.ResourceStorage}, err)
		}
		s.logger.Warn("storage listing unavailable, reporting no buckets", "error", err)
		return found(domain.ResourceStorage, nil)
	}

	listedAt := s.now().UTC()
	records := make([]domain.ResourceRecord, 0, len(buckets))
	for _, b := range buckets {
		created := b.CreatedAt
		if created.IsZero() {
			// Buckets without a readable CreationDate are stamped with the listing time.
			created = listedAt
		}
		records = append(records, domain.ResourceRecord{
			ID:        b.Name,
			Name:      b.Name,
			CreatedAt: created,
		})
	}
	return found(domain.ResourceStorage, records)
}

// DeleteBucket removes a storage bucket through the flow. It is not reachable
// from chat, where deletion is not supported.
func (s *Service) DeleteBucket(ctx context.Context, name, region string) error {
	if s.flow == nil {
		return fmt.Errorf("%w: storage flow endpoint is not configured", domain.ErrUnsupported)
	}
	if name == "" {
		return fmt.Errorf("%w: bucket name is required", domain.ErrInvalidInput)
	}
	if region == "" {
		region = DefaultRegion
	}
	return s.flow.DeleteBucket(ctx, name, region)
}
