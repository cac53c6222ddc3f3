package services

import (
	"context"
	"sync"

	idomain "nathanbeddoewebdev/infrachat/internal/intent/domain"
	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// mockBackend records calls and returns canned responses.
type mockBackend struct {
	mu sync.Mutex

	createRec *domain.ResourceRecord
	createErr error
	listRecs  map[domain.ResourceType][]domain.ResourceRecord
	listErr   error

	creates []createCall
	lists   []domain.ResourceType
}

type createCall struct {
	Type domain.ResourceType
	Body map[string]any
}

func (m *mockBackend) Create(_ context.Context, t domain.ResourceType, body map[string]any) (*domain.ResourceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates = append(m.creates, createCall{Type: t, Body: body})
	return m.createRec, m.createErr
}

func (m *mockBackend) List(_ context.Context, t domain.ResourceType) ([]domain.ResourceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists = append(m.lists, t)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listRecs[t], nil
}

func (m *mockBackend) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.creates) + len(m.lists)
}

// mockFlow records calls and returns canned responses.
type mockFlow struct {
	mu sync.Mutex

	createErr error
	buckets   []domain.Bucket
	listErr   error
	deleteErr error

	created []string
	regions []string
	listed  int
	deleted []string
}

func (m *mockFlow) CreateBucket(_ context.Context, name, region string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, name)
	m.regions = append(m.regions, region)
	return m.createErr
}

func (m *mockFlow) ListBuckets(context.Context) ([]domain.Bucket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listed++
	return m.buckets, m.listErr
}

func (m *mockFlow) DeleteBucket(_ context.Context, name, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, name)
	return m.deleteErr
}

func (m *mockFlow) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created) + m.listed + len(m.deleted)
}

// mockExtractor returns a fixed extraction.
type mockExtractor struct {
	ext   idomain.Extraction
	err   error
	calls int
}

func (m *mockExtractor) Extract(context.Context, string, domain.ResourceType) (idomain.Extraction, error) {
	m.calls++
	return m.ext, m.err
}
