package mocks

import (
	"context"
	"sync"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// MockRedirectRepository implements domain.RedirectRepository for testing,
// preserving the one-shot Take semantics by default.
type MockRedirectRepository struct {
	StoreFunc func(ctx context.Context, url string) error
	TakeFunc  func(ctx context.Context) (string, error)

	mu  sync.Mutex
	url string
}

// NewMockRedirectRepository creates a new MockRedirectRepository with default behaviors
func NewMockRedirectRepository() *MockRedirectRepository {
	return &MockRedirectRepository{}
}

// Store writes the redirect slot
func (m *MockRedirectRepository) Store(ctx context.Context, url string) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, url)
	}
	m.mu.Lock()
	m.url = url
	m.mu.Unlock()
	return nil
}

// Take reads and clears the redirect slot
func (m *MockRedirectRepository) Take(ctx context.Context) (string, error) {
	if m.TakeFunc != nil {
		return m.TakeFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.url == "" {
		return "", domain.ErrRedirectNotFound
	}
	url := m.url
	m.url = ""
	return url, nil
}
