package mocks

import (
	"context"
	"sync"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// MockStateRepository implements domain.StateRepository for testing. Without
// overrides it behaves like an in-memory store.
type MockStateRepository struct {
	SaveFunc  func(ctx context.Context, snapshot *domain.StateSnapshot) error
	LoadFunc  func(ctx context.Context) (*domain.StateSnapshot, error)
	ClearFunc func(ctx context.Context) error

	mu       sync.Mutex
	snapshot *domain.StateSnapshot
	cleared  int
}

// NewMockStateRepository creates a new MockStateRepository with default behaviors
func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{}
}

// Save persists a snapshot
func (m *MockStateRepository) Save(ctx context.Context, snapshot *domain.StateSnapshot) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, snapshot)
	}
	m.mu.Lock()
	m.snapshot = snapshot
	m.mu.Unlock()
	return nil
}

// Load reads the persisted snapshot
func (m *MockStateRepository) Load(ctx context.Context) (*domain.StateSnapshot, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return m.snapshot, nil
}

// Clear removes the persisted snapshot
func (m *MockStateRepository) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	m.snapshot = nil
	m.cleared++
	m.mu.Unlock()
	return nil
}

// Stored returns the currently persisted snapshot.
func (m *MockStateRepository) Stored() *domain.StateSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// ClearCount returns how many times Clear was called.
func (m *MockStateRepository) ClearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}
