package mocks

import (
	"context"
	"io"
)

// MockFileStorage implements domain.FileStorage for testing
type MockFileStorage struct {
	UploadFunc    func(ctx context.Context, bucket, key string, body io.Reader, contentType string, upsert bool) error
	PublicURLFunc func(bucket, key string) string

	// UploadedKeys records every key passed to Upload.
	UploadedKeys []string
}

// NewMockFileStorage creates a new MockFileStorage with default behaviors
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{}
}

// Upload stores an object
func (m *MockFileStorage) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string, upsert bool) error {
	m.UploadedKeys = append(m.UploadedKeys, key)
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, bucket, key, body, contentType, upsert)
	}
	return nil
}

// PublicURL resolves the public URL of an object
func (m *MockFileStorage) PublicURL(bucket, key string) string {
	if m.PublicURLFunc != nil {
		return m.PublicURLFunc(bucket, key)
	}
	return "https://storage.test/" + bucket + "/" + key
}
