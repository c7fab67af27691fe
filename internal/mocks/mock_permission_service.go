package mocks

// MockPermissionService implements domain.PermissionService for testing
type MockPermissionService struct {
	HasPermissionFunc func(role, permission string) (bool, error)
	PermissionsFunc   func(role string) ([]string, error)
}

// NewMockPermissionService creates a new MockPermissionService with default behaviors
func NewMockPermissionService() *MockPermissionService {
	return &MockPermissionService{}
}

// HasPermission checks a role/permission pair
func (m *MockPermissionService) HasPermission(role, permission string) (bool, error) {
	if m.HasPermissionFunc != nil {
		return m.HasPermissionFunc(role, permission)
	}
	// Default behavior: deny
	return false, nil
}

// Permissions lists a role's permissions
func (m *MockPermissionService) Permissions(role string) ([]string, error) {
	if m.PermissionsFunc != nil {
		return m.PermissionsFunc(role)
	}
	return nil, nil
}
