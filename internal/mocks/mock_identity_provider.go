package mocks

import (
	"context"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// MockIdentityProvider implements domain.IdentityProvider for testing. The
// Emit helper pushes auth-change events the way the real provider does.
type MockIdentityProvider struct {
	SignUpFunc                func(ctx context.Context, email, password string, metadata domain.UserMetadata) (*domain.Session, error)
	SignInWithOTPFunc         func(ctx context.Context, email string, createUser bool, metadata domain.UserMetadata) error
	SignInWithPasswordFunc    func(ctx context.Context, email, password string) (*domain.Session, error)
	OAuthURLFunc              func(provider, redirectTo string) (string, error)
	SignOutFunc               func(ctx context.Context, accessToken string) error
	UpdateUserFunc            func(ctx context.Context, accessToken string, params domain.UpdateProfileParams) (*domain.User, error)
	ResetPasswordForEmailFunc func(ctx context.Context, email, redirectTo string) error
	ResendSignUpEmailFunc     func(ctx context.Context, email string) error
	SetSessionFunc            func(ctx context.Context, session *domain.Session) (*domain.Session, error)
	CurrentSessionFunc        func(ctx context.Context) (*domain.Session, error)

	events chan domain.AuthChange
}

// NewMockIdentityProvider creates a new MockIdentityProvider with default
// behaviors.
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{events: make(chan domain.AuthChange, 16)}
}

// Emit pushes an auth-change event onto the mock's push channel.
func (m *MockIdentityProvider) Emit(change domain.AuthChange) {
	m.events <- change
}

// Events returns the push channel
func (m *MockIdentityProvider) Events() <-chan domain.AuthChange {
	return m.events
}

// SignUp registers a user
func (m *MockIdentityProvider) SignUp(ctx context.Context, email, password string, metadata domain.UserMetadata) (*domain.Session, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password, metadata)
	}
	// Default behavior: confirmation required, no session yet
	return nil, nil
}

// SignInWithOTP sends a magic link
func (m *MockIdentityProvider) SignInWithOTP(ctx context.Context, email string, createUser bool, metadata domain.UserMetadata) error {
	if m.SignInWithOTPFunc != nil {
		return m.SignInWithOTPFunc(ctx, email, createUser, metadata)
	}
	return nil
}

// SignInWithPassword performs a password grant
func (m *MockIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.SignInWithPasswordFunc != nil {
		return m.SignInWithPasswordFunc(ctx, email, password)
	}
	return nil, domain.ErrProviderUnreachable
}

// OAuthURL builds the redirect URL
func (m *MockIdentityProvider) OAuthURL(provider, redirectTo string) (string, error) {
	if m.OAuthURLFunc != nil {
		return m.OAuthURLFunc(provider, redirectTo)
	}
	return "https://provider.test/authorize?provider=" + provider, nil
}

// SignOut revokes the session
func (m *MockIdentityProvider) SignOut(ctx context.Context, accessToken string) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, accessToken)
	}
	return nil
}

// UpdateUser applies a partial update
func (m *MockIdentityProvider) UpdateUser(ctx context.Context, accessToken string, params domain.UpdateProfileParams) (*domain.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, accessToken, params)
	}
	return nil, domain.ErrProviderUnreachable
}

// ResetPasswordForEmail requests a recovery email
func (m *MockIdentityProvider) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	if m.ResetPasswordForEmailFunc != nil {
		return m.ResetPasswordForEmailFunc(ctx, email, redirectTo)
	}
	return nil
}

// ResendSignUpEmail re-sends the verification email
func (m *MockIdentityProvider) ResendSignUpEmail(ctx context.Context, email string) error {
	if m.ResendSignUpEmailFunc != nil {
		return m.ResendSignUpEmailFunc(ctx, email)
	}
	return nil
}

// SetSession adopts a persisted session
func (m *MockIdentityProvider) SetSession(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if m.SetSessionFunc != nil {
		return m.SetSessionFunc(ctx, session)
	}
	return session, nil
}

// CurrentSession returns the live session
func (m *MockIdentityProvider) CurrentSession(ctx context.Context) (*domain.Session, error) {
	if m.CurrentSessionFunc != nil {
		return m.CurrentSessionFunc(ctx)
	}
	// Default behavior: no active session
	return nil, nil
}
