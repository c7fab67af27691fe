package domain

import (
	"context"
	"io"
	"time"
)

// IdentityProvider is the boundary to the external auth backend. Every call
// maps to one provider endpoint; the provider additionally pushes auth-change
// events on the channel returned by Events.
type IdentityProvider interface {
	// SignUp registers a user with email and password. The returned session
	// may be nil when the provider requires email confirmation first.
	SignUp(ctx context.Context, email, password string, metadata UserMetadata) (*Session, error)
	// SignInWithOTP sends a magic-link email. With createUser set, an account
	// is created when none exists for the email.
	SignInWithOTP(ctx context.Context, email string, createUser bool, metadata UserMetadata) error
	// SignInWithPassword performs a password credential grant.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	// OAuthURL builds the provider redirect URL for an OAuth flow. No local
	// state changes; the session arrives later via an auth-change event.
	OAuthURL(provider, redirectTo string) (string, error)
	// SignOut revokes the session behind the access token.
	SignOut(ctx context.Context, accessToken string) error
	// UpdateUser applies a partial update to the authenticated user.
	UpdateUser(ctx context.Context, accessToken string, params UpdateProfileParams) (*User, error)
	// ResetPasswordForEmail requests a recovery email. The provider never
	// reveals whether the address exists.
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	// ResendSignUpEmail re-sends the verification email.
	ResendSignUpEmail(ctx context.Context, email string) error
	// SetSession adopts a previously-issued session (refreshing it when
	// expired), used to resume the persisted session at startup.
	SetSession(ctx context.Context, session *Session) (*Session, error)
	// CurrentSession fetches the live session once, at startup.
	CurrentSession(ctx context.Context) (*Session, error)
	// Events is the provider's push channel of auth-change events.
	Events() <-chan AuthChange
}

// FileStorage is the provider's object storage, used for avatar uploads.
type FileStorage interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string, upsert bool) error
	PublicURL(bucket, key string) string
}

// StateRepository persists the {user, session} snapshot across restarts.
// It is written best-effort whenever those fields change and read once at
// startup to prime state before the live fetch.
type StateRepository interface {
	Save(ctx context.Context, snapshot *StateSnapshot) error
	Load(ctx context.Context) (*StateSnapshot, error)
	Clear(ctx context.Context) error
}

// RedirectRepository holds the single-slot post-sign-in redirect URL with
// one-shot semantics: Take returns the value and clears it atomically.
type RedirectRepository interface {
	Store(ctx context.Context, url string) error
	Take(ctx context.Context) (string, error)
}

// PermissionService answers role-based permission checks.
type PermissionService interface {
	HasPermission(role, permission string) (bool, error)
	Permissions(role string) ([]string, error)
}

// TokenClaims is the subset of provider access-token claims the gateway
// inspects locally.
type TokenClaims struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// TokenIntrospector extracts claims from a provider-issued access token
// without verifying it; the signing secret belongs to the provider.
type TokenIntrospector interface {
	Claims(accessToken string) (*TokenClaims, error)
}
