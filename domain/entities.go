package domain

import "time"

// UserMetadata is the free-form metadata bag attached to a provider user.
// It is always non-nil on a User; absence of a key is the only "missing" state.
type UserMetadata map[string]interface{}

// Metadata keys written by the onboarding and profile flows.
const (
	MetaFullName            = "full_name"
	MetaFirstName           = "first_name"
	MetaLastName            = "last_name"
	MetaPhone               = "phone"
	MetaAvatarURL           = "avatar_url"
	MetaCompanyID           = "company_id"
	MetaCompanyName         = "company_name"
	MetaRole                = "role"
	MetaOnboardingCompleted = "onboarding_completed"
	MetaMarketingConsent    = "marketing_consent"
	MetaPreferredLanguage   = "preferred_language"
	MetaTimezone            = "timezone"
)

// User represents the authenticated principal as issued by the identity
// provider. Email is optional (phone-only identities are allowed); a set
// EmailConfirmedAt means the email is verified.
type User struct {
	ID               string       `json:"id"`
	Email            string       `json:"email,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	EmailConfirmedAt *time.Time   `json:"email_confirmed_at,omitempty"`
	LastSignInAt     *time.Time   `json:"last_sign_in_at,omitempty"`
	Metadata         UserMetadata `json:"user_metadata"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at,omitempty"`
}

// NewUser normalizes a provider user record into the internal shape,
// guaranteeing Metadata is never nil.
func NewUser(id string, metadata UserMetadata) *User {
	if metadata == nil {
		metadata = UserMetadata{}
	}
	return &User{ID: id, Metadata: metadata}
}

// MetaString returns a string metadata value, or "" when the key is absent
// or not a string.
func (u *User) MetaString(key string) string {
	if u == nil || u.Metadata == nil {
		return ""
	}
	if v, ok := u.Metadata[key].(string); ok {
		return v
	}
	return ""
}

// MetaBool returns a boolean metadata value, false when absent.
func (u *User) MetaBool(key string) bool {
	if u == nil || u.Metadata == nil {
		return false
	}
	v, _ := u.Metadata[key].(bool)
	return v
}

// Company returns the company linkage stored in metadata.
func (u *User) Company() (id, name string) {
	return u.MetaString(MetaCompanyID), u.MetaString(MetaCompanyName)
}

// Session is the opaque token bundle issued by the identity provider. It is
// owned exclusively by the session store and replaced wholesale on refresh or
// sign-out, never mutated in place.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user,omitempty"`
}

// Expired reports whether the session's access token is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

// SignUpParams carries a registration request. A missing Password selects the
// passwordless (magic link) flow with create-user-if-absent semantics.
type SignUpParams struct {
	Email    string
	Password string
	Metadata UserMetadata
}

// SignInParams carries a password sign-in request.
type SignInParams struct {
	Email    string
	Password string
}

// UpdateProfileParams is a partial user update. Nil/empty fields are omitted
// from the request sent to the provider.
type UpdateProfileParams struct {
	Email    string
	Password string
	Metadata UserMetadata
}

// AuthResult is the uniform result shape returned by every session store
// operation: either Data or Err is set, never both.
type AuthResult struct {
	Data interface{}
	Err  *AuthError
}

// OK reports whether the operation succeeded.
func (r AuthResult) OK() bool { return r.Err == nil }

// StateSnapshot is the persisted subset of store state: exactly user and
// session, never operation flags or errors.
type StateSnapshot struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}
