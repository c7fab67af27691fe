package domain

import "errors"

// ErrorCode is the closed taxonomy every provider failure is mapped into.
type ErrorCode string

const (
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeEmailNotVerified   ErrorCode = "EMAIL_NOT_VERIFIED"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	ErrCodeWeakPassword       ErrorCode = "WEAK_PASSWORD"
	ErrCodeNetworkError       ErrorCode = "NETWORK_ERROR"
	ErrCodeNotAuthenticated   ErrorCode = "NOT_AUTHENTICATED"
	ErrCodeUnknown            ErrorCode = "UNKNOWN_ERROR"
)

// AuthError is the normalized failure shape surfaced by the session store.
// Message is the user-facing localized text; Detail keeps the raw provider
// message for logs and support, never for display.
type AuthError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"-"`
}

func (e *AuthError) Error() string { return e.Message }

// Session store precondition errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoUserEmail      = errors.New("current user has no email")
	ErrStoreClosed      = errors.New("session store is closed")
)

// Persistence errors
var (
	ErrSnapshotNotFound = errors.New("persisted auth state not found")
	ErrRedirectNotFound = errors.New("no stored redirect url")
)

// Provider transport errors
var (
	ErrProviderUnreachable = errors.New("identity provider unreachable")
)
