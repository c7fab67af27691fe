package autherr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode domain.ErrorCode
	}{
		{
			name:         "invalid credentials",
			err:          errors.New("Invalid login credentials"),
			expectedCode: domain.ErrCodeInvalidCredentials,
		},
		{
			name:         "email not confirmed",
			err:          errors.New("Email not confirmed"),
			expectedCode: domain.ErrCodeEmailNotVerified,
		},
		{
			name:         "unable to validate email maps to unverified too",
			err:          errors.New("Unable to validate email address: invalid format"),
			expectedCode: domain.ErrCodeEmailNotVerified,
		},
		{
			name:         "user not found",
			err:          errors.New("User not found"),
			expectedCode: domain.ErrCodeUserNotFound,
		},
		{
			name:         "already registered",
			err:          errors.New("User already registered"),
			expectedCode: domain.ErrCodeEmailAlreadyExists,
		},
		{
			name:         "weak password",
			err:          errors.New("Password should be at least 12 characters"),
			expectedCode: domain.ErrCodeWeakPassword,
		},
		{
			name:         "substring match inside a longer message",
			err:          fmt.Errorf("provider: %w", errors.New("request failed: Invalid login credentials (400)")),
			expectedCode: domain.ErrCodeInvalidCredentials,
		},
		{
			name:         "provider unreachable",
			err:          fmt.Errorf("dial: %w", domain.ErrProviderUnreachable),
			expectedCode: domain.ErrCodeNetworkError,
		},
		{
			name:         "local precondition failure",
			err:          domain.ErrNotAuthenticated,
			expectedCode: domain.ErrCodeNotAuthenticated,
		},
		{
			name:         "missing email precondition",
			err:          domain.ErrNoUserEmail,
			expectedCode: domain.ErrCodeNotAuthenticated,
		},
		{
			name:         "unmatched message falls through to unknown",
			err:          errors.New("some exotic provider failure"),
			expectedCode: domain.ErrCodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.err)
			if got == nil {
				t.Fatal("expected a normalized error")
			}
			if got.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, got.Code)
			}
			if got.Message == "" {
				t.Error("expected a user-facing message")
			}
			if got.Detail != tt.err.Error() {
				t.Errorf("expected detail to retain the provider message, got %q", got.Detail)
			}
			if got.Message == got.Detail {
				// The raw provider text must never double as the user message.
				t.Error("user message must not be the raw provider message")
			}
		})
	}
}

func TestNormalizeNil(t *testing.T) {
	if got := Normalize(nil); got != nil {
		t.Errorf("expected nil for nil error, got %+v", got)
	}
}

func TestMessageUnknownCode(t *testing.T) {
	if got := Message(domain.ErrorCode("BOGUS")); got != Message(domain.ErrCodeUnknown) {
		t.Errorf("unexpected message for unknown code: %q", got)
	}
}
