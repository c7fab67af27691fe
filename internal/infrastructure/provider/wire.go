package provider

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// userResponse is the provider's raw user record.
type userResponse struct {
	ID               string                 `json:"id"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	EmailConfirmedAt *time.Time             `json:"email_confirmed_at"`
	LastSignInAt     *time.Time             `json:"last_sign_in_at"`
	UserMetadata     map[string]interface{} `json:"user_metadata"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func (u *userResponse) toUser() *domain.User {
	if u == nil || u.ID == "" {
		return nil
	}
	user := domain.NewUser(u.ID, u.UserMetadata)
	user.Email = u.Email
	user.Phone = u.Phone
	user.EmailConfirmedAt = u.EmailConfirmedAt
	user.LastSignInAt = u.LastSignInAt
	user.CreatedAt = u.CreatedAt
	user.UpdatedAt = u.UpdatedAt
	return user
}

// sessionResponse is the provider's token grant response. Sign-up responses
// that require email confirmation carry a bare user with no tokens.
type sessionResponse struct {
	userResponse

	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	ExpiresAt    int64         `json:"expires_at"`
	User         *userResponse `json:"user"`
}

func (r *sessionResponse) toSession() *domain.Session {
	if r.AccessToken == "" {
		return nil
	}

	expiresAt := time.Unix(r.ExpiresAt, 0)
	if r.ExpiresAt == 0 && r.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(r.ExpiresIn) * time.Second)
	}

	return &domain.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		ExpiresAt:    expiresAt,
		User:         r.User.toUser(),
	}
}

// apiError is the provider's error payload; field names vary across endpoints.
type apiError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error"`
}

func parseAPIError(status int, data []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(data, &apiErr); err == nil {
		msg := apiErr.Msg
		if msg == "" {
			msg = apiErr.Message
		}
		if msg == "" {
			msg = apiErr.ErrorDescription
		}
		if msg == "" {
			msg = apiErr.ErrorCode
		}
		if msg != "" {
			return fmt.Errorf("provider returned %d: %s", status, msg)
		}
	}
	return fmt.Errorf("provider returned %d", status)
}
