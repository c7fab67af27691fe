package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// SessionTokenService implements domain.TokenIntrospector for provider-issued
// access tokens. The signing secret stays with the provider, so claims are
// read without signature verification; they are used for expiry checks and
// diagnostics, never as a trust decision.
type SessionTokenService struct {
	parser *jwt.Parser
}

// NewSessionTokenService creates a new session token introspector.
func NewSessionTokenService() domain.TokenIntrospector {
	return &SessionTokenService{parser: jwt.NewParser()}
}

// Claims implements domain.TokenIntrospector.
func (s *SessionTokenService) Claims(accessToken string) (*domain.TokenClaims, error) {
	token, _, err := s.parser.ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenMalformed
	}

	out := &domain.TokenClaims{}
	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return out, nil
}
