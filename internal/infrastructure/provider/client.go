// Package provider implements the identity-provider boundary as a REST
// client. The provider is a black box: every call returns {data, error} and
// state-changing calls additionally emit an auth-change event on the push
// channel, which the session store drains as the sole writer of identity
// state.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

const eventBuffer = 16

// Client talks to the identity provider's auth REST API. It keeps the current
// session in memory the way a browser client would, replacing it wholesale on
// refresh and sign-out.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client

	mu      sync.Mutex
	session *domain.Session

	events chan domain.AuthChange
}

// NewClient creates a provider client.
func NewClient(baseURL, anonKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: timeout},
		events:  make(chan domain.AuthChange, eventBuffer),
	}
}

// Events implements domain.IdentityProvider
func (c *Client) Events() <-chan domain.AuthChange { return c.events }

// SignUp implements domain.IdentityProvider
func (c *Client) SignUp(ctx context.Context, email, password string, metadata domain.UserMetadata) (*domain.Session, error) {
	if metadata == nil {
		metadata = domain.UserMetadata{}
	}
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     metadata,
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &resp); err != nil {
		return nil, err
	}

	session := resp.toSession()
	if session != nil {
		c.setCurrent(session)
		c.emit(domain.NewAuthChange(domain.SignedInEvent, session))
	}
	return session, nil
}

// SignInWithOTP implements domain.IdentityProvider
func (c *Client) SignInWithOTP(ctx context.Context, email string, createUser bool, metadata domain.UserMetadata) error {
	if metadata == nil {
		metadata = domain.UserMetadata{}
	}
	body := map[string]interface{}{
		"email":       email,
		"create_user": createUser,
		"data":        metadata,
	}
	// No session results here; it arrives via the emailed link.
	return c.do(ctx, http.MethodPost, "/auth/v1/otp", "", body, nil)
}

// SignInWithPassword implements domain.IdentityProvider
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &resp); err != nil {
		return nil, err
	}

	session := resp.toSession()
	c.setCurrent(session)
	c.emit(domain.NewAuthChange(domain.SignedInEvent, session))
	return session, nil
}

// OAuthURL implements domain.IdentityProvider
func (c *Client) OAuthURL(provider, redirectTo string) (string, error) {
	if provider == "" {
		return "", fmt.Errorf("oauth provider is required")
	}
	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return c.baseURL + "/auth/v1/authorize?" + q.Encode(), nil
}

// SignOut implements domain.IdentityProvider
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if err := c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil); err != nil {
		return err
	}
	c.setCurrent(nil)
	c.emit(domain.NewAuthChange(domain.SignedOutEvent, nil))
	return nil
}

// UpdateUser implements domain.IdentityProvider
func (c *Client) UpdateUser(ctx context.Context, accessToken string, params domain.UpdateProfileParams) (*domain.User, error) {
	body := map[string]interface{}{}
	if params.Email != "" {
		body["email"] = params.Email
	}
	if params.Password != "" {
		body["password"] = params.Password
	}
	if params.Metadata != nil {
		body["data"] = params.Metadata
	}

	var resp userResponse
	if err := c.do(ctx, http.MethodPut, "/auth/v1/user", accessToken, body, &resp); err != nil {
		return nil, err
	}

	user := resp.toUser()

	c.mu.Lock()
	var updated *domain.Session
	if c.session != nil {
		next := *c.session
		next.User = user
		c.session = &next
		updated = &next
	}
	c.mu.Unlock()

	if updated != nil {
		c.emit(domain.NewAuthChange(domain.UserUpdatedEvent, updated))
	}
	return user, nil
}

// ResetPasswordForEmail implements domain.IdentityProvider
func (c *Client) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	body := map[string]interface{}{"email": email}
	path := "/auth/v1/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	return c.do(ctx, http.MethodPost, path, "", body, nil)
}

// ResendSignUpEmail implements domain.IdentityProvider
func (c *Client) ResendSignUpEmail(ctx context.Context, email string) error {
	body := map[string]interface{}{
		"type":  "signup",
		"email": email,
	}
	return c.do(ctx, http.MethodPost, "/auth/v1/resend", "", body, nil)
}

// SetSession implements domain.IdentityProvider
func (c *Client) SetSession(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if session == nil {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		return c.refresh(ctx, session.RefreshToken)
	}
	c.setCurrent(session)
	return session, nil
}

// CurrentSession implements domain.IdentityProvider
func (c *Client) CurrentSession(ctx context.Context) (*domain.Session, error) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session == nil {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		return c.refresh(ctx, session.RefreshToken)
	}
	return session, nil
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, nil
	}
	body := map[string]interface{}{"refresh_token": refreshToken}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", body, &resp); err != nil {
		return nil, err
	}

	session := resp.toSession()
	c.setCurrent(session)
	c.emit(domain.NewAuthChange(domain.TokenRefreshedEvent, session))
	return session, nil
}

func (c *Client) setCurrent(session *domain.Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
}

func (c *Client) emit(change domain.AuthChange) {
	select {
	case c.events <- change:
	default:
		log.Printf("provider: dropping auth event %s, queue full", change.Event)
	}
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderUnreachable, err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}
	return nil
}
