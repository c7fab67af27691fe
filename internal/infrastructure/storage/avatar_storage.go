// Package storage implements the provider's object-storage boundary, used by
// the avatar upload flow.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// Client uploads objects to the provider's storage API and resolves their
// public URLs.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// NewClient creates a storage client against the same provider project.
func NewClient(baseURL, anonKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Upload implements domain.FileStorage
func (c *Client) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string, upsert bool) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if upsert {
		req.Header.Set("x-upsert", "true")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage upload failed with %d: %s", resp.StatusCode, data)
	}
	return nil
}

// PublicURL implements domain.FileStorage
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, key)
}
