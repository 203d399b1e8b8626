// Package content talks to the upstream Bhagavad Gita text API. The
// upstream serves the canonical chapter and verse texts; this service
// never stores them, only proxies and caches.
package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gita/backend/internal/infrastructure/config"
)

// UpstreamError reports a non-2xx upstream response
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Client fetches chapter and verse payloads from the upstream API
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

// NewClient creates an upstream content client
func NewClient(cfg config.ContentConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Chapters fetches the chapter list
func (c *Client) Chapters(ctx context.Context) (string, error) {
	return c.get(ctx, "/chapters/?limit=18")
}

// Chapter fetches a single chapter
func (c *Client) Chapter(ctx context.Context, chapter int) (string, error) {
	return c.get(ctx, fmt.Sprintf("/chapters/%d/", chapter))
}

// Verses fetches all verses of a chapter
func (c *Client) Verses(ctx context.Context, chapter int) (string, error) {
	return c.get(ctx, fmt.Sprintf("/chapters/%d/verses/", chapter))
}

// Verse fetches a single verse
func (c *Client) Verse(ctx context.Context, chapter, verse int) (string, error) {
	return c.get(ctx, fmt.Sprintf("/chapters/%d/verses/%d/", chapter, verse))
}

// get performs the upstream request and returns the raw JSON body. The
// payload is passed through untouched so upstream schema changes never
// need code changes here.
func (c *Client) get(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return string(body), nil
}
