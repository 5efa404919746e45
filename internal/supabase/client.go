// Package supabase is a minimal server-side client for a Supabase project:
// the GoTrue auth API under /auth/v1 and the PostgREST table API under
// /rest/v1. Only the operations the portal needs are implemented.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the two values that identify a Supabase project.
type Config struct {
	URL     string
	AnonKey string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client is a handle to one Supabase project. It is safe for concurrent use
// and is shared by every handler and middleware in the application.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// New builds a client from the project URL and the public (anon) API key.
// Neither value is validated here; a wrong value surfaces as an API error on
// the first call.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		http:    httpClient,
	}
}

// do sends one request to the project. The apikey header always carries the
// anon key; the Authorization header carries the user's access token when one
// is given, otherwise the anon key, which is what PostgREST row-level
// policies key off.
func (c *Client) do(ctx context.Context, method, path, accessToken string, body any, extraHeaders map[string]string) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	if accessToken == "" {
		accessToken = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("supabase request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, decodeError(resp.StatusCode, data)
	}

	return data, resp.StatusCode, nil
}
