package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SignUp registers a new auth user. Metadata is stored by the service as
// user_metadata on the auth record.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*SignUpResult, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}
	if len(metadata) > 0 {
		body["data"] = metadata
	}

	data, _, err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, nil)
	if err != nil {
		return nil, err
	}

	// With email confirmation disabled the response is a session; otherwise
	// it is the bare user record.
	var session Session
	if err := json.Unmarshal(data, &session); err == nil && session.AccessToken != "" {
		return &SignUpResult{User: session.User, Session: &session}, nil
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode signup response: %w", err)
	}

	return &SignUpResult{User: user}, nil
}

// SignInWithPassword exchanges email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	data, _, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, nil)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &session, nil
}

// RefreshSession exchanges a refresh token for a fresh session. The returned
// session replaces the old one wholesale; the old refresh token is revoked by
// the service.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{
		"refresh_token": refreshToken,
	}

	data, _, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", body, nil)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &session, nil
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	_, _, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	return err
}

// GetUser fetches the auth record for the given access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	data, _, err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	return &user, nil
}
