package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrProfileNotFound is returned when no profile row exists for a user that
// has an auth record. This can happen when the profile insert failed during
// registration; the gap is surfaced, not repaired.
var ErrProfileNotFound = errors.New("profile not found")

// InsertProfile creates the single profile row for a user. Row-level
// policies restrict the insert to the caller's own id, so accessToken must
// belong to the user the row is for.
func (c *Client) InsertProfile(ctx context.Context, accessToken string, profile Profile) (*Profile, error) {
	headers := map[string]string{
		"Prefer": "return=representation",
	}

	data, _, err := c.do(ctx, http.MethodPost, "/rest/v1/profiles", accessToken, profile, headers)
	if err != nil {
		return nil, err
	}

	var rows []Profile
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode inserted profile: %w", err)
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("expected one inserted profile row, got %d", len(rows))
	}

	return &rows[0], nil
}

// GetProfile fetches the profile row for the given user id and requires
// exactly one match. Zero rows yields ErrProfileNotFound; more than one
// means the single-row-per-user invariant was violated upstream and is
// reported as an error.
func (c *Client) GetProfile(ctx context.Context, accessToken, userID string) (*Profile, error) {
	query := url.Values{}
	query.Set("id", "eq."+userID)
	query.Set("select", "*")

	data, _, err := c.do(ctx, http.MethodGet, "/rest/v1/profiles?"+query.Encode(), accessToken, nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []Profile
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode profile rows: %w", err)
	}

	switch len(rows) {
	case 0:
		return nil, ErrProfileNotFound
	case 1:
		return &rows[0], nil
	default:
		return nil, fmt.Errorf("expected one profile row for user %s, got %d", userID, len(rows))
	}
}
