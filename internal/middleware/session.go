// Package middleware holds the session observer and the router guard. The
// observer mirrors the hosted service's auth state into request context; the
// guard turns that state into navigation decisions.
package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lobocrea/supaportal/internal/auth"
	"github.com/lobocrea/supaportal/internal/metrics"
	"github.com/lobocrea/supaportal/internal/session"
	"github.com/lobocrea/supaportal/internal/supabase"
)

// refreshLeeway refreshes tokens slightly before their expiry so an
// in-flight request never presents a token that lapses mid-call.
const refreshLeeway = 30 * time.Second

// LoadSession keeps the request's current-user state consistent with the
// hosted service. It is the only writer of that state: handlers read it via
// the auth package and never set it themselves.
//
// Per request: no cookie session means Unauthenticated. An unexpired mirror
// is used as-is. An expired one is refreshed against the hosted service; the
// refreshed session replaces the mirror (last notification wins), and a
// failed refresh clears it, yielding Unauthenticated.
func LoadSession(sessions *session.Manager, client *supabase.Client, collector *metrics.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, err := sessions.Get(c)
			if err != nil || data == nil {
				setUnauthenticated(c)
				return next(c)
			}

			if tokenExpired(data, time.Now()) {
				start := time.Now()
				fresh, err := client.RefreshSession(c.Request().Context(), data.RefreshToken)
				collector.ObserveUpstream(metrics.OpRefresh, time.Since(start))
				collector.RecordAuth(metrics.OpRefresh, err)
				if err != nil {
					slog.Warn("session refresh failed", "error", err, "user_id", data.UserID)
					if destroyErr := sessions.Destroy(c); destroyErr != nil {
						slog.Error("failed to clear stale session", "error", destroyErr)
					}
					setUnauthenticated(c)
					return next(c)
				}

				data = Mirror(fresh)
				if err := sessions.Save(c, data); err != nil {
					slog.Error("failed to save refreshed session", "error", err)
					setUnauthenticated(c)
					return next(c)
				}
				slog.Debug("session refreshed", "user_id", data.UserID)
			}

			c.Set(auth.UserKey, data)
			c.Set(auth.IsAuthenticatedKey, true)

			return next(c)
		}
	}
}

// Mirror converts a hosted-service session into the cookie mirror.
func Mirror(s *supabase.Session) *session.Data {
	expiresAt := s.ExpiresAt
	if expiresAt == 0 && s.ExpiresIn > 0 {
		expiresAt = time.Now().Unix() + s.ExpiresIn
	}
	if expiresAt == 0 {
		if exp, err := auth.TokenExpiry(s.AccessToken); err == nil {
			expiresAt = exp.Unix()
		}
	}

	return &session.Data{
		UserID:       s.User.ID,
		Email:        s.User.Email,
		FullName:     metadataString(s.User.UserMetadata, "full_name"),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    expiresAt,
	}
}

func setUnauthenticated(c echo.Context) {
	c.Set(auth.UserKey, (*session.Data)(nil))
	c.Set(auth.IsAuthenticatedKey, false)
}

// tokenExpired reports whether the mirrored access token is due for refresh.
// A mirror with no usable expiry is treated as expired, which forces a
// refresh rather than presenting a token of unknown age.
func tokenExpired(data *session.Data, now time.Time) bool {
	expiresAt := data.ExpiresAt
	if expiresAt == 0 {
		exp, err := auth.TokenExpiry(data.AccessToken)
		if err != nil {
			return true
		}
		expiresAt = exp.Unix()
	}

	return now.Add(refreshLeeway).Unix() >= expiresAt
}

func metadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	value, _ := metadata[key].(string)
	return value
}
