// Package auth exposes the current user to handlers and views. The values
// are written by the session middleware only; everything else reads.
package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/lobocrea/supaportal/internal/session"
)

// Context keys for auth data. The session middleware is the sole writer.
const (
	UserKey            = "current_user"
	IsAuthenticatedKey = "is_authenticated"
)

// Context is the auth snapshot handed to views.
type Context struct {
	IsAuthenticated bool
	User            *session.Data
}

// GetAuthContext returns the auth snapshot for templates in a single call.
func GetAuthContext(c echo.Context) *Context {
	user, ok := CurrentUser(c)
	if !ok {
		return &Context{IsAuthenticated: false}
	}

	return &Context{
		IsAuthenticated: true,
		User:            user,
	}
}

// CurrentUser retrieves the mirrored session user from the request context.
func CurrentUser(c echo.Context) (*session.Data, bool) {
	user, ok := c.Get(UserKey).(*session.Data)
	return user, ok && user != nil
}

// IsAuthenticated reports whether the current request carries a valid
// session.
func IsAuthenticated(c echo.Context) bool {
	isAuth, _ := c.Get(IsAuthenticatedKey).(bool)
	return isAuth
}

// AccessToken returns the hosted-service access token for the current user.
func AccessToken(c echo.Context) (string, bool) {
	user, ok := CurrentUser(c)
	if !ok || user.AccessToken == "" {
		return "", false
	}
	return user.AccessToken, true
}
