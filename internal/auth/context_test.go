package auth

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/lobocrea/supaportal/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestCurrentUser_Found(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	data := &session.Data{
		UserID:      "6f1c1e9e-0000-4000-8000-000000000001",
		Email:       "test@example.com",
		AccessToken: "token",
	}
	c.Set(UserKey, data)

	user, ok := CurrentUser(c)
	assert.True(t, ok)
	assert.Equal(t, data, user)
}

func TestCurrentUser_NotFound(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	user, ok := CurrentUser(c)
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestCurrentUser_NilValue(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	// The middleware stores a typed nil for unauthenticated requests.
	c.Set(UserKey, (*session.Data)(nil))

	user, ok := CurrentUser(c)
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestCurrentUser_WrongType(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	c.Set(UserKey, "not a user")

	user, ok := CurrentUser(c)
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestIsAuthenticated(t *testing.T) {
	e := echo.New()

	c := e.NewContext(nil, nil)
	assert.False(t, IsAuthenticated(c))

	c.Set(IsAuthenticatedKey, true)
	assert.True(t, IsAuthenticated(c))
}

func TestAccessToken(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	token, ok := AccessToken(c)
	assert.False(t, ok)
	assert.Empty(t, token)

	c.Set(UserKey, &session.Data{AccessToken: "token"})
	token, ok = AccessToken(c)
	assert.True(t, ok)
	assert.Equal(t, "token", token)
}

func TestGetAuthContext(t *testing.T) {
	e := echo.New()

	c := e.NewContext(nil, nil)
	ctx := GetAuthContext(c)
	assert.False(t, ctx.IsAuthenticated)
	assert.Nil(t, ctx.User)

	c.Set(UserKey, &session.Data{Email: "test@example.com"})
	ctx = GetAuthContext(c)
	assert.True(t, ctx.IsAuthenticated)
	assert.Equal(t, "test@example.com", ctx.User.Email)
}
