package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(e *echo.Echo, cookies []*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	e := echo.New()
	m := NewManager("test-secret", false)

	data := &Data{
		UserID:       "6f1c1e9e-0000-4000-8000-000000000001",
		Email:        "ada@example.com",
		FullName:     "Ada Lovelace",
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    1700000000,
	}

	c, rec := newContext(e, nil)
	require.NoError(t, m.Save(c, data))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	c2, _ := newContext(e, cookies)
	got, err := m.Get(c2)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestGetWithoutSession(t *testing.T) {
	e := echo.New()
	m := NewManager("test-secret", false)

	c, _ := newContext(e, nil)
	got, err := m.Get(c)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestSaveReplacesWholesale(t *testing.T) {
	e := echo.New()
	m := NewManager("test-secret", false)

	c, rec := newContext(e, nil)
	require.NoError(t, m.Save(c, &Data{UserID: "first", AccessToken: "a1"}))

	// A second save, as after a token refresh, must fully replace the first.
	c2, rec2 := newContext(e, rec.Result().Cookies())
	require.NoError(t, m.Save(c2, &Data{UserID: "first", AccessToken: "a2"}))

	c3, _ := newContext(e, rec2.Result().Cookies())
	got, err := m.Get(c3)
	require.NoError(t, err)
	assert.Equal(t, "a2", got.AccessToken)
}

func TestDestroy(t *testing.T) {
	e := echo.New()
	m := NewManager("test-secret", false)

	c, rec := newContext(e, nil)
	require.NoError(t, m.Save(c, &Data{UserID: "user-1"}))

	c2, rec2 := newContext(e, rec.Result().Cookies())
	require.NoError(t, m.Destroy(c2))

	// The destroy response must expire the cookie.
	destroyed := rec2.Result().Cookies()
	require.NotEmpty(t, destroyed)
	assert.Negative(t, destroyed[0].MaxAge)

	// A client honoring the expiry sends no cookie; no user comes back.
	c3, _ := newContext(e, nil)
	got, err := m.Get(c3)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestFlashesDrainOnce(t *testing.T) {
	e := echo.New()
	m := NewManager("test-secret", false)

	c, rec := newContext(e, nil)
	require.NoError(t, m.AddFlash(c, "Account created. Please sign in."))

	c2, rec2 := newContext(e, rec.Result().Cookies())
	flashes := m.Flashes(c2)
	require.Len(t, flashes, 1)
	assert.Equal(t, "Account created. Please sign in.", flashes[0])

	c3, _ := newContext(e, rec2.Result().Cookies())
	assert.Empty(t, m.Flashes(c3))
}
