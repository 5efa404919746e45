package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "supaportal_session"
	userKey     = "user"
)

// Manager stores the session mirror in an encrypted cookie.
type Manager struct {
	store sessions.Store
}

// NewManager creates a session manager backed by a cookie store. secure
// should be true whenever the app is served over HTTPS.
func NewManager(secret string, secure bool) *Manager {
	gob.Register(&Data{})

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // matches the hosted service's refresh token lifetime
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		store: store,
	}
}

// Save writes the session mirror. It is called on sign-in and again after
// every token refresh; the stored value is replaced wholesale each time.
func (m *Manager) Save(c echo.Context, data *Data) error {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	session.Values[userKey] = data

	if err := session.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get retrieves the session mirror, or an error when there is none.
func (m *Manager) Get(c echo.Context) (*Data, error) {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	data, ok := session.Values[userKey].(*Data)
	if !ok || data == nil {
		return nil, fmt.Errorf("no user data in session")
	}

	return data, nil
}

// Destroy clears the session mirror. After this no further session writes
// can happen for the request; the next request starts unauthenticated.
func (m *Manager) Destroy(c echo.Context) error {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	session.Options.MaxAge = -1
	delete(session.Values, userKey)

	if err := session.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// AddFlash queues a one-time message shown on the next rendered page, used
// to carry the registration confirmation to the login view.
func (m *Manager) AddFlash(c echo.Context, message string) error {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	session.AddFlash(message)

	if err := session.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("failed to save flash: %w", err)
	}

	return nil
}

// Flashes drains queued flash messages.
func (m *Manager) Flashes(c echo.Context) []string {
	session, err := m.store.Get(c.Request(), sessionName)
	if err != nil {
		return nil
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}

	// Draining flashes mutates the session, so it has to be saved again.
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return nil
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}

	return messages
}
