package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lobocrea/supaportal/internal/auth"
	"github.com/lobocrea/supaportal/internal/metrics"
	"github.com/lobocrea/supaportal/internal/middleware"
	"github.com/lobocrea/supaportal/internal/session"
	"github.com/lobocrea/supaportal/internal/supabase"
	authviews "github.com/lobocrea/supaportal/views/auth"
	"github.com/lobocrea/supaportal/views/layout"
)

// AuthHandler handles the registration, login and logout routes.
type AuthHandler struct {
	client    *supabase.Client
	sessions  *session.Manager
	collector *metrics.Collector
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(client *supabase.Client, sessions *session.Manager, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{
		client:    client,
		sessions:  sessions,
		collector: collector,
	}
}

// HandleLoginPage renders the sign-in form, including any flash carried over
// from registration.
func (h *AuthHandler) HandleLoginPage(c echo.Context) error {
	flashes := h.sessions.Flashes(c)
	page := layout.Base("Sign in", auth.GetAuthContext(c), flashes, authviews.SignIn(authviews.SignInData{}))
	return Render(c, page)
}

// HandleLogin exchanges the submitted credentials for a session. On
// rejection the form is re-rendered with the service's error message and no
// navigation happens. On success the handler only writes the session mirror
// and bounces to "/": the destination is picked by the router guard reacting
// to the new auth state, not here.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if email == "" || password == "" {
		return h.renderLogin(c, email, "Email and password are required")
	}

	start := time.Now()
	sess, err := h.client.SignInWithPassword(c.Request().Context(), email, password)
	h.collector.ObserveUpstream(metrics.OpSignIn, time.Since(start))
	h.collector.RecordAuth(metrics.OpSignIn, err)
	if err != nil {
		slog.Info("sign-in rejected", "email", email, "error", err)
		return h.renderLogin(c, email, err.Error())
	}

	if err := h.sessions.Save(c, middleware.Mirror(sess)); err != nil {
		slog.Error("failed to save session", "error", err)
		return h.renderLogin(c, email, "Could not establish a session, please try again")
	}

	slog.Info("user signed in", "user_id", sess.User.ID)
	return c.Redirect(http.StatusFound, "/")
}

// HandleRegisterPage renders the registration form.
func (h *AuthHandler) HandleRegisterPage(c echo.Context) error {
	page := layout.Base("Register", auth.GetAuthContext(c), nil, authviews.SignUp(authviews.SignUpData{}))
	return Render(c, page)
}

// HandleRegister signs the user up with the hosted service, then inserts the
// single profile row keyed by the new user's id. A failed insert leaves an
// auth user without a profile row; that gap is surfaced to the user and not
// reconciled here.
func (h *AuthHandler) HandleRegister(c echo.Context) error {
	form := authviews.SignUpData{
		FullName: c.FormValue("full_name"),
		Email:    c.FormValue("email"),
		Phone:    c.FormValue("phone"),
	}
	password := c.FormValue("password")

	if form.Email == "" || password == "" || form.FullName == "" {
		form.Error = "Name, email and password are required"
		return h.renderRegister(c, form)
	}

	metadata := map[string]any{"full_name": form.FullName}
	if form.Phone != "" {
		metadata["phone"] = form.Phone
	}

	start := time.Now()
	result, err := h.client.SignUp(c.Request().Context(), form.Email, password, metadata)
	h.collector.ObserveUpstream(metrics.OpSignUp, time.Since(start))
	h.collector.RecordAuth(metrics.OpSignUp, err)
	if err != nil {
		slog.Info("sign-up rejected", "email", form.Email, "error", err)
		form.Error = err.Error()
		return h.renderRegister(c, form)
	}

	if _, err := uuid.Parse(result.User.ID); err != nil {
		slog.Error("sign-up returned malformed user id", "user_id", result.User.ID, "error", err)
		form.Error = "Registration failed, please try again"
		return h.renderRegister(c, form)
	}

	// Row-level policies only allow inserting one's own row, so prefer the
	// fresh session's token; without one (email confirmation pending) the
	// insert runs under the anon key and the policy for unconfirmed users.
	accessToken := ""
	if result.Session != nil {
		accessToken = result.Session.AccessToken
	}

	profile := supabase.Profile{
		ID:       result.User.ID,
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
	}

	if _, err := h.client.InsertProfile(c.Request().Context(), accessToken, profile); err != nil {
		slog.Error("profile insert failed after sign-up", "user_id", result.User.ID, "error", err)
		form.Error = err.Error()
		return h.renderRegister(c, form)
	}

	slog.Info("user registered", "user_id", result.User.ID)

	if err := h.sessions.AddFlash(c, "Account created. Please sign in."); err != nil {
		slog.Warn("failed to add registration flash", "error", err)
	}

	return c.Redirect(http.StatusFound, "/login")
}

// HandleLogout revokes the session upstream, clears the mirror and sends the
// visitor to the login page, regardless of which view initiated it.
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	if token, ok := auth.AccessToken(c); ok {
		start := time.Now()
		err := h.client.SignOut(c.Request().Context(), token)
		h.collector.ObserveUpstream(metrics.OpSignOut, time.Since(start))
		h.collector.RecordAuth(metrics.OpSignOut, err)
		if err != nil {
			// The upstream session may already be gone; the local mirror is
			// cleared either way.
			slog.Warn("upstream sign-out failed", "error", err)
		}
	}

	if err := h.sessions.Destroy(c); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}

	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) renderLogin(c echo.Context, email, message string) error {
	page := layout.Base("Sign in", auth.GetAuthContext(c), nil, authviews.SignIn(authviews.SignInData{
		Email: email,
		Error: message,
	}))
	return Render(c, page)
}

func (h *AuthHandler) renderRegister(c echo.Context, form authviews.SignUpData) error {
	page := layout.Base("Register", auth.GetAuthContext(c), nil, authviews.SignUp(form))
	return Render(c, page)
}
