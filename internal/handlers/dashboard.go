package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lobocrea/supaportal/internal/auth"
	"github.com/lobocrea/supaportal/internal/supabase"
	dashviews "github.com/lobocrea/supaportal/views/dashboard"
	"github.com/lobocrea/supaportal/views/layout"
)

// DashboardHandler renders the protected profile page.
type DashboardHandler struct {
	client *supabase.Client
}

func NewDashboardHandler(client *supabase.Client) *DashboardHandler {
	return &DashboardHandler{
		client: client,
	}
}

// HandleDashboard fetches the current user's profile row and renders it. The
// guard has already redirected unauthenticated visitors, so a missing user
// here means the middleware chain is misconfigured.
func (h *DashboardHandler) HandleDashboard(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	data := dashviews.Data{Email: user.Email}

	profile, err := h.client.GetProfile(c.Request().Context(), user.AccessToken, user.UserID)
	switch {
	case errors.Is(err, supabase.ErrProfileNotFound):
		slog.Warn("no profile row for authenticated user", "user_id", user.UserID)
		data.Error = "Your profile could not be found. Please contact support."
	case err != nil:
		slog.Error("profile lookup failed", "user_id", user.UserID, "error", err)
		data.Error = err.Error()
	default:
		data.Profile = profile
	}

	page := layout.Base("Dashboard", auth.GetAuthContext(c), nil, dashviews.Dashboard(data))
	return Render(c, page)
}
