package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lobocrea/supaportal/internal/auth"
)

// Redirect is the routing rule, a pure function of the requested path and
// session presence. It returns the path to redirect to, or "" when the
// requested view should render. Handlers never make this decision
// themselves; keeping it in one place avoids redirect races between views.
func Redirect(path string, authenticated bool) string {
	switch {
	case path == "/":
		if authenticated {
			return "/dashboard"
		}
		return "/login"
	case path == "/login" || path == "/register":
		if authenticated {
			return "/dashboard"
		}
		return ""
	case path == "/dashboard" || strings.HasPrefix(path, "/dashboard/"):
		if !authenticated {
			return "/login"
		}
		return ""
	default:
		return ""
	}
}

// Guard applies the routing rule to every request after the session observer
// has run.
func Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if target := Redirect(c.Request().URL.Path, auth.IsAuthenticated(c)); target != "" {
				return c.Redirect(http.StatusFound, target)
			}
			return next(c)
		}
	}
}
