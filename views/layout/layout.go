// Package layout holds the shared page chrome: document head, navigation
// and the flash message area.
package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/lobocrea/supaportal/internal/auth"
)

const siteName = "Supaportal"

// Base wraps page content with the shared chrome. The nav reflects the auth
// snapshot: sign-in/register links for visitors, email plus sign-out for
// authenticated users.
func Base(title string, authCtx *auth.Context, flashes []string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s · %s</title>
<link rel="stylesheet" href="/public/css/app.css">
</head>
<body class="page">
`, templ.EscapeString(title), siteName); err != nil {
			return err
		}

		if err := nav(authCtx).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main class="content">`); err != nil {
			return err
		}

		for _, flash := range flashes {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-info" role="status">%s</div>`, templ.EscapeString(flash)); err != nil {
				return err
			}
		}

		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</main>
</body>
</html>
`)
		return err
	})
}

func nav(authCtx *auth.Context) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<nav class="nav"><a class="nav-brand" href="/">%s</a><div class="nav-links">`, siteName); err != nil {
			return err
		}

		if authCtx != nil && authCtx.IsAuthenticated && authCtx.User != nil {
			if _, err := fmt.Fprintf(w, `<a href="/dashboard">Dashboard</a><span class="nav-user">%s</span><form method="post" action="/logout" class="inline"><button type="submit" class="link-button">Sign out</button></form>`, templ.EscapeString(authCtx.User.Email)); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<a href="/login">Sign in</a><a href="/register">Register</a>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div></nav>`)
		return err
	})
}

// ErrorBanner renders an inline error message verbatim, as returned by the
// hosted service.
func ErrorBanner(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		_, err := fmt.Fprintf(w, `<div class="flash flash-error" role="alert">%s</div>`, templ.EscapeString(message))
		return err
	})
}
