// Package dashboard renders the protected profile page.
package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/lobocrea/supaportal/internal/supabase"
	"github.com/lobocrea/supaportal/views/helpers"
	"github.com/lobocrea/supaportal/views/layout"
)

// Data provides data for the dashboard page. Profile is nil when the lookup
// failed; Error then carries the message to show.
type Data struct {
	Email   string
	Profile *supabase.Profile
	Error   string
}

// Dashboard renders the profile card, or the error state when the profile
// row could not be loaded.
func Dashboard(data Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="card"><h1>Welcome back</h1><p class="muted">Signed in as %s</p>`, templ.EscapeString(data.Email)); err != nil {
			return err
		}

		if data.Profile == nil {
			if err := layout.ErrorBanner(data.Error).Render(ctx, w); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, `<dl class="profile">
<dt>Name</dt><dd>%s</dd>
<dt>Email</dt><dd>%s</dd>
<dt>Phone</dt><dd>%s</dd>
<dt>Member since</dt><dd>%s</dd>
<dt>Last updated</dt><dd>%s</dd>
</dl>`,
				templ.EscapeString(data.Profile.FullName),
				templ.EscapeString(data.Profile.Email),
				templ.EscapeString(helpers.OrDash(data.Profile.Phone)),
				templ.EscapeString(helpers.FormatDate(data.Profile.CreatedAt)),
				templ.EscapeString(helpers.FormatDate(data.Profile.UpdatedAt)),
			); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `<form method="post" action="/logout"><button type="submit">Sign out</button></form></section>`)
		return err
	})
}
