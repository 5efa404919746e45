// Package auth renders the sign-in and registration forms.
package auth

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/lobocrea/supaportal/views/layout"
)

// SignInData provides data for the sign-in form.
type SignInData struct {
	Email string
	Error string
}

// SignUpData provides data for the registration form.
type SignUpData struct {
	FullName string
	Email    string
	Phone    string
	Error    string
}

// SignIn renders the login form, re-filling the email on a failed attempt.
func SignIn(data SignInData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="card"><h1>Sign in</h1>`); err != nil {
			return err
		}

		if err := layout.ErrorBanner(data.Error).Render(ctx, w); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `<form method="post" action="/login">
<label for="email">Email</label>
<input id="email" type="email" name="email" value="%s" required>
<label for="password">Password</label>
<input id="password" type="password" name="password" required>
<button type="submit">Sign in</button>
</form>
<p>No account yet? <a href="/register">Register</a></p>
</section>`, templ.EscapeString(data.Email))
		return err
	})
}

// SignUp renders the registration form.
func SignUp(data SignUpData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="card"><h1>Create your account</h1>`); err != nil {
			return err
		}

		if err := layout.ErrorBanner(data.Error).Render(ctx, w); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `<form method="post" action="/register">
<label for="full_name">Full name</label>
<input id="full_name" type="text" name="full_name" value="%s" required>
<label for="email">Email</label>
<input id="email" type="email" name="email" value="%s" required>
<label for="phone">Phone</label>
<input id="phone" type="tel" name="phone" value="%s">
<label for="password">Password</label>
<input id="password" type="password" name="password" required minlength="6">
<button type="submit">Register</button>
</form>
<p>Already registered? <a href="/login">Sign in</a></p>
</section>`, templ.EscapeString(data.FullName), templ.EscapeString(data.Email), templ.EscapeString(data.Phone))
		return err
	})
}
