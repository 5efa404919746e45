package supabase

import "time"

// User is the auth record owned by the hosted service. The application never
// writes it; it only mirrors id and email into its own session state.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	UserMetadata map[string]any `json:"user_metadata"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Session is the proof of authentication issued by the hosted service.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// SignUpResult carries whatever /signup returned. When email confirmation is
// disabled the service issues a session right away; otherwise only the user
// record comes back and Session is nil.
type SignUpResult struct {
	User    User
	Session *Session
}

// Profile is the one-per-user row in the profiles table. Timestamps are set
// by the database, not by this application.
type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}
