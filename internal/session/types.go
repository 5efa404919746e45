package session

// Data is the server-side mirror of a hosted-service session: the user's
// identity plus the tokens needed to act on their behalf. It lives only in
// the session cookie; the hosted service remains the owner of the session.
type Data struct {
	UserID       string
	Email        string
	FullName     string
	AccessToken  string
	RefreshToken string
	// ExpiresAt is the access token expiry as a Unix timestamp.
	ExpiresAt int64
}
