package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiry claim from a hosted-service access token.
// The token is parsed without signature verification: the hosted service is
// the only party that can validate its own signing keys, and this value is
// used solely to decide when a refresh is due.
func TokenExpiry(accessToken string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("access token has no expiry claim")
	}

	return exp.Time, nil
}
