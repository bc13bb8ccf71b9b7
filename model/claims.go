package model

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the payload of a short-lived access token: subject is the
// user id, plus the user's email for display without a store round trip.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims marks its token kind explicitly so a refresh token can never
// pass for an access token even if the two secrets were ever set equal.
type RefreshClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}
