package model

import "time"

// RefreshToken is a persisted record of an issued refresh token. The row proves
// the token was minted by this system; expiry lives inside the signed claims.
type RefreshToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
