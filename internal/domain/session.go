package domain

import "time"

// Session represents a refresh-token session for an authenticated client.
// Only the hash of the refresh token is stored; the token itself is returned
// to the client once and never persisted.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"refresh_token_hash"`
	CreatedAt        time.Time `json:"created_at"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// IsExpired reports whether the session's refresh token is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
