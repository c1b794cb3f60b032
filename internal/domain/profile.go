package domain

import "time"

// Profile holds the public-facing details attached to an account.
// Every account gets exactly one profile, created alongside the account.
type Profile struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
