package domain

import "time"

// Status classifies a library item within a user's collection.
// The same game may appear once per status, never twice under the same one.
type Status string

const (
	// StatusFavorite marks a game the user loves.
	StatusFavorite Status = "favorite"
	// StatusWishlist marks a game the user wants to play.
	StatusWishlist Status = "wishlist"
	// StatusPlayed marks a game the user has finished or retired.
	StatusPlayed Status = "played"
)

// ValidStatus reports whether s is one of the recognized statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusFavorite, StatusWishlist, StatusPlayed:
		return true
	default:
		return false
	}
}

// LibraryItem is one game saved in a user's library.
// Title, background image and rating are snapshots of catalog data taken at
// save time; they are not kept in sync with the upstream catalog.
type LibraryItem struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"-"`
	GameID          int64     `json:"game_id"`
	Status          Status    `json:"status"`
	Title           string    `json:"title,omitempty"`
	BackgroundImage string    `json:"background_image,omitempty"`
	Rating          *float64  `json:"rating,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
