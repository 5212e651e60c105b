package dto

import "time"

// MeResponse is the profile payload returned by GET /api/me.
type MeResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	PictureURL string `json:"pictureUrl,omitempty"`
}

// TokenUpdate carries the fields of a provider token rotation. Empty
// string / nil means "not present in the notification" and must leave the
// stored value untouched; refresh tokens in particular are issued rarely.
type TokenUpdate struct {
	AccessToken  string
	RefreshToken string
	TokenExpiry  *time.Time
}
