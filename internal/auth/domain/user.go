package domain

import "time"

// User is one human identity. Created on first Google login, updated on
// every subsequent login and whenever the provider rotates tokens.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	GoogleID     string     `json:"-" gorm:"index"`
	Name         string     `json:"name"`
	PictureURL   string     `json:"picture_url,omitempty"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	TokenExpiry  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
