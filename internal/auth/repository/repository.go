package repository

import (
	authdomain "calmirror-backend/internal/auth/domain"
	authdto "calmirror-backend/internal/auth/dto"
)

// UserRepository is the persistence boundary for user identities and their
// cached provider tokens.
type UserRepository interface {
	FindByID(id string) (*authdomain.User, error)
	FindByEmail(email string) (*authdomain.User, error)
	// Upsert creates the user on first login or refreshes identity and
	// token fields on a repeat login, keyed by email.
	Upsert(user *authdomain.User) (*authdomain.User, error)
	// UpdateTokens applies a partial update of token fields only. Fields
	// absent from the update are left untouched.
	UpdateTokens(userID string, update *authdto.TokenUpdate) error
}
