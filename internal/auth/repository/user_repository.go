package repository

import (
	"errors"
	"time"

	authdomain "calmirror-backend/internal/auth/domain"
	authdto "calmirror-backend/internal/auth/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userRepository implements UserRepository on GORM
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Upsert keys on email: first login creates the row, later logins refresh
// identity and token fields. A repeat login without a new refresh token
// keeps the previously stored one.
func (r *userRepository) Upsert(user *authdomain.User) (*authdomain.User, error) {
	existing, err := r.FindByEmail(user.Email)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		user.ID = uuid.New().String()
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()
		if err := r.db.Create(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	}

	existing.Name = user.Name
	existing.PictureURL = user.PictureURL
	existing.GoogleID = user.GoogleID
	existing.AccessToken = user.AccessToken
	if user.RefreshToken != "" {
		existing.RefreshToken = user.RefreshToken
	}
	if user.TokenExpiry != nil {
		existing.TokenExpiry = user.TokenExpiry
	}
	existing.UpdatedAt = time.Now()
	if err := r.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *userRepository) UpdateTokens(userID string, update *authdto.TokenUpdate) error {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if update.AccessToken != "" {
		fields["access_token"] = update.AccessToken
	}
	if update.RefreshToken != "" {
		fields["refresh_token"] = update.RefreshToken
	}
	if update.TokenExpiry != nil {
		fields["token_expiry"] = *update.TokenExpiry
	}
	return r.db.Model(&authdomain.User{}).Where("id = ?", userID).Updates(fields).Error
}
