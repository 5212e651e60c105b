package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "calmirror-backend/internal/auth/domain"
	"calmirror-backend/internal/auth/repository"
	"calmirror-backend/pkg/config"
	"calmirror-backend/pkg/googlecal"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoEmail is returned when Google's userinfo response carries no email
// address; the account cannot be keyed without one.
var ErrNoEmail = errors.New("no email in provider profile")

// AuthUsecase covers the Google login flow and session handling.
type AuthUsecase interface {
	// LoginURL builds the consent-screen redirect target.
	LoginURL(state string) string
	// HandleCallback exchanges the authorization code, upserts the user
	// and returns it together with a signed session token.
	HandleCallback(ctx context.Context, code string) (*authdomain.User, string, error)
	// ValidateSession verifies a session token and returns the user ID.
	ValidateSession(token string) (string, error)
	GetUser(userID string) (*authdomain.User, error)
}

type authUsecase struct {
	userRepo repository.UserRepository
	google   *googlecal.Service
	config   *config.Config
}

func NewAuthUsecase(userRepo repository.UserRepository, google *googlecal.Service, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		google:   google,
		config:   cfg,
	}
}

func (u *authUsecase) LoginURL(state string) string {
	return u.google.AuthCodeURL(state)
}

func (u *authUsecase) HandleCallback(ctx context.Context, code string) (*authdomain.User, string, error) {
	token, err := u.google.Exchange(ctx, code)
	if err != nil {
		return nil, "", err
	}

	info, err := u.google.FetchUserInfo(ctx, token)
	if err != nil {
		return nil, "", err
	}
	if info.Email == "" {
		return nil, "", ErrNoEmail
	}

	user := &authdomain.User{
		Email:        info.Email,
		Name:         info.Name,
		PictureURL:   info.Picture,
		GoogleID:     info.ID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		user.TokenExpiry = &expiry
	}

	stored, err := u.userRepo.Upsert(user)
	if err != nil {
		return nil, "", err
	}

	session, err := u.generateSessionToken(stored)
	if err != nil {
		return nil, "", err
	}
	return stored, session, nil
}

func (u *authUsecase) generateSessionToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(u.config.SessionExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) ValidateSession(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid session claims")
	}
	return userID, nil
}

func (u *authUsecase) GetUser(userID string) (*authdomain.User, error) {
	return u.userRepo.FindByID(userID)
}
