package delivery

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"

	authdto "calmirror-backend/internal/auth/dto"
	"calmirror-backend/internal/auth/usecase"
	"calmirror-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

const stateCookieName = "oauthstate"

// AuthHandler serves the Google OAuth flow and the session profile route.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

// GoogleLogin redirects to the provider consent screen.
// GET /auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start login"})
		return
	}
	state := base64.URLEncoding.EncodeToString(b)

	// Short-lived CSRF guard for the callback.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, 600, "/", "", false, true)

	c.Redirect(http.StatusTemporaryRedirect, h.authUsecase.LoginURL(state))
}

// GoogleCallback finishes the OAuth flow: code exchange, user upsert,
// session cookie, redirect back to the frontend.
// GET /auth/google/callback?code=...&state=...
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie == "" || c.Query("state") != stateCookie {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	_, session, err := h.authUsecase.HandleCallback(c.Request.Context(), code)
	if err != nil {
		log.Printf("[ERROR] /auth/google/callback: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "oauth error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, session, int(h.config.SessionExpiry.Seconds()), "/", "", false, true)

	c.Redirect(http.StatusTemporaryRedirect, h.config.FrontendOrigin)
}

// Me returns the signed-in user's profile.
// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.authUsecase.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, authdto.MeResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		PictureURL: user.PictureURL,
	})
}
