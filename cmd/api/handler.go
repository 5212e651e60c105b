package api

import (
	"time"

	authUsecase "calmirror-backend/internal/auth/usecase"
	eventUsecase "calmirror-backend/internal/event/usecase"
	"calmirror-backend/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handler owns the Gin engine.
type Handler struct {
	engine *gin.Engine
}

func NewHandler(authUC authUsecase.AuthUsecase, eventUC eventUsecase.EventUsecase, cfg *config.Config) *Handler {
	r := gin.Default()

	// The SPA sends the session cookie cross-origin, so credentials must
	// be allowed for its exact origin.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(r, authUC, eventUC, cfg)

	return &Handler{engine: r}
}

func (h *Handler) Start(addr string) error {
	return h.engine.Run(addr)
}
