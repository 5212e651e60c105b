package api

import (
	"net/http"

	authDelivery "calmirror-backend/internal/auth/delivery"
	authUsecase "calmirror-backend/internal/auth/usecase"
	eventDelivery "calmirror-backend/internal/event/delivery"
	eventUsecase "calmirror-backend/internal/event/usecase"
	"calmirror-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUC authUsecase.AuthUsecase, eventUC eventUsecase.EventUsecase, cfg *config.Config) {
	authHandler := authDelivery.NewAuthHandler(authUC, cfg)
	eventHandler := eventDelivery.NewEventHandler(eventUC)

	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// OAuth flow
	auth := r.Group("/auth")
	{
		auth.GET("/google", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	// Session-protected API
	api := r.Group("/api")
	{
		api.GET("/me", authDelivery.AuthMiddleware(authUC), authHandler.Me)

		events := api.Group("/events")
		events.Use(authDelivery.AuthMiddleware(authUC))
		{
			events.POST("/refresh", eventHandler.Refresh)
			events.GET("", eventHandler.List)
			events.POST("", eventHandler.Create)
		}
	}
}
