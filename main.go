package main

import (
	"log"

	api "calmirror-backend/cmd/api"
	authdomain "calmirror-backend/internal/auth/domain"
	authRepo "calmirror-backend/internal/auth/repository"
	authUsecase "calmirror-backend/internal/auth/usecase"
	eventdomain "calmirror-backend/internal/event/domain"
	eventRepo "calmirror-backend/internal/event/repository"
	eventUsecase "calmirror-backend/internal/event/usecase"
	"calmirror-backend/pkg/config"
	"calmirror-backend/pkg/database"
	"calmirror-backend/pkg/googlecal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &eventdomain.Event{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	eventRepository := eventRepo.NewEventRepository(db)

	// Initialize Google Calendar provider adapter
	googleService := googlecal.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, googleService, cfg)
	eventUsecaseInstance := eventUsecase.NewEventUsecase(eventRepository, userRepository, eventUsecase.NewGoogleCalendarProvider(googleService))

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, eventUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
