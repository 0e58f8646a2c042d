package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nikitavr/sociable/internal/config"
	"github.com/nikitavr/sociable/internal/database"
	"github.com/nikitavr/sociable/internal/handlers"
	"github.com/nikitavr/sociable/internal/realtime"
	"github.com/nikitavr/sociable/internal/repositories"
	"github.com/nikitavr/sociable/internal/services"
	"github.com/nikitavr/sociable/internal/storage"
	"github.com/nikitavr/sociable/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting sociable server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Wire repositories, services and the realtime hub
	userRepo := repositories.NewUserRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	hub := realtime.NewHub()
	messaging := services.NewMessagingService(messageRepo, friendRepo, userRepo, hub)

	avatars, err := storage.NewAvatarStore(cfg.UploadDir, cfg.UploadMaxSize)
	if err != nil {
		logger.Fatal("Failed to initialize avatar store", err)
	}

	manager := handlers.NewHandlerManager(cfg, userRepo, friendRepo, messageRepo, messaging, hub, avatars)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	manager.RegisterRoutes(router)

	logger.Info("Server started successfully", "env", cfg.AppEnv, "port", cfg.AppPort)

	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.Fatal("Server stopped", err)
	}
}
