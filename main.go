// File: /main.go
package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fitlink-api/config"
	"fitlink-api/database"
	"fitlink-api/middleware"
	"fitlink-api/routes"
	"fitlink-api/services"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(os.Stdout)

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, reading configuration from environment")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Seed catalogs and development data
	if err := database.SeedData(db); err != nil {
		log.Warn().Err(err).Msg("failed to seed database")
	}

	emailService := services.NewEmailService(cfg)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}
	if err := storageService.EnsureBucket(context.Background()); err != nil {
		// Uploads will fail until storage is reachable, everything else works
		log.Warn().Err(err).Msg("could not ensure storage bucket")
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(routes.SetupCORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 20))
	router.Use(middleware.ValidateJSON())

	routes.SetupRoutes(router, db, cfg, emailService, storageService)

	log.Info().Str("port", cfg.Port).Msg("starting FitLink API server")

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
