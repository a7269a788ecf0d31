package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/dkuznetsov/awardhub/internal/pkg/logger"
	"github.com/dkuznetsov/awardhub/internal/server"
)

// @title AwardHub API
// @version 1.0
// @description Administration backend for student achievements, events and rosters

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A missing .env is fine, configuration falls back to config.yaml defaults
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Could not load .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
