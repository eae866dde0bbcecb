package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/yigit/placementhub/internal/pkg/logger"
	"github.com/yigit/placementhub/internal/server"
)

// @title PlacementHub API
// @version 1.0
// @description API for the campus placement management platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@placementhub.edu

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Environment overrides from a local .env, if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
