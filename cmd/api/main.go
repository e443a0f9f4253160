package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/estatecore/backend/internal/pkg/logger"
	"github.com/estatecore/backend/internal/server"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}
