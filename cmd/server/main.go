package main

import (
	"log"

	"github.com/diewo77/invoice-ledger/internal/config"
	"github.com/diewo77/invoice-ledger/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	// Load configuration from environment
	cfg = *config.Load()

	if err := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	Execute()
}
