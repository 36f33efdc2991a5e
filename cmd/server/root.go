package main

import (
	"fmt"
	"os"

	"github.com/diewo77/invoice-ledger/internal/config"
	"github.com/diewo77/invoice-ledger/internal/db"
	"github.com/diewo77/invoice-ledger/internal/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var version = "0.1.0"

// cfg is loaded once in main before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "invoice-ledger",
	Short: "Invoice ledger - clients, invoices, payments and balances",
	Long: `Invoice ledger serves a JSON API over clients, invoices and payment
transactions, plus an HTML page listing what is still owed on each invoice.

Configuration is read from the environment (and a .env file when present).
Running without a subcommand is the same as "serve".`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// openDB connects to the configured database. Every command needs it, and
// none of them can do anything useful without it.
func openDB() (*gorm.DB, error) {
	log := logger.WithComponent("db")
	log.Info().Str("target", cfg.Database.String()).Msg("Connecting to database")
	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return conn, nil
}
