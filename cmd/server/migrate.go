package main

import (
	"github.com/diewo77/invoice-ledger/internal/db"
	"github.com/diewo77/invoice-ledger/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the tables and the invoice_balances view, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("migrate")
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close(conn)

		if err := db.Migrate(conn); err != nil {
			return err
		}
		log.Info().Msg("Migrations completed successfully")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default payment platforms, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("seed")
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close(conn)

		if err := db.Seed(conn); err != nil {
			return err
		}
		log.Info().Strs("platforms", db.DefaultPlatforms).Msg("Seeding completed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
