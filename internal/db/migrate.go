package db

import (
	"fmt"

	"github.com/diewo77/invoice-ledger/internal/models"
	"gorm.io/gorm"
)

// invoiceBalancesView derives what has been paid against each invoice.
// Every transaction referencing the invoice counts; status and txn_type are free text.
const invoiceBalancesView = `CREATE VIEW invoice_balances AS
SELECT i.id,
       i.invoice_number,
       i.client_id,
       i.billing_period,
       i.amount_billed,
       COALESCE(SUM(t.amount), 0) AS amount_paid,
       i.amount_billed - COALESCE(SUM(t.amount), 0) AS balance_due
FROM invoices i
LEFT JOIN transactions t ON t.invoice_id = i.id
GROUP BY i.id, i.invoice_number, i.client_id, i.billing_period, i.amount_billed`

// Migrate runs AutoMigrate for all tables and recreates the invoice_balances view.
// The view is dropped first so column changes on invoices are not blocked by it.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("DROP VIEW IF EXISTS invoice_balances").Error; err != nil {
		return fmt.Errorf("drop invoice_balances: %w", err)
	}
	for _, m := range models.Tables() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	if err := db.Exec(invoiceBalancesView).Error; err != nil {
		return fmt.Errorf("create invoice_balances: %w", err)
	}

	// sanity check: ensure required tables exist
	for _, table := range []string{"clients", "invoices", "transactions", "platforms"} {
		if !db.Migrator().HasTable(table) {
			return fmt.Errorf("missing table after migration: %s", table)
		}
	}
	return nil
}
