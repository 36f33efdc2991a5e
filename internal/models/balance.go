package models

import "github.com/shopspring/decimal"

// InvoiceBalance is a read-only row of the invoice_balances view.
type InvoiceBalance struct {
	ID            uint            `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      uint            `json:"client_id"`
	BillingPeriod Date            `json:"billing_period"`
	AmountBilled  decimal.Decimal `json:"amount_billed"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
	FullName      string          `json:"full_name"`
}

func (InvoiceBalance) TableName() string {
	return "invoice_balances"
}

// Outstanding reports whether money is still owed on the invoice.
func (b InvoiceBalance) Outstanding() bool {
	return b.BalanceDue.IsPositive()
}

// Overpaid reports whether payments exceed the billed amount.
func (b InvoiceBalance) Overpaid() bool {
	return b.BalanceDue.IsNegative()
}
