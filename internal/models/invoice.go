package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a billed amount for one client and billing period.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"size:50;not null;uniqueIndex" json:"invoice_number"`
	ClientID      uint            `gorm:"not null;index" json:"client_id"`
	Client        *Client         `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:NO ACTION" json:"-"`
	BillingPeriod Date            `gorm:"not null;index" json:"billing_period"`
	AmountBilled  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount_billed"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceRow is an invoice as listed, with its client's name.
type InvoiceRow struct {
	ID            uint            `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      uint            `json:"client_id"`
	BillingPeriod Date            `json:"billing_period"`
	AmountBilled  decimal.Decimal `json:"amount_billed"`
	CreatedAt     time.Time       `json:"created_at"`
	FullName      string          `json:"full_name"`
}
