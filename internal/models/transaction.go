package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Defaults applied when a transaction is recorded without status or type.
// Both columns are free text; these are only the suggested values.
const (
	TxnStatusPending      = "Pending"
	TxnTypeInvoicePayment = "InvoicePayment"
)

// Transaction is a payment gateway movement for a client, optionally tied to
// an invoice and the platform it came through.
type Transaction struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	GatewayTxnID string          `gorm:"column:gateway_txn_id;size:100;not null;uniqueIndex" json:"gateway_txn_id"`
	TxnDatetime  time.Time       `gorm:"not null;index" json:"txn_datetime"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Status       string          `gorm:"size:50;not null" json:"status"`
	TxnType      string          `gorm:"size:50;not null" json:"txn_type"`
	ClientID     uint            `gorm:"not null;index" json:"client_id"`
	Client       *Client         `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:NO ACTION" json:"-"`
	InvoiceID    *uint           `gorm:"index" json:"invoice_id"`
	Invoice      *Invoice        `gorm:"foreignKey:InvoiceID;constraint:OnUpdate:CASCADE,OnDelete:NO ACTION" json:"-"`
	PlatformID   *uint           `gorm:"index" json:"platform_id"`
	Platform     *Platform       `gorm:"foreignKey:PlatformID;constraint:OnUpdate:CASCADE,OnDelete:NO ACTION" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TransactionRow is a transaction as listed, with the invoice number and
// platform name resolved when present.
type TransactionRow struct {
	ID            uint            `json:"id"`
	GatewayTxnID  string          `gorm:"column:gateway_txn_id" json:"gateway_txn_id"`
	TxnDatetime   time.Time       `json:"txn_datetime"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	TxnType       string          `json:"txn_type"`
	ClientID      uint            `json:"client_id"`
	InvoiceID     *uint           `json:"invoice_id"`
	PlatformID    *uint           `json:"platform_id"`
	InvoiceNumber *string         `json:"invoice_number"`
	PlatformName  *string         `json:"platform_name"`
}
