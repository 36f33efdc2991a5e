package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/invoice-ledger/internal/models"
	"github.com/diewo77/invoice-ledger/validation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ref is a foreign key as received in a request body. It accepts a JSON
// number, a numeric string, a blank string or null.
type Ref string

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Ref(strings.TrimSpace(s))
		return nil
	}
	*r = Ref(b)
	return nil
}

// parse returns the id, whether a value was given at all, and whether it is a
// positive integer.
func (r Ref) parse() (id uint, present, ok bool) {
	if r == "" {
		return 0, false, false
	}
	n, err := strconv.ParseUint(string(r), 10, 64)
	if err != nil || n == 0 {
		return 0, true, false
	}
	return uint(n), true, true
}

type ClientInput struct {
	DocumentNumber *string `json:"document_number"`
	FullName       *string `json:"full_name"`
	AddressLine    *string `json:"address_line"`
	PhoneNumber    *string `json:"phone_number"`
	Email          *string `json:"email"`
}

type InvoiceInput struct {
	InvoiceNumber *string          `json:"invoice_number"`
	ClientID      Ref              `json:"client_id"`
	BillingPeriod *string          `json:"billing_period"`
	AmountBilled  *decimal.Decimal `json:"amount_billed"`
}

type TransactionInput struct {
	GatewayTxnID *string          `json:"gateway_txn_id"`
	TxnDatetime  *string          `json:"txn_datetime"`
	Amount       *decimal.Decimal `json:"amount"`
	Status       *string          `json:"status"`
	TxnType      *string          `json:"txn_type"`
	ClientID     Ref              `json:"client_id"`
	InvoiceID    Ref              `json:"invoice_id"`
	PlatformID   Ref              `json:"platform_id"`
}

// txnDatetimeLayouts are tried in order; layouts without a zone are UTC.
var txnDatetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	models.DateLayout,
}

func parseTxnDatetime(s string) (time.Time, bool) {
	for _, layout := range txnDatetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// RecordService creates and deletes clients, invoices and transactions.
// Each write is a single statement; constraint violations reported by the
// database are mapped onto Conflict and Reference errors.
type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

func (s *RecordService) CreateClient(ctx context.Context, in ClientInput) (*models.Client, error) {
	const op = "CreateClient"
	v := validation.Violations{}
	client := models.Client{
		DocumentNumber: validation.Required("document_number", in.DocumentNumber, v),
		FullName:       validation.Required("full_name", in.FullName, v),
		AddressLine:    validation.Optional(in.AddressLine),
		PhoneNumber:    validation.Optional(in.PhoneNumber),
		Email:          validation.Optional(in.Email),
	}
	if !v.Empty() {
		return nil, validationError(op, "document_number and full_name are required", v)
	}

	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		if isDuplicate(err) {
			return nil, &Error{Kind: KindConflict, Op: op, Message: "document_number or email already exists", Err: err}
		}
		return nil, infraError(op, err)
	}

	var created models.Client
	if err := s.db.WithContext(ctx).Where("document_number = ?", client.DocumentNumber).First(&created).Error; err != nil {
		return nil, infraError(op, err)
	}
	return &created, nil
}

func (s *RecordService) CreateInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	const op = "CreateInvoice"
	const required = "invoice_number, client_id, billing_period, amount_billed are required"
	v := validation.Violations{}

	invoice := models.Invoice{
		InvoiceNumber: validation.Required("invoice_number", in.InvoiceNumber, v),
	}
	invoice.ClientID = requiredRef("client_id", in.ClientID, v)

	if period := validation.Required("billing_period", in.BillingPeriod, v); period != "" {
		d, err := models.ParseDate(period)
		if err != nil {
			validation.Invalid("billing_period", "invalid_date", v)
		}
		invoice.BillingPeriod = d
	}

	validation.Present("amount_billed", in.AmountBilled != nil, v)
	if in.AmountBilled != nil {
		validation.NonNegative("amount_billed", *in.AmountBilled, v)
		invoice.AmountBilled = *in.AmountBilled
	}

	if !v.Empty() {
		msg := "invalid invoice"
		if v.Missing() {
			msg = required
		}
		return nil, validationError(op, msg, v)
	}

	if err := s.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		switch {
		case isDuplicate(err):
			return nil, &Error{Kind: KindConflict, Op: op, Message: "invoice_number already exists", Err: err}
		case isForeignKey(err):
			return nil, &Error{Kind: KindReference, Op: op, Message: "Invalid FK (client)", Err: err}
		}
		return nil, infraError(op, err)
	}

	var created models.Invoice
	if err := s.db.WithContext(ctx).Where("invoice_number = ?", invoice.InvoiceNumber).First(&created).Error; err != nil {
		return nil, infraError(op, err)
	}
	return &created, nil
}

func (s *RecordService) CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	const op = "CreateTransaction"
	const required = "gateway_txn_id, txn_datetime, amount, client_id are required"
	v := validation.Violations{}

	txn := models.Transaction{
		GatewayTxnID: validation.Required("gateway_txn_id", in.GatewayTxnID, v),
		Status:       models.TxnStatusPending,
		TxnType:      models.TxnTypeInvoicePayment,
	}
	if raw := validation.Required("txn_datetime", in.TxnDatetime, v); raw != "" {
		t, ok := parseTxnDatetime(raw)
		if !ok {
			validation.Invalid("txn_datetime", "invalid_date", v)
		}
		txn.TxnDatetime = t
	}
	validation.Present("amount", in.Amount != nil, v)
	if in.Amount != nil {
		txn.Amount = *in.Amount
	}
	txn.ClientID = requiredRef("client_id", in.ClientID, v)
	txn.InvoiceID = optionalRef("invoice_id", in.InvoiceID, v)
	txn.PlatformID = optionalRef("platform_id", in.PlatformID, v)
	if status := validation.Optional(in.Status); status != nil {
		txn.Status = *status
	}
	if typ := validation.Optional(in.TxnType); typ != nil {
		txn.TxnType = *typ
	}

	if !v.Empty() {
		msg := "invalid transaction"
		if v.Missing() {
			msg = required
		}
		return nil, validationError(op, msg, v)
	}

	if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
		switch {
		case isDuplicate(err):
			return nil, &Error{Kind: KindConflict, Op: op, Message: "gateway_txn_id already exists", Err: err}
		case isForeignKey(err):
			return nil, &Error{Kind: KindReference, Op: op, Message: "Invalid FK (client/invoice/platform)", Err: err}
		}
		return nil, infraError(op, err)
	}

	var created models.Transaction
	if err := s.db.WithContext(ctx).Where("gateway_txn_id = ?", txn.GatewayTxnID).First(&created).Error; err != nil {
		return nil, infraError(op, err)
	}
	return &created, nil
}

func (s *RecordService) DeleteClient(ctx context.Context, id uint) error {
	return s.delete(ctx, "DeleteClient", &models.Client{}, id,
		"client not found", "Cannot delete: has invoices/transactions")
}

func (s *RecordService) DeleteInvoice(ctx context.Context, id uint) error {
	return s.delete(ctx, "DeleteInvoice", &models.Invoice{}, id,
		"invoice not found", "Cannot delete: has transactions")
}

func (s *RecordService) DeleteTransaction(ctx context.Context, id uint) error {
	return s.delete(ctx, "DeleteTransaction", &models.Transaction{}, id,
		"transaction not found", "Cannot delete: referenced elsewhere")
}

func (s *RecordService) delete(ctx context.Context, op string, model any, id uint, notFound, blocked string) error {
	if id == 0 {
		return &Error{Kind: KindNotFound, Op: op, Message: notFound}
	}
	res := s.db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		if isForeignKey(res.Error) {
			return &Error{Kind: KindConflict, Op: op, Message: blocked, Err: res.Error}
		}
		return infraError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return &Error{Kind: KindNotFound, Op: op, Message: notFound}
	}
	return nil
}

func validationError(op, msg string, v validation.Violations) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: msg, Details: v}
}

func requiredRef(field string, r Ref, v validation.Violations) uint {
	id, present, ok := r.parse()
	switch {
	case !present:
		v[field] = "required"
	case !ok:
		validation.Invalid(field, "invalid", v)
	}
	return id
}

func optionalRef(field string, r Ref, v validation.Violations) *uint {
	id, present, ok := r.parse()
	if !present {
		return nil
	}
	if !ok {
		validation.Invalid(field, "invalid", v)
		return nil
	}
	return &id
}
