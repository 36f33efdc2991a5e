package services

import (
	"context"

	"github.com/diewo77/invoice-ledger/internal/models"
	"gorm.io/gorm"
)

// ClientFilter narrows ListClients. A blank Search is ignored.
type ClientFilter struct {
	Search string
}

// InvoiceFilter narrows ListInvoices and ListInvoiceBalances.
// Zero ClientID and nil bounds are ignored; From and To are inclusive.
type InvoiceFilter struct {
	ClientID uint
	From     *models.Date
	To       *models.Date
}

// TransactionFilter narrows ListTransactions. Blank values are ignored.
type TransactionFilter struct {
	Status        string
	InvoiceNumber string
}

// QueryService runs the read side: filtered, ordered, paginated lists.
// Filter values are always bound parameters; only the clamped Page values
// end up in the SQL text.
type QueryService struct {
	db *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

// Health runs a trivial query against the database.
func (s *QueryService) Health(ctx context.Context) error {
	var one int
	if err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return infraError("Health", err)
	}
	return nil
}

func (s *QueryService) ListClients(ctx context.Context, f ClientFilter, p Page) ([]models.Client, error) {
	q := s.db.WithContext(ctx).Model(&models.Client{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("full_name LIKE ? OR document_number LIKE ?", like, like)
	}

	rows := []models.Client{}
	err := q.Order("id DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error
	if err != nil {
		return nil, infraError("ListClients", err)
	}
	return nonNil(rows), nil
}

func (s *QueryService) ListInvoices(ctx context.Context, f InvoiceFilter, p Page) ([]models.InvoiceRow, error) {
	q := s.db.WithContext(ctx).
		Table("invoices AS i").
		Select("i.id, i.invoice_number, i.client_id, i.billing_period, i.amount_billed, i.created_at, c.full_name").
		Joins("JOIN clients c ON c.id = i.client_id")
	q = applyInvoiceFilter(q, "i", f)

	rows := []models.InvoiceRow{}
	err := q.Order("i.billing_period DESC, i.invoice_number ASC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, infraError("ListInvoices", err)
	}
	return nonNil(rows), nil
}

func (s *QueryService) ListTransactions(ctx context.Context, f TransactionFilter, p Page) ([]models.TransactionRow, error) {
	q := s.db.WithContext(ctx).
		Table("transactions AS t").
		Select("t.id, t.gateway_txn_id, t.txn_datetime, t.amount, t.status, t.txn_type, " +
			"t.client_id, t.invoice_id, t.platform_id, i.invoice_number, p.name AS platform_name").
		Joins("LEFT JOIN invoices i ON i.id = t.invoice_id").
		Joins("LEFT JOIN platforms p ON p.id = t.platform_id")
	if f.Status != "" {
		q = q.Where("t.status = ?", f.Status)
	}
	if f.InvoiceNumber != "" {
		q = q.Where("i.invoice_number = ?", f.InvoiceNumber)
	}

	rows := []models.TransactionRow{}
	err := q.Order("t.txn_datetime DESC, t.id DESC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, infraError("ListTransactions", err)
	}
	return nonNil(rows), nil
}

// ListInvoiceBalances reads the invoice_balances view. Date bounds are applied
// in the query so a short page always means there is nothing further.
func (s *QueryService) ListInvoiceBalances(ctx context.Context, f InvoiceFilter, p Page) ([]models.InvoiceBalance, error) {
	q := s.db.WithContext(ctx).
		Table("invoice_balances AS b").
		Select("b.id, b.invoice_number, b.client_id, b.billing_period, b.amount_billed, " +
			"b.amount_paid, b.balance_due, c.full_name").
		Joins("JOIN clients c ON c.id = b.client_id")
	q = applyInvoiceFilter(q, "b", f)

	rows := []models.InvoiceBalance{}
	err := q.Order("b.billing_period DESC, b.invoice_number ASC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, infraError("ListInvoiceBalances", err)
	}
	return nonNil(rows), nil
}

func (s *QueryService) ListPlatforms(ctx context.Context) ([]models.Platform, error) {
	rows := []models.Platform{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, infraError("ListPlatforms", err)
	}
	return nonNil(rows), nil
}

func applyInvoiceFilter(q *gorm.DB, alias string, f InvoiceFilter) *gorm.DB {
	if f.ClientID != 0 {
		q = q.Where(alias+".client_id = ?", f.ClientID)
	}
	if f.From != nil {
		q = q.Where(alias+".billing_period >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where(alias+".billing_period <= ?", *f.To)
	}
	return q
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
