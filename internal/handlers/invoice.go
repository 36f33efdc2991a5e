package handlers

import (
	"net/http"

	"github.com/diewo77/invoice-ledger/httpx"
	"github.com/diewo77/invoice-ledger/internal/services"
)

type InvoiceHandler struct {
	queries *services.QueryService
	records *services.RecordService
}

func NewInvoiceHandler(queries *services.QueryService, records *services.RecordService) *InvoiceHandler {
	return &InvoiceHandler{queries: queries, records: records}
}

// List handles GET /api/invoices?client_id=&from=&to=&limit=&offset=.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.queries.ListInvoices(r.Context(), invoiceFilter(q), pageParam(q, services.DefaultLimit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.InvoiceInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}
	created, err := h.records.CreateInvoice(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeleteInvoice(r.Context(), pathID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

// Balances handles GET /api/invoice-balances?client_id=&from=&to=&limit=&offset=.
func (h *InvoiceHandler) Balances(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.queries.ListInvoiceBalances(r.Context(), invoiceFilter(q), pageParam(q, services.DefaultBalanceLimit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}
