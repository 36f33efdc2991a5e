package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/invoice-ledger/httpx"
	"github.com/diewo77/invoice-ledger/internal/services"
)

type TransactionHandler struct {
	queries *services.QueryService
	records *services.RecordService
}

func NewTransactionHandler(queries *services.QueryService, records *services.RecordService) *TransactionHandler {
	return &TransactionHandler{queries: queries, records: records}
}

// List handles GET /api/transactions?status=&invoice_number=&limit=&offset=.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.TransactionFilter{
		Status:        strings.TrimSpace(q.Get("status")),
		InvoiceNumber: strings.TrimSpace(q.Get("invoice_number")),
	}
	rows, err := h.queries.ListTransactions(r.Context(), filter, pageParam(q, services.DefaultLimit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.TransactionInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}
	created, err := h.records.CreateTransaction(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeleteTransaction(r.Context(), pathID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}
