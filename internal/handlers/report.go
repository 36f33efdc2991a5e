package handlers

import (
	"net/http"

	"github.com/diewo77/invoice-ledger/internal/logger"
	"github.com/diewo77/invoice-ledger/internal/models"
	"github.com/diewo77/invoice-ledger/internal/report"
	"github.com/diewo77/invoice-ledger/internal/services"
	"github.com/diewo77/invoice-ledger/view"
)

type ReportHandler struct {
	queries *services.QueryService
}

func NewReportHandler(queries *services.QueryService) *ReportHandler {
	return &ReportHandler{queries: queries}
}

// Balances renders the invoice balances page for the state in the query string.
func (h *ReportHandler) Balances(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	state := report.FromQuery(r.URL.Query())

	clients, err := h.queries.ListClients(r.Context(), services.ClientFilter{}, services.NewPage(report.ClientOptionsLimit, 0))
	if err != nil {
		// the dropdown is optional; the table still renders
		log.Warn().Err(err).Msg("load client options")
		clients = nil
	}

	status := http.StatusOK
	rows, err := h.queries.ListInvoiceBalances(r.Context(), state.Filter(), state.Window())
	if err != nil {
		log.Error().Err(err).Msg("load balances")
		status = http.StatusInternalServerError
		rows = []models.InvoiceBalance{}
	}

	data := map[string]any{
		"State":     state,
		"Rows":      rows,
		"Clients":   clients,
		"PageSizes": report.PageSizes,
		"HasNext":   err == nil && state.HasNext(len(rows)),
		"Error":     err != nil,
	}
	if rerr := view.Render(w, r, status, "balances.html", data); rerr != nil {
		log.Error().Err(rerr).Msg("render balances")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
