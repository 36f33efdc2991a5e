package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/invoice-ledger/httpx"
	"github.com/diewo77/invoice-ledger/internal/services"
)

type ClientHandler struct {
	queries *services.QueryService
	records *services.RecordService
}

func NewClientHandler(queries *services.QueryService, records *services.RecordService) *ClientHandler {
	return &ClientHandler{queries: queries, records: records}
}

// List handles GET /api/clients?search=&limit=&offset=.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := services.ClientFilter{Search: strings.TrimSpace(q.Get("search"))}
	rows, err := h.queries.ListClients(r.Context(), filter, pageParam(q, services.DefaultLimit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ClientInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}
	created, err := h.records.CreateClient(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeleteClient(r.Context(), pathID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}
