package handlers

import (
	"net/http"

	"github.com/diewo77/invoice-ledger/httpx"
	"github.com/diewo77/invoice-ledger/internal/services"
)

type PlatformHandler struct {
	queries *services.QueryService
}

func NewPlatformHandler(queries *services.QueryService) *PlatformHandler {
	return &PlatformHandler{queries: queries}
}

// List handles GET /api/platforms.
func (h *PlatformHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListPlatforms(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}
