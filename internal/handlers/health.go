package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/invoice-ledger/httpx"
	"github.com/diewo77/invoice-ledger/internal/logger"
	"github.com/diewo77/invoice-ledger/internal/services"
)

type HealthHandler struct {
	queries *services.QueryService
}

func NewHealthHandler(queries *services.QueryService) *HealthHandler {
	return &HealthHandler{queries: queries}
}

// Health runs SELECT 1 against the database.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.Health(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("health check failed")
		msg := err.Error()
		var se *services.Error
		if errors.As(err, &se) {
			msg = se.Message
		}
		httpx.JSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": msg})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
