package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/invoice-ledger/httpx"
	"github.com/diewo77/invoice-ledger/internal/logger"
	"github.com/diewo77/invoice-ledger/internal/services"
)

// writeError maps a service error onto its status code and JSON body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		se = &services.Error{Kind: services.KindInfrastructure, Message: err.Error(), Err: err}
	}

	status := se.Kind.HTTPStatus()
	ev := logger.FromContext(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		ev = logger.FromContext(r.Context()).Error()
	}
	ev.Err(err).Str("op", se.Op).Str("kind", se.Kind.String()).Msg("request failed")

	var details any
	if len(se.Details) > 0 {
		details = se.Details
	}
	httpx.JSONError(w, status, se.Message, details)
}

func writeInvalidJSON(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Warn().Err(err).Msg("invalid request body")
	httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
}

func writeOK(w http.ResponseWriter) {
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
