package main

import (
	"net/http"
	"strings"

	"github.com/diewo77/invoice-ledger/internal/config"
	"github.com/diewo77/invoice-ledger/internal/handlers"
	"github.com/diewo77/invoice-ledger/internal/logger"
	"github.com/diewo77/invoice-ledger/internal/metrics"
	"github.com/diewo77/invoice-ledger/internal/middleware"
	"github.com/diewo77/invoice-ledger/internal/services"
	"github.com/diewo77/invoice-ledger/view"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	db      *gorm.DB
	metrics *metrics.Metrics
	handler http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(db *gorm.DB, srvCfg config.ServerConfig) *App {
	app := &App{
		mux:     http.NewServeMux(),
		db:      db,
		metrics: metrics.New(),
	}
	view.SetLangResolver(middleware.LangFrom)
	app.setupRoutes()

	// The metrics middleware wraps the mux directly so it sees the matched pattern.
	app.handler = middleware.Chain(app.metrics.Instrument(app.mux),
		middleware.RequestID,
		middleware.Logger(logger.WithComponent("http")),
		middleware.Recovery,
		apiOnly(middleware.CORS(srvCfg.CORSOrigin)),
		middleware.Prefs,
	)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	queries := services.NewQueryService(a.db)
	records := services.NewRecordService(a.db)

	hh := handlers.NewHealthHandler(queries)
	ch := handlers.NewClientHandler(queries, records)
	ih := handlers.NewInvoiceHandler(queries, records)
	th := handlers.NewTransactionHandler(queries, records)
	ph := handlers.NewPlatformHandler(queries)
	rh := handlers.NewReportHandler(queries)

	// ─────────────────────────────────────────────────────────────────────────
	// JSON API
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("GET /api/health", hh.Health)

	a.mux.HandleFunc("GET /api/clients", ch.List)
	a.mux.HandleFunc("POST /api/clients", ch.Create)
	a.mux.HandleFunc("DELETE /api/clients/{id}", ch.Delete)

	a.mux.HandleFunc("GET /api/invoices", ih.List)
	a.mux.HandleFunc("POST /api/invoices", ih.Create)
	a.mux.HandleFunc("DELETE /api/invoices/{id}", ih.Delete)
	a.mux.HandleFunc("GET /api/invoice-balances", ih.Balances)

	a.mux.HandleFunc("GET /api/transactions", th.List)
	a.mux.HandleFunc("POST /api/transactions", th.Create)
	a.mux.HandleFunc("DELETE /api/transactions/{id}", th.Delete)

	a.mux.HandleFunc("GET /api/platforms", ph.List)

	// ─────────────────────────────────────────────────────────────────────────
	// Balances page
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("GET /{$}", rh.Balances)
	a.mux.HandleFunc("GET /balances", rh.Balances)

	a.mux.Handle("GET /metrics", a.metrics.Handler())
}

// apiOnly applies mw to /api/ requests and passes everything else through.
func apiOnly(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				wrapped.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
