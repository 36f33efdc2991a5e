package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/invoice-ledger/internal/config"
	"github.com/diewo77/invoice-ledger/internal/db"
	"github.com/diewo77/invoice-ledger/internal/middleware"
	"github.com/diewo77/invoice-ledger/internal/services"
	"github.com/diewo77/invoice-ledger/view"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:h_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestMux(t *testing.T) http.Handler {
	t.Helper()
	conn := setupTestDB(t)
	qs, rs := services.NewQueryService(conn), services.NewRecordService(conn)
	view.SetLangResolver(middleware.LangFrom)

	ch := NewClientHandler(qs, rs)
	ih := NewInvoiceHandler(qs, rs)
	th := NewTransactionHandler(qs, rs)
	rh := NewReportHandler(qs)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", NewHealthHandler(qs).Health)
	mux.HandleFunc("GET /api/clients", ch.List)
	mux.HandleFunc("POST /api/clients", ch.Create)
	mux.HandleFunc("DELETE /api/clients/{id}", ch.Delete)
	mux.HandleFunc("GET /api/invoices", ih.List)
	mux.HandleFunc("POST /api/invoices", ih.Create)
	mux.HandleFunc("DELETE /api/invoices/{id}", ih.Delete)
	mux.HandleFunc("GET /api/invoice-balances", ih.Balances)
	mux.HandleFunc("GET /api/transactions", th.List)
	mux.HandleFunc("POST /api/transactions", th.Create)
	mux.HandleFunc("DELETE /api/transactions/{id}", th.Delete)
	mux.HandleFunc("GET /api/platforms", NewPlatformHandler(qs).List)
	mux.HandleFunc("GET /balances", rh.Balances)
	return middleware.Prefs(mux)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func createClient(t *testing.T, h http.Handler, doc, name string) float64 {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/clients", fmt.Sprintf(`{"document_number":%q,"full_name":%q}`, doc, name))
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: %d %s", w.Code, w.Body.String())
	}
	return decode[map[string]any](t, w)["id"].(float64)
}

func createInvoice(t *testing.T, h http.Handler, number string, clientID float64, period string, billed int) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"invoice_number":%q,"client_id":%v,"billing_period":%q,"amount_billed":%d}`, number, clientID, period, billed)
	w := do(t, h, http.MethodPost, "/api/invoices", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d %s", w.Code, w.Body.String())
	}
	return decode[map[string]any](t, w)["id"].(float64)
}

func TestHealth(t *testing.T) {
	h := newTestMux(t)
	w := do(t, h, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"status":"ok"}` {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	conn := setupTestDB(t)
	qs := services.NewQueryService(conn)
	if err := db.Close(conn); err != nil {
		t.Fatalf("close: %v", err)
	}

	w := do(t, http.HandlerFunc(NewHealthHandler(qs).Health), http.MethodGet, "/api/health", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := decode[map[string]string](t, w)
	if body["status"] != "error" || !strings.Contains(body["message"], "closed") {
		t.Errorf("body = %v", body)
	}
}

func TestClientCreateThenSearch(t *testing.T) {
	h := newTestMux(t)
	createClient(t, h, "CC123", "Ana")
	createClient(t, h, "CC456", "Bruno")

	w := do(t, h, http.MethodGet, "/api/clients?search=Ana", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	rows := decode[[]map[string]any](t, w)
	if len(rows) != 1 || rows[0]["document_number"] != "CC123" {
		t.Fatalf("rows = %v", rows)
	}

	first := do(t, h, http.MethodGet, "/api/clients?limit=1", "").Body.String()
	second := do(t, h, http.MethodGet, "/api/clients?limit=1", "").Body.String()
	if first != second {
		t.Fatalf("repeated GET differs:\n%s\n%s", first, second)
	}
	if n := len(decode[[]map[string]any](t, do(t, h, http.MethodGet, "/api/clients?limit=1", ""))); n != 1 {
		t.Fatalf("limit=1 returned %d rows", n)
	}
	if body := strings.TrimSpace(do(t, h, http.MethodGet, "/api/clients?offset=100", "").Body.String()); body != "[]" {
		t.Fatalf("offset past end = %s", body)
	}
}

func TestClientCreateErrors(t *testing.T) {
	h := newTestMux(t)
	createClient(t, h, "CC1", "Ana")

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"missing fields", `{"full_name":"  "}`, http.StatusBadRequest, "document_number and full_name are required"},
		{"invalid json", `{"full_name":`, http.StatusBadRequest, "invalid_json"},
		{"duplicate", `{"document_number":"CC1","full_name":"Other"}`, http.StatusConflict, "document_number or email already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/clients", tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if got := decode[map[string]any](t, w)["message"]; got != tt.message {
				t.Fatalf("message = %v, want %q", got, tt.message)
			}
		})
	}

	w := do(t, h, http.MethodPost, "/api/clients", `{}`)
	details := decode[map[string]any](t, w)["details"].(map[string]any)
	if details["document_number"] != "required" || details["full_name"] != "required" {
		t.Fatalf("details = %v", details)
	}
}

func TestInvoiceDuplicateAndReference(t *testing.T) {
	h := newTestMux(t)
	clientID := createClient(t, h, "CC1", "Ana")

	body := fmt.Sprintf(`{"invoice_number":"INV-1","client_id":"%v","billing_period":"2024-03-01","amount_billed":"100000"}`, clientID)
	if w := do(t, h, http.MethodPost, "/api/invoices", body); w.Code != http.StatusCreated {
		t.Fatalf("first: %d %s", w.Code, w.Body.String())
	} else {
		inv := decode[map[string]any](t, w)
		if inv["billing_period"] != "2024-03-01" || inv["amount_billed"] != "100000" {
			t.Fatalf("created = %v", inv)
		}
	}
	if w := do(t, h, http.MethodPost, "/api/invoices", body); w.Code != http.StatusConflict {
		t.Fatalf("second: %d %s", w.Code, w.Body.String())
	}

	w := do(t, h, http.MethodPost, "/api/invoices", `{"invoice_number":"INV-2","client_id":999,"billing_period":"2024-03-01","amount_billed":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown client: %d %s", w.Code, w.Body.String())
	}
}

func TestDeleteFlow(t *testing.T) {
	h := newTestMux(t)
	clientID := createClient(t, h, "CC1", "Ana")
	invoiceID := createInvoice(t, h, "INV-1", clientID, "2024-03-01", 1000)

	txn := do(t, h, http.MethodPost, "/api/transactions",
		fmt.Sprintf(`{"gateway_txn_id":"GW-1","txn_datetime":"2024-03-02T10:00:00Z","amount":500,"client_id":%v,"invoice_id":%v}`, clientID, invoiceID))
	if txn.Code != http.StatusCreated {
		t.Fatalf("create txn: %d %s", txn.Code, txn.Body.String())
	}
	txnID := decode[map[string]any](t, txn)["id"].(float64)

	steps := []struct {
		target string
		status int
	}{
		{fmt.Sprintf("/api/clients/%v", clientID), http.StatusConflict},
		{fmt.Sprintf("/api/invoices/%v", invoiceID), http.StatusConflict},
		{fmt.Sprintf("/api/transactions/%v", txnID), http.StatusOK},
		{fmt.Sprintf("/api/transactions/%v", txnID), http.StatusNotFound},
		{fmt.Sprintf("/api/invoices/%v", invoiceID), http.StatusOK},
		{fmt.Sprintf("/api/clients/%v", clientID), http.StatusOK},
		{"/api/clients/abc", http.StatusNotFound},
	}
	for _, s := range steps {
		w := do(t, h, http.MethodDelete, s.target, "")
		if w.Code != s.status {
			t.Fatalf("DELETE %s = %d, want %d (%s)", s.target, w.Code, s.status, w.Body.String())
		}
		if s.status == http.StatusOK && strings.TrimSpace(w.Body.String()) != `{"ok":true}` {
			t.Fatalf("DELETE %s body = %s", s.target, w.Body.String())
		}
	}
}

func TestInvoiceBalancesEndpoint(t *testing.T) {
	h := newTestMux(t)
	clientID := createClient(t, h, "CC1", "Ana")
	invoiceID := createInvoice(t, h, "INV-1", clientID, "2024-03-01", 100000)
	for i, paid := range []int{30000, 20000} {
		body := fmt.Sprintf(`{"gateway_txn_id":"GW-%d","txn_datetime":"2024-03-0%dT10:00:00Z","amount":%d,"client_id":%v,"invoice_id":%v}`,
			i, i+2, paid, clientID, invoiceID)
		if w := do(t, h, http.MethodPost, "/api/transactions", body); w.Code != http.StatusCreated {
			t.Fatalf("txn: %d %s", w.Code, w.Body.String())
		}
	}

	w := do(t, h, http.MethodGet, fmt.Sprintf("/api/invoice-balances?client_id=%v", clientID), "")
	rows := decode[[]map[string]any](t, w)
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0]["amount_paid"] != "50000" || rows[0]["balance_due"] != "50000" {
		t.Fatalf("row = %v", rows[0])
	}

	txns := decode[[]map[string]any](t, do(t, h, http.MethodGet, "/api/transactions?invoice_number=INV-1", ""))
	if len(txns) != 2 || txns[0]["gateway_txn_id"] != "GW-1" {
		t.Fatalf("transactions = %v", txns)
	}
}

func TestInvoicePagesAreDisjoint(t *testing.T) {
	h := newTestMux(t)
	clientID := createClient(t, h, "CC1", "Ana")
	for i := 1; i <= 12; i++ {
		createInvoice(t, h, fmt.Sprintf("INV-%02d", i), clientID, fmt.Sprintf("2024-%02d-01", i), i*100)
	}

	seen := map[float64]bool{}
	for _, target := range []string{"/api/invoices?limit=10&offset=0", "/api/invoices?limit=10&offset=10"} {
		for _, row := range decode[[]map[string]any](t, do(t, h, http.MethodGet, target, "")) {
			id := row["id"].(float64)
			if seen[id] {
				t.Fatalf("id %v returned twice", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != 12 {
		t.Fatalf("saw %d invoices, want 12", len(seen))
	}
}

func TestPlatforms(t *testing.T) {
	h := newTestMux(t)
	w := do(t, h, http.MethodGet, "/api/platforms", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("platforms before seed: %d %s", w.Code, w.Body.String())
	}
}

func TestBalancesPage(t *testing.T) {
	h := newTestMux(t)
	clientID := createClient(t, h, "CC1", "Ana")
	for i := 1; i <= 12; i++ {
		createInvoice(t, h, fmt.Sprintf("INV-%02d", i), clientID, fmt.Sprintf("2024-%02d-01", i), 100000)
	}

	w := do(t, h, http.MethodGet, "/balances", "")
	if w.Code != http.StatusOK {
		t.Fatalf("page: %d %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"INV-12", "$ 100.000", `<a id="next" href="/balances?limit=10&amp;offset=10">`, `<span id="prev" class="disabled">`} {
		if !strings.Contains(body, want) {
			t.Errorf("first page missing %q", want)
		}
	}
	if strings.Contains(body, "INV-02") {
		t.Errorf("first page should stop at 10 rows")
	}

	w = do(t, h, http.MethodGet, "/balances?limit=10&offset=10&lang=es", "")
	body = w.Body.String()
	for _, want := range []string{"INV-01", "Saldos de facturas", `<span id="next" class="disabled">`, `<a id="prev" href="/balances?limit=10">`} {
		if !strings.Contains(body, want) {
			t.Errorf("second page missing %q", want)
		}
	}

	// server-side date bounds: one row, so no next page
	w = do(t, h, http.MethodGet, "/balances?from=2024-05-01&to=2024-05-31", "")
	body = w.Body.String()
	if !strings.Contains(body, "INV-05") || strings.Contains(body, "INV-06") || !strings.Contains(body, `<span id="next" class="disabled">`) {
		t.Errorf("date filtered page wrong:\n%s", body)
	}
}
