package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusConflict, "invoice_number already exists", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"message":"invoice_number already exists"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestJSONNilPayload(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, nil)
	if w.Body.String() != "null" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst map[string]any
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"full_name":"Ana"}`))
	if err := DecodeJSON(r, &dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dst["full_name"] != "Ana" {
		t.Fatalf("decoded %v", dst)
	}

	empty := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var e struct{}
	if err := DecodeJSON(empty, &e); err != nil {
		t.Fatalf("empty body should decode: %v", err)
	}

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"full_name":`))
	var b map[string]any
	err := DecodeJSON(bad, &b)
	var syntaxOrEOF bool
	if err != nil {
		_, isSyntax := err.(*json.SyntaxError)
		syntaxOrEOF = isSyntax || err.Error() == "unexpected EOF"
	}
	if !syntaxOrEOF {
		t.Fatalf("expected decode error, got %v", err)
	}
}
