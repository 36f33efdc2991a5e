package report

import (
	"net/url"
	"testing"

	"github.com/diewo77/invoice-ledger/internal/models"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  State
		from  string
	}{
		{"empty", "", State{Limit: 10}, ""},
		{"full", "client_id=7&from=2024-01-01&limit=25&offset=50", State{ClientID: 7, Limit: 25, Offset: 50}, "2024-01-01"},
		{"unsupported size", "limit=30", State{Limit: 10}, ""},
		{"garbage", "client_id=abc&from=nope&offset=-10", State{Limit: 10}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			got := FromQuery(q)
			if got.ClientID != tt.want.ClientID || got.Limit != tt.want.Limit || got.Offset != tt.want.Offset {
				t.Errorf("FromQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
			if got.FromValue() != tt.from {
				t.Errorf("from = %q, want %q", got.FromValue(), tt.from)
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	s := State{Limit: 10}
	if s.HasPrev() {
		t.Fatal("first page must not have prev")
	}
	if s.Page() != 1 {
		t.Fatalf("page = %d", s.Page())
	}

	s = s.Next().Next()
	if s.Offset != 20 || s.Page() != 3 || !s.HasPrev() {
		t.Fatalf("after two nexts: %+v", s)
	}

	s = s.Prev()
	if s.Offset != 10 {
		t.Fatalf("prev offset = %d", s.Offset)
	}

	s.Offset = 5
	if p := s.Prev(); p.Offset != 0 {
		t.Fatalf("prev must floor at 0, got %d", p.Offset)
	}

	if !s.HasNext(10) || s.HasNext(9) {
		t.Fatal("HasNext must follow page fullness")
	}
}

func TestApplyResetsOffset(t *testing.T) {
	from, _ := models.ParseDate("2024-02-01")
	s := State{ClientID: 1, Limit: 25, Offset: 75}
	got := s.Apply(3, &from, nil)
	if got.Offset != 0 || got.ClientID != 3 || got.FromValue() != "2024-02-01" || got.Limit != 25 {
		t.Fatalf("Apply = %+v", got)
	}
}

func TestURLRoundTrip(t *testing.T) {
	to, _ := models.ParseDate("2024-06-30")
	s := State{ClientID: 4, To: &to, Limit: 50, Offset: 100}

	u, err := url.Parse(s.URL())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Path != Path {
		t.Fatalf("path = %s", u.Path)
	}
	back := FromQuery(u.Query())
	if back.ClientID != 4 || back.ToValue() != "2024-06-30" || back.Limit != 50 || back.Offset != 100 || back.From != nil {
		t.Fatalf("round trip = %+v", back)
	}

	if got := (State{Limit: 10}).URL(); got != "/balances?limit=10" {
		t.Fatalf("minimal URL = %s", got)
	}

	f := s.Filter()
	if f.ClientID != 4 || f.To == nil || f.From != nil {
		t.Fatalf("filter = %+v", f)
	}
	if w := s.Window(); w.Limit != 50 || w.Offset != 100 {
		t.Fatalf("window = %+v", w)
	}
}
