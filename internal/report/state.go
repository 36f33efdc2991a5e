// Package report holds the navigation state of the invoice balances page.
//
// The state lives entirely in the query string: filters (client, from, to)
// and the limit/offset window. Applying filters starts over at offset 0;
// Next and Prev move the window by one page.
package report

import (
	"net/url"
	"strconv"

	"github.com/diewo77/invoice-ledger/internal/models"
	"github.com/diewo77/invoice-ledger/internal/services"
)

// PageSizes are the row counts offered by the page.
var PageSizes = []int{10, 25, 50}

const DefaultPageSize = 10

// ClientOptionsLimit is how many clients the filter dropdown lists.
const ClientOptionsLimit = 100

// Path is where the balances page is served.
const Path = "/balances"

type State struct {
	ClientID uint
	From     *models.Date
	To       *models.Date
	Limit    int
	Offset   int
}

// FromQuery reads the state from a request query. Unknown page sizes fall
// back to the default; malformed filters are dropped.
func FromQuery(q url.Values) State {
	s := State{Limit: DefaultPageSize}
	if n, err := strconv.ParseUint(q.Get("client_id"), 10, 64); err == nil {
		s.ClientID = uint(n)
	}
	if d, err := models.ParseDate(q.Get("from")); err == nil {
		s.From = &d
	}
	if d, err := models.ParseDate(q.Get("to")); err == nil {
		s.To = &d
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && validSize(n) {
		s.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		s.Offset = n
	}
	return s
}

func validSize(n int) bool {
	for _, size := range PageSizes {
		if n == size {
			return true
		}
	}
	return false
}

// Apply replaces the filters and goes back to the first page.
func (s State) Apply(clientID uint, from, to *models.Date) State {
	s.ClientID, s.From, s.To = clientID, from, to
	s.Offset = 0
	return s
}

// Next advances by one page. Callers check HasNext first.
func (s State) Next() State {
	s.Offset += s.Limit
	return s
}

// Prev goes back one page, never below offset 0.
func (s State) Prev() State {
	s.Offset -= s.Limit
	if s.Offset < 0 {
		s.Offset = 0
	}
	return s
}

func (s State) HasPrev() bool {
	return s.Offset > 0
}

// HasNext infers another page from a full page of fetched rows. Date bounds
// are applied by the query itself, so fetched equals rendered.
func (s State) HasNext(fetched int) bool {
	return fetched >= s.Limit
}

// Page is the 1-based page number.
func (s State) Page() int {
	return s.Offset/s.Limit + 1
}

// Filter converts the state into the balances query filter.
func (s State) Filter() services.InvoiceFilter {
	return services.InvoiceFilter{ClientID: s.ClientID, From: s.From, To: s.To}
}

func (s State) Window() services.Page {
	return services.NewPage(s.Limit, s.Offset)
}

func (s State) FromValue() string {
	if s.From == nil {
		return ""
	}
	return s.From.String()
}

func (s State) ToValue() string {
	if s.To == nil {
		return ""
	}
	return s.To.String()
}

// Query encodes the state, omitting empty filters and a zero offset.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.ClientID != 0 {
		q.Set("client_id", strconv.FormatUint(uint64(s.ClientID), 10))
	}
	if s.From != nil {
		q.Set("from", s.From.String())
	}
	if s.To != nil {
		q.Set("to", s.To.String())
	}
	q.Set("limit", strconv.Itoa(s.Limit))
	if s.Offset > 0 {
		q.Set("offset", strconv.Itoa(s.Offset))
	}
	return q
}

func (s State) URL() string {
	return Path + "?" + s.Query().Encode()
}
