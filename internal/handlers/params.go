package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/diewo77/invoice-ledger/internal/models"
	"github.com/diewo77/invoice-ledger/internal/services"
)

func pageParam(q url.Values, defaultLimit int) services.Page {
	return services.ParsePage(q.Get("limit"), q.Get("offset"), defaultLimit)
}

// uintParam returns 0 for a missing or malformed value, which filters treat as absent.
func uintParam(q url.Values, key string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(q.Get(key)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// dateParam returns nil for a missing or malformed value.
func dateParam(q url.Values, key string) *models.Date {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &d
}

func invoiceFilter(q url.Values) services.InvoiceFilter {
	return services.InvoiceFilter{
		ClientID: uintParam(q, "client_id"),
		From:     dateParam(q, "from"),
		To:       dateParam(q, "to"),
	}
}

// pathID parses the {id} segment. Anything that is not a positive integer
// cannot name a row, so it becomes 0 and the delete reports not found.
func pathID(r *http.Request) uint {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}
