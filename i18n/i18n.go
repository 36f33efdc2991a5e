// Package i18n translates the labels of the balances page.
package i18n

import "strings"

const DefaultLang = "en"

var messages = map[string]map[string]string{
	"en": {
		"app.title":          "Invoice ledger",
		"balances.title":     "Invoice balances",
		"filter.client":      "Client",
		"filter.all_clients": "All clients",
		"filter.from":        "From",
		"filter.to":          "To",
		"filter.page_size":   "Rows",
		"filter.apply":       "Apply",
		"filter.clear":       "Clear",
		"col.invoice":        "Invoice",
		"col.client":         "Client",
		"col.period":         "Period",
		"col.billed":         "Billed",
		"col.paid":           "Paid",
		"col.due":            "Balance due",
		"pager.prev":         "Previous",
		"pager.next":         "Next",
		"pager.page":         "Page",
		"empty":              "No invoices match these filters.",
		"error.load":         "Could not load balances.",
		"status.outstanding": "Outstanding",
		"status.overpaid":    "Overpaid",
		"status.settled":     "Settled",
	},
	"es": {
		"app.title":          "Libro de facturas",
		"balances.title":     "Saldos de facturas",
		"filter.client":      "Cliente",
		"filter.all_clients": "Todos los clientes",
		"filter.from":        "Desde",
		"filter.to":          "Hasta",
		"filter.page_size":   "Filas",
		"filter.apply":       "Aplicar",
		"filter.clear":       "Limpiar",
		"col.invoice":        "Factura",
		"col.client":         "Cliente",
		"col.period":         "Periodo",
		"col.billed":         "Facturado",
		"col.paid":           "Pagado",
		"col.due":            "Saldo",
		"pager.prev":         "Anterior",
		"pager.next":         "Siguiente",
		"pager.page":         "Página",
		"empty":              "Ninguna factura coincide con los filtros.",
		"error.load":         "No se pudieron cargar los saldos.",
		"status.outstanding": "Pendiente",
		"status.overpaid":    "Sobrepagado",
		"status.settled":     "Saldado",
	},
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// T returns the translation of code in lang, falling back to the default
// language and finally to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLang][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks the first supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if Supported(base) {
			return base
		}
	}
	return DefaultLang
}
