// Package validation collects field violations for request input.
package validation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps a field name to a violation code ("required", "invalid", ...).
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the violating field names, sorted.
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Missing reports whether any field is flagged as required.
func (v Violations) Missing() bool {
	for _, code := range v {
		if code == "required" {
			return true
		}
	}
	return false
}

// Basic validators

// Required flags a nil or blank value and returns the trimmed string.
func Required(field string, value *string, v Violations) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		v[field] = "required"
		return ""
	}
	return strings.TrimSpace(*value)
}

// Optional trims value and maps blank to nil.
func Optional(value *string) *string {
	if value == nil {
		return nil
	}
	s := strings.TrimSpace(*value)
	if s == "" {
		return nil
	}
	return &s
}

// Present flags a missing non-string value.
func Present(field string, ok bool, v Violations) {
	if !ok {
		v[field] = "required"
	}
}

func NonNegative(field string, val decimal.Decimal, v Violations) {
	if val.IsNegative() {
		v[field] = "must_not_be_negative"
	}
}

// Invalid records a malformed value unless the field is already flagged.
func Invalid(field, code string, v Violations) {
	if _, exists := v[field]; !exists {
		v[field] = code
	}
}
