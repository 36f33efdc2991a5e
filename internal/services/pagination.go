package services

import "strconv"

const (
	MaxLimit            = 500
	DefaultLimit        = 50
	DefaultBalanceLimit = 100
)

// Page is a clamped limit/offset pair. The values are the only ones ever
// rendered into SQL text, so they are always validated integers.
type Page struct {
	Limit  int
	Offset int
}

// NewPage clamps limit to [1, MaxLimit] and offset to >= 0.
func NewPage(limit, offset int) Page {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// ParsePage reads raw query values. Blank or non-numeric values fall back to
// defaultLimit and 0 before clamping.
func ParsePage(rawLimit, rawOffset string, defaultLimit int) Page {
	limit := defaultLimit
	if n, err := strconv.Atoi(rawLimit); err == nil {
		limit = n
	}
	offset := 0
	if n, err := strconv.Atoi(rawOffset); err == nil {
		offset = n
	}
	return NewPage(limit, offset)
}
