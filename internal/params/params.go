package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Pagination holds pagination info and computed metadata.
//
// ?page=2&limit=20 → Pagination{Limit:20, Page:2, Offset:20}; after the store
// returns the total, ComputeMeta fills Pages.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"-"`
	Page   int `json:"currentPage"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// ParsePagination parses ?limit=...&page=... with the package defaults.
func ParsePagination(q url.Values) Pagination {
	return ParsePaginationWith(q, DefaultLimit, MaxLimit)
}

// ParsePaginationWith is ParsePagination with a caller-chosen default and cap.
// Non-numeric or non-positive values fall back to the defaults.
func ParsePaginationWith(q url.Values, def, max int) Pagination {
	p := Pagination{
		Limit: def,
		Page:  1,
	}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			switch {
			case limit <= 0:
				p.Limit = def
			case limit > max:
				p.Limit = max
			default:
				p.Limit = limit
			}
		}
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	// keep (Page-1)*Limit within int
	if p.Limit > 0 && p.Page > math.MaxInt/p.Limit+1 {
		p.Page = math.MaxInt/p.Limit + 1
	}
	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.Pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
}
