package models

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"
)

// DefaultPerPage matches the page size the clients expect when none is given.
const DefaultPerPage = 15

// MaxPerPage caps client-supplied page sizes.
const MaxPerPage = 100

// ListParams carries pagination state parsed from the query string.
type ListParams struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// ParseListParams reads page / per_page with sane bounds.
func ParseListParams(r *http.Request) ListParams {
	p := ListParams{Page: 1, PerPage: DefaultPerPage}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		p.PerPage = v
		if p.PerPage > MaxPerPage {
			p.PerPage = MaxPerPage
		}
	}
	return p
}

func (p ListParams) Offset() int { return (p.Page - 1) * p.PerPage }

// Page is the envelope returned by every listing endpoint.
type Page struct {
	Items   any   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// ExactFilter narrows the query by an exact column match when the query
// parameter is present.
func ExactFilter(q *gorm.DB, r *http.Request, column, param string) *gorm.DB {
	if v := r.URL.Query().Get(param); v != "" {
		q = q.Where(column+" = ?", v)
	}
	return q
}

// SearchFilter narrows the query by a substring match when the query
// parameter is present.
func SearchFilter(q *gorm.DB, r *http.Request, column, param string) *gorm.DB {
	if v := r.URL.Query().Get(param); v != "" {
		q = q.Where(column+" LIKE ?", "%"+v+"%")
	}
	return q
}

// DateRangeFilter narrows the query to an inclusive date range. Both bounds
// must be present or the filter is skipped.
func DateRangeFilter(q *gorm.DB, r *http.Request, column, fromParam, toParam string) *gorm.DB {
	from := r.URL.Query().Get(fromParam)
	to := r.URL.Query().Get(toParam)
	if from != "" && to != "" {
		q = q.Where(column+" BETWEEN ? AND ?", from, to)
	}
	return q
}
