package result

import (
	"encoding/json"
	"math"
)

// Paginated holds one page of a listing, as well as some related metadata
type Paginated[T any] struct {
	maxResultsPerPage int
	page              int
	hits              T
	totalHits         int
}

func NewPaginated[T any](maxResultsPerPage, page, totalHits int, hits T) Paginated[T] {
	return Paginated[T]{
		maxResultsPerPage: maxResultsPerPage,
		page:              page,
		totalHits:         totalHits,
		hits:              hits,
	}
}

func (p Paginated[T]) MaxResultsPerPage() int {
	return p.maxResultsPerPage
}

func (p Paginated[T]) Page() int {
	return p.page
}

func (p Paginated[T]) Hits() T {
	return p.hits
}

func (p Paginated[T]) TotalHits() int {
	return p.totalHits
}

func (p Paginated[T]) TotalPages() int {
	if p.maxResultsPerPage == 0 {
		return 0
	}
	return int(math.Ceil(float64(p.totalHits) / float64(p.maxResultsPerPage)))
}

// WithHits returns a copy carrying different hits, e.g. after filtering.
func (p Paginated[T]) WithHits(hits T) Paginated[T] {
	p.hits = hits
	return p
}

func (p Paginated[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Items      T   `json:"items"`
		Page       int `json:"page"`
		PerPage    int `json:"per_page"`
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	}{p.hits, p.page, p.maxResultsPerPage, p.totalHits, p.TotalPages()})
}

// Offset is the number of rows to skip for a 1-based page.
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
