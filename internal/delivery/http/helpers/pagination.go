package helpers

import (
	"net/http"
	"strconv"

	"vacationbooking/internal/domain"
)

// Defaults for page and page_size query parameters. Invitation lists can grow
// with repeated invites, so page_size is capped.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// queryInt reads a positive integer query parameter, falling back when the
// value is absent, malformed, or below one.
func queryInt(r *http.Request, key string, fallback int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// ParsePagination reads page and page_size from the query string and clamps
// them to valid ranges. Bad input never fails a request; it just falls back.
func ParsePagination(r *http.Request) domain.PaginationParams {
	pageSize := queryInt(r, "page_size", DefaultPageSize)
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return domain.PaginationParams{
		Page:     queryInt(r, "page", DefaultPage),
		PageSize: pageSize,
	}
}

// PaginationMeta is the metadata block of paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta for a page of total items.
// TotalPages rounds up; a zero pageSize yields zero TotalPages.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
