package domain

// PaginationParams selects a page of a list query. Handlers normalise the
// values before they reach a repository, but Offset and Limit still guard
// against zero or negative input.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the number of rows to skip for the current page.
func (p PaginationParams) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size, never less than one row.
func (p PaginationParams) Limit() int {
	if p.PageSize < 1 {
		return 1
	}
	return p.PageSize
}
