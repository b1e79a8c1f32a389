// File: internal/common/pagination.go
package common

const (
	// DefaultPage is the default page number for pagination.
	DefaultPage = 1
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 10
	// MaxPageSize is the maximum allowed page size.
	MaxPageSize = 100
)

// PaginationQuery holds common pagination query parameters.
type PaginationQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Sanitize clamps the query to safe values.
func (q *PaginationQuery) Sanitize() {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// Offset returns the number of rows to skip for the current page.
func (q *PaginationQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Limit returns the page size.
func (q *PaginationQuery) Limit() int {
	return q.PageSize
}
