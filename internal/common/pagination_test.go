// File: internal/common/pagination_test.go
package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationQuery_Sanitize(t *testing.T) {
	testCases := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values fall back to defaults", 0, 0, DefaultPage, DefaultPageSize},
		{"negative values fall back to defaults", -3, -1, DefaultPage, DefaultPageSize},
		{"oversized page size is capped", 2, 5000, 2, MaxPageSize},
		{"valid values pass through", 4, 25, 4, 25},
		{"page size at the cap is kept", 1, MaxPageSize, 1, MaxPageSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := PaginationQuery{Page: tc.page, PageSize: tc.pageSize}
			q.Sanitize()
			assert.Equal(t, tc.wantPage, q.Page)
			assert.Equal(t, tc.wantPageSize, q.PageSize)
		})
	}
}

func TestPaginationQuery_OffsetAndLimit(t *testing.T) {
	q := PaginationQuery{Page: 3, PageSize: 20}
	q.Sanitize()

	assert.Equal(t, 40, q.Offset())
	assert.Equal(t, 20, q.Limit())

	first := PaginationQuery{Page: 1, PageSize: 10}
	assert.Equal(t, 0, first.Offset())
}

func TestNewPagination(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		p := NewPagination(21, 1, 10)
		assert.Equal(t, int64(21), p.TotalItems)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("middle page has both neighbours", func(t *testing.T) {
		p := NewPagination(30, 2, 10)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("last page has no next", func(t *testing.T) {
		p := NewPagination(30, 3, 10)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("empty result set has zero pages", func(t *testing.T) {
		p := NewPagination(0, 1, 10)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("invalid inputs are normalized", func(t *testing.T) {
		p := NewPagination(5, 0, -1)
		assert.Equal(t, 1, p.CurrentPage)
		assert.Equal(t, DefaultPageSize, p.PageSize)
	})
}
