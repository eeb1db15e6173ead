package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		size        int
		totalItems  int64
		totalPages  int64
		hasNext     bool
		hasPrevious bool
	}{
		{name: "first page of three", page: 0, size: 2, totalItems: 5, totalPages: 3, hasNext: true, hasPrevious: false},
		{name: "middle page", page: 1, size: 2, totalItems: 5, totalPages: 3, hasNext: true, hasPrevious: true},
		{name: "partial last page", page: 2, size: 2, totalItems: 5, totalPages: 3, hasNext: false, hasPrevious: true},
		{name: "exact fit", page: 0, size: 5, totalItems: 5, totalPages: 1, hasNext: false, hasPrevious: false},
		{name: "empty table", page: 0, size: 10, totalItems: 0, totalPages: 0, hasNext: false, hasPrevious: false},
		{name: "page beyond data", page: 10, size: 1000, totalItems: 3, totalPages: 1, hasNext: false, hasPrevious: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.page, tt.size, tt.totalItems)

			assert.Equal(t, tt.page, info.CurrentPage)
			assert.Equal(t, tt.size, info.PageSize)
			assert.Equal(t, tt.totalItems, info.TotalItems)
			assert.Equal(t, tt.totalPages, info.TotalPages)
			assert.Equal(t, tt.hasNext, info.HasNext)
			assert.Equal(t, tt.hasPrevious, info.HasPrevious)
		})
	}
}
