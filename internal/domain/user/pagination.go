package user

// PageInfo describes the position of one page within the full result set.
// All fields are derived from the total row count, not from the number of
// items actually returned, so TotalPages stays correct on a partial last page.
type PageInfo struct {
	CurrentPage int   // Zero-based page index as requested
	PageSize    int   // Effective page size after clamping
	TotalItems  int64 // Total number of rows in the table
	TotalPages  int64 // ceil(TotalItems / PageSize)
	HasNext     bool
	HasPrevious bool
}

// NewPageInfo computes page metadata for a zero-based page of the given size.
func NewPageInfo(page, size int, totalItems int64) PageInfo {
	var totalPages int64
	if size > 0 {
		totalPages = (totalItems + int64(size) - 1) / int64(size)
	}

	return PageInfo{
		CurrentPage: page,
		PageSize:    size,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     int64(page)+1 < totalPages,
		HasPrevious: page > 0,
	}
}
