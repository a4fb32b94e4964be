package shared

// Pagination describes the window a listing response covers. The API paginates
// with limit/offset query parameters rather than page numbers.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// NewPagination clamps the window to sane bounds and pairs it with the total
// row count reported by the repository.
func NewPagination(limit, offset, total int) Pagination {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return Pagination{Limit: limit, Offset: offset, Total: total}
}
