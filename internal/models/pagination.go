package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	HasMore     bool `json:"hasMore"`
	Limit       int  `json:"limit"`
}

// NewPagination computes totalPages = ceil(total/limit) and hasMore = page < totalPages.
// limit must be positive.
func NewPagination(total, page, limit int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasMore:     page < totalPages,
		Limit:       limit,
	}
}

// Offset is the number of rows skipped before the given page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
