package utils

// Page is the pagination block returned next to every list response.
type Page struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Limit       int  `json:"limit"`
}

// Skip is the offset of the first record on page (1-based).
func Skip(page, limit int) int64 {
	if page < 1 {
		return 0
	}
	return int64(page-1) * int64(limit)
}

// Paginate builds the metadata for page out of total matching records.
func Paginate(page, limit int, total int64) Page {
	p := Page{
		CurrentPage: page,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
	if limit <= 0 {
		return p
	}
	p.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	p.HasNextPage = Skip(page, limit)+int64(limit) < total
	return p
}
