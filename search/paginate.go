package search

import "getpetback/models"

// Page is one page of search results.
type Page struct {
	Items      []models.Listing
	Number     int
	PerPage    int
	TotalItems int
	TotalPages int
}

// Paginate slices items into pages of perPage. The API returns full
// result sets, so paging happens client-side. Page numbers are
// 1-based; out-of-range pages yield an empty item list.
func Paginate(items []models.Listing, page, perPage int) Page {
	if perPage <= 0 {
		perPage = 10
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      items[start:end],
		Number:     page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
