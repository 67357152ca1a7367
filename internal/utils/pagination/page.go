// Package pagination implements the page-numbered pagination used by every
// catalog listing: fixed page size, 1-based page numbers, total page count
// derived from the total row count.
package pagination

// PageSize is the fixed number of items per catalog page.
const PageSize = 20

// Page describes one resolved page request.
type Page struct {
	Number int // 1-based
	Limit  int
	Offset int
}

// Resolve clamps a requested page number (0 or negative becomes 1) and
// returns the limit/offset to query with.
func Resolve(page int) Page {
	if page < 1 {
		page = 1
	}
	return Page{
		Number: page,
		Limit:  PageSize,
		Offset: (page - 1) * PageSize,
	}
}

// TotalPages returns how many pages a result set of total items spans.
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}
