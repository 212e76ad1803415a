package query

import (
	"math"

	"github.com/tbourn/game-reviews-api/internal/apperr"
)

// Page is the window applied to a listing. Number is the 1-based page the
// window corresponds to.
type Page struct {
	Limit  int
	Offset int
	Number int
}

// Paginator converts (limit, page) into a Page. It is stateless: identical
// inputs always yield identical output.
type Paginator struct {
	// DefaultLimit is used when the request carries no limit.
	DefaultLimit int
	// MaxLimit caps the page size; zero disables the cap.
	MaxLimit int
}

// DefaultPaginator pages by 10 with a cap of 100 rows.
func DefaultPaginator() Paginator {
	return Paginator{DefaultLimit: 10, MaxLimit: 100}
}

// Paginate computes offset = limit*(page-1). An absent page means the first
// page; a limit or page below 1 is an InvalidQueryValue. An offset that
// would overflow saturates at math.MaxInt, which still selects an empty page.
func (p Paginator) Paginate(limit, page *int) (Page, error) {
	l := p.DefaultLimit
	if l < 1 {
		l = 10
	}
	if limit != nil {
		if *limit < 1 {
			return Page{}, apperr.InvalidQueryValue("limit must be a positive integer, got %d", *limit)
		}
		l = *limit
	}
	if p.MaxLimit > 0 && l > p.MaxLimit {
		l = p.MaxLimit
	}

	n := 1
	if page != nil {
		if *page < 1 {
			return Page{}, apperr.InvalidQueryValue("p must be a positive integer, got %d", *page)
		}
		n = *page
	}
	off := math.MaxInt
	if n-1 <= math.MaxInt/l {
		off = l * (n - 1)
	}
	return Page{Limit: l, Offset: off, Number: n}, nil
}

// TotalPages returns how many pages of size limit are needed for total rows.
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
