// Package pagination holds the page arithmetic shared by list endpoints:
// offsets, total page counts and the window of page numbers shown around
// the current page.
package pagination

import (
	"errors"
	"fmt"
)

const (
	// PageSize is the number of articles on one page.
	PageSize = 5

	// HalfWindow is the number of page links rendered on each side of the
	// current page.
	HalfWindow = 5
)

// ErrInvalidPage reports a page number outside [1, totalPages].
var ErrInvalidPage = errors.New("invalid page number")

// CalculateOffset returns the number of rows to skip for a 1-based page.
//
// Examples:
//   - page=1, limit=5 → offset=0
//   - page=3, limit=5 → offset=10
func CalculateOffset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total/limit). An empty collection has
// zero pages.
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ValidatePage checks that page is addressable. Page 1 is always valid so
// an empty collection still renders an (empty) first page.
func ValidatePage(page, totalPages int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be a positive integer", ErrInvalidPage)
	}
	if page > 1 && page > totalPages {
		return fmt.Errorf("%w: page %d exceeds total pages %d", ErrInvalidPage, page, totalPages)
	}
	return nil
}
