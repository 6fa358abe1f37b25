package pagination

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ParsePage reads the 1-based ?page= parameter, defaulting to 1.
func ParsePage(r *http.Request) (int, error) {
	pageStr := strings.TrimSpace(r.URL.Query().Get("page"))
	if pageStr == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 1, fmt.Errorf("%w: page must be a positive integer", ErrInvalidPage)
	}
	return page, nil
}
