package pathutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a path ID is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// PathID parses the named wildcard of a ServeMux pattern such as
// "GET /articles/{id}" as a positive int64.
func PathID(r *http.Request, name string) (int64, error) {
	return ParseID(r.PathValue(name))
}

// ParseID parses a positive int64 ID.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
