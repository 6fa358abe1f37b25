// Package pathutil parses path IDs and normalizes URL paths for metric and
// span labels.
package pathutil

import (
	"regexp"
	"strings"
)

type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// Evaluated in order. Anything that does not match passes through unchanged,
// so static routes such as /articles/search keep their own label.
var pathPatterns = []pathPattern{
	{pattern: regexp.MustCompile(`^/articles/[^/]+$`), template: "/articles/:id"},
	{pattern: regexp.MustCompile(`^/articles/[^/]+/comments$`), template: "/articles/:id/comments"},
	{pattern: regexp.MustCompile(`^/users/[^/]+$`), template: "/users/:id"},
	{pattern: regexp.MustCompile(`^/swagger/.+$`), template: "/swagger/*"},
}

var staticPaths = map[string]bool{
	"/articles/search": true,
}

// NormalizePath converts paths carrying IDs into route templates to keep
// label cardinality bounded.
//
//	NormalizePath("/articles/123")          // "/articles/:id"
//	NormalizePath("/articles/9/comments")   // "/articles/:id/comments"
//	NormalizePath("/articles/search?q=go")  // "/articles/search"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if staticPaths[path] {
		return path
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	return path
}
