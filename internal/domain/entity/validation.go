package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// maxTitleLength bounds article titles in characters.
	maxTitleLength = 200
	// maxContentLength bounds article and comment bodies in bytes.
	maxContentLength = 1 << 20
)

// ValidateArticle checks that title and content are present.
// Returns a ValidationError describing the first failing field.
func ValidateArticle(a *Article) error {
	if a == nil {
		return &ValidationError{Field: "article", Message: "article is required"}
	}
	if isBlank(a.Title) {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(a.Title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		}
	}
	if isBlank(a.Content) {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if len(a.Content) > maxContentLength {
		return &ValidationError{Field: "content", Message: "content is too large"}
	}
	return nil
}

// ValidateComment checks the parent link, the author and the body.
func ValidateComment(c *Comment) error {
	if c == nil {
		return &ValidationError{Field: "comment", Message: "comment is required"}
	}
	if c.ArticleID <= 0 {
		return &ValidationError{Field: "article_id", Message: "article_id must be positive"}
	}
	if c.Author == nil {
		return &ValidationError{Field: "author", Message: "author is required"}
	}
	if isBlank(c.Content) {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if len(c.Content) > maxContentLength {
		return &ValidationError{Field: "content", Message: "content is too large"}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
