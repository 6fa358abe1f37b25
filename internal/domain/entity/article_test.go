package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticle_IsRegistrable(t *testing.T) {
	tests := []struct {
		name    string
		article *Article
		want    bool
	}{
		{name: "title and content", article: &Article{Title: "Go", Content: "body"}, want: true},
		{name: "empty title", article: &Article{Title: "", Content: "body"}},
		{name: "empty content", article: &Article{Title: "Go", Content: ""}},
		{name: "whitespace title", article: &Article{Title: "   ", Content: "body"}},
		{name: "both empty", article: &Article{}},
		{name: "nil article", article: nil},
		{name: "title too long", article: &Article{Title: strings.Repeat("a", 201), Content: "body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.IsRegistrable())
		})
	}
}

func TestArticle_IsWrittenBy(t *testing.T) {
	owner := &User{ID: 1000}
	// Same id, different pointer: ownership is a value comparison.
	sameID := &User{ID: 1000}
	other := &User{ID: 2}

	a := &Article{ID: 1, Author: owner}

	assert.True(t, a.IsWrittenBy(owner))
	assert.True(t, a.IsWrittenBy(sameID))
	assert.False(t, a.IsWrittenBy(other))
	assert.False(t, a.IsWrittenBy(nil))
	assert.False(t, (&Article{ID: 2}).IsWrittenBy(owner))
}

func TestArticle_AuthorID(t *testing.T) {
	var nilArticle *Article

	assert.Equal(t, int64(0), nilArticle.AuthorID())
	assert.Equal(t, int64(0), (&Article{}).AuthorID())
	assert.Equal(t, int64(7), (&Article{Author: &User{ID: 7}}).AuthorID())
}
