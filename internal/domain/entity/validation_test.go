package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name      string
		article   *Article
		wantField string
	}{
		{name: "valid", article: &Article{Title: "t", Content: "c"}},
		{name: "nil", article: nil, wantField: "article"},
		{name: "missing title", article: &Article{Content: "c"}, wantField: "title"},
		{name: "missing content", article: &Article{Title: "t"}, wantField: "content"},
		{name: "tab only content", article: &Article{Title: "t", Content: "\t\n"}, wantField: "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticle(tt.article)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestValidateComment(t *testing.T) {
	author := &User{ID: 1}

	tests := []struct {
		name      string
		comment   *Comment
		wantField string
	}{
		{name: "valid", comment: &Comment{ArticleID: 1, Author: author, Content: "nice"}},
		{name: "nil", comment: nil, wantField: "comment"},
		{name: "no parent", comment: &Comment{Author: author, Content: "nice"}, wantField: "article_id"},
		{name: "negative parent", comment: &Comment{ArticleID: -1, Author: author, Content: "nice"}, wantField: "article_id"},
		{name: "no author", comment: &Comment{ArticleID: 1, Content: "nice"}, wantField: "author"},
		{name: "blank content", comment: &Comment{ArticleID: 1, Author: author, Content: " "}, wantField: "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComment(tt.comment)
			if tt.wantField == "" {
				assert.NoError(t, err)
				assert.True(t, tt.comment.IsRegistrable())
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}
