package repository

import (
	"context"

	"duo-blog/internal/domain/entity"
)

// ArticleRepository persists articles together with their author reference.
// Lookups return (nil, nil) when the article does not exist.
type ArticleRepository interface {
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// ListPage returns at most limit articles after skipping offset rows,
	// newest id first.
	ListPage(ctx context.Context, offset, limit int) ([]*entity.Article, error)
	Count(ctx context.Context) (int64, error)
	// Search matches query case-insensitively against title and content.
	Search(ctx context.Context, query string) ([]*entity.Article, error)
	// Create inserts the article and stamps ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, article *entity.Article) error
	// Update overwrites title, content and author and returns the stored row,
	// or nil when no row matched.
	Update(ctx context.Context, article *entity.Article) (*entity.Article, error)
	Delete(ctx context.Context, id int64) error
}
