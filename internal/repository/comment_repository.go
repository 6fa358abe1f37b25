package repository

import (
	"context"

	"duo-blog/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// ListByArticle returns the comments of one article, oldest first.
	ListByArticle(ctx context.Context, articleID int64) ([]*entity.Comment, error)
	Count(ctx context.Context) (int64, error)
}
