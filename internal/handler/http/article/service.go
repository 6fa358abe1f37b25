package article

import (
	"context"

	"duo-blog/internal/common/pagination"
	"duo-blog/internal/domain/entity"
)

// Service is the part of the article use case the handlers call.
type Service interface {
	Create(ctx context.Context, article *entity.Article, currentUser *entity.User) error
	Modify(ctx context.Context, requested *entity.Article, currentUser *entity.User) (*entity.Article, error)
	Delete(ctx context.Context, articleID int64, currentUser *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.Article, error)
	FindByQuery(ctx context.Context, query string) ([]*entity.Article, error)
	FindByPageNumber(ctx context.Context, page int) (*pagination.Window[*entity.Article], error)
}
