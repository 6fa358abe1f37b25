package repository

import (
	"context"

	"duo-blog/internal/domain/entity"
)

type UserRepository interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	// FindByEmail returns (nil, nil) when no account uses the address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Create inserts the user. A taken email yields an error wrapping entity.ErrConflict.
	Create(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
}
