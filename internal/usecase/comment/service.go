// Package comment implements posting and listing comments on articles.
package comment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/observability/metrics"
	"duo-blog/internal/observability/tracing"
	"duo-blog/internal/repository"
	"duo-blog/internal/utils/text"
)

// ErrInvalidComment is returned when a comment is missing, incomplete or
// attached to an article that does not exist.
var ErrInvalidComment = fmt.Errorf("%w: comment cannot be registered", entity.ErrInvalidInput)

type Service struct {
	Repo repository.CommentRepository
	// Articles, when set, is used to check that the parent article exists.
	Articles repository.ArticleRepository
	// Sanitizer rejects bodies that render empty. Content is stored as submitted.
	Sanitizer *text.Sanitizer
}

// Create stamps currentUser as the author and stores the comment.
func (s *Service) Create(ctx context.Context, c *entity.Comment, currentUser *entity.User) (_ *entity.Comment, err error) {
	ctx, span := tracing.GetTracer().Start(ctx, "comment.Create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c == nil {
		return nil, ErrInvalidComment
	}
	c.Author = currentUser
	if verr := entity.ValidateComment(c); verr != nil {
		return nil, errors.Join(ErrInvalidComment, verr)
	}
	if s.Sanitizer != nil && s.Sanitizer.Sanitize(c.Content) == "" {
		return nil, ErrInvalidComment
	}
	span.SetAttributes(attribute.Int64("article.id", c.ArticleID))

	if s.Articles != nil {
		parent, err := s.Articles.Get(ctx, c.ArticleID)
		if err != nil {
			return nil, fmt.Errorf("create comment: %w", err)
		}
		if parent == nil {
			return nil, ErrInvalidComment
		}
	}

	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	metrics.RecordCommentCreated()
	return c, nil
}

// ListByArticle returns the comments of an article, oldest first.
// Non-positive ids return nil, nil.
func (s *Service) ListByArticle(ctx context.Context, articleID int64) ([]*entity.Comment, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "comment.ListByArticle",
		trace.WithAttributes(attribute.Int64("article.id", articleID)))
	defer span.End()

	if articleID <= 0 {
		return nil, nil
	}
	comments, err := s.Repo.ListByArticle(ctx, articleID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
