package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"duo-blog/internal/common/pagination"
	"duo-blog/internal/domain/entity"
	"duo-blog/internal/observability/metrics"
	"duo-blog/internal/observability/tracing"
	"duo-blog/internal/repository"
	"duo-blog/internal/utils/text"
)

// Service provides the article use cases. The acting user is always passed
// explicitly; Service keeps no per-request state.
type Service struct {
	Repo repository.ArticleRepository
	// Sanitizer rejects bodies with nothing left to render once unsafe
	// markup is removed. Content is always stored as submitted.
	Sanitizer *text.Sanitizer
}

// Create assigns currentUser as the author and persists the article.
// A missing title or content yields a *CreationError.
func (s *Service) Create(ctx context.Context, article *entity.Article, currentUser *entity.User) (err error) {
	ctx, span := startSpan(ctx, "article.Create")
	defer func() { endSpan(span, "create", err) }()

	if article == nil {
		return &CreationError{Message: ValidationMessage, Err: entity.ErrInvalidInput}
	}
	article.Author = currentUser

	if verr := s.validate(article); verr != nil {
		return &CreationError{Message: ValidationMessage, Err: verr}
	}

	if err := s.Repo.Create(ctx, article); err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	span.SetAttributes(attribute.Int64("article.id", article.ID))
	return nil
}

// Modify overwrites title and content of an article the current user wrote
// and returns the stored result.
func (s *Service) Modify(ctx context.Context, requested *entity.Article, currentUser *entity.User) (_ *entity.Article, err error) {
	ctx, span := startSpan(ctx, "article.Modify")
	defer func() { endSpan(span, "modify", err) }()

	if requested == nil {
		return nil, &ModificationError{Message: ValidationMessage, Err: entity.ErrInvalidInput}
	}
	requested.Author = currentUser

	if verr := s.validate(requested); verr != nil {
		return nil, &ModificationError{Message: ValidationMessage, Err: verr}
	}
	span.SetAttributes(attribute.Int64("article.id", requested.ID))

	existing, err := s.Repo.Get(ctx, requested.ID)
	if err != nil {
		return nil, fmt.Errorf("modify article: %w", err)
	}
	if existing == nil {
		return nil, &ModificationError{Message: NotFoundMessage, Err: ErrArticleNotFound}
	}
	if !existing.IsWrittenBy(currentUser) {
		metrics.RecordOwnershipDenied("modify")
		return nil, &ModificationError{Message: NotFoundMessage, Err: ErrArticleNotFound}
	}

	updated, err := s.Repo.Update(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("modify article: %w", err)
	}
	if updated == nil {
		return nil, &ModificationError{Message: UnexpectedMessage}
	}
	return updated, nil
}

// Delete removes an article the current user wrote. Unknown ids and
// articles without an author yield ErrArticleNotFound; someone else's
// article yields ErrNotAuthor.
func (s *Service) Delete(ctx context.Context, articleID int64, currentUser *entity.User) (err error) {
	ctx, span := startSpan(ctx, "article.Delete", attribute.Int64("article.id", articleID))
	defer func() { endSpan(span, "delete", err) }()

	if articleID <= 0 {
		return ErrArticleNotFound
	}

	existing, err := s.Repo.Get(ctx, articleID)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if existing == nil || existing.Author == nil {
		return ErrArticleNotFound
	}
	if !existing.IsWrittenBy(currentUser) {
		metrics.RecordOwnershipDenied("delete")
		return ErrNotAuthor
	}

	if err := s.Repo.Delete(ctx, articleID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			// deleted concurrently
			return ErrArticleNotFound
		}
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// FindByID returns nil, nil for non-positive ids and for unknown articles.
func (s *Service) FindByID(ctx context.Context, id int64) (_ *entity.Article, err error) {
	ctx, span := startSpan(ctx, "article.FindByID", attribute.Int64("article.id", id))
	defer func() { endSpan(span, "", err) }()

	if id <= 0 {
		return nil, nil
	}
	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find article: %w", err)
	}
	return article, nil
}

// FindByQuery searches titles and content. A blank query returns nil, nil
// without touching the repository.
func (s *Service) FindByQuery(ctx context.Context, query string) (_ []*entity.Article, err error) {
	ctx, span := startSpan(ctx, "article.FindByQuery")
	defer func() { endSpan(span, "", err) }()

	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	articles, err := s.Repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	span.SetAttributes(attribute.Int("article.results", len(articles)))
	return articles, nil
}

// FindByPageNumber returns the 1-based page of articles, newest first,
// with the surrounding page window. Pages outside [1, totalPages] yield
// pagination.ErrInvalidPage; page 1 of an empty blog is valid.
func (s *Service) FindByPageNumber(ctx context.Context, page int) (_ *pagination.Window[*entity.Article], err error) {
	ctx, span := startSpan(ctx, "article.FindByPageNumber", attribute.Int("page", page))
	defer func() { endSpan(span, "", err) }()

	if page < 1 {
		return nil, pagination.ValidatePage(page, 0)
	}

	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	totalPages := pagination.CalculateTotalPages(total, pagination.PageSize)
	if err := pagination.ValidatePage(page, totalPages); err != nil {
		return nil, err
	}

	items, err := s.Repo.ListPage(ctx, pagination.CalculateOffset(page, pagination.PageSize), pagination.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return pagination.NewWindow(pagination.PageResult[*entity.Article]{
		Items:      items,
		Number:     page - 1,
		TotalPages: totalPages,
		Total:      total,
	}), nil
}

func (s *Service) validate(a *entity.Article) error {
	if err := entity.ValidateArticle(a); err != nil {
		return err
	}
	if s.Sanitizer != nil && s.Sanitizer.Sanitize(a.Content) == "" {
		return &entity.ValidationError{Field: "content", Message: "content is required"}
	}
	return nil
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracing.GetTracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan closes span and, for mutating operations, counts the outcome.
func endSpan(span trace.Span, operation string, err error) {
	defer span.End()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if operation != "" {
		metrics.RecordArticleOperation(operation, resultOf(err))
	}
}

func resultOf(err error) string {
	var creationErr *CreationError
	var modErr *ModificationError

	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, ErrNotAuthor):
		return metrics.ResultDenied
	case errors.Is(err, ErrArticleNotFound):
		return metrics.ResultNotFound
	case errors.As(err, &modErr) && modErr.Message == UnexpectedMessage:
		return metrics.ResultError
	case errors.As(err, &creationErr), errors.As(err, &modErr):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
