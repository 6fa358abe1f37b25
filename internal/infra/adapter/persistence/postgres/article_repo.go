package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/repository"
)

const articleColumns = `
SELECT a.id, a.title, a.content, a.author_id, u.email, u.name, a.created_at, a.updated_at
FROM articles a
LEFT JOIN users u ON a.author_id = u.id`

type ArticleRepo struct {
	db DBTX
}

func NewArticleRepo(db DBTX) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		article     entity.Article
		authorID    sql.NullInt64
		email, name sql.NullString
	)
	if err := row.Scan(&article.ID, &article.Title, &article.Content,
		&authorID, &email, &name, &article.CreatedAt, &article.UpdatedAt); err != nil {
		return nil, err
	}
	article.Author = scanAuthor(authorID, email, name)
	return &article, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = articleColumns + `
WHERE a.id = $1
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) ListPage(ctx context.Context, offset, limit int) ([]*entity.Article, error) {
	const query = articleColumns + `
ORDER BY a.id DESC
LIMIT $1 OFFSET $2`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	return collectArticles(rows, limit, "ListPage")
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Search(ctx context.Context, query string) ([]*entity.Article, error) {
	const stmt = articleColumns + `
WHERE a.title   ILIKE $1
   OR a.content ILIKE $1
ORDER BY a.id DESC`
	rows, err := repo.db.QueryContext(ctx, stmt, containsPattern(query))
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return collectArticles(rows, 16, "Search")
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (title, content, author_id)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Content, authorID(article.Author),
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	const query = `
UPDATE articles SET
       title      = $1,
       content    = $2,
       author_id  = $3,
       updated_at = NOW()
WHERE id = $4
RETURNING id, created_at, updated_at`
	updated := *article
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Content, authorID(article.Author), article.ID,
	).Scan(&updated.ID, &updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return &updated, nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func collectArticles(rows *sql.Rows, capacity int, op string) ([]*entity.Article, error) {
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, capacity)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}
