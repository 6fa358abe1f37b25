package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/repository"
)

type CommentRepo struct {
	db DBTX
}

func NewCommentRepo(db DBTX) repository.CommentRepository {
	return &CommentRepo{db: db}
}

func (repo *CommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	const query = `
INSERT INTO comments (article_id, author_id, content)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		comment.ArticleID, authorID(comment.Author), comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CommentRepo) ListByArticle(ctx context.Context, articleID int64) ([]*entity.Comment, error) {
	const query = `
SELECT c.id, c.article_id, c.author_id, u.email, u.name, c.content, c.created_at
FROM comments c
LEFT JOIN users u ON c.author_id = u.id
WHERE c.article_id = $1
ORDER BY c.id ASC`
	rows, err := repo.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("ListByArticle: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var comments []*entity.Comment
	for rows.Next() {
		var (
			comment     entity.Comment
			authorID    sql.NullInt64
			email, name sql.NullString
		)
		if err := rows.Scan(&comment.ID, &comment.ArticleID, &authorID, &email, &name,
			&comment.Content, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListByArticle: Scan: %w", err)
		}
		comment.Author = scanAuthor(authorID, email, name)
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

func (repo *CommentRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM comments`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
