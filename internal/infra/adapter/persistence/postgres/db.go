// Package postgres implements the repository interfaces on top of
// database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"strings"

	"duo-blog/internal/domain/entity"
)

// DBTX is the subset of *sql.DB the repositories need. Both *sql.DB and
// *circuitbreaker.DBCircuitBreaker satisfy it.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// iLikeEscaper escapes the ILIKE wildcards so a query matches literally.
var iLikeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + iLikeEscaper.Replace(s) + "%"
}

func authorID(u *entity.User) sql.NullInt64 {
	if u == nil || u.ID <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: u.ID, Valid: true}
}

// scanAuthor rebuilds the joined author, which is absent when author_id is NULL.
func scanAuthor(id sql.NullInt64, email, name sql.NullString) *entity.User {
	if !id.Valid {
		return nil
	}
	return &entity.User{ID: id.Int64, Email: email.String, Name: name.String}
}
