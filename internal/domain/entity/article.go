// Package entity defines the core domain entities of the blog: users, the
// articles they write and the comments left on them, together with the
// completeness rules that gate persisting them.
package entity

import "time"

// Article is a blog post. Author is assigned server-side from the acting
// user and is nil when the stored row has lost its author.
type Article struct {
	ID        int64
	Title     string
	Content   string
	Author    *User
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRegistrable reports whether the article may be created or modified.
func (a *Article) IsRegistrable() bool {
	return ValidateArticle(a) == nil
}

// AuthorID returns the id of the author, or 0 when there is none.
func (a *Article) AuthorID() int64 {
	if a == nil || a.Author == nil {
		return 0
	}
	return a.Author.ID
}

// IsWrittenBy reports whether u is the stored author of the article.
// An article without an author belongs to nobody.
func (a *Article) IsWrittenBy(u *User) bool {
	if a == nil || a.Author == nil || u == nil {
		return false
	}
	return a.Author.ID == u.ID
}
