package entity

import "time"

// Comment is a reader's reply attached to an article.
type Comment struct {
	ID        int64
	ArticleID int64
	Author    *User
	Content   string
	CreatedAt time.Time
}

// IsRegistrable reports whether the comment references a parent article,
// has an author and carries non-blank content.
func (c *Comment) IsRegistrable() bool {
	return ValidateComment(c) == nil
}
