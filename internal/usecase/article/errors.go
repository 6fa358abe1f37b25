// Package article implements the article use cases: authoring, modification
// and deletion restricted to the author, lookup, search and paging.
package article

import "errors"

// User-facing messages carried by CreationError and ModificationError.
const (
	ValidationMessage = "Title and content are required."
	NotFoundMessage   = "The article does not exist or you are not its author."
	UnexpectedMessage = "The article could not be saved. Please try again."
)

var (
	// ErrArticleNotFound is returned by Delete when there is nothing the
	// caller could delete. Modify wraps it both for a missing article and
	// for someone else's, so the two cannot be told apart.
	ErrArticleNotFound = errors.New("article not found")

	// ErrNotAuthor is returned by Delete when the article belongs to
	// another user.
	ErrNotAuthor = errors.New("not the author of this article")
)

// CreationError reports why an article could not be created.
type CreationError struct {
	Message string
	Err     error
}

func (e *CreationError) Error() string { return e.Message }

func (e *CreationError) Unwrap() error { return e.Err }

// ModificationError reports why an article could not be modified. Missing
// articles and articles owned by someone else share NotFoundMessage.
type ModificationError struct {
	Message string
	Err     error
}

func (e *ModificationError) Error() string { return e.Message }

func (e *ModificationError) Unwrap() error { return e.Err }
