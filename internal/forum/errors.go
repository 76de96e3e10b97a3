package forum

import "errors"

// Domain errors surfaced to the API layer. Everything else coming out
// of this package is a wrapped storage error.
var (
	// ErrNotFound indicates the referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrNotAuthor indicates the acting user does not own the content
	ErrNotAuthor = errors.New("user is not the author")

	// ErrAlreadyFollowing indicates a duplicate follow attempt
	ErrAlreadyFollowing = errors.New("already following this post")

	// ErrFirstComment indicates an attempt to delete the comment that
	// opened a post
	ErrFirstComment = errors.New("the first comment of a post cannot be deleted")
)
